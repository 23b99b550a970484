package router

import (
	"log/slog"
	"strings"
	"time"

	tg "github.com/m3rciful/moviebot/internal/telegram"
	"github.com/m3rciful/moviebot/internal/telegram/middleware"
	"github.com/m3rciful/moviebot/internal/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// TextOptions controls routing of non-command message updates.
type TextOptions struct {
	// Location handles shared-location updates.
	Location tele.HandlerFunc
}

// TextRoutes builds handlers for plain text and location updates.
//
// Text messages resolve in order: a pending conversation state consumed
// atomically, then the registry text fallback (intent dispatch). Slash
// commands never take this path and never consume a pending state; they
// arrive on their own endpoints.
func TextRoutes(sessions state.Manager, reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		// Unregistered commands are ignored, matching command handler exclusivity.
		if strings.HasPrefix(strings.TrimSpace(text), "/") {
			summary{handler: "command_passthrough", start: start, status: "skip", outcome: "ok"}.emit(c, nil)
			return nil
		}

		if sessions != nil {
			if sender := c.Sender(); sender != nil {
				if st := sessions.Consume(sender.ID); st != state.StateIdle {
					name := "state." + handlerName(string(st))
					extras := []slog.Attr{slog.String("state", string(st))}
					if h, ok := state.HandlerFor(st); ok {
						return observe(c, summary{handler: name, start: start, extras: extras}, func() error {
							return h(c, text)
						})
					}
					// State with no registered handler: drop it and fall through to intents.
					summary{handler: name, start: start, status: "skip", outcome: "fail", extras: extras}.emit(c, nil)
				}
			}
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return observe(c, summary{handler: "intent", start: start}, func() error {
					return fb(c)
				})
			}
		}

		summary{handler: "unknown_text", start: start, status: "skip", outcome: "ok"}.emit(c, nil)
		return nil
	}

	routes := []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
	}

	if opts.Location != nil {
		locHandler := func(c tele.Context) error {
			return observe(c, summary{handler: "location", start: time.Now()}, func() error {
				return opts.Location(c)
			})
		}
		routes = append(routes, tg.Route{
			Endpoint: tele.OnLocation,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(locHandler)),
		})
	}

	return routes
}
