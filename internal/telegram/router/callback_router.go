package router

import (
	"log/slog"
	"time"

	"github.com/m3rciful/moviebot/internal/logger"
	tg "github.com/m3rciful/moviebot/internal/telegram"
	"github.com/m3rciful/moviebot/internal/telegram/callbacks"
	tghelpers "github.com/m3rciful/moviebot/internal/telegram/helpers"
	"github.com/m3rciful/moviebot/internal/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CallbackOptions customises fallback behaviour for callbacks.
type CallbackOptions struct {
	NotFound tele.HandlerFunc
}

// CallbackRoute returns a handler that routes callbacks through the registry.
// Unknown action keys warn and fall back to the registry's not-found handler;
// routing itself never fails an update.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	handler := func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil {
			return nil
		}

		key := cb.Unique
		if key == "" {
			key, _ = callbacks.ParseCallbackData(cb)
		}
		s := summary{
			handler: "callback." + handlerName(key),
			start:   time.Now(),
			extras:  []slog.Attr{slog.String("cb_key", key)},
		}

		// Answer the callback up front so the client spinner never hangs
		// on a slow or failing handler.
		_ = c.Respond()

		cbHandler, ok := reg.GetCallback(key)
		if !ok || cbHandler == nil {
			logger.LogEvent(tghelpers.WithHandler(c, s.handler), logger.Component("tg"), slog.LevelWarn, "callback.unknown_key",
				slog.String("cb_key", logger.SanitizeLimit(key, 64)),
			)
			fallback := reg.CallbackNotFound()
			if fallback == nil {
				fallback = opts.NotFound
			}
			s.extras = append(s.extras, slog.String("reason", "not_found"))
			return observe(c, s, func() error {
				if fallback != nil {
					return fallback(c)
				}
				return nil
			})
		}

		return observe(c, s, func() error {
			return cbHandler(c)
		})
	}

	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
