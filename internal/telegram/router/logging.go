package router

import (
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/m3rciful/moviebot/internal/logger"
	tghelpers "github.com/m3rciful/moviebot/internal/telegram/helpers"
	"github.com/m3rciful/moviebot/internal/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// summary describes one routed update for the per-update log line.
// Empty status or outcome default to ok/fail based on the handler error.
type summary struct {
	handler string
	start   time.Time
	status  string
	outcome string
	extras  []slog.Attr
}

// observe runs fn with the handler name recorded in the request context
// and emits the summary line afterwards.
func observe(c tele.Context, s summary, fn func() error) error {
	tghelpers.WithHandler(c, s.handler)
	err := fn()
	s.emit(c, err)
	return err
}

func (s summary) emit(c tele.Context, err error) {
	ctx := tghelpers.WithHandler(c, s.handler)

	status, outcome := s.status, s.outcome
	if status == "" {
		status = statusOf(err)
	}
	if outcome == "" {
		outcome = statusOf(err)
	}

	msgs, kb := middleware.GetCounters(c)
	attrs := []slog.Attr{
		slog.String("status", status),
		slog.String("handler", s.handler),
		slog.String("outcome", outcome),
		slog.Int("messages", msgs),
		slog.Bool("kb", kb),
		slog.Int64("duration_ms", logger.RoundMS(time.Since(s.start)).Milliseconds()),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.String("err_code", errCode(err)),
			slog.String("cause", s.handler),
		)
	}
	attrs = append(attrs, s.extras...)

	logger.LogEvent(ctx, logger.Component("tg"), slog.LevelInfo, "handler.handled", attrs...)
}

func statusOf(err error) string {
	if err != nil {
		return "fail"
	}
	return "ok"
}

func handlerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unknown"
	}
	name = strings.TrimPrefix(name, "/")
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ToLower(name)
}

// errCode prefers an explicit Code() on the error and falls back to the
// error's type name.
func errCode(err error) string {
	if err == nil {
		return ""
	}

	type coder interface{ Code() string }
	if c, ok := err.(coder); ok {
		if code := strings.TrimSpace(c.Code()); code != "" {
			return strings.ToUpper(strings.ReplaceAll(code, " ", "_"))
		}
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Name() != "" {
		return strings.ToUpper(strings.ReplaceAll(t.Name(), " ", "_"))
	}
	return "UNKNOWN_ERROR"
}
