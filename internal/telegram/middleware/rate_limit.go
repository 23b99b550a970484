package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/m3rciful/moviebot/internal/logger"

	tele "gopkg.in/telebot.v4"
)

// RateLimitOptions configures the per-user minimum update interval.
type RateLimitOptions struct {
	Interval time.Duration
	// Exclude lists update kinds ("message", "callback", "inline_query")
	// that bypass the limiter.
	Exclude   map[string]struct{}
	OnLimited tele.HandlerFunc
}

// RateLimitMiddleware drops updates arriving faster than the configured
// interval per user. Dropped updates optionally get the OnLimited reply.
func RateLimitMiddleware(opts RateLimitOptions) tele.MiddlewareFunc {
	limiter := struct {
		sync.Mutex
		lastSeen map[int64]time.Time
	}{lastSeen: make(map[int64]time.Time)}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.Interval <= 0 {
				return next(c)
			}
			if _, skip := opts.Exclude[updateKind(c.Update())]; skip {
				return next(c)
			}

			now := time.Now()
			limiter.Lock()
			last, seen := limiter.lastSeen[user.ID]
			limited := seen && now.Sub(last) < opts.Interval
			if !limited {
				limiter.lastSeen[user.ID] = now
			}
			limiter.Unlock()

			if !limited {
				return next(c)
			}

			attrs := []slog.Attr{slog.Int64("user_id", user.ID)}
			if chat := c.Chat(); chat != nil {
				attrs = append(attrs, slog.Int64("chat_id", chat.ID))
			}
			logger.LogEvent(logger.Background(), logger.TG, slog.LevelWarn, "tg.rate_limit", attrs...)

			if opts.OnLimited != nil {
				_ = opts.OnLimited(c)
			}
			return nil
		}
	}
}

func updateKind(upd tele.Update) string {
	switch {
	case upd.Callback != nil:
		return "callback"
	case upd.Message != nil:
		return "message"
	case upd.Query != nil:
		return "inline_query"
	default:
		return "other"
	}
}
