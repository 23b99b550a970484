// Package middleware holds the bot-wide handler wrappers: panic recovery,
// request logging, send metrics, rate limiting and admin gating.
package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/m3rciful/moviebot/internal/logger"

	tele "gopkg.in/telebot.v4"
)

// RecoverMiddleware turns handler panics into error logs so one bad update
// cannot take the poller down.
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				logger.Error(logger.Background(), "tg", "tg.panic",
					slog.Any("err", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()
		return next(c)
	}
}
