package telegram

import (
	"strings"
	"time"

	"github.com/m3rciful/moviebot/internal/config"
	"github.com/m3rciful/moviebot/internal/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// DefaultMiddlewares builds the bot-wide middleware chain: panic recovery
// first, then the optional per-user rate limit, then request logging and
// send metrics.
func DefaultMiddlewares(cfg *config.Config, onLimited func(tele.Context) error) []Middleware {
	mws := []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
	}

	if rl := rateLimitFor(cfg, onLimited); rl != nil {
		mws = append(mws, Middleware{Name: "rate_limit", Use: rl})
	}

	return append(mws,
		Middleware{Name: "logger", Use: middleware.LoggerMiddleware},
		Middleware{Name: "metrics", Use: middleware.MessageMetricsMiddleware},
	)
}

func rateLimitFor(cfg *config.Config, onLimited tele.HandlerFunc) tele.MiddlewareFunc {
	if cfg == nil {
		return nil
	}
	interval := time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond
	if interval <= 0 {
		return nil
	}

	exclude := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
	for _, kind := range cfg.RateLimit.ExcludeUpdates {
		exclude[strings.ToLower(kind)] = struct{}{}
	}

	return middleware.RateLimitMiddleware(middleware.RateLimitOptions{
		Interval:  interval,
		Exclude:   exclude,
		OnLimited: onLimited,
	})
}
