// Package app assembles the bot process: logging, favorites storage,
// the catalog client with its optional cache, handler registration, and
// the Telegram runtime options. cmd/moviebot drives it.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/moviebot/internal/bot"
	"github.com/m3rciful/moviebot/internal/buildinfo"
	"github.com/m3rciful/moviebot/internal/config"
	"github.com/m3rciful/moviebot/internal/database"
	"github.com/m3rciful/moviebot/internal/favorites"
	"github.com/m3rciful/moviebot/internal/logger"
	tg "github.com/m3rciful/moviebot/internal/telegram"
	"github.com/m3rciful/moviebot/internal/telegram/commands"
	"github.com/m3rciful/moviebot/internal/telegram/helpers"
	"github.com/m3rciful/moviebot/internal/telegram/router"
	"github.com/m3rciful/moviebot/internal/telegram/sender"
	"github.com/m3rciful/moviebot/internal/telegram/state"
	"github.com/m3rciful/moviebot/internal/tmdb"
)

const (
	genreWarmupTimeout = 15 * time.Second
	redisDialTimeout   = 5 * time.Second
)

// App owns the long-lived process resources.
type App struct {
	cfg        *config.Config
	db         *sqlx.DB
	redis      *redis.Client
	store      favorites.Store
	catalog    *tmdb.Client
	sessions   state.Manager
	bot        *bot.Bot
	registry   *tg.Registry
	dispatcher *sender.Dispatcher
	startedAt  time.Time
}

// New initializes the logger and builds every collaborator in dependency
// order. A warm-up failure of the genre table is not fatal: the bot runs
// with an empty table and the genres submenu reports unavailability.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config provided")
	}
	if err := logger.InitLogger(cfg); err != nil {
		return nil, fmt.Errorf("app: logger init failed: %w", err)
	}

	a := &App{cfg: cfg, startedAt: time.Now()}

	store, err := a.buildStore()
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.store = store

	catalog, err := a.buildCatalog()
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.catalog = catalog

	a.sessions = state.NewMemoryManager()
	a.bot = bot.New(catalog, store, a.sessions)
	a.warmGenres()

	a.dispatcher = sender.NewDispatcher(sender.Options{})
	a.registry = tg.NewRegistry()
	a.bot.Register(a.registry)
	a.registerStats()

	return a, nil
}

func (a *App) buildStore() (favorites.Store, error) {
	switch a.cfg.Favorites.Backend {
	case config.FavoritesBackendPostgres:
		db, err := database.Connect(a.cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("app: database connect failed: %w", err)
		}
		a.db = db
		if err := database.RunMigrations(a.cfg.Database); err != nil {
			return nil, fmt.Errorf("app: migrations failed: %w", err)
		}
		return favorites.NewPostgresStore(db), nil
	default:
		store, err := favorites.NewJSONStore(a.cfg.Favorites.File)
		if err != nil {
			return nil, fmt.Errorf("app: favorites store init failed: %w", err)
		}
		return store, nil
	}
}

// buildCatalog constructs the catalog client. The Redis cache is
// optional: a failed connect logs a warning and the client runs
// uncached.
func (a *App) buildCatalog() (*tmdb.Client, error) {
	opts := []tmdb.Option{
		tmdb.WithBaseURL(a.cfg.TMDB.BaseURL),
		tmdb.WithImageBaseURL(a.cfg.TMDB.ImageBaseURL),
		tmdb.WithLanguage(a.cfg.TMDB.Language),
	}
	if a.cfg.TMDB.TimeoutSeconds > 0 {
		opts = append(opts, tmdb.WithHTTPClient(&http.Client{
			Timeout: time.Duration(a.cfg.TMDB.TimeoutSeconds) * time.Second,
		}))
	}

	if addr := strings.TrimSpace(a.cfg.Redis.Addr); addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
		defer cancel()
		client, err := tmdb.ConnectRedis(ctx, addr, a.cfg.Redis.Password, a.cfg.Redis.DB)
		if err != nil {
			logger.LogEvent(ctx, logger.TMDB, slog.LevelWarn, "cache.connect",
				slog.String("status", "fail"),
				slog.String("addr", addr),
				slog.String("err", err.Error()),
			)
		} else {
			a.redis = client
			ttl := time.Duration(a.cfg.Redis.TTLSeconds) * time.Second
			opts = append(opts, tmdb.WithCache(tmdb.NewRedisCache(client), ttl))
		}
	}

	catalog, err := tmdb.New(a.cfg.TMDB.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("app: catalog client init failed: %w", err)
	}
	return catalog, nil
}

func (a *App) warmGenres() {
	ctx, cancel := context.WithTimeout(context.Background(), genreWarmupTimeout)
	defer cancel()
	if err := a.bot.LoadGenres(ctx); err != nil {
		logger.LogEvent(ctx, logger.TMDB, slog.LevelWarn, "genres.warmup",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return
	}
	logger.LogEvent(ctx, logger.TMDB, slog.LevelInfo, "genres.warmup",
		slog.String("status", "ok"),
		slog.Int("genres", a.bot.GenreCount()),
	)
}

// registerStats adds the hidden admin-only runtime counters command.
func (a *App) registerStats() {
	a.registry.RegisterCommand("/stats", commands.Command{
		Description: "Runtime counters",
		AdminOnly:   true,
		Hidden:      true,
		Handler: func(c tele.Context) error {
			text := fmt.Sprintf(
				"build: %s\nuptime: %s\ngenres: %d\nsend errors: %d",
				buildinfo.String(),
				time.Since(a.startedAt).Round(time.Second),
				a.bot.GenreCount(),
				a.dispatcher.ErrorCount(),
			)
			return helpers.SendText(c, text)
		},
	})
}

// TelegramRunOptions exposes the assembled runtime to telegram.RunTelegram.
func (a *App) TelegramRunOptions() tg.RunOptions {
	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    a.registry,
		Dispatcher:  a.dispatcher,
		Middlewares: tg.DefaultMiddlewares(a.cfg, nil),
		Routes:      a.routes(),
		OnStart: func(ctx context.Context, _ tg.Runtime) error {
			logger.LogEvent(ctx, logger.Component("app"), slog.LevelInfo, "ready",
				slog.String("status", "ok"),
				slog.String("favorites_backend", a.cfg.Favorites.Backend),
				slog.Bool("cache", a.redis != nil),
				slog.Duration("startup_duration", logger.RoundMS(time.Since(a.startedAt))),
			)
			return nil
		},
		OnStop: func(ctx context.Context, _ tg.Runtime) error {
			logger.LogEvent(ctx, logger.Component("app"), slog.LevelInfo, "shutdown")
			return a.Close()
		},
	}
}

func (a *App) routes() []tg.Route {
	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(a.sessions, a.registry, router.TextOptions{
		Location: a.bot.OnLocation,
	})...)
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{}))
	return routes
}

// Close releases storage and cache connections. Safe to call twice; the
// dispatcher is closed by the Telegram runtime.
func (a *App) Close() error {
	var firstErr error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		a.redis = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		a.db = nil
	}
	return firstErr
}
