// Package config loads bot settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Telegram update delivery modes.
const (
	RunModeWebhook  = "webhook"
	RunModeLongpoll = "longpoll"
)

// Favorites storage backends.
const (
	FavoritesBackendJSON     = "json"
	FavoritesBackendPostgres = "postgres"
)

// Update kinds accepted in rate_limit.exclude_updates.
const (
	UpdateCallback    = "callback"
	UpdateMessage     = "message"
	UpdateInlineQuery = "inline_query"
)

// Defaults filled in by Normalize.
const (
	DefaultTMDBBaseURL      = "https://api.themoviedb.org/3"
	DefaultTMDBImageBaseURL = "https://image.tmdb.org/t/p/w500"
	DefaultTMDBLanguage     = "en-US"
	DefaultFavoritesFile    = "favorites.json"
	DefaultRedisTTLSeconds  = 300
)

// Config aggregates every setting of the bot.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	TMDB      TMDBConfig      `yaml:"tmdb"`
	Favorites FavoritesConfig `yaml:"favorites"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// TelegramConfig covers the bot account and update delivery.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	AdminID int64  `yaml:"admin_id" envconfig:"TELEGRAM_ADMIN_ID"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds bounds one getUpdates call; 0 picks the default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig applies when run_mode is webhook.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// TMDBConfig points the bot at the remote movie catalog API.
type TMDBConfig struct {
	APIKey       string `yaml:"api_key" envconfig:"TMDB_API_KEY"`
	BaseURL      string `yaml:"base_url" envconfig:"TMDB_BASE_URL"`
	ImageBaseURL string `yaml:"image_base_url" envconfig:"TMDB_IMAGE_BASE_URL"`
	Language     string `yaml:"language" envconfig:"TMDB_LANGUAGE"`
	// TimeoutSeconds bounds a single catalog request; 0 picks the default
	TimeoutSeconds int `yaml:"timeout_seconds" envconfig:"TMDB_TIMEOUT_SECONDS"`
}

// FavoritesConfig selects where per-user favorites live.
type FavoritesConfig struct {
	Backend string `yaml:"backend" envconfig:"FAVORITES_BACKEND"`
	File    string `yaml:"file" envconfig:"FAVORITES_FILE"`
}

// DatabaseConfig holds the PostgreSQL connection settings used by the
// postgres favorites backend.
type DatabaseConfig struct {
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
	MigrationsDir  string `yaml:"migrations_dir" envconfig:"DB_MIGRATIONS_DIR"`
}

// RedisConfig enables the optional catalog response cache. Leaving Addr
// empty disables caching.
type RedisConfig struct {
	Addr       string `yaml:"addr" envconfig:"REDIS_ADDR"`
	Password   string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB         int    `yaml:"db" envconfig:"REDIS_DB"`
	TTLSeconds int    `yaml:"ttl_seconds" envconfig:"REDIS_TTL_SECONDS"`
}

// LoggingConfig tunes log output.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile names the environment, e.g. "debug" or "prod".
	Profile string `yaml:"profile"`
}

// RateLimitConfig throttles per-user updates. ExcludeUpdates lists update
// kinds that bypass the limiter: callback, message, inline_query.
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// Load builds the configuration from the YAML file at path, applies
// environment overrides on top and normalizes the result. An empty path
// configures from the environment alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}
	if err := Normalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize validates required fields, resolves aliases and fills defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	for _, section := range []func(*Config) error{
		normalizeTelegram,
		normalizeTMDB,
		normalizeFavorites,
		normalizeRedis,
		normalizeRateLimit,
	} {
		if err := section(cfg); err != nil {
			return err
		}
	}
	return nil
}

func normalizeTelegram(cfg *Config) error {
	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		return fmt.Errorf("telegram.token is required")
	}

	mode := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	switch mode {
	case "", "polling": // polling is a legacy alias
		mode = RunModeLongpoll
	}
	switch mode {
	case RunModeWebhook:
		if err := checkWebhook(&cfg.Webhook); err != nil {
			return err
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("telegram.run_mode %q is not one of: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = mode
	return nil
}

func checkWebhook(w *WebhookConfig) error {
	if strings.TrimSpace(w.URL) == "" {
		return fmt.Errorf("webhook.url is required in webhook mode")
	}
	if strings.TrimSpace(w.Listen) == "" {
		return fmt.Errorf("webhook.listen is required in webhook mode")
	}
	if w.Port <= 0 {
		return fmt.Errorf("webhook.port must be > 0 in webhook mode")
	}
	return nil
}

func normalizeTMDB(cfg *Config) error {
	if strings.TrimSpace(cfg.TMDB.APIKey) == "" {
		return fmt.Errorf("tmdb.api_key is required")
	}
	if cfg.TMDB.TimeoutSeconds < 0 {
		return fmt.Errorf("tmdb.timeout_seconds must be >= 0")
	}
	setDefault(&cfg.TMDB.BaseURL, DefaultTMDBBaseURL)
	setDefault(&cfg.TMDB.ImageBaseURL, DefaultTMDBImageBaseURL)
	setDefault(&cfg.TMDB.Language, DefaultTMDBLanguage)
	return nil
}

func normalizeFavorites(cfg *Config) error {
	backend := strings.ToLower(strings.TrimSpace(cfg.Favorites.Backend))
	if backend == "" {
		backend = FavoritesBackendJSON
	}
	switch backend {
	case FavoritesBackendJSON:
		setDefault(&cfg.Favorites.File, DefaultFavoritesFile)
	case FavoritesBackendPostgres:
		if strings.TrimSpace(cfg.Database.Host) == "" {
			return fmt.Errorf("database.host is required for the postgres favorites backend")
		}
		if strings.TrimSpace(cfg.Database.Name) == "" {
			return fmt.Errorf("database.name is required for the postgres favorites backend")
		}
	default:
		return fmt.Errorf("favorites.backend %q is not one of: json, postgres", cfg.Favorites.Backend)
	}
	cfg.Favorites.Backend = backend
	return nil
}

func normalizeRedis(cfg *Config) error {
	if cfg.Redis.TTLSeconds < 0 {
		return fmt.Errorf("redis.ttl_seconds must be >= 0")
	}
	if strings.TrimSpace(cfg.Redis.Addr) != "" && cfg.Redis.TTLSeconds == 0 {
		cfg.Redis.TTLSeconds = DefaultRedisTTLSeconds
	}
	return nil
}

func normalizeRateLimit(cfg *Config) error {
	for i, raw := range cfg.RateLimit.ExcludeUpdates {
		kind := strings.ToLower(strings.TrimSpace(raw))
		switch kind {
		case "":
		case UpdateCallback, UpdateMessage, UpdateInlineQuery:
			cfg.RateLimit.ExcludeUpdates[i] = kind
		default:
			return fmt.Errorf("rate_limit.exclude_updates value %q is not one of: callback, message, inline_query", raw)
		}
	}
	return nil
}

func setDefault(field *string, value string) {
	if strings.TrimSpace(*field) == "" {
		*field = value
	}
}
