package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/m3rciful/moviebot/internal/config"
	"github.com/m3rciful/moviebot/internal/logger"
)

const migrateComponent = "db.migrate"

// RunMigrations applies every pending up migration from the configured
// migrations directory.
func RunMigrations(cfg config.DatabaseConfig) error {
	ctx := logger.Background()

	dsn := urlDSN(cfg)
	if err := WaitForPostgres(dsn, 30*time.Second); err != nil {
		logger.Error(ctx, migrateComponent, "db.migrate", slog.String("err", err.Error()))
		return fmt.Errorf("database not ready: %w", err)
	}

	dir, err := migrationsDir(cfg.MigrationsDir)
	if err != nil {
		logger.Error(ctx, migrateComponent, "db.migrate", slog.String("err", err.Error()))
		return err
	}

	files := upMigrations(dir)
	logger.Debug(ctx, migrateComponent, "resolve",
		append([]slog.Attr{slog.String("path", dir)}, fileListAttrs(files)...)...)

	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		logger.Error(ctx, migrateComponent, "db.migrate", slog.String("err", err.Error()))
		return fmt.Errorf("init migrations: %w", err)
	}

	fromVer, _, _ := m.Version()
	start := time.Now()
	upErr := m.Up()
	took := logger.Took(start)

	switch upErr {
	case nil:
	case migrate.ErrNoChange:
		logSummary(ctx, fromVer, fromVer, 0, took)
		return nil
	default:
		logger.Error(ctx, migrateComponent, "apply",
			slog.String("err", upErr.Error()),
			slog.Duration("duration", took),
		)
		return fmt.Errorf("apply migrations: %w", upErr)
	}

	toVer, _, _ := m.Version()
	applied := appliedBetween(files, uint64(fromVer), uint64(toVer))
	if len(applied) > 0 {
		logger.Debug(ctx, migrateComponent, "apply", fileListAttrs(applied)...)
	}
	logSummary(ctx, fromVer, toVer, len(applied), took)
	return nil
}

func logSummary(ctx context.Context, from, to uint, applied int, took time.Duration) {
	logger.Info(ctx, migrateComponent, "summary",
		slog.Uint64("from_ver", uint64(from)),
		slog.Uint64("to_ver", uint64(to)),
		slog.Int("files", applied),
		slog.Duration("duration", took),
	)
}

// fileListAttrs summarizes a migration file list for one log line.
func fileListAttrs(files []string) []slog.Attr {
	attrs := []slog.Attr{slog.Int("files_total", len(files))}
	preview, truncated := logger.SummarizeStrings(files, 6)
	if preview != "" {
		attrs = append(attrs, slog.String("files_preview", preview))
	}
	if truncated {
		attrs = append(attrs, slog.Bool("files_truncated", true))
	}
	return attrs
}

// migrationsDir resolves the configured directory, defaulting to
// ./migrations under the working directory.
func migrationsDir(dir string) (string, error) {
	if strings.TrimSpace(dir) != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("resolve migrations dir: %w", err)
		}
		return abs, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(cwd, "migrations"), nil
}

// upMigrations lists the *.up.sql files in dir, sorted by name.
func upMigrations(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// versionOf reads the numeric prefix of a migration file name.
func versionOf(name string) uint64 {
	prefix, _, _ := strings.Cut(name, "_")
	v, _ := strconv.ParseUint(prefix, 10, 64)
	return v
}

// appliedBetween picks the files whose versions fall inside (from, to].
func appliedBetween(files []string, from, to uint64) []string {
	if to <= from {
		return nil
	}
	var out []string
	for _, f := range files {
		if v := versionOf(f); v > from && v <= to {
			out = append(out, f)
		}
	}
	return out
}
