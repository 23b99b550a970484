package favorites

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/moviebot/internal/logger"
)

// postgresStore persists favorites in the favorites table. The unique
// lower(title)-per-user index makes Add race-safe without locking.
type postgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an open database handle as a Store. The caller
// keeps ownership of the handle and closes it on shutdown.
func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) Load(ctx context.Context) map[string][]string {
	rows := []struct {
		UserID int64  `db:"user_id"`
		Title  string `db:"title"`
	}{}
	err := s.db.SelectContext(ctx, &rows,
		`SELECT user_id, title FROM favorites ORDER BY user_id, position`)
	if err != nil {
		logger.LogEvent(ctx, logger.Store, slog.LevelError, "store.load",
			slog.String("status", "fail"),
			slog.String("backend", "postgres"),
			slog.String("err", err.Error()),
		)
		return map[string][]string{}
	}

	all := map[string][]string{}
	for _, row := range rows {
		key := strconv.FormatInt(row.UserID, 10)
		all[key] = append(all[key], row.Title)
	}
	return all
}

func (s *postgresStore) Save(ctx context.Context, all map[string][]string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("favorites: begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM favorites`); err != nil {
		return fmt.Errorf("favorites: clear store: %w", err)
	}
	for key, titles := range all {
		userID, parseErr := strconv.ParseInt(key, 10, 64)
		if parseErr != nil {
			return fmt.Errorf("favorites: bad user id %q: %w", key, parseErr)
		}
		for i, title := range titles {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO favorites (user_id, title, position) VALUES ($1, $2, $3)`,
				userID, title, i+1,
			); err != nil {
				return fmt.Errorf("favorites: insert title: %w", err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("favorites: commit save: %w", err)
	}
	return nil
}

func (s *postgresStore) Add(ctx context.Context, userID int64, title string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO favorites (user_id, title, position)
		 SELECT $1, $2, COALESCE(MAX(position), 0) + 1
		   FROM favorites
		  WHERE user_id = $1
		 ON CONFLICT DO NOTHING`,
		userID, title,
	)
	if err != nil {
		logger.LogEvent(ctx, logger.Store, slog.LevelError, "store.add",
			slog.String("status", "fail"),
			slog.String("backend", "postgres"),
			slog.String("err", err.Error()),
		)
		return false, fmt.Errorf("favorites: add title: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("favorites: add title: %w", err)
	}
	return affected == 1, nil
}

func (s *postgresStore) List(ctx context.Context, userID int64) []string {
	titles := []string{}
	err := s.db.SelectContext(ctx, &titles,
		`SELECT title FROM favorites WHERE user_id = $1 ORDER BY position`,
		userID,
	)
	if err != nil {
		logger.LogEvent(ctx, logger.Store, slog.LevelError, "store.list",
			slog.String("status", "fail"),
			slog.String("backend", "postgres"),
			slog.String("err", err.Error()),
		)
		return nil
	}
	return titles
}
