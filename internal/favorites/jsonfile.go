package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/m3rciful/moviebot/internal/logger"
)

// jsonStore keeps the whole mapping in a single JSON file, one object
// keyed by string user id with ordered title arrays as values.
//
// The mutex serializes read-modify-write cycles within this process.
// Writers in other processes can still lose updates; this store targets
// a single bot process.
type jsonStore struct {
	mu   sync.Mutex
	path string
}

// NewJSONStore creates a file-backed store, seeding an empty file when
// none exists yet so the first Load finds valid JSON.
func NewJSONStore(path string) (Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("favorites: file path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("favorites: create store dir: %w", err)
		}
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			return nil, fmt.Errorf("favorites: seed store file: %w", err)
		}
	}
	return &jsonStore{path: path}, nil
}

func (s *jsonStore) Load(ctx context.Context) map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *jsonStore) loadLocked(ctx context.Context) map[string][]string {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.LogEvent(ctx, logger.Store, slog.LevelError, "store.load",
				slog.String("status", "fail"),
				slog.String("backend", "json"),
				slog.String("err", err.Error()),
			)
		}
		return map[string][]string{}
	}

	all := map[string][]string{}
	if err := json.Unmarshal(raw, &all); err != nil {
		logger.LogEvent(ctx, logger.Store, slog.LevelError, "store.load",
			slog.String("status", "fail"),
			slog.String("backend", "json"),
			slog.String("err", err.Error()),
		)
		return map[string][]string{}
	}
	if all == nil {
		all = map[string][]string{}
	}
	return all
}

func (s *jsonStore) Save(ctx context.Context, all map[string][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, all)
}

func (s *jsonStore) saveLocked(ctx context.Context, all map[string][]string) error {
	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("favorites: encode store: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		logger.LogEvent(ctx, logger.Store, slog.LevelError, "store.save",
			slog.String("status", "fail"),
			slog.String("backend", "json"),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("favorites: write store: %w", err)
	}
	return nil
}

func (s *jsonStore) Add(ctx context.Context, userID int64, title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.loadLocked(ctx)
	key := strconv.FormatInt(userID, 10)
	for _, existing := range all[key] {
		if strings.EqualFold(existing, title) {
			return false, nil
		}
	}
	all[key] = append(all[key], title)
	if err := s.saveLocked(ctx, all); err != nil {
		return false, err
	}
	return true, nil
}

func (s *jsonStore) List(ctx context.Context, userID int64) []string {
	all := s.Load(ctx)
	titles := all[strconv.FormatInt(userID, 10)]
	out := make([]string, len(titles))
	copy(out, titles)
	return out
}
