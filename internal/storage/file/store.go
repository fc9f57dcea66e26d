package file

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/courtside/courtside/internal/storage"
)

// Store persists each key as a JSON file under a per-user state directory.
// All failures degrade: Set/Remove/Clear become no-ops, Get reports absence.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates a file-backed store rooted at dir.
func New(dir string, logger *slog.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logger.With(slog.String("component", "storage")),
	}
}

var _ storage.Store = (*Store)(nil)

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) Set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("could not encode state value", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		s.logger.Warn("could not create state dir", slog.String("error", err.Error()))
		return
	}
	if err := os.WriteFile(s.path(key), data, 0o600); err != nil {
		s.logger.Warn("could not persist state value", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("could not read state value", slog.String("key", key), slog.String("error", err.Error()))
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warn("corrupt state value", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (s *Store) Remove(ctx context.Context, key string) {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("could not remove state value", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (s *Store) Clear(ctx context.Context) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			s.logger.Warn("could not clear state value", slog.String("file", e.Name()), slog.String("error", err.Error()))
		}
	}
}
