package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/courtside/courtside/internal/storage"
)

// Config holds settings for the redis-backed store.
type Config struct {
	URL       string
	KeyPrefix string
	// SessionTTL bounds how long persisted session state lives without a
	// refresh. Zero means no expiry.
	SessionTTL time.Duration
}

// DefaultConfig returns the default redis store configuration.
func DefaultConfig() Config {
	return Config{
		KeyPrefix:  "courtside:state:",
		SessionTTL: 24 * time.Hour,
	}
}

// Store keeps session state in redis, for setups where the same session
// should be visible from more than one host. Same best-effort contract as the
// other backends: redis being down never breaks the in-memory session.
type Store struct {
	client *redis.Client
	cfg    Config
	logger *slog.Logger
}

// New connects to redis and verifies the connection.
func New(cfg Config, logger *slog.Logger) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, cfg, logger), nil
}

// NewWithClient creates a redis store with an existing client (for testing).
func NewWithClient(client *redis.Client, cfg Config, logger *slog.Logger) *Store {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	return &Store{
		client: client,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "storage")),
	}
}

// Close closes the redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

var _ storage.Store = (*Store)(nil)

func (s *Store) key(key string) string {
	return s.cfg.KeyPrefix + key
}

func (s *Store) Set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("could not encode state value", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := s.client.Set(ctx, s.key(key), data, s.cfg.SessionTTL).Err(); err != nil {
		s.logger.Warn("could not persist state value", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
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
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		s.logger.Warn("could not remove state value", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (s *Store) Clear(ctx context.Context) {
	keys, err := s.client.Keys(ctx, s.cfg.KeyPrefix+"*").Result()
	if err != nil {
		s.logger.Warn("could not list state keys", slog.String("error", err.Error()))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("could not clear state", slog.String("error", err.Error()))
	}
}
