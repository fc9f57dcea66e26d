package cli

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/courtside/courtside/internal/storage"
	"github.com/courtside/courtside/internal/storage/file"
	"github.com/courtside/courtside/internal/storage/redis"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	StateDir  string
	RedisURL  string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("COURTSIDE_SERVER", "http://localhost:8000/api/v1"),
		StateDir:  getEnvOrDefault("COURTSIDE_STATE_DIR", defaultStateDir()),
		RedisURL:  os.Getenv("COURTSIDE_REDIS_URL"),
		Output:    "text",
		Verbose:   false,
	}
}

// NewStore builds the session state backend: redis when a URL is configured,
// a per-user state directory otherwise.
func (c *Config) NewStore(logger *slog.Logger) (storage.Store, error) {
	if c.RedisURL != "" {
		cfg := redis.DefaultConfig()
		cfg.URL = c.RedisURL
		return redis.New(cfg, logger)
	}
	return file.New(c.StateDir, logger), nil
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".courtside"
	}
	return filepath.Join(home, ".courtside")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
