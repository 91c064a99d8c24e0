package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/noteapp/internal/logging"
)

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// Config holds runtime settings for the notes CLI.
//
// Fields:
//   - APIBaseURL: base address of the notes API.
//   - RequestTimeout: per-request bound; zero leaves requests unbounded.
//   - StorageBackend: where the session is kept, "sqlite" or "redis".
//   - DatabasePath: SQLite file for the sqlite backend.
//   - Redis*: connection settings for the redis backend.
//   - SessionKeyFile: key used to seal stored values; empty disables sealing.
//   - LogBackend, LogLevel: see package logging.
type Config struct {
	APIBaseURL     string        `env:"API_URL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	StorageBackend string `env:"STORAGE_BACKEND"`
	DatabasePath   string `env:"DATABASE_PATH"`
	RedisAddr      string `env:"REDIS_ADDR"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB"`
	RedisPrefix    string `env:"REDIS_PREFIX"`
	SessionKeyFile string `env:"SESSION_KEY_FILE"`

	LogBackend string `env:"LOG_BACKEND"`
	LogLevel   string `env:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:4000"
	c.RequestTimeout = 0
	c.StorageBackend = StorageSQLite
	c.DatabasePath = "noteapp.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPassword = ""
	c.RedisDB = 0
	c.RedisPrefix = "noteapp:"
	c.SessionKeyFile = "session.key"
	c.LogBackend = logging.BackendSlog
	c.LogLevel = "warn"
}

// Validate reports settings the client cannot start with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api url %q", c.APIBaseURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative, got %s", c.RequestTimeout)
	}
	switch c.StorageBackend {
	case StorageSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("database path is required for the sqlite backend")
		}
	case StorageRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis address is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment (including a dotenv file) and
// command-line flags. Later sources take precedence over earlier ones.
// Malformed input panics, as configuration errors are fatal at startup.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
