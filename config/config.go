/* config.go
 * Contains the runtime configuration. Values come from the process environment, optionally seeded from a .env file.
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backends accepted by STORE_BACKEND
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	StoreBackend  string        `env:"STORE_BACKEND" envDefault:"memory"`
	RedisURL      string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisTTL      time.Duration `env:"REDIS_TTL" envDefault:"0s"`
	MongoURI      string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string        `env:"MONGO_DATABASE" envDefault:"livescore"`
	PostgresDSN   string        `env:"POSTGRES_DSN"`
	SQLitePath    string        `env:"SQLITE_PATH" envDefault:"livescore.db"`

	HTTPAddr    string   `env:"HTTP_ADDR" envDefault:":8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`

	DiscordToken    string        `env:"DISCORD_TOKEN"`
	CommandInterval time.Duration `env:"COMMAND_INTERVAL" envDefault:"250ms"`
	CommandBurst    int           `env:"COMMAND_BURST" envDefault:"3"`

	PublishUpdates bool   `env:"PUBLISH_UPDATES" envDefault:"false"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the optional dotenv files then parses the environment. A missing .env file is not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the selected backend has the settings it needs
func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis backend")
		}
	case BackendMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return fmt.Errorf("MONGO_URI and MONGO_DATABASE are required for the mongo backend")
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for the postgres backend")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.PublishUpdates && c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when PUBLISH_UPDATES is enabled")
	}
	if c.CommandInterval <= 0 || c.CommandBurst <= 0 {
		return fmt.Errorf("COMMAND_INTERVAL and COMMAND_BURST must be positive")
	}
	return nil
}
