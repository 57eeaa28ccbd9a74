package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3500"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	LogFile  string `env:"LOG_FILE"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	Audit AuditConfig
}

type AuthConfig struct {
	JWTSecret        string        `env:"JWT_SECRET, required"`
	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL,   default=15m"`
	HashCost         int           `env:"HASH_COST,          default=10"`
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	LoginWindow      time.Duration `env:"LOGIN_WINDOW,       default=1m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=technotes"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
