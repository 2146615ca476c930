package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all runtime settings, sourced from environment variables.
// JWT_SECRET has no default and is marked required: the process must refuse
// to start without a signing secret rather than run with an empty one.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret      string        `env:"JWT_SECRET, required"`
	TokenTTL       time.Duration `env:"TOKEN_TTL,        default=60s"`
	BcryptCost     int           `env:"BCRYPT_COST,      default=10"`
	LoginRateLimit int           `env:"LOGIN_RATE_LIMIT, default=10"`
	AuditWorkers   int           `env:"AUDIT_WORKERS,    default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_management"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}
