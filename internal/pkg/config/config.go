package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret                string `env:"JWT_SECRET, required"`
	JWTAlgorithm             string `env:"JWT_ALGORITHM, required"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES, default=30"`
	BcryptCost               int    `env:"BCRYPT_COST, default=10"`
	AllowRoleSelfAssign      bool   `env:"ALLOW_ROLE_SELF_ASSIGN, default=false"`
}

// TokenTTL is the configured access token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.AccessTokenExpireMinutes) * time.Minute
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, required"`
	Database string `env:"MONGO_DB,  default=todosapp"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
// A missing signing secret, algorithm or database URI is an error.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Auth.AccessTokenExpireMinutes <= 0 {
		return nil, fmt.Errorf("config: ACCESS_TOKEN_EXPIRE_MINUTES must be positive, got %d", cfg.Auth.AccessTokenExpireMinutes)
	}
	return &cfg, nil
}

// SeedConfig drives cmd/seed. The admin password has no default.
type SeedConfig struct {
	LogLevel      string `env:"LOG_LEVEL, default=info"`
	BcryptCost    int    `env:"BCRYPT_COST, default=10"`
	AdminUsername string `env:"SEED_ADMIN_USERNAME, default=admin"`
	AdminEmail    string `env:"SEED_ADMIN_EMAIL, default=admin@example.com"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD, required"`

	Mongo MongoConfig
}

// LoadSeed reads the seeding configuration from the environment.
func LoadSeed(ctx context.Context) (*SeedConfig, error) {
	return loadSeed(ctx, envconfig.OsLookuper())
}

func loadSeed(ctx context.Context, lookuper envconfig.Lookuper) (*SeedConfig, error) {
	var cfg SeedConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("seed config: %w", err)
	}
	return &cfg, nil
}
