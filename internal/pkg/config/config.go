package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	PublicDir       string        `env:"PUBLIC_DIR,       default=public"`
	Storage         string        `env:"STORAGE,          default=mongo"`
	BodyLimit       string        `env:"BODY_LIMIT,       default=1M"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Auth   AuthConfig
	Orders OrdersConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

type AuthConfig struct {
	BcryptCost int `env:"BCRYPT_COST, default=10"`
}

type OrdersConfig struct {
	// VerifyProducts replaces submitted product snapshots with catalogue data.
	VerifyProducts bool `env:"ORDER_VERIFY_PRODUCTS, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=WebShopDb"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,          default=0"`
	CacheTTL time.Duration `env:"PRODUCT_CACHE_TTL, default=30s"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	switch cfg.Storage {
	case StorageMongo, StorageMemory:
	default:
		return nil, fmt.Errorf("config: STORAGE must be %q or %q, got %q", StorageMongo, StorageMemory, cfg.Storage)
	}
	return &cfg, nil
}
