package config

import (
	"fmt"

	pkgconfig "github.com/fashionkart/storefront/pkg/config"
)

// Storage backend names.
const (
	StorageFile  = "file"
	StorageRedis = "redis"
)

// Config holds all configuration for the storefront process.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Local HTTP surface
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8090"`

	// Platform API
	APIBaseURL string `env:"STOREFRONT_API_BASE_URL" envDefault:"http://localhost:8080/api"`

	// Durable storage: "file" (default, one JSON file per collection) or
	// "redis" (shared state area).
	StorageBackend string `env:"STOREFRONT_STORAGE" envDefault:"file"`
	DataDir        string `env:"STOREFRONT_DATA_DIR" envDefault:"./data"`
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass      string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`

	// Notification queue capacity.
	NoticeLimit int `env:"STOREFRONT_NOTICE_LIMIT" envDefault:"100"`

	// Catalog response caching, seconds.
	CatalogCacheMaxAge int `env:"STOREFRONT_CATALOG_CACHE_SECONDS" envDefault:"60"`

	// CORS and pprof access
	CORSOrigins []string `env:"STOREFRONT_CORS_ORIGINS" envDefault:"*" envSeparator:","`
	PprofCIDRs  []string `env:"STOREFRONT_PPROF_CIDRS" envDefault:"127.0.0.0/8" envSeparator:","`

	// Tracing
	TracingEnabled bool   `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.StorageBackend != StorageFile && c.StorageBackend != StorageRedis {
		return fmt.Errorf("invalid storage backend: %q", c.StorageBackend)
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}
	return nil
}
