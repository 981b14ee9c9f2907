package config

import (
	"fmt"

	pkgconfig "github.com/utafrali/StorefrontGo/pkg/config"
)

// Storage backend names accepted by StorageBackend.
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds all configuration for the storefront state service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8010"`

	// Storage backend: "redis" for persistence across restarts, "memory" for
	// standalone/dev mode.
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"redis"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Persisted state TTL in hours (default: 30 days). Zero disables expiry.
	StateTTL int `env:"STATE_TTL_HOURS" envDefault:"720"`

	// Kafka; empty broker list disables the notification sink.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Upstream catalog API; empty disables the catalog-backed routes.
	CatalogBaseURL string `env:"CATALOG_BASE_URL" envDefault:""`

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
	if c.StorageBackend != BackendRedis && c.StorageBackend != BackendMemory {
		return fmt.Errorf("invalid storage backend: %q", c.StorageBackend)
	}
	if c.StateTTL < 0 {
		return fmt.Errorf("state TTL must not be negative: %d", c.StateTTL)
	}
	return nil
}
