package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/hodlinfo/pkg/postgresql"
	"github.com/muhammadchandra19/hodlinfo/pkg/redis"
)

// Config represents the application configuration.
type Config struct {
	App        AppConfig         `envPrefix:"APP_"`
	PostgreSQL postgresql.Config `envPrefix:"DB_"`
	Upstream   UpstreamConfig    `envPrefix:"UPSTREAM_"`
	Sync       SyncConfig        `envPrefix:"SYNC_"`
	Redis      RedisConfig       `envPrefix:"REDIS_"`
	Kafka      KafkaConfig       `envPrefix:"KAFKA_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name            string        `env:"NAME" envDefault:"hodlinfo"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	Port            int           `env:"PORT" envDefault:"3000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	PublicDir       string        `env:"PUBLIC_DIR" envDefault:"public"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// Addr is the listen address for the HTTP server.
func (a AppConfig) Addr() string {
	return fmt.Sprintf(":%d", a.Port)
}

// UpstreamConfig represents the upstream ticker API configuration.
type UpstreamConfig struct {
	BaseURL     string        `env:"BASE_URL" envDefault:"https://api.wazirx.com"`
	TickersPath string        `env:"TICKERS_PATH" envDefault:"/api/v2/tickers"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"10s"`
	UserAgent   string        `env:"USER_AGENT" envDefault:"hodlinfo/1.0"`
}

// SyncConfig represents the sync guard configuration.
type SyncConfig struct {
	LockKey string        `env:"LOCK_KEY" envDefault:"sync:lock"`
	LockTTL time.Duration `env:"LOCK_TTL" envDefault:"30s"`
}

// RedisConfig represents the optional distributed sync lock backend.
type RedisConfig struct {
	Enabled bool `env:"ENABLED" envDefault:"false"`
	redis.Config
}

// KafkaConfig represents the optional sync event publisher.
type KafkaConfig struct {
	Enabled      bool          `env:"ENABLED" envDefault:"false"`
	Brokers      []string      `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic        string        `env:"TOPIC" envDefault:"tickers.synced"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"5s"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid app port %d", c.App.Port)
	}

	if err := c.PostgreSQL.Validate(); err != nil {
		return err
	}

	u, err := url.Parse(c.Upstream.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid upstream base url %q", c.Upstream.BaseURL)
	}

	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive")
	}

	if c.Redis.Enabled && c.Sync.LockTTL <= 0 {
		return fmt.Errorf("sync lock ttl must be positive when redis is enabled")
	}

	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		return fmt.Errorf("kafka brokers and topic are required when kafka is enabled")
	}

	return nil
}
