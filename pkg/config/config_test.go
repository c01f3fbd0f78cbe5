package config

import (
	"testing"
	"time"

	"github.com/muhammadchandra19/hodlinfo/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.App.Port)
	assert.Equal(t, ":3000", cfg.App.Addr())
	assert.Equal(t, "public", cfg.App.PublicDir)
	assert.Equal(t, "postgres", cfg.PostgreSQL.Dialect)
	assert.Equal(t, "https://api.wazirx.com", cfg.Upstream.BaseURL)
	assert.Equal(t, "/api/v2/tickers", cfg.Upstream.TickersPath)
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, redis.Standalone, cfg.Redis.Mode)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
}

func TestParse_Environment(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_NAME", "tickers")
	t.Setenv("DB_USER", "hodl")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_DIALECT", "postgres")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_ADDRS", "r1:6379,r2:6379")
	t.Setenv("REDIS_MODE", "cluster")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "tickers", cfg.PostgreSQL.Database)
	assert.Equal(t, "hodl", cfg.PostgreSQL.Username)
	assert.Equal(t, "secret", cfg.PostgreSQL.Password)
	assert.Equal(t, "db", cfg.PostgreSQL.Host)
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, redis.Cluster, cfg.Redis.Mode)
	assert.Equal(t, []string{"r1:6379", "r2:6379"}, cfg.Redis.Addrs)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unsupported dialect",
			env:     map[string]string{"DB_DIALECT": "mysql"},
			wantErr: `unsupported database dialect "mysql"`,
		},
		{
			name:    "bad port",
			env:     map[string]string{"APP_PORT": "0"},
			wantErr: "invalid app port 0",
		},
		{
			name:    "relative upstream url",
			env:     map[string]string{"UPSTREAM_BASE_URL": "api.wazirx.com"},
			wantErr: `invalid upstream base url "api.wazirx.com"`,
		},
		{
			name:    "zero upstream timeout",
			env:     map[string]string{"UPSTREAM_TIMEOUT": "0s"},
			wantErr: "upstream timeout must be positive",
		},
		{
			name:    "redis lock without ttl",
			env:     map[string]string{"REDIS_ENABLED": "true", "SYNC_LOCK_TTL": "0s"},
			wantErr: "sync lock ttl must be positive",
		},
		{
			name:    "unparsable duration",
			env:     map[string]string{"SYNC_LOCK_TTL": "soon"},
			wantErr: "failed to parse config",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Parse()
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
