package postgresql

import (
	"context"
	"fmt"
	"time"
)

const (
	// StatusHealthy is reported when the database answers a ping and a query.
	StatusHealthy = "healthy"
	// StatusUnhealthy is reported otherwise.
	StatusUnhealthy = "unhealthy"
)

// HealthCheck represents database health information
type HealthCheck struct {
	Status       string        `json:"status"`
	ResponseTime time.Duration `json:"response_time"`
	ActiveConns  int32         `json:"active_connections"`
	IdleConns    int32         `json:"idle_connections"`
	MaxConns     int32         `json:"max_connections"`
	DatabaseName string        `json:"database_name"`
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	Error        string        `json:"error,omitempty"`
	Version      string        `json:"version,omitempty"`
}

// IsHealthy reports whether the check passed.
func (h *HealthCheck) IsHealthy() bool {
	return h != nil && h.Status == StatusHealthy
}

// CheckHealth pings the pool, runs SELECT version() and reports pool statistics.
func (c *Client) CheckHealth(ctx context.Context) *HealthCheck {
	start := time.Now()

	health := &HealthCheck{
		DatabaseName: c.DatabaseName(),
		Host:         c.Host(),
		Port:         c.Port(),
	}

	stats := c.Stats()
	health.ActiveConns = stats.AcquiredConns()
	health.IdleConns = stats.IdleConns()
	health.MaxConns = stats.MaxConns()

	if err := c.Ping(ctx); err != nil {
		health.Status = StatusUnhealthy
		health.Error = fmt.Sprintf("ping failed: %v", err)
		health.ResponseTime = time.Since(start)
		return health
	}

	var version string
	if err := c.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
		health.Status = StatusUnhealthy
		health.Error = fmt.Sprintf("version query failed: %v", err)
		health.ResponseTime = time.Since(start)
		return health
	}

	health.Version = version
	health.Status = StatusHealthy
	health.ResponseTime = time.Since(start)

	return health
}
