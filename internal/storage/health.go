package storage

import (
	"context"
	stdsql "database/sql"
)

// HealthStatus reports the result of a database liveness check.
type HealthStatus struct {
	Connected      bool   `json:"connected"`
	Error          string `json:"error,omitempty"`
	OpenConns      int    `json:"open_connections"`
	InUseConns     int    `json:"in_use_connections"`
	IdleConns      int    `json:"idle_connections"`
}

// Health pings db and reports pool statistics.
func Health(ctx context.Context, db *stdsql.DB) (*HealthStatus, error) {
	if err := db.PingContext(ctx); err != nil {
		return &HealthStatus{Connected: false, Error: err.Error()}, err
	}
	stats := db.Stats()
	return &HealthStatus{
		Connected:  true,
		OpenConns:  stats.OpenConnections,
		InUseConns: stats.InUse,
		IdleConns:  stats.Idle,
	}, nil
}
