// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package settings

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker reports whether the settings backend is reachable.
type HealthChecker struct {
	backend string
	ping    func(ctx context.Context) error
}

// NewRedisHealthChecker checks a Redis backend with PING.
func NewRedisHealthChecker(client *redis.Client) *HealthChecker {
	return &HealthChecker{
		backend: "redis",
		ping: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	}
}

// NewSQLHealthChecker checks a database/sql backend.
func NewSQLHealthChecker(db *sql.DB) *HealthChecker {
	return &HealthChecker{
		backend: "sqlite",
		ping:    db.PingContext,
	}
}

// NewStaticHealthChecker is always healthy; used for in-memory backends.
func NewStaticHealthChecker() *HealthChecker {
	return &HealthChecker{
		backend: "memory",
		ping:    func(context.Context) error { return nil },
	}
}

// Check performs a backend health check
func (h *HealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		logrus.Errorf("%s health check failed: %v", h.backend, err)
		return err
	}

	logrus.Debugf("%s health check passed", h.backend)
	return nil
}

// IsHealthy returns true if the backend is accessible
func (h *HealthChecker) IsHealthy(ctx context.Context) bool {
	return h.Check(ctx) == nil
}
