// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// In production (Docker/K8s), environment variables are injected directly
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate performs custom validation on the configuration.
func (c *Config) Validate() error {
	if c.GRPCPort < 1 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid GRPC_PORT: %d (must be 1-65535)", c.GRPCPort)
	}

	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid METRICS_PORT: %d (must be 1-65535)", c.MetricsPort)
	}

	if c.GRPCPort == c.MetricsPort {
		return fmt.Errorf("GRPC_PORT and METRICS_PORT must differ (both %d)", c.GRPCPort)
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid LOG_FORMAT: %q (must be json or text)", c.LogFormat)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	switch c.StoreBackend {
	case StoreRedis:
		if c.RedisHost == "" {
			return fmt.Errorf("REDIS_HOST is required for the redis store backend")
		}
		if c.RedisMaxRetries < 0 {
			return fmt.Errorf("invalid REDIS_MAX_RETRIES: %d (must be non-negative)", c.RedisMaxRetries)
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite store backend")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("invalid STORE_BACKEND: %q (must be redis, sqlite or memory)", c.StoreBackend)
	}

	if c.ReplaySpeed <= 0 {
		return fmt.Errorf("invalid REPLAY_SPEED: %v (must be positive)", c.ReplaySpeed)
	}

	if c.HistoryRetention < 48*time.Hour {
		return fmt.Errorf("invalid HISTORY_RETENTION: %v (must cover at least two days)", c.HistoryRetention)
	}

	if c.PruneInterval <= 0 {
		return fmt.Errorf("invalid PRUNE_INTERVAL: %v (must be positive)", c.PruneInterval)
	}

	if c.OtelEnabled && c.ZipkinEndpoint == "" {
		return fmt.Errorf("OTEL_EXPORTER_ZIPKIN_ENDPOINT is required when OTEL_ENABLED is true")
	}

	return nil
}
