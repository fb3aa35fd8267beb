// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Store backends.
const (
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
type Config struct {
	// ============================================================
	// Server configuration
	// ============================================================
	GRPCPort        int    `env:"GRPC_PORT" envDefault:"6565"`
	MetricsPort     int    `env:"METRICS_PORT" envDefault:"8080"`
	MetricsEndpoint string `env:"METRICS_ENDPOINT" envDefault:"/metrics"`
	Environment     string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName     string `env:"SERVICE_NAME" envDefault:"StepTracker"`

	// ============================================================
	// Logging configuration
	// ============================================================
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// ============================================================
	// Storage configuration
	// ============================================================
	StoreBackend      string `env:"STORE_BACKEND" envDefault:"redis"`
	SQLitePath        string `env:"SQLITE_PATH" envDefault:"step-tracker.db"`
	DisableGoalNotify bool   `env:"DISABLE_GOAL_NOTIFY" envDefault:"false"`
	RedisHost         string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int    `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`

	// ============================================================
	// Sensor replay configuration
	// ============================================================
	TracePath        string        `env:"TRACE_PATH" envDefault:"config/trace.yaml"`
	ReplaySpeed      float64       `env:"REPLAY_SPEED" envDefault:"1"`
	ReplayLoop       bool          `env:"REPLAY_LOOP" envDefault:"false"`
	HistoryRetention time.Duration `env:"HISTORY_RETENTION" envDefault:"168h"`
	PruneInterval    time.Duration `env:"PRUNE_INTERVAL" envDefault:"1h"`

	// ============================================================
	// Presentation configuration
	// ============================================================
	ConsoleEnabled bool `env:"CONSOLE_ENABLED" envDefault:"false"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	OtelEnabled     bool   `env:"OTEL_ENABLED" envDefault:"true"`
	OtelServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"step-tracker"`
	ZipkinEndpoint  string `env:"OTEL_EXPORTER_ZIPKIN_ENDPOINT" envDefault:"http://localhost:9411/api/v2/spans"`
}

// RedisAddr returns the host:port address of the Redis server.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
