// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		GRPCPort:         6565,
		MetricsPort:      8080,
		MetricsEndpoint:  "/metrics",
		LogLevel:         "info",
		LogFormat:        "json",
		StoreBackend:     StoreRedis,
		RedisHost:        "localhost",
		RedisPort:        "6379",
		RedisMaxRetries:  5,
		SQLitePath:       "step-tracker.db",
		ReplaySpeed:      1,
		HistoryRetention: 168 * time.Hour,
		PruneInterval:    time.Hour,
		OtelEnabled:      true,
		ZipkinEndpoint:   "http://localhost:9411/api/v2/spans",
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GRPCPort != 6565 || cfg.MetricsPort != 8080 {
		t.Errorf("ports = %d/%d, expected 6565/8080", cfg.GRPCPort, cfg.MetricsPort)
	}
	if cfg.StoreBackend != StoreRedis {
		t.Errorf("StoreBackend = %q, expected %q", cfg.StoreBackend, StoreRedis)
	}
	if cfg.HistoryRetention != 7*24*time.Hour {
		t.Errorf("HistoryRetention = %v, expected 168h", cfg.HistoryRetention)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/steps.db")
	t.Setenv("REPLAY_SPEED", "4.5")
	t.Setenv("REPLAY_LOOP", "true")
	t.Setenv("HISTORY_RETENTION", "72h")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.StoreBackend != StoreSQLite || cfg.SQLitePath != "/tmp/steps.db" {
		t.Errorf("store = %q at %q", cfg.StoreBackend, cfg.SQLitePath)
	}
	if cfg.ReplaySpeed != 4.5 || !cfg.ReplayLoop {
		t.Errorf("replay speed = %v loop = %v", cfg.ReplaySpeed, cfg.ReplayLoop)
	}
	if cfg.HistoryRetention != 72*time.Hour {
		t.Errorf("HistoryRetention = %v, expected 72h", cfg.HistoryRetention)
	}
	if cfg.RedisAddr() != "redis.internal:6380" {
		t.Errorf("RedisAddr() = %q", cfg.RedisAddr())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		errPart string
	}{
		{"valid", func(c *Config) {}, ""},
		{"memory backend", func(c *Config) { c.StoreBackend = StoreMemory }, ""},
		{"sqlite backend", func(c *Config) { c.StoreBackend = StoreSQLite }, ""},
		{"otel disabled without endpoint", func(c *Config) { c.OtelEnabled = false; c.ZipkinEndpoint = "" }, ""},
		{"grpc port", func(c *Config) { c.GRPCPort = 0 }, "GRPC_PORT"},
		{"metrics port", func(c *Config) { c.MetricsPort = 70000 }, "METRICS_PORT"},
		{"same ports", func(c *Config) { c.MetricsPort = c.GRPCPort }, "must differ"},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
		{"log level", func(c *Config) { c.LogLevel = "chatty" }, "LOG_LEVEL"},
		{"unknown backend", func(c *Config) { c.StoreBackend = "postgres" }, "STORE_BACKEND"},
		{"redis without host", func(c *Config) { c.RedisHost = "" }, "REDIS_HOST"},
		{"negative redis retries", func(c *Config) { c.RedisMaxRetries = -1 }, "REDIS_MAX_RETRIES"},
		{"sqlite without path", func(c *Config) { c.StoreBackend = StoreSQLite; c.SQLitePath = "" }, "SQLITE_PATH"},
		{"zero replay speed", func(c *Config) { c.ReplaySpeed = 0 }, "REPLAY_SPEED"},
		{"retention below two days", func(c *Config) { c.HistoryRetention = 24 * time.Hour }, "HISTORY_RETENTION"},
		{"zero prune interval", func(c *Config) { c.PruneInterval = 0 }, "PRUNE_INTERVAL"},
		{"otel without endpoint", func(c *Config) { c.ZipkinEndpoint = "" }, "OTEL_EXPORTER_ZIPKIN_ENDPOINT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errPart == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, expected nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.errPart)
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("Validate() error = %q, expected it to contain %q", err, tt.errPart)
			}
		})
	}
}
