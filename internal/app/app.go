// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/AccelByte/extend-step-tracker/internal/bootstrap"
	"github.com/AccelByte/extend-step-tracker/internal/config"
	"github.com/AccelByte/extend-step-tracker/internal/server"
	"github.com/AccelByte/extend-step-tracker/pkg/motion"
	"github.com/AccelByte/extend-step-tracker/pkg/presenter"
	"github.com/AccelByte/extend-step-tracker/pkg/sensor"
	"github.com/AccelByte/extend-step-tracker/pkg/sensor/replay"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	grpcServer        *server.GRPCServer
	metricsServer     *server.MetricsServer
	redisClient       *redis.Client
	db                *sql.DB
	shutdownTelemetry func(context.Context) error

	stores     *bootstrap.Stores
	dispatcher *sensor.Dispatcher
	platform   *replay.Platform
	model      *motion.Model

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates and initializes a new application instance.
//
// ============================================================
// DEVELOPER: Application initialization order
// ============================================================
// Components are initialized in dependency order:
// 1. Storage backend (settings + step history)
// 2. Sensor platform (motion trace replay)
// 3. Presenters and the motion model on the update queue
// 4. Servers (gRPC health, metrics)
// 5. Telemetry (OpenTelemetry tracing)
// ============================================================
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	// ============================================================
	// Step 1: Initialize storage backend
	// ============================================================
	if err := app.initStores(ctx); err != nil {
		return nil, fmt.Errorf("failed to init %s stores: %w", cfg.StoreBackend, err)
	}

	// ============================================================
	// Step 2: Initialize sensor platform
	// ============================================================
	platform, err := bootstrap.InitPlatform(bootstrap.PlatformOptions{
		TracePath: cfg.TracePath,
		Speed:     cfg.ReplaySpeed,
		Loop:      cfg.ReplayLoop,
		Retention: cfg.HistoryRetention,
	}, app.stores.History)
	if err != nil {
		app.closeStores()
		return nil, err
	}
	app.platform = platform

	// ============================================================
	// Step 3: Presenters and motion model
	// ============================================================
	metrics := presenter.NewMetrics()
	var console io.Writer
	if cfg.ConsoleEnabled {
		console = os.Stdout
	}
	observer := bootstrap.InitPresenters(metrics, console)

	app.dispatcher = sensor.NewDispatcher()
	app.model = bootstrap.InitModel(app.platform, app.dispatcher, app.stores.Settings, observer)

	// ============================================================
	// Step 4: Setup servers
	// ============================================================
	app.grpcServer = server.NewGRPCServer(cfg.GRPCPort, app.stores.Health)
	if err := app.grpcServer.Setup(); err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to setup gRPC server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, cfg.MetricsEndpoint, metrics.Collectors()...)
	if err := app.metricsServer.Setup(); err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	// ============================================================
	// Step 5: Setup telemetry
	// ============================================================
	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.OtelServiceName, cfg.Environment, 0, cfg.ZipkinEndpoint)
		if err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// Model returns the motion model.
func (a *App) Model() *motion.Model {
	return a.model
}

// OpenStores opens only the storage backend selected by cfg, for one-shot
// commands. The returned function closes it.
func OpenStores(ctx context.Context, cfg *config.Config) (*bootstrap.Stores, func(), error) {
	a := &App{cfg: cfg}
	if err := a.initStores(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to init %s stores: %w", cfg.StoreBackend, err)
	}
	return a.stores, a.closeStores, nil
}

func (a *App) initStores(ctx context.Context) error {
	switch a.cfg.StoreBackend {
	case config.StoreRedis:
		if err := a.initRedis(ctx); err != nil {
			return err
		}
		a.stores = bootstrap.InitRedisStores(a.redisClient, a.cfg.DisableGoalNotify)
	case config.StoreSQLite:
		if err := a.initSQLite(ctx); err != nil {
			return err
		}
		stores, err := bootstrap.InitSQLiteStores(ctx, a.db)
		if err != nil {
			a.closeStores()
			return err
		}
		a.stores = stores
	default:
		a.stores = bootstrap.InitMemoryStores()
	}
	return nil
}

// initRedis initializes the Redis client.
func (a *App) initRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         a.cfg.RedisAddr(),
		Password:     a.cfg.RedisPassword,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(a.cfg.RedisRetryDelayMs) * time.Millisecond
	maxRetries := backoff.WithContext(backoff.WithMaxRetries(b, uint64(a.cfg.RedisMaxRetries)), ctx)

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		maxRetries,
	)

	if err != nil {
		_ = client.Close()
		return err
	}

	a.redisClient = client
	logrus.Infof("Redis client initialized (%s)", a.cfg.RedisAddr())
	return nil
}

// initSQLite opens the SQLite database file.
func (a *App) initSQLite(ctx context.Context) error {
	dsn := a.cfg.SQLitePath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping sqlite db: %w", err)
	}

	a.db = db
	logrus.Infof("SQLite database opened (%s)", a.cfg.SQLitePath)
	return nil
}

func (a *App) closeStores() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logrus.Errorf("Redis close error: %v", err)
		}
		a.redisClient = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logrus.Errorf("SQLite close error: %v", err)
		}
		a.db = nil
	}
}

// cleanup releases what New acquired when a later step fails.
func (a *App) cleanup() {
	if a.dispatcher != nil {
		a.dispatcher.Close()
	}
	a.closeStores()
}
