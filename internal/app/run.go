// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// shutdownTimeout bounds the graceful shutdown of servers and telemetry.
const shutdownTimeout = 10 * time.Second

// Run starts the application and blocks until a shutdown signal is received
// or ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logrus.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.Shutdown(shutdownCtx)
}

// Start starts the servers, the motion model, the sensor replay and the
// background workers without blocking.
func (a *App) Start(ctx context.Context) error {
	if err := a.grpcServer.Start(ctx); err != nil {
		return err
	}
	if err := a.metricsServer.Start(ctx); err != nil {
		return err
	}

	ctx, a.cancel = context.WithCancel(ctx)

	// Subscriptions must be registered before the replay emits samples.
	a.model.Start(ctx)
	if err := a.dispatcher.Sync(ctx, func() {}); err != nil {
		return err
	}

	if a.stores.Watcher != nil {
		a.goBackground(func() {
			if err := a.model.FollowGoalChanges(ctx, a.stores.Watcher); err != nil {
				logrus.Errorf("stopped following daily goal changes: %v", err)
			}
		})
	}

	a.goBackground(func() {
		if err := a.platform.Run(ctx); err != nil {
			logrus.Errorf("motion replay failed: %v", err)
			return
		}
		if ctx.Err() == nil {
			logrus.Info("motion replay finished")
			a.model.Refresh(ctx)
		}
	})

	a.goBackground(func() {
		a.pruneHistory(ctx)
	})

	logrus.Info("application started successfully")
	return nil
}

// Shutdown gracefully shuts down all application components.
//
// ============================================================
// DEVELOPER: Shutdown order is critical
// ============================================================
// Components are shut down in reverse dependency order:
// 1. Stop accepting new requests (gRPC + metrics servers)
// 2. Stop the model, the replay and the update queue
// 3. Close external connections (Redis, SQLite)
// 4. Flush telemetry data (OpenTelemetry)
//
// IMPORTANT: Shutdown errors are logged but don't stop the
// shutdown sequence. Each component gets a chance to clean up.
// ============================================================
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down application...")

	// ============================================================
	// Step 1: Shutdown servers (stop accepting new requests)
	// ============================================================
	if err := a.grpcServer.Shutdown(ctx); err != nil {
		logrus.Errorf("gRPC server shutdown error: %v", err)
	}
	if err := a.metricsServer.Shutdown(ctx); err != nil {
		logrus.Errorf("metrics server shutdown error: %v", err)
	}

	// ============================================================
	// Step 2: Stop the motion model and background workers
	// ============================================================
	a.model.Stop()
	if a.cancel != nil {
		a.cancel()
	}
	a.wg.Wait()
	a.dispatcher.Close()

	// ============================================================
	// Step 3: Close external connections
	// ============================================================
	a.closeStores()

	// ============================================================
	// Step 4: Flush telemetry data
	// ============================================================
	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
	}

	logrus.Info("application shutdown complete")
	return nil
}

func (a *App) goBackground(fn func()) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		fn()
	}()
}

// pruneHistory drops step samples older than the retention period.
func (a *App) pruneHistory(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.PruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			before := time.Now().Add(-a.cfg.HistoryRetention)
			removed, err := a.stores.History.Prune(ctx, before)
			if err != nil {
				logrus.Warnf("failed to prune step history: %v", err)
				continue
			}
			if removed > 0 {
				logrus.Infof("pruned %d step samples older than %s", removed, before.Format(time.RFC3339))
			}
		}
	}
}
