// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AccelByte/extend-step-tracker/pkg/history"
	"github.com/AccelByte/extend-step-tracker/pkg/settings"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Stores groups the persistence adapters of one storage backend.
type Stores struct {
	Settings settings.Store
	// Watcher is nil when the backend cannot notify about changes.
	Watcher settings.Watcher
	History history.Store
	Health  *settings.HealthChecker
}

// InitRedisStores creates the Redis-backed stores.
func InitRedisStores(client *redis.Client, disableNotify bool) *Stores {
	settingsStore := settings.NewRedisStore(client, settings.RedisStoreConfig{DisableNotify: disableNotify})

	logrus.Info("initialized redis settings and history stores")
	return &Stores{
		Settings: settingsStore,
		Watcher:  settingsStore,
		History:  history.NewRedisStore(client, history.RedisStoreConfig{}),
		Health:   settings.NewRedisHealthChecker(client),
	}
}

// InitSQLiteStores creates the SQLite-backed stores, creating tables as needed.
func InitSQLiteStores(ctx context.Context, db *sql.DB) (*Stores, error) {
	settingsStore, err := settings.NewSQLiteStore(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to init sqlite settings store: %w", err)
	}

	historyStore, err := history.NewSQLiteStore(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to init sqlite history store: %w", err)
	}

	logrus.Info("initialized sqlite settings and history stores (goal changes from other processes are not followed)")
	return &Stores{
		Settings: settingsStore,
		History:  historyStore,
		Health:   settings.NewSQLHealthChecker(db),
	}, nil
}

// InitMemoryStores creates process-local stores.
func InitMemoryStores() *Stores {
	logrus.Warn("using in-memory stores, goal and step history are lost on exit")
	return &Stores{
		Settings: settings.NewMemoryStore(),
		History:  history.NewMemoryStore(),
		Health:   settings.NewStaticHealthChecker(),
	}
}
