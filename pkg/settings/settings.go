// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package settings

import (
	"context"
)

// KeyDailyGoal is the key the daily step goal is persisted under.
const KeyDailyGoal = "dailyGoal"

// Store is a process-wide, key-identified persistent integer store.
// A key that was never set reads as 0 without error.
//
// You may not need an interface and go with a concrete store, but having one
// allows faking the storage in tests.
type Store interface {
	GetInt(ctx context.Context, key string) (int, error)
	SetInt(ctx context.Context, key string, value int) error
}

// Watcher is implemented by stores that can notify about keys changed by
// other processes.
type Watcher interface {
	// Watch calls fn with the changed key until ctx is done.
	Watch(ctx context.Context, fn func(key string)) error
}
