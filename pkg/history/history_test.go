// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package history

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

var midnight = time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

func newSQLiteStore(t *testing.T) *SQLiteStore {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewSQLiteStore(context.Background(), db)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	return store
}

// testStoreContract runs the behaviour every Store must share.
func testStoreContract(t *testing.T, store Store) {
	ctx := context.Background()

	samples := []Sample{
		{At: midnight.Add(-time.Millisecond), Steps: 5},  // yesterday's last moment
		{At: midnight, Steps: 10},                        // first moment of today
		{At: midnight.Add(9 * time.Hour), Steps: 12},     // morning
		{At: midnight.Add(9 * time.Hour), Steps: 12},     // duplicate increment at the same time
		{At: midnight.Add(24 * time.Hour), Steps: 100},   // tomorrow
		{At: midnight.Add(-30 * time.Hour), Steps: 1000}, // two days ago
	}
	for _, s := range samples {
		if err := store.Record(ctx, s); err != nil {
			t.Fatalf("Record(%+v) error = %v", s, err)
		}
	}

	tests := []struct {
		name     string
		from, to time.Time
		expected Total
	}{
		{"today", midnight, midnight.Add(24 * time.Hour), Total{Steps: 34, Samples: 3}},
		{"yesterday", midnight.Add(-24 * time.Hour), midnight, Total{Steps: 5, Samples: 1}},
		{"empty window", midnight.Add(10 * time.Hour), midnight.Add(11 * time.Hour), Total{}},
		{"everything", midnight.Add(-72 * time.Hour), midnight.Add(72 * time.Hour), Total{Steps: 1139, Samples: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Sum(ctx, tt.from, tt.to)
			if err != nil {
				t.Fatalf("Sum() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("Sum() = %+v, expected %+v", got, tt.expected)
			}
		})
	}

	removed, err := store.Prune(ctx, midnight.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune() removed %d, expected 1", removed)
	}

	got, err := store.Sum(ctx, midnight.Add(-72*time.Hour), midnight.Add(72*time.Hour))
	if err != nil {
		t.Fatalf("Sum() after Prune error = %v", err)
	}
	if got != (Total{Steps: 139, Samples: 5}) {
		t.Errorf("Sum() after Prune = %+v, expected 139 steps in 5 samples", got)
	}
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	testStoreContract(t, NewRedisStore(client, RedisStoreConfig{}))

	members, err := mr.ZMembers(RedisSamplesKey)
	if err != nil {
		t.Fatalf("samples key missing: %v", err)
	}
	if len(members) != 5 {
		t.Errorf("sorted set has %d members, expected 5", len(members))
	}
}

func TestRedisStore_CustomKeyAndMalformedMember(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	store := NewRedisStore(client, RedisStoreConfig{Key: "test:samples"})
	ctx := context.Background()

	if err := store.Record(ctx, Sample{At: midnight.Add(time.Hour), Steps: 7}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if _, err := mr.ZAdd("test:samples", float64(midnight.Add(2*time.Hour).UnixMilli()), "garbage"); err != nil {
		t.Fatalf("failed to seed redis: %v", err)
	}

	got, err := store.Sum(ctx, midnight, midnight.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("Sum() error = %v", err)
	}
	if got != (Total{Steps: 7, Samples: 1}) {
		t.Errorf("Sum() = %+v, expected the malformed member to be skipped", got)
	}
	if mr.Exists(RedisSamplesKey) {
		t.Error("default key written despite custom key")
	}
}

func TestSQLiteStore(t *testing.T) {
	testStoreContract(t, newSQLiteStore(t))
}

func TestParseSampleSteps(t *testing.T) {
	member := makeSampleMember(Sample{At: midnight, Steps: 42})
	steps, err := parseSampleSteps(member)
	if err != nil {
		t.Fatalf("parseSampleSteps(%q) error = %v", member, err)
	}
	if steps != 42 {
		t.Errorf("parseSampleSteps(%q) = %d, expected 42", member, steps)
	}

	if makeSampleMember(Sample{At: midnight, Steps: 42}) == member {
		t.Error("members of identical samples collide")
	}

	if _, err := parseSampleSteps("12:x"); err == nil {
		t.Error("parseSampleSteps() expected error for malformed member")
	}
}
