// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package history

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RedisSamplesKey is the sorted set holding pedometer samples, scored by unix milliseconds.
const RedisSamplesKey = "step_tracker:pedometer:samples"

// RedisStore implements Store on a Redis sorted set.
type RedisStore struct {
	client *redis.Client
	cfg    RedisStoreConfig
}

type RedisStoreConfig struct {
	// Key overrides RedisSamplesKey.
	Key string
}

// NewRedisStore creates a new Redis-backed step history.
func NewRedisStore(client *redis.Client, cfg RedisStoreConfig) *RedisStore {
	if cfg.Key == "" {
		cfg.Key = RedisSamplesKey
	}
	return &RedisStore{
		client: client,
		cfg:    cfg,
	}
}

// makeSampleMember encodes a sample as a unique sorted-set member: <nanos>:<steps>:<uuid>
func makeSampleMember(sample Sample) string {
	return fmt.Sprintf("%d:%d:%s", sample.At.UnixNano(), sample.Steps, uuid.NewString())
}

// parseSampleSteps extracts the step count from a sorted-set member.
func parseSampleSteps(member string) (int, error) {
	parts := strings.SplitN(member, ":", 3)
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed sample member %q", member)
	}
	return strconv.Atoi(parts[1])
}

// Record adds a sample to the history.
func (r *RedisStore) Record(ctx context.Context, sample Sample) error {
	z := &redis.Z{
		Score:  float64(sample.At.UnixMilli()),
		Member: makeSampleMember(sample),
	}
	if err := r.client.ZAdd(ctx, r.cfg.Key, z).Err(); err != nil {
		logrus.Errorf("failed to record %d steps at %v: %v", sample.Steps, sample.At, err)
		return fmt.Errorf("failed to record sample: %w", err)
	}

	logrus.Debugf("recorded %d steps at %v", sample.Steps, sample.At)
	return nil
}

// Sum adds up the samples in [from, to).
func (r *RedisStore) Sum(ctx context.Context, from, to time.Time) (Total, error) {
	members, err := r.client.ZRangeByScore(ctx, r.cfg.Key, &redis.ZRangeBy{
		Min: strconv.FormatInt(from.UnixMilli(), 10),
		Max: "(" + strconv.FormatInt(to.UnixMilli(), 10),
	}).Result()
	if err != nil {
		logrus.Errorf("failed to read samples in [%v, %v): %v", from, to, err)
		return Total{}, fmt.Errorf("failed to read samples: %w", err)
	}

	var total Total
	for _, member := range members {
		steps, err := parseSampleSteps(member)
		if err != nil {
			logrus.Warnf("skipping sample: %v", err)
			continue
		}
		total.Steps += steps
		total.Samples++
	}
	return total, nil
}

// Prune removes samples recorded before `before`.
func (r *RedisStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	removed, err := r.client.ZRemRangeByScore(ctx, r.cfg.Key,
		"-inf", "("+strconv.FormatInt(before.UnixMilli(), 10)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to prune samples: %w", err)
	}
	if removed > 0 {
		logrus.Debugf("pruned %d step samples older than %v", removed, before)
	}
	return removed, nil
}
