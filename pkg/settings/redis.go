// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package settings

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// redisSettingsKeyPrefix is the prefix for all settings keys
	redisSettingsKeyPrefix = "step_tracker:settings:"
	// RedisChangesChannel receives the name of every key written through RedisStore
	RedisChangesChannel = "step_tracker:settings:changed"
)

// RedisStore implements Store using Redis. Settings never expire.
type RedisStore struct {
	client *redis.Client
	cfg    RedisStoreConfig
}

type RedisStoreConfig struct {
	// DisableNotify skips publishing change notifications on SetInt.
	DisableNotify bool
}

// NewRedisStore creates a new Redis-backed settings store.
func NewRedisStore(client *redis.Client, cfg RedisStoreConfig) *RedisStore {
	return &RedisStore{
		client: client,
		cfg:    cfg,
	}
}

// makeSettingsKey creates a Redis key for a setting
func makeSettingsKey(key string) string {
	return fmt.Sprintf("%s%s", redisSettingsKeyPrefix, key)
}

// GetInt retrieves an integer setting, 0 when it was never set.
func (r *RedisStore) GetInt(ctx context.Context, key string) (int, error) {
	data, err := r.client.Get(ctx, makeSettingsKey(key)).Result()
	if err == redis.Nil {
		logrus.Debugf("no value stored for setting %s, using 0", key)
		return 0, nil
	}
	if err != nil {
		logrus.Errorf("failed to get setting %s: %v", key, err)
		return 0, fmt.Errorf("failed to get setting %s: %w", key, err)
	}

	value, err := strconv.Atoi(data)
	if err != nil {
		logrus.Errorf("failed to parse setting %s value %q: %v", key, data, err)
		return 0, fmt.Errorf("failed to parse setting %s: %w", key, err)
	}

	return value, nil
}

// SetInt stores an integer setting and announces the change.
func (r *RedisStore) SetInt(ctx context.Context, key string, value int) error {
	if err := r.client.Set(ctx, makeSettingsKey(key), strconv.Itoa(value), 0).Err(); err != nil {
		logrus.Errorf("failed to set setting %s: %v", key, err)
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	logrus.Infof("updated setting %s=%d", key, value)

	if r.cfg.DisableNotify {
		return nil
	}
	if err := r.client.Publish(ctx, RedisChangesChannel, key).Err(); err != nil {
		// The value is stored; watchers will pick it up on their next start.
		logrus.Warnf("failed to publish change of setting %s: %v", key, err)
	}
	return nil
}

// Watch subscribes to change notifications and calls fn for each changed key
// until ctx is done.
func (r *RedisStore) Watch(ctx context.Context, fn func(key string)) error {
	pubsub := r.client.Subscribe(ctx, RedisChangesChannel)
	defer pubsub.Close()

	// Wait for the subscription to be confirmed before reporting readiness.
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", RedisChangesChannel, err)
	}
	logrus.Infof("watching setting changes on %s", RedisChangesChannel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			logrus.Debugf("setting %s changed", msg.Payload)
			fn(msg.Payload)
		}
	}
}
