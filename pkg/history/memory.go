// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package history

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps samples in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	samples []Sample
}

// NewMemoryStore creates an empty in-memory history.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Record implements Store.
func (m *MemoryStore) Record(_ context.Context, sample Sample) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = append(m.samples, sample)
	return nil
}

// Sum implements Store.
func (m *MemoryStore) Sum(_ context.Context, from, to time.Time) (Total, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total Total
	for _, s := range m.samples {
		if s.At.Before(from) || !s.At.Before(to) {
			continue
		}
		total.Steps += s.Steps
		total.Samples++
	}
	return total, nil
}

// Prune implements Store.
func (m *MemoryStore) Prune(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.samples[:0]
	var removed int64
	for _, s := range m.samples {
		if s.At.Before(before) {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	m.samples = kept
	return removed, nil
}
