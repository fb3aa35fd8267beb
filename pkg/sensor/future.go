// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package sensor

import (
	"context"
	"sync"
)

// Future is the result of a one-shot asynchronous operation. It resolves
// exactly once; continuations registered with Then run on the queue.
type Future[T any] struct {
	queue Queue

	mu        sync.Mutex
	resolved  bool
	value     T
	callbacks []func(T)
	done      chan struct{}
}

// NewFuture creates an unresolved future whose continuations run on queue.
func NewFuture[T any](queue Queue) *Future[T] {
	return &Future[T]{
		queue: queue,
		done:  make(chan struct{}),
	}
}

// Resolved creates a future that already holds value.
func Resolved[T any](queue Queue, value T) *Future[T] {
	f := NewFuture[T](queue)
	f.Resolve(value)
	return f
}

// Resolve sets the value and schedules pending continuations.
// Only the first call has an effect; it reports whether it won.
func (f *Future[T]) Resolve(value T) bool {
	f.mu.Lock()
	if f.resolved {
		f.mu.Unlock()
		return false
	}
	f.resolved = true
	f.value = value
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, fn := range callbacks {
		f.schedule(fn, value)
	}
	return true
}

// Then registers fn to run on the queue with the resolved value.
func (f *Future[T]) Then(fn func(T)) {
	f.mu.Lock()
	if !f.resolved {
		f.callbacks = append(f.callbacks, fn)
		f.mu.Unlock()
		return
	}
	value := f.value
	f.mu.Unlock()

	f.schedule(fn, value)
}

// Done is closed once the future resolves.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future resolves or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (f *Future[T]) schedule(fn func(T), value T) {
	f.queue.Async(func() {
		fn(value)
	})
}
