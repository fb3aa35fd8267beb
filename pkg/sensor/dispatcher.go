// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package sensor

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrDispatcherClosed is returned by Sync once the dispatcher has been closed.
var ErrDispatcherClosed = errors.New("dispatcher closed")

// Queue schedules work for later execution. Implementations run submitted
// functions one at a time, in submission order.
type Queue interface {
	Async(fn func())
}

// Dispatcher is the single update queue: every sensor callback and every query
// resolution runs on its goroutine, so state owned by the queue needs no locks.
// The pending list is unbounded; Async never blocks.
type Dispatcher struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []func()
	closed  bool
	done    chan struct{}
}

// NewDispatcher creates a dispatcher and starts its goroutine.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		done: make(chan struct{}),
	}
	d.cond = sync.NewCond(&d.mu)
	go d.loop()
	return d
}

// Async enqueues fn. Work submitted after Close is dropped.
func (d *Dispatcher) Async(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		logrus.Debugf("dispatcher closed, dropping update")
		return
	}
	d.pending = append(d.pending, fn)
	d.cond.Signal()
}

// Sync runs fn on the queue and waits for it to finish.
// It must not be called from a function already running on the queue.
func (d *Dispatcher) Sync(ctx context.Context, fn func()) error {
	finished := make(chan struct{})

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDispatcherClosed
	}
	d.pending = append(d.pending, func() {
		defer close(finished)
		fn()
	})
	d.cond.Signal()
	d.mu.Unlock()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting work, drains what is already queued and waits for the
// goroutine to exit.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		d.cond.Signal()
	}
	d.mu.Unlock()
	<-d.done
}

func (d *Dispatcher) loop() {
	defer close(d.done)

	for {
		d.mu.Lock()
		for len(d.pending) == 0 && !d.closed {
			d.cond.Wait()
		}
		if len(d.pending) == 0 {
			d.mu.Unlock()
			return
		}
		batch := d.pending
		d.pending = nil
		d.mu.Unlock()

		for _, fn := range batch {
			d.execute(fn)
		}
	}
}

func (d *Dispatcher) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("recovered panic in update queue: %v", r)
		}
	}()
	fn()
}

// InlineQueue runs submitted work immediately on the caller's goroutine.
// Useful where the caller already is the update thread, and in tests.
type InlineQueue struct{}

// Async runs fn synchronously.
func (InlineQueue) Async(fn func()) {
	fn()
}
