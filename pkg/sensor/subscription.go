// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package sensor

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Subscription kinds.
const (
	KindSteps       = "steps"
	KindActivity    = "activity"
	KindOrientation = "orientation"
)

// Subscription is the handle of a live sensor subscription.
// Updates stop once it is cancelled or its parent context is done.
type Subscription struct {
	id     string
	kind   string
	ctx    context.Context
	cancel context.CancelFunc

	mu  sync.Mutex
	err error
}

func newSubscription(parent context.Context, kind string) *Subscription {
	ctx, cancel := context.WithCancel(parent)
	return &Subscription{
		id:     uuid.NewString(),
		kind:   kind,
		ctx:    ctx,
		cancel: cancel,
	}
}

// inertSubscription is returned when a subscription could not be started.
// It is already done and never delivers updates.
func inertSubscription(kind string, err error) *Subscription {
	sub := newSubscription(context.Background(), kind)
	sub.fail(err)
	return sub
}

func (s *Subscription) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.cancel()
}

// ID returns the unique identifier of the subscription.
func (s *Subscription) ID() string {
	return s.id
}

// Kind returns which sensor the subscription is for.
func (s *Subscription) Kind() string {
	return s.kind
}

// Cancel stops delivery of further updates. It is safe to call more than once.
func (s *Subscription) Cancel() {
	s.cancel()
}

// Done is closed when the subscription no longer delivers updates.
func (s *Subscription) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Active reports whether updates may still be delivered.
func (s *Subscription) Active() bool {
	return s.ctx.Err() == nil
}

// Err returns why the subscription never started, or nil.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
