// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package sensor

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-step-tracker/pkg/common"

	"github.com/sirupsen/logrus"
)

// Feed wraps a Platform behind a uniform subscribe/query contract.
//
// Every callback and every query continuation is delivered on the feed's queue,
// FIFO per subscription. Unavailable sensors and failed queries degrade to
// no-ops and zeros; nothing is surfaced to the caller as an error.
type Feed struct {
	platform Platform
	queue    Queue
	now      func() time.Time
}

// FeedOption configures a Feed.
type FeedOption func(*Feed)

// WithClock overrides the clock used to timestamp the start of step counting.
func WithClock(now func() time.Time) FeedOption {
	return func(f *Feed) {
		f.now = now
	}
}

// NewFeed creates a feed over platform delivering on queue.
func NewFeed(platform Platform, queue Queue, opts ...FeedOption) *Feed {
	f := &Feed{
		platform: platform,
		queue:    queue,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Queue returns the queue callbacks are delivered on.
func (f *Feed) Queue() Queue {
	return f.queue
}

// SubscribeSteps starts continuous step counting from now. Each update carries
// the cumulative count since the subscription started, not a delta.
func (f *Feed) SubscribeSteps(ctx context.Context, onUpdate func(cumulative float64)) *Subscription {
	if !f.platform.IsStepCountingAvailable() {
		logrus.Warnf("step counting is not available")
		return inertSubscription(KindSteps, ErrCapabilityUnavailable)
	}

	sub := newSubscription(ctx, KindSteps)
	err := f.platform.StartStepUpdates(sub.ctx, f.now(), func(data *PedometerData, err error) {
		if err != nil {
			logrus.Errorf("error updating pedometer: %v", err)
			return
		}
		if data == nil {
			return
		}
		steps := data.NumberOfSteps
		f.deliver(sub, func() {
			onUpdate(steps)
		})
	})
	if err != nil {
		return f.startFailed(sub, err)
	}

	logrus.Debugf("started step updates (subscription=%s)", sub.ID())
	return sub
}

// SubscribeActivity delivers activity classification events as they arrive.
func (f *Feed) SubscribeActivity(ctx context.Context, onUpdate func(ActivityEvent)) *Subscription {
	if !f.platform.IsActivityAvailable() {
		logrus.Warnf("activity monitoring is not available")
		return inertSubscription(KindActivity, ErrCapabilityUnavailable)
	}

	sub := newSubscription(ctx, KindActivity)
	err := f.platform.StartActivityUpdates(sub.ctx, func(event *ActivityEvent) {
		if event == nil {
			return
		}
		ev := *event
		f.deliver(sub, func() {
			onUpdate(ev)
		})
	})
	if err != nil {
		return f.startFailed(sub, err)
	}

	logrus.Debugf("started activity updates (subscription=%s)", sub.ID())
	return sub
}

// SubscribeOrientation delivers device gravity samples.
func (f *Feed) SubscribeOrientation(ctx context.Context, onUpdate func(Gravity)) *Subscription {
	if !f.platform.IsDeviceMotionAvailable() {
		logrus.Warnf("device motion is not available")
		return inertSubscription(KindOrientation, ErrCapabilityUnavailable)
	}

	sub := newSubscription(ctx, KindOrientation)
	err := f.platform.StartDeviceMotionUpdates(sub.ctx, func(gravity *Gravity, err error) {
		if err != nil {
			logrus.Debugf("device motion update error: %v", err)
			return
		}
		if gravity == nil {
			return
		}
		g := *gravity
		f.deliver(sub, func() {
			onUpdate(g)
		})
	})
	if err != nil {
		return f.startFailed(sub, err)
	}

	logrus.Debugf("started device motion updates (subscription=%s)", sub.ID())
	return sub
}

// QuerySteps asks the platform for the steps recorded inside window.
// The future resolves to 0 when the platform errors or has no data.
func (f *Feed) QuerySteps(ctx context.Context, window Window) *Future[int] {
	future := NewFuture[int](f.queue)

	go func() {
		scope := common.ChildScopeFromRemoteScope(ctx, "SensorFeed.QuerySteps")
		defer scope.Finish()
		scope.AddBaggage("window", window.String())

		count, err := f.platform.QueryStepCount(scope.Ctx, window.Start, window.End)
		if err != nil {
			err = fmt.Errorf("%w for %s: %v", ErrQueryFailed, window, err)
			scope.TraceError(err)
			scope.Log.Errorf("error fetching steps: %v", err)
			future.Resolve(0)
			return
		}
		if count == nil {
			scope.TraceEvent("no step data")
			scope.Log.Debugf("no step data for %s", window)
			future.Resolve(0)
			return
		}

		steps := count.NumberOfSteps
		if steps < 0 {
			scope.Log.Warnf("platform reported negative step count %d for %s, using 0", steps, window)
			steps = 0
		}
		scope.SetAttributes("steps", steps)
		future.Resolve(steps)
	}()

	return future
}

// deliver schedules fn on the queue unless the subscription has ended by the
// time it runs.
func (f *Feed) deliver(sub *Subscription, fn func()) {
	if !sub.Active() {
		return
	}
	f.queue.Async(func() {
		if !sub.Active() {
			return
		}
		fn()
	})
}

func (f *Feed) startFailed(sub *Subscription, err error) *Subscription {
	logrus.Errorf("failed to start %s updates: %v", sub.Kind(), err)
	sub.fail(fmt.Errorf("%w: %v", ErrCapabilityUnavailable, err))
	return sub
}
