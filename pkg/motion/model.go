// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package motion

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-step-tracker/pkg/activity"
	"github.com/AccelByte/extend-step-tracker/pkg/common"
	"github.com/AccelByte/extend-step-tracker/pkg/sensor"
	"github.com/AccelByte/extend-step-tracker/pkg/settings"
	"github.com/AccelByte/extend-step-tracker/pkg/steps"

	"github.com/sirupsen/logrus"
)

// State is a read-only view of the model.
type State struct {
	Steps         steps.Snapshot
	Activity      activity.State
	Orientation   sensor.Gravity
	ActiveSensors []string
}

// Model runs one monitoring session: it subscribes to the feed, drives the
// step aggregator and activity classifier, and forwards orientation samples.
//
// Exported methods are safe for concurrent use; they hand work to the update
// queue, where all state lives.
type Model struct {
	feed       *sensor.Feed
	queue      sensor.Queue
	store      settings.Store
	aggregator *steps.Aggregator
	classifier *activity.Classifier
	observer   Observer
	now        func() time.Time

	// owned by the update queue
	subs          []*sensor.Subscription
	orientation   sensor.Gravity
	yesterdayDate time.Time
}

// Option configures a Model.
type Option func(*Model)

// WithClock sets the clock used for day windows and day rollover.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a model over feed. Goal changes are persisted in store.
// A nil observer discards notifications.
func New(feed *sensor.Feed, store settings.Store, observer Observer, opts ...Option) *Model {
	if observer == nil {
		observer = NopObserver{}
	}

	m := &Model{
		feed:     feed,
		queue:    feed.Queue(),
		store:    store,
		observer: observer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.aggregator = steps.NewAggregator(feed, store, observer, steps.WithClock(m.now))
	m.classifier = activity.NewClassifier(observer)
	return m
}

// Start begins monitoring: loads the goal, subscribes to activity, steps and
// orientation, and fetches today's and yesterday's totals. Subscriptions end
// when ctx is done or Stop is called.
//
// Starting again without Stop adds a second set of subscriptions; the
// resulting duplicate queries may resolve in any order.
func (m *Model) Start(ctx context.Context) {
	m.queue.Async(func() {
		m.start(ctx)
	})
}

func (m *Model) start(ctx context.Context) {
	scope := common.ChildScopeFromRemoteScope(ctx, "MotionModel.Start")
	defer scope.Finish()

	m.aggregator.Reset()
	m.classifier.Reset()
	m.aggregator.LoadGoal(scope.Ctx)
	scope.TraceEvent("daily goal loaded")

	subscribe := scope.NewChildScope("MotionModel.Subscribe")
	m.subs = append(m.subs,
		m.feed.SubscribeActivity(ctx, m.classifier.OnActivityEvent),
		m.feed.SubscribeSteps(ctx, func(cumulative float64) {
			m.onLiveSteps(ctx, cumulative)
		}),
		m.feed.SubscribeOrientation(ctx, m.onOrientation),
	)
	subscribe.Finish()

	m.aggregator.RefreshToday(ctx)
	m.refreshYesterday(ctx)

	active := m.activeSensors()
	scope.SetAttributes("sensors", active)
	scope.Log.Infof("monitoring started (active sensors: %v)", active)
}

// Stop cancels every subscription of the session.
func (m *Model) Stop() {
	m.queue.Async(func() {
		for _, sub := range m.subs {
			sub.Cancel()
		}
		m.subs = nil
		logrus.Info("monitoring stopped")
	})
}

// Refresh re-queries today's and yesterday's totals.
func (m *Model) Refresh(ctx context.Context) {
	m.queue.Async(func() {
		m.aggregator.RefreshToday(ctx)
		m.refreshYesterday(ctx)
	})
}

// SetGoal sets and persists the daily goal. The future reports whether the
// goal was accepted.
func (m *Model) SetGoal(ctx context.Context, goal int) *sensor.Future[bool] {
	accepted := sensor.NewFuture[bool](sensor.InlineQueue{})
	m.queue.Async(func() {
		accepted.Resolve(m.aggregator.SetGoal(ctx, goal))
	})
	return accepted
}

// SetGoalText sets the daily goal from raw user input; invalid input is ignored.
func (m *Model) SetGoalText(ctx context.Context, text string) *sensor.Future[bool] {
	accepted := sensor.NewFuture[bool](sensor.InlineQueue{})
	m.queue.Async(func() {
		accepted.Resolve(m.aggregator.SetGoalText(ctx, text))
	})
	return accepted
}

// ApplyGoal adopts a goal that was persisted by another process.
func (m *Model) ApplyGoal(goal int) {
	m.queue.Async(func() {
		m.aggregator.ApplyGoal(goal)
	})
}

// FollowGoalChanges re-reads the goal whenever the watcher reports it changed,
// until ctx is done.
func (m *Model) FollowGoalChanges(ctx context.Context, watcher settings.Watcher) error {
	return watcher.Watch(ctx, func(key string) {
		if key != settings.KeyDailyGoal {
			return
		}
		goal, err := m.store.GetInt(ctx, settings.KeyDailyGoal)
		if err != nil {
			logrus.Errorf("failed to read changed daily goal: %v", err)
			return
		}
		m.ApplyGoal(goal)
	})
}

// Snapshot reads the current state through the update queue.
func (m *Model) Snapshot(ctx context.Context) (State, error) {
	var st State
	read := func() {
		st = State{
			Steps:         m.aggregator.Snapshot(),
			Activity:      m.classifier.Current(),
			Orientation:   m.orientation,
			ActiveSensors: m.activeSensors(),
		}
	}

	syncer, ok := m.queue.(interface {
		Sync(ctx context.Context, fn func()) error
	})
	if !ok {
		done := make(chan struct{})
		m.queue.Async(func() {
			read()
			close(done)
		})
		select {
		case <-done:
			return st, nil
		case <-ctx.Done():
			return State{}, fmt.Errorf("failed to read model state: %w", ctx.Err())
		}
	}
	if err := syncer.Sync(ctx, read); err != nil {
		return State{}, fmt.Errorf("failed to read model state: %w", err)
	}
	return st, nil
}

func (m *Model) onLiveSteps(ctx context.Context, cumulative float64) {
	if !sensor.StartOfDay(m.now()).Equal(m.yesterdayDate) {
		logrus.Infof("calendar day changed, refreshing yesterday's steps")
		m.refreshYesterday(ctx)
	}
	m.aggregator.OnLiveStepUpdate(ctx, cumulative)
}

func (m *Model) onOrientation(gravity sensor.Gravity) {
	m.orientation = gravity
	m.observer.OnOrientationChanged(gravity)
}

func (m *Model) refreshYesterday(ctx context.Context) {
	m.yesterdayDate = sensor.StartOfDay(m.now())
	m.aggregator.RefreshYesterday(ctx)
}

func (m *Model) activeSensors() []string {
	active := make([]string, 0, len(m.subs))
	for _, sub := range m.subs {
		if sub.Active() {
			active = append(active, sub.Kind())
		}
	}
	return active
}
