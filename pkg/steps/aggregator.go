// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package steps

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/AccelByte/extend-step-tracker/pkg/sensor"
	"github.com/AccelByte/extend-step-tracker/pkg/settings"

	"github.com/sirupsen/logrus"
)

// ErrInvalidInput is logged when a goal entry is negative or not a number.
var ErrInvalidInput = errors.New("invalid goal input")

// Observer receives step changes.
type Observer interface {
	OnStepsChanged(today, yesterday int, remaining RemainingSteps)
}

// StepQuerier runs day-bounded step queries. Futures must resolve on the same
// queue the Aggregator is used from; *sensor.Feed satisfies this.
type StepQuerier interface {
	QuerySteps(ctx context.Context, window sensor.Window) *sensor.Future[int]
}

// Snapshot is the aggregator's state at one point in time.
type Snapshot struct {
	TodaySteps               int
	YesterdaySteps           int
	TotalStepsSinceSubscribe float64
	DailyGoal                int
	Remaining                RemainingSteps
}

// Aggregator turns pedometer updates and day queries into today's steps,
// yesterday's steps and the remaining-to-goal view.
//
// It holds no locks: every method, and every query continuation, must run on
// the update queue. Queries may resolve out of order; each resolution
// overwrites its own field and the last one wins.
type Aggregator struct {
	querier  StepQuerier
	store    settings.Store
	observer Observer
	now      func() time.Time

	dailyGoal      int
	todaySteps     int
	yesterdaySteps int
	liveTotal      float64
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock sets the clock used to compute day windows. Its location is the
// local calendar.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// NewAggregator creates an aggregator. observer may be nil.
func NewAggregator(querier StepQuerier, store settings.Store, observer Observer, opts ...Option) *Aggregator {
	a := &Aggregator{
		querier:  querier,
		store:    store,
		observer: observer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LoadGoal reads the persisted goal. A store error leaves the goal at 0.
func (a *Aggregator) LoadGoal(ctx context.Context) {
	goal, err := a.store.GetInt(ctx, settings.KeyDailyGoal)
	if err != nil {
		logrus.Errorf("failed to load daily goal, using 0: %v", err)
		goal = 0
	}
	if goal < 0 {
		logrus.Warnf("stored daily goal %d is negative, using 0", goal)
		goal = 0
	}
	a.dailyGoal = goal
	logrus.Infof("daily goal loaded: %d", goal)
	a.notify()
}

// OnLiveStepUpdate records the live cumulative count and re-queries today's total.
func (a *Aggregator) OnLiveStepUpdate(ctx context.Context, cumulative float64) {
	a.liveTotal = cumulative
	logrus.Debugf("updated total steps: %v", cumulative)
	a.RefreshToday(ctx)
}

// RefreshToday queries [midnightToday, midnightTomorrow) and updates today's
// steps and the remaining view when it resolves.
func (a *Aggregator) RefreshToday(ctx context.Context) *sensor.Future[int] {
	future := a.querier.QuerySteps(ctx, sensor.Today(a.now()))
	future.Then(func(steps int) {
		a.todaySteps = steps
		a.notify()
	})
	return future
}

// RefreshYesterday queries [midnightYesterday, midnightToday) and updates
// yesterday's steps when it resolves. The remaining view is unaffected.
func (a *Aggregator) RefreshYesterday(ctx context.Context) *sensor.Future[int] {
	future := a.querier.QuerySteps(ctx, sensor.Yesterday(a.now()))
	future.Then(func(steps int) {
		a.yesterdaySteps = steps
		a.notify()
	})
	return future
}

// SetGoal persists a new daily goal and recomputes the remaining view.
// Negative goals are ignored and the previous goal is kept.
func (a *Aggregator) SetGoal(ctx context.Context, goal int) bool {
	if goal < 0 {
		logrus.Warnf("ignoring daily goal %d: %v", goal, ErrInvalidInput)
		return false
	}

	if err := a.store.SetInt(ctx, settings.KeyDailyGoal, goal); err != nil {
		// Keep the session consistent with what the user entered.
		logrus.Errorf("failed to persist daily goal %d: %v", goal, err)
	}
	a.dailyGoal = goal
	logrus.Infof("daily goal set to %d", goal)
	a.notify()
	return true
}

// SetGoalText parses user input and sets the goal. Non-numeric input is ignored.
func (a *Aggregator) SetGoalText(ctx context.Context, text string) bool {
	goal, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		logrus.Warnf("ignoring daily goal %q: %v", text, ErrInvalidInput)
		return false
	}
	return a.SetGoal(ctx, goal)
}

// ApplyGoal adopts a goal persisted elsewhere without writing it back.
func (a *Aggregator) ApplyGoal(goal int) {
	if goal < 0 {
		logrus.Warnf("ignoring external daily goal %d: %v", goal, ErrInvalidInput)
		return
	}
	if goal == a.dailyGoal {
		return
	}
	a.dailyGoal = goal
	logrus.Infof("daily goal changed externally to %d", goal)
	a.notify()
}

// Remaining returns the remaining-to-goal view, always derived from the
// current goal and today's steps.
func (a *Aggregator) Remaining() RemainingSteps {
	return Remaining(a.dailyGoal, a.todaySteps)
}

// DailyGoal returns the current goal.
func (a *Aggregator) DailyGoal() int {
	return a.dailyGoal
}

// Snapshot returns the current state.
func (a *Aggregator) Snapshot() Snapshot {
	return Snapshot{
		TodaySteps:               a.todaySteps,
		YesterdaySteps:           a.yesterdaySteps,
		TotalStepsSinceSubscribe: a.liveTotal,
		DailyGoal:                a.dailyGoal,
		Remaining:                a.Remaining(),
	}
}

// Reset clears the session-scoped counters. The goal is kept.
func (a *Aggregator) Reset() {
	a.todaySteps = 0
	a.yesterdaySteps = 0
	a.liveTotal = 0
}

func (a *Aggregator) notify() {
	if a.observer == nil {
		return
	}
	a.observer.OnStepsChanged(a.todaySteps, a.yesterdaySteps, a.Remaining())
}
