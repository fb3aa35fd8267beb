// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package steps

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AccelByte/extend-step-tracker/pkg/sensor"
	"github.com/AccelByte/extend-step-tracker/pkg/settings"
)

var testNow = time.Date(2024, 5, 14, 15, 30, 0, 0, time.UTC)

// fakeQuerier hands out unresolved futures so tests decide when and in which
// order queries resolve.
type fakeQuerier struct {
	windows []sensor.Window
	futures []*sensor.Future[int]
}

func (q *fakeQuerier) QuerySteps(_ context.Context, window sensor.Window) *sensor.Future[int] {
	f := sensor.NewFuture[int](sensor.InlineQueue{})
	q.windows = append(q.windows, window)
	q.futures = append(q.futures, f)
	return f
}

type notification struct {
	today     int
	yesterday int
	remaining RemainingSteps
}

type recordingObserver struct {
	got []notification
}

func (o *recordingObserver) OnStepsChanged(today, yesterday int, remaining RemainingSteps) {
	o.got = append(o.got, notification{today, yesterday, remaining})
}

func (o *recordingObserver) last() notification {
	return o.got[len(o.got)-1]
}

type failingStore struct{}

func (failingStore) GetInt(context.Context, string) (int, error) {
	return 0, errors.New("storage offline")
}

func (failingStore) SetInt(context.Context, string, int) error {
	return errors.New("storage offline")
}

func newTestAggregator(store settings.Store) (*Aggregator, *fakeQuerier, *recordingObserver) {
	querier := &fakeQuerier{}
	observer := &recordingObserver{}
	a := NewAggregator(querier, store, observer, WithClock(func() time.Time { return testNow }))
	return a, querier, observer
}

func TestAggregator_LoadGoal(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		store    func() settings.Store
		expected int
	}{
		{"stored goal", func() settings.Store {
			s := settings.NewMemoryStore()
			_ = s.SetInt(ctx, settings.KeyDailyGoal, 10000)
			return s
		}, 10000},
		{"never set", func() settings.Store { return settings.NewMemoryStore() }, 0},
		{"negative stored goal", func() settings.Store {
			s := settings.NewMemoryStore()
			_ = s.SetInt(ctx, settings.KeyDailyGoal, -3)
			return s
		}, 0},
		{"store error", func() settings.Store { return failingStore{} }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, observer := newTestAggregator(tt.store())
			a.LoadGoal(ctx)

			if a.DailyGoal() != tt.expected {
				t.Errorf("DailyGoal() = %d, expected %d", a.DailyGoal(), tt.expected)
			}
			if len(observer.got) != 1 {
				t.Fatalf("notifications = %d, expected 1", len(observer.got))
			}
			if observer.last().remaining != Remaining(tt.expected, 0) {
				t.Errorf("remaining = %+v, expected %+v", observer.last().remaining, Remaining(tt.expected, 0))
			}
		})
	}
}

func TestAggregator_LiveUpdateTriggersOneTodayRefresh(t *testing.T) {
	ctx := context.Background()
	store := settings.NewMemoryStore()
	_ = store.SetInt(ctx, settings.KeyDailyGoal, 10000)

	a, querier, observer := newTestAggregator(store)
	a.LoadGoal(ctx)

	a.OnLiveStepUpdate(ctx, 42.0)

	if len(querier.windows) != 1 {
		t.Fatalf("queries = %d, expected exactly 1", len(querier.windows))
	}
	if querier.windows[0] != sensor.Today(testNow) {
		t.Errorf("queried %v, expected today %v", querier.windows[0], sensor.Today(testNow))
	}
	if got := a.Snapshot().TotalStepsSinceSubscribe; got != 42.0 {
		t.Errorf("TotalStepsSinceSubscribe = %v, expected 42", got)
	}

	querier.futures[0].Resolve(7500)

	last := observer.last()
	if last.today != 7500 {
		t.Errorf("today = %d, expected 7500", last.today)
	}
	if last.remaining != (RemainingSteps{Kind: KindRemaining, Value: 2500}) {
		t.Errorf("remaining = %+v, expected Remaining(2500)", last.remaining)
	}
}

func TestAggregator_GoalMet(t *testing.T) {
	ctx := context.Background()
	a, querier, observer := newTestAggregator(settings.NewMemoryStore())

	if !a.SetGoal(ctx, 5000) {
		t.Fatal("SetGoal(5000) = false, expected true")
	}
	a.RefreshToday(ctx)
	querier.futures[0].Resolve(5000)

	if !observer.last().remaining.GoalMet() {
		t.Errorf("remaining = %+v, expected GoalMet", observer.last().remaining)
	}
	if !a.Remaining().GoalMet() {
		t.Errorf("Remaining() = %+v, expected GoalMet", a.Remaining())
	}
}

func TestAggregator_QueriesResolvingOutOfOrder(t *testing.T) {
	ctx := context.Background()
	a, querier, _ := newTestAggregator(settings.NewMemoryStore())

	a.OnLiveStepUpdate(ctx, 10)
	a.OnLiveStepUpdate(ctx, 20)
	if len(querier.futures) != 2 {
		t.Fatalf("queries = %d, expected 2", len(querier.futures))
	}

	// The newer query resolves first; the older one lands last and wins.
	querier.futures[1].Resolve(200)
	querier.futures[0].Resolve(100)

	if got := a.Snapshot().TodaySteps; got != 100 {
		t.Errorf("TodaySteps = %d, expected 100 (last resolution wins)", got)
	}
}

func TestAggregator_RefreshYesterday(t *testing.T) {
	ctx := context.Background()
	a, querier, observer := newTestAggregator(settings.NewMemoryStore())
	a.SetGoal(ctx, 8000)

	a.RefreshYesterday(ctx)
	if querier.windows[0] != sensor.Yesterday(testNow) {
		t.Errorf("queried %v, expected yesterday %v", querier.windows[0], sensor.Yesterday(testNow))
	}
	querier.futures[0].Resolve(9100)

	last := observer.last()
	if last.yesterday != 9100 {
		t.Errorf("yesterday = %d, expected 9100", last.yesterday)
	}
	if last.remaining != Remaining(8000, 0) {
		t.Errorf("remaining = %+v, expected it to follow today's steps only", last.remaining)
	}
}

func TestAggregator_FailedQueryCountsAsZero(t *testing.T) {
	ctx := context.Background()
	a, querier, _ := newTestAggregator(settings.NewMemoryStore())

	a.RefreshToday(ctx)
	querier.futures[0].Resolve(300)
	a.RefreshToday(ctx)
	// The feed resolves failed and empty queries to 0.
	querier.futures[1].Resolve(0)

	if got := a.Snapshot().TodaySteps; got != 0 {
		t.Errorf("TodaySteps = %d, expected 0", got)
	}
}

func TestAggregator_InvalidGoalInput(t *testing.T) {
	ctx := context.Background()
	store := settings.NewMemoryStore()
	a, _, observer := newTestAggregator(store)

	if !a.SetGoal(ctx, 6000) {
		t.Fatal("SetGoal(6000) = false, expected true")
	}
	notified := len(observer.got)

	tests := []struct {
		name  string
		apply func() bool
	}{
		{"negative", func() bool { return a.SetGoal(ctx, -1) }},
		{"negative text", func() bool { return a.SetGoalText(ctx, "-250") }},
		{"not a number", func() bool { return a.SetGoalText(ctx, "lots") }},
		{"decimal", func() bool { return a.SetGoalText(ctx, "12.5") }},
		{"empty", func() bool { return a.SetGoalText(ctx, "") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.apply() {
				t.Error("invalid goal accepted")
			}
			if a.DailyGoal() != 6000 {
				t.Errorf("DailyGoal() = %d, expected 6000", a.DailyGoal())
			}
			stored, _ := store.GetInt(ctx, settings.KeyDailyGoal)
			if stored != 6000 {
				t.Errorf("stored goal = %d, expected 6000", stored)
			}
		})
	}

	if len(observer.got) != notified {
		t.Errorf("invalid input notified the observer %d times", len(observer.got)-notified)
	}
}

func TestAggregator_SetGoalText(t *testing.T) {
	ctx := context.Background()
	store := settings.NewMemoryStore()
	a, _, _ := newTestAggregator(store)

	if !a.SetGoalText(ctx, " 8000\n") {
		t.Fatal("SetGoalText() = false, expected true")
	}
	stored, err := store.GetInt(ctx, settings.KeyDailyGoal)
	if err != nil {
		t.Fatalf("GetInt() error = %v", err)
	}
	if stored != 8000 || a.DailyGoal() != 8000 {
		t.Errorf("stored = %d, DailyGoal() = %d, expected 8000", stored, a.DailyGoal())
	}
}

func TestAggregator_SetGoalPersistFailure(t *testing.T) {
	a, _, observer := newTestAggregator(failingStore{})

	if !a.SetGoal(context.Background(), 4000) {
		t.Fatal("SetGoal() = false, expected true")
	}
	if a.DailyGoal() != 4000 {
		t.Errorf("DailyGoal() = %d, expected 4000", a.DailyGoal())
	}
	if observer.last().remaining != Remaining(4000, 0) {
		t.Errorf("remaining = %+v, expected Remaining(4000)", observer.last().remaining)
	}
}

func TestAggregator_ApplyGoal(t *testing.T) {
	a, _, observer := newTestAggregator(settings.NewMemoryStore())

	a.ApplyGoal(3000)
	a.ApplyGoal(3000)
	a.ApplyGoal(-1)

	if a.DailyGoal() != 3000 {
		t.Errorf("DailyGoal() = %d, expected 3000", a.DailyGoal())
	}
	if len(observer.got) != 1 {
		t.Errorf("notifications = %d, expected 1", len(observer.got))
	}
}

func TestAggregator_ResetKeepsGoal(t *testing.T) {
	ctx := context.Background()
	a, querier, _ := newTestAggregator(settings.NewMemoryStore())
	a.SetGoal(ctx, 9000)
	a.OnLiveStepUpdate(ctx, 12)
	querier.futures[0].Resolve(1200)

	a.Reset()

	snap := a.Snapshot()
	if snap.TodaySteps != 0 || snap.YesterdaySteps != 0 || snap.TotalStepsSinceSubscribe != 0 {
		t.Errorf("Snapshot() after Reset = %+v, expected zero counters", snap)
	}
	if snap.DailyGoal != 9000 {
		t.Errorf("DailyGoal = %d, expected 9000", snap.DailyGoal)
	}
}
