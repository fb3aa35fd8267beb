// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package replay implements a sensor platform that plays back a recorded
// motion trace and keeps the pedometer history in a history.Store.
package replay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/AccelByte/extend-step-tracker/pkg/history"
	"github.com/AccelByte/extend-step-tracker/pkg/sensor"

	"github.com/sirupsen/logrus"
)

type stepHandler struct {
	fn   func(*sensor.PedometerData, error)
	base int
	from time.Time
}

// Platform replays a Trace. Run drives the timeline; handlers registered with
// the Start methods receive samples until their context is done.
type Platform struct {
	trace     *Trace
	caps      Capabilities
	history   history.Store
	speed     float64
	retention time.Duration
	now       func() time.Time

	mu                sync.Mutex
	totalSteps        int
	nextID            int
	stepHandlers      map[int]stepHandler
	activityHandlers  map[int]func(*sensor.ActivityEvent)
	deviceMotionHands map[int]func(*sensor.Gravity, error)
}

// Option configures a Platform.
type Option func(*Platform)

// WithSpeed plays the trace faster (>1) or slower (<1) than recorded.
func WithSpeed(speed float64) Option {
	return func(p *Platform) {
		if speed > 0 {
			p.speed = speed
		}
	}
}

// WithRetention sets how long recorded samples are kept.
func WithRetention(retention time.Duration) Option {
	return func(p *Platform) {
		p.retention = retention
	}
}

// WithClock sets the clock used to timestamp recorded samples.
func WithClock(now func() time.Time) Option {
	return func(p *Platform) {
		p.now = now
	}
}

// New creates a platform for trace, recording steps into hist.
// A nil trace yields a platform that only answers history queries.
func New(trace *Trace, hist history.Store, opts ...Option) *Platform {
	if trace == nil {
		trace = &Trace{Capabilities: &Capabilities{}}
	}

	p := &Platform{
		trace:             trace,
		caps:              trace.capabilities(),
		history:           hist,
		speed:             1,
		retention:         history.DefaultRetention,
		now:               time.Now,
		stepHandlers:      make(map[int]stepHandler),
		activityHandlers:  make(map[int]func(*sensor.ActivityEvent)),
		deviceMotionHands: make(map[int]func(*sensor.Gravity, error)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsStepCountingAvailable implements sensor.Platform.
func (p *Platform) IsStepCountingAvailable() bool { return p.caps.StepCounting }

// IsActivityAvailable implements sensor.Platform.
func (p *Platform) IsActivityAvailable() bool { return p.caps.Activity }

// IsDeviceMotionAvailable implements sensor.Platform.
func (p *Platform) IsDeviceMotionAvailable() bool { return p.caps.DeviceMotion }

// StartStepUpdates implements sensor.Platform. Counts are cumulative from the
// moment of registration.
func (p *Platform) StartStepUpdates(ctx context.Context, from time.Time, handler func(*sensor.PedometerData, error)) error {
	if !p.caps.StepCounting {
		return sensor.ErrCapabilityUnavailable
	}

	p.mu.Lock()
	id := p.register()
	p.stepHandlers[id] = stepHandler{fn: handler, base: p.totalSteps, from: from}
	p.mu.Unlock()

	p.unregisterOnDone(ctx, func() { delete(p.stepHandlers, id) })
	return nil
}

// StartActivityUpdates implements sensor.Platform.
func (p *Platform) StartActivityUpdates(ctx context.Context, handler func(*sensor.ActivityEvent)) error {
	if !p.caps.Activity {
		return sensor.ErrCapabilityUnavailable
	}

	p.mu.Lock()
	id := p.register()
	p.activityHandlers[id] = handler
	p.mu.Unlock()

	p.unregisterOnDone(ctx, func() { delete(p.activityHandlers, id) })
	return nil
}

// StartDeviceMotionUpdates implements sensor.Platform.
func (p *Platform) StartDeviceMotionUpdates(ctx context.Context, handler func(*sensor.Gravity, error)) error {
	if !p.caps.DeviceMotion {
		return sensor.ErrCapabilityUnavailable
	}

	p.mu.Lock()
	id := p.register()
	p.deviceMotionHands[id] = handler
	p.mu.Unlock()

	p.unregisterOnDone(ctx, func() { delete(p.deviceMotionHands, id) })
	return nil
}

// QueryStepCount implements sensor.Platform by summing the recorded history.
func (p *Platform) QueryStepCount(ctx context.Context, from, to time.Time) (*sensor.StepCount, error) {
	if p.history == nil {
		return nil, errors.New("no step history configured")
	}

	total, err := p.history.Sum(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if total.Samples == 0 {
		return nil, nil
	}

	return &sensor.StepCount{
		NumberOfSteps: total.Steps,
		StartDate:     from,
		EndDate:       to,
	}, nil
}

// Run plays the trace until it ends (or forever when it loops) or ctx is done.
func (p *Platform) Run(ctx context.Context) error {
	if len(p.trace.Samples) == 0 {
		logrus.Info("motion trace is empty, nothing to replay")
		return nil
	}

	logrus.Infof("replaying motion trace: %d samples, %v per pass at %.2fx speed, loop=%v",
		len(p.trace.Samples), p.trace.Duration(), p.speed, p.trace.Loop)

	for pass := 1; ; pass++ {
		p.prune(ctx)

		for _, sample := range p.trace.Samples {
			if err := p.wait(ctx, sample.After); err != nil {
				return nil
			}
			p.emit(ctx, sample)
		}

		if !p.trace.Loop {
			logrus.Infof("motion trace finished after %d pass(es)", pass)
			return nil
		}
	}
}

// TotalSteps returns the steps replayed so far.
func (p *Platform) TotalSteps() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalSteps
}

func (p *Platform) wait(ctx context.Context, after time.Duration) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	delay := time.Duration(float64(after) / p.speed)
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Platform) emit(ctx context.Context, sample Sample) {
	at := p.now()

	if sample.Steps > 0 && p.history != nil {
		if err := p.history.Record(ctx, history.Sample{At: at, Steps: sample.Steps}); err != nil {
			logrus.Errorf("failed to record %d steps in history: %v", sample.Steps, err)
		}
	}

	p.mu.Lock()
	p.totalSteps += sample.Steps
	total := p.totalSteps
	stepHandlers := make([]stepHandler, 0, len(p.stepHandlers))
	for _, h := range p.stepHandlers {
		stepHandlers = append(stepHandlers, h)
	}
	activityHandlers := make([]func(*sensor.ActivityEvent), 0, len(p.activityHandlers))
	for _, h := range p.activityHandlers {
		activityHandlers = append(activityHandlers, h)
	}
	motionHandlers := make([]func(*sensor.Gravity, error), 0, len(p.deviceMotionHands))
	for _, h := range p.deviceMotionHands {
		motionHandlers = append(motionHandlers, h)
	}
	p.mu.Unlock()

	switch {
	case sample.PedometerError != "":
		err := fmt.Errorf("pedometer: %s", sample.PedometerError)
		for _, h := range stepHandlers {
			h.fn(nil, err)
		}
	case sample.Steps > 0:
		for _, h := range stepHandlers {
			h.fn(&sensor.PedometerData{
				NumberOfSteps: float64(total - h.base),
				StartDate:     h.from,
				EndDate:       at,
			}, nil)
		}
	}

	// Validated at load time.
	if ev, _ := sample.activityEvent(); ev != nil {
		ev.StartDate = at
		for _, h := range activityHandlers {
			event := *ev
			h(&event)
		}
	}

	if sample.Gravity != nil {
		for _, h := range motionHandlers {
			g := *sample.Gravity
			h(&g, nil)
		}
	}
}

func (p *Platform) prune(ctx context.Context) {
	if p.history == nil || p.retention <= 0 {
		return
	}
	if _, err := p.history.Prune(ctx, p.now().Add(-p.retention)); err != nil {
		logrus.Warnf("failed to prune step history: %v", err)
	}
}

// register must be called with p.mu held.
func (p *Platform) register() int {
	p.nextID++
	return p.nextID
}

func (p *Platform) unregisterOnDone(ctx context.Context, remove func()) {
	go func() {
		<-ctx.Done()
		p.mu.Lock()
		remove()
		p.mu.Unlock()
	}()
}
