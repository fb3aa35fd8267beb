// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package presenter

import (
	"github.com/AccelByte/extend-step-tracker/pkg/activity"
	"github.com/AccelByte/extend-step-tracker/pkg/sensor"
	"github.com/AccelByte/extend-step-tracker/pkg/steps"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the model state as Prometheus gauges.
type Metrics struct {
	TodaySteps          prometheus.Gauge
	YesterdaySteps      prometheus.Gauge
	RemainingSteps      prometheus.Gauge
	GoalMet             prometheus.Gauge
	ActivityState       *prometheus.GaugeVec
	OrientationRotation prometheus.Gauge
}

// NewMetrics creates the gauges. Register them with Collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		TodaySteps: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "step_tracker_today_steps",
			Help: "Steps counted since the start of the current day",
		}),
		YesterdaySteps: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "step_tracker_yesterday_steps",
			Help: "Steps counted during the previous day",
		}),
		RemainingSteps: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "step_tracker_remaining_steps",
			Help: "Steps left to reach the daily goal, 0 once it is met",
		}),
		GoalMet: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "step_tracker_goal_met",
			Help: "1 when today's steps reached the daily goal",
		}),
		ActivityState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "step_tracker_activity_state",
				Help: "1 for the current activity state, 0 for the others",
			},
			[]string{"state"},
		),
		OrientationRotation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "step_tracker_orientation_rotation_radians",
			Help: "Screen-plane rotation derived from the gravity vector",
		}),
	}

	for _, s := range activity.AllStates {
		m.ActivityState.WithLabelValues(s.String()).Set(0)
	}
	return m
}

// Collectors returns every gauge for registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.TodaySteps,
		m.YesterdaySteps,
		m.RemainingSteps,
		m.GoalMet,
		m.ActivityState,
		m.OrientationRotation,
	}
}

func (m *Metrics) OnStepsChanged(today, yesterday int, remaining steps.RemainingSteps) {
	m.TodaySteps.Set(float64(today))
	m.YesterdaySteps.Set(float64(yesterday))
	if remaining.GoalMet() {
		m.RemainingSteps.Set(0)
		m.GoalMet.Set(1)
		return
	}
	m.RemainingSteps.Set(float64(remaining.Value))
	m.GoalMet.Set(0)
}

func (m *Metrics) OnActivityChanged(state activity.State) {
	for _, s := range activity.AllStates {
		v := 0.0
		if s == state {
			v = 1
		}
		m.ActivityState.WithLabelValues(s.String()).Set(v)
	}
}

func (m *Metrics) OnOrientationChanged(gravity sensor.Gravity) {
	m.OrientationRotation.Set(gravity.Rotation())
}
