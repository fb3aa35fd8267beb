// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package presenter

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/AccelByte/extend-step-tracker/pkg/activity"
	"github.com/AccelByte/extend-step-tracker/pkg/motion"
	"github.com/AccelByte/extend-step-tracker/pkg/sensor"
	"github.com/AccelByte/extend-step-tracker/pkg/steps"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	registry := prometheus.NewRegistry()
	for _, c := range m.Collectors() {
		if err := registry.Register(c); err != nil {
			t.Fatalf("failed to register collector: %v", err)
		}
	}

	m.OnStepsChanged(7500, 9100, steps.Remaining(10000, 7500))
	if v := testutil.ToFloat64(m.TodaySteps); v != 7500 {
		t.Errorf("today = %v, expected 7500", v)
	}
	if v := testutil.ToFloat64(m.YesterdaySteps); v != 9100 {
		t.Errorf("yesterday = %v, expected 9100", v)
	}
	if v := testutil.ToFloat64(m.RemainingSteps); v != 2500 {
		t.Errorf("remaining = %v, expected 2500", v)
	}
	if v := testutil.ToFloat64(m.GoalMet); v != 0 {
		t.Errorf("goal met = %v, expected 0", v)
	}

	m.OnStepsChanged(5000, 0, steps.Remaining(5000, 5000))
	if v := testutil.ToFloat64(m.RemainingSteps); v != 0 {
		t.Errorf("remaining = %v, expected 0", v)
	}
	if v := testutil.ToFloat64(m.GoalMet); v != 1 {
		t.Errorf("goal met = %v, expected 1", v)
	}

	m.OnActivityChanged(activity.Walking)
	m.OnActivityChanged(activity.Running)
	for _, s := range activity.AllStates {
		expected := 0.0
		if s == activity.Running {
			expected = 1
		}
		if v := testutil.ToFloat64(m.ActivityState.WithLabelValues(s.String())); v != expected {
			t.Errorf("activity_state{state=%q} = %v, expected %v", s, v, expected)
		}
	}

	m.OnOrientationChanged(sensor.Gravity{X: 1, Y: 0})
	if v := testutil.ToFloat64(m.OrientationRotation); math.Abs(v+math.Pi/2) > 1e-9 {
		t.Errorf("rotation = %v, expected %v", v, -math.Pi/2)
	}

	if n := testutil.CollectAndCount(m.ActivityState); n != len(activity.AllStates) {
		t.Errorf("activity_state series = %d, expected %d", n, len(activity.AllStates))
	}
}

func TestConsole(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out)

	c.OnStepsChanged(7500, 9100, steps.Remaining(10000, 7500))
	c.OnStepsChanged(10000, 9100, steps.Remaining(10000, 10000))
	c.OnActivityChanged(activity.Automotive)
	c.OnOrientationChanged(sensor.Gravity{X: 0, Y: -1})
	c.OnOrientationChanged(sensor.Gravity{X: 0.001, Y: -1})
	c.OnOrientationChanged(sensor.Gravity{X: 1, Y: 0})

	text := out.String()
	for _, want := range []string{
		"Today's Steps:", "7500", "Steps to Goal: 2500",
		"You met your goal!",
		"Activity:", "Driving",
		"Rotation: 0.0°", "Rotation: -90.0°",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("console output missing %q:\n%s", want, text)
		}
	}

	if n := strings.Count(text, "Rotation:"); n != 2 {
		t.Errorf("printed %d rotation lines, expected 2 (small changes suppressed)", n)
	}
}

func TestLog(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	l := NewLog(logger)

	l.OnStepsChanged(7500, 9100, steps.Remaining(10000, 7500))
	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("no log entry written")
	}
	if entry.Message != "Steps to Goal: 2500" {
		t.Errorf("message = %q, expected %q", entry.Message, "Steps to Goal: 2500")
	}
	if entry.Data["today"] != 7500 || entry.Data["goal_met"] != false {
		t.Errorf("fields = %v", entry.Data)
	}

	l.OnActivityChanged(activity.Stationary)
	if msg := hook.LastEntry().Message; msg != "Activity: Still" {
		t.Errorf("message = %q, expected %q", msg, "Activity: Still")
	}

	l.OnOrientationChanged(sensor.Gravity{Y: -1})
	if lvl := hook.LastEntry().Level; lvl != logrus.DebugLevel {
		t.Errorf("orientation logged at %v, expected debug", lvl)
	}
}

type countingObserver struct {
	steps, activities, orientations int
}

func (c *countingObserver) OnStepsChanged(int, int, steps.RemainingSteps) { c.steps++ }
func (c *countingObserver) OnActivityChanged(activity.State)              { c.activities++ }
func (c *countingObserver) OnOrientationChanged(sensor.Gravity)           { c.orientations++ }

func TestMulti(t *testing.T) {
	a, b := &countingObserver{}, &countingObserver{}
	var m motion.Observer = Multi{a, b}

	m.OnStepsChanged(1, 2, steps.Remaining(3, 1))
	m.OnActivityChanged(activity.Walking)
	m.OnOrientationChanged(sensor.Gravity{})
	m.OnOrientationChanged(sensor.Gravity{})

	for i, o := range []*countingObserver{a, b} {
		if o.steps != 1 || o.activities != 1 || o.orientations != 2 {
			t.Errorf("observer %d got steps=%d activities=%d orientations=%d", i, o.steps, o.activities, o.orientations)
		}
	}
}
