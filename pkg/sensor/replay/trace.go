// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package replay

import (
	"fmt"
	"os"
	"time"

	"github.com/AccelByte/extend-step-tracker/pkg/common"
	"github.com/AccelByte/extend-step-tracker/pkg/sensor"

	"gopkg.in/yaml.v3"
)

// ActivityNone in a sample's activity list produces an event with no flag set.
const ActivityNone = "none"

// Trace is a recorded sequence of sensor samples.
type Trace struct {
	// Capabilities defaults to every sensor available when omitted.
	Capabilities *Capabilities `yaml:"capabilities,omitempty"`
	Loop         bool          `yaml:"loop"`
	Samples      []Sample      `yaml:"samples"`
}

// Capabilities are the availability flags the platform reports.
type Capabilities struct {
	StepCounting bool `yaml:"step_counting"`
	Activity     bool `yaml:"activity"`
	DeviceMotion bool `yaml:"device_motion"`
}

// Sample is one point of the trace, emitted After the previous one.
type Sample struct {
	After          time.Duration   `yaml:"after"`
	Steps          int             `yaml:"steps,omitempty"`
	Activity       []string        `yaml:"activity,omitempty"`
	Confidence     string          `yaml:"confidence,omitempty"`
	Gravity        *sensor.Gravity `yaml:"gravity,omitempty"`
	PedometerError string          `yaml:"pedometer_error,omitempty"`
}

// LoadTrace loads a trace from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace file %s: %w", path, err)
	}
	return ParseTrace(data)
}

// ParseTrace parses and validates YAML trace data.
func ParseTrace(data []byte) (*Trace, error) {
	expanded := common.ExpandEnvVars(string(data))

	var trace Trace
	if err := yaml.Unmarshal([]byte(expanded), &trace); err != nil {
		return nil, fmt.Errorf("failed to parse YAML trace: %w", err)
	}

	if err := trace.Validate(); err != nil {
		return nil, fmt.Errorf("invalid trace: %w", err)
	}

	return &trace, nil
}

// Validate validates the trace for common errors.
func (t *Trace) Validate() error {
	if t.Loop && t.Duration() == 0 && len(t.Samples) > 0 {
		return fmt.Errorf("looping trace must have a non-zero duration")
	}

	for i, s := range t.Samples {
		if s.After < 0 {
			return fmt.Errorf("sample %d has negative delay %v", i, s.After)
		}
		if s.Steps < 0 {
			return fmt.Errorf("sample %d has negative step count %d", i, s.Steps)
		}
		if _, err := s.activityEvent(); err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
	}

	return nil
}

// Duration is the total time one pass of the trace takes at normal speed.
func (t *Trace) Duration() time.Duration {
	var d time.Duration
	for _, s := range t.Samples {
		d += s.After
	}
	return d
}

func (t *Trace) capabilities() Capabilities {
	if t.Capabilities == nil {
		return Capabilities{StepCounting: true, Activity: true, DeviceMotion: true}
	}
	return *t.Capabilities
}

// activityEvent builds the event described by the sample, nil when the sample
// carries no activity.
func (s Sample) activityEvent() (*sensor.ActivityEvent, error) {
	if len(s.Activity) == 0 {
		return nil, nil
	}

	ev := &sensor.ActivityEvent{Confidence: sensor.ConfidenceHigh}
	switch s.Confidence {
	case "", "high":
	case "medium":
		ev.Confidence = sensor.ConfidenceMedium
	case "low":
		ev.Confidence = sensor.ConfidenceLow
	default:
		return nil, fmt.Errorf("unknown confidence %q", s.Confidence)
	}

	for _, flag := range s.Activity {
		switch flag {
		case ActivityNone:
		case "unknown":
			ev.Unknown = true
		case "stationary":
			ev.Stationary = true
		case "walking":
			ev.Walking = true
		case "running":
			ev.Running = true
		case "cycling":
			ev.Cycling = true
		case "automotive":
			ev.Automotive = true
		default:
			return nil, fmt.Errorf("unknown activity flag %q", flag)
		}
	}
	return ev, nil
}
