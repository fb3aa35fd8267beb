// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package sensor

import (
	"fmt"
	"math"
	"time"
)

// Confidence is the platform's confidence in an activity event.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceLow:
		return "low"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceHigh:
		return "high"
	default:
		return fmt.Sprintf("confidence(%d)", int(c))
	}
}

// ActivityEvent carries the independent activity flags reported by the platform.
// More than one flag may be set at once (e.g. walking and stationary near a
// transition), or none at all.
type ActivityEvent struct {
	Unknown    bool
	Stationary bool
	Walking    bool
	Running    bool
	Cycling    bool
	Automotive bool

	Confidence Confidence
	StartDate  time.Time
}

// Flags returns the names of the flags set on the event, in priority order.
func (e ActivityEvent) Flags() []string {
	flags := make([]string, 0, 2)
	if e.Unknown {
		flags = append(flags, "unknown")
	}
	if e.Stationary {
		flags = append(flags, "stationary")
	}
	if e.Walking {
		flags = append(flags, "walking")
	}
	if e.Running {
		flags = append(flags, "running")
	}
	if e.Cycling {
		flags = append(flags, "cycling")
	}
	if e.Automotive {
		flags = append(flags, "automotive")
	}
	return flags
}

// Gravity is a device-orientation sample: the gravity vector in device coordinates, in g.
type Gravity struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Rotation returns the screen-plane rotation, in radians, that keeps an
// indicator upright for this gravity vector.
func (g Gravity) Rotation() float64 {
	return math.Atan2(g.X, g.Y) - math.Pi
}

// PedometerData is one live pedometer update from the platform.
type PedometerData struct {
	// NumberOfSteps is cumulative since the updates were started.
	NumberOfSteps float64
	StartDate     time.Time
	EndDate       time.Time
}
