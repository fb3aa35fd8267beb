// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package activity

import (
	"github.com/AccelByte/extend-step-tracker/pkg/sensor"
)

// Classification is the outcome of reducing an event to one state.
type Classification struct {
	State State
	// Fallback is true when no flag was set at all. The displayed state is the
	// same as an explicit unknown flag but the two paths are kept apart.
	Fallback bool
}

// Explain classifies ev and reports which path produced the state.
// Priority, first match wins:
// unknown > stationary > walking > running > cycling > automotive > fallback Unknown.
func Explain(ev sensor.ActivityEvent) Classification {
	switch {
	case ev.Unknown:
		return Classification{State: Unknown}
	case ev.Stationary:
		return Classification{State: Stationary}
	case ev.Walking:
		return Classification{State: Walking}
	case ev.Running:
		return Classification{State: Running}
	case ev.Cycling:
		return Classification{State: Cycling}
	case ev.Automotive:
		return Classification{State: Automotive}
	default:
		return Classification{State: Unknown, Fallback: true}
	}
}

// Classify reduces ev to exactly one state.
func Classify(ev sensor.ActivityEvent) State {
	return Explain(ev).State
}
