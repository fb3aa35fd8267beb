// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package activity

import "fmt"

// State is the single discrete activity label shown to the user.
type State int

const (
	Unknown State = iota
	Stationary
	Walking
	Running
	Cycling
	Automotive
)

// AllStates lists every state in declaration order.
var AllStates = []State{Unknown, Stationary, Walking, Running, Cycling, Automotive}

func (s State) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Stationary:
		return "stationary"
	case Walking:
		return "walking"
	case Running:
		return "running"
	case Cycling:
		return "cycling"
	case Automotive:
		return "automotive"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Label is the display text for the state.
func (s State) Label() string {
	switch s {
	case Stationary:
		return "Still"
	case Walking:
		return "Walking"
	case Running:
		return "Running"
	case Cycling:
		return "Cycling"
	case Automotive:
		return "Driving"
	default:
		return "Unknown"
	}
}

// ParseState maps a state name (as returned by String) back to a State.
func ParseState(name string) (State, error) {
	for _, s := range AllStates {
		if s.String() == name {
			return s, nil
		}
	}
	return Unknown, fmt.Errorf("unknown activity state %q", name)
}
