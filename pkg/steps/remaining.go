// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package steps

import "fmt"

// Kind tells whether the goal still needs steps.
type Kind int

const (
	KindRemaining Kind = iota
	KindGoalMet
)

func (k Kind) String() string {
	if k == KindGoalMet {
		return "goal_met"
	}
	return "remaining"
}

// RemainingSteps is the derived remaining-to-goal view. Value is only
// meaningful for KindRemaining.
type RemainingSteps struct {
	Kind  Kind
	Value int
}

// Remaining computes the view for goal and today's steps.
// Zero or fewer steps left counts as met.
func Remaining(goal, today int) RemainingSteps {
	left := goal - today
	if left > 0 {
		return RemainingSteps{Kind: KindRemaining, Value: left}
	}
	return RemainingSteps{Kind: KindGoalMet}
}

// GoalMet reports whether the goal has been reached.
func (r RemainingSteps) GoalMet() bool {
	return r.Kind == KindGoalMet
}

func (r RemainingSteps) String() string {
	if r.GoalMet() {
		return "You met your goal!"
	}
	return fmt.Sprintf("Steps to Goal: %d", r.Value)
}
