// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package presenter holds the presentation-layer observers of the motion model.
package presenter

import (
	"github.com/AccelByte/extend-step-tracker/pkg/activity"
	"github.com/AccelByte/extend-step-tracker/pkg/motion"
	"github.com/AccelByte/extend-step-tracker/pkg/sensor"
	"github.com/AccelByte/extend-step-tracker/pkg/steps"
)

// Multi fans every notification out to its observers in order.
type Multi []motion.Observer

func (m Multi) OnStepsChanged(today, yesterday int, remaining steps.RemainingSteps) {
	for _, o := range m {
		o.OnStepsChanged(today, yesterday, remaining)
	}
}

func (m Multi) OnActivityChanged(state activity.State) {
	for _, o := range m {
		o.OnActivityChanged(state)
	}
}

func (m Multi) OnOrientationChanged(gravity sensor.Gravity) {
	for _, o := range m {
		o.OnOrientationChanged(gravity)
	}
}
