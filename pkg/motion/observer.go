// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package motion

import (
	"github.com/AccelByte/extend-step-tracker/pkg/activity"
	"github.com/AccelByte/extend-step-tracker/pkg/sensor"
	"github.com/AccelByte/extend-step-tracker/pkg/steps"
)

// Observer is the presentation layer. All calls arrive on the update queue,
// never concurrently.
type Observer interface {
	OnStepsChanged(today, yesterday int, remaining steps.RemainingSteps)
	OnActivityChanged(state activity.State)
	OnOrientationChanged(gravity sensor.Gravity)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) OnStepsChanged(int, int, steps.RemainingSteps) {}
func (NopObserver) OnActivityChanged(activity.State)              {}
func (NopObserver) OnOrientationChanged(sensor.Gravity)           {}
