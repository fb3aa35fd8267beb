// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package sensor

import (
	"context"
	"time"
)

// StepCount is the result of a historical pedometer query.
type StepCount struct {
	NumberOfSteps int
	StartDate     time.Time
	EndDate       time.Time
}

// Platform is the motion-sensor platform the feed wraps.
//
// Availability is a soft capability flag: check it before starting updates.
// Start methods return once updates have been started; handlers are then
// called sequentially, on any goroutine, until ctx is done.
type Platform interface {
	IsStepCountingAvailable() bool
	IsActivityAvailable() bool
	IsDeviceMotionAvailable() bool

	// StartStepUpdates delivers pedometer data counted from `from` onward.
	StartStepUpdates(ctx context.Context, from time.Time, handler func(*PedometerData, error)) error

	// StartActivityUpdates delivers activity classification events.
	StartActivityUpdates(ctx context.Context, handler func(*ActivityEvent)) error

	// StartDeviceMotionUpdates delivers gravity samples.
	StartDeviceMotionUpdates(ctx context.Context, handler func(*Gravity, error)) error

	// QueryStepCount returns the steps recorded in [from, to).
	// A nil result with a nil error means the platform has no data.
	QueryStepCount(ctx context.Context, from, to time.Time) (*StepCount, error)
}
