// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"
	"time"

	"github.com/AccelByte/extend-step-tracker/pkg/history"
	"github.com/AccelByte/extend-step-tracker/pkg/sensor/replay"

	"github.com/sirupsen/logrus"
)

// PlatformOptions configures the replay platform.
type PlatformOptions struct {
	TracePath string
	Speed     float64
	// Loop forces the trace to loop even when the file does not ask for it.
	Loop      bool
	Retention time.Duration
}

// InitPlatform loads the motion trace and creates the replay platform over
// the step history.
//
// ============================================================
// DEVELOPER: Sensor platform
// ============================================================
// The replay platform is the only sensor.Platform shipped. To feed real
// hardware, implement sensor.Platform and return it from here; the motion
// model does not depend on the concrete platform.
// ============================================================
func InitPlatform(opts PlatformOptions, hist history.Store) (*replay.Platform, error) {
	trace, err := replay.LoadTrace(opts.TracePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load motion trace from %s: %w", opts.TracePath, err)
	}
	if opts.Loop {
		trace.Loop = true
		if err := trace.Validate(); err != nil {
			return nil, fmt.Errorf("invalid motion trace %s: %w", opts.TracePath, err)
		}
	}

	platform := replay.New(trace, hist,
		replay.WithSpeed(opts.Speed),
		replay.WithRetention(opts.Retention),
	)

	logrus.Infof("initialized replay platform from %s (step counting: %v, activity: %v, device motion: %v)",
		opts.TracePath,
		platform.IsStepCountingAvailable(),
		platform.IsActivityAvailable(),
		platform.IsDeviceMotionAvailable(),
	)
	return platform, nil
}
