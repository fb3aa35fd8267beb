// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package presenter

import (
	"github.com/AccelByte/extend-step-tracker/pkg/activity"
	"github.com/AccelByte/extend-step-tracker/pkg/sensor"
	"github.com/AccelByte/extend-step-tracker/pkg/steps"

	"github.com/sirupsen/logrus"
)

// Log writes one structured entry per notification. Orientation samples are
// frequent and logged at debug level.
type Log struct {
	logger logrus.FieldLogger
}

// NewLog creates a log presenter. A nil logger uses the standard logrus logger.
func NewLog(logger logrus.FieldLogger) *Log {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Log{logger: logger.WithField("component", "presenter")}
}

func (l *Log) OnStepsChanged(today, yesterday int, remaining steps.RemainingSteps) {
	l.logger.WithFields(logrus.Fields{
		"today":     today,
		"yesterday": yesterday,
		"goal_met":  remaining.GoalMet(),
		"remaining": remaining.Value,
	}).Info(remaining.String())
}

func (l *Log) OnActivityChanged(state activity.State) {
	l.logger.WithField("activity", state.String()).Infof("Activity: %s", state.Label())
}

func (l *Log) OnOrientationChanged(gravity sensor.Gravity) {
	l.logger.WithFields(logrus.Fields{
		"x":        gravity.X,
		"y":        gravity.Y,
		"z":        gravity.Z,
		"rotation": gravity.Rotation(),
	}).Debug("orientation changed")
}
