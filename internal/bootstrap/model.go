// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"io"

	"github.com/AccelByte/extend-step-tracker/pkg/motion"
	"github.com/AccelByte/extend-step-tracker/pkg/presenter"
	"github.com/AccelByte/extend-step-tracker/pkg/sensor"
	"github.com/AccelByte/extend-step-tracker/pkg/settings"

	"github.com/sirupsen/logrus"
)

// InitPresenters builds the observer chain: structured logs and Prometheus
// gauges always, console lines when console is non-nil.
//
// ============================================================
// DEVELOPER: Register custom presenters here
// ============================================================
// Any type implementing motion.Observer can be appended. All
// observers are called on the update queue, one at a time.
// ============================================================
func InitPresenters(metrics *presenter.Metrics, console io.Writer) motion.Observer {
	observers := presenter.Multi{
		presenter.NewLog(logrus.StandardLogger()),
		metrics,
	}
	if console != nil {
		observers = append(observers, presenter.NewConsole(console))
	}

	logrus.Infof("initialized %d presenters", len(observers))
	return observers
}

// InitModel wires the sensor feed and the motion model onto queue.
func InitModel(platform sensor.Platform, queue sensor.Queue, store settings.Store, observer motion.Observer) *motion.Model {
	feed := sensor.NewFeed(platform, queue)
	model := motion.New(feed, store, observer)

	logrus.Info("initialized motion model")
	return model
}
