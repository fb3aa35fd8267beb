// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package activity

import (
	"github.com/AccelByte/extend-step-tracker/pkg/sensor"

	"github.com/sirupsen/logrus"
)

// Observer receives activity changes.
type Observer interface {
	OnActivityChanged(state State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(state State)

// OnActivityChanged implements Observer.
func (f ObserverFunc) OnActivityChanged(state State) {
	f(state)
}

// Classifier keeps the current activity state for one monitoring session.
// It must only be used from the update queue.
type Classifier struct {
	observer Observer
	current  State
	seen     bool
}

// NewClassifier creates a classifier reporting to observer.
func NewClassifier(observer Observer) *Classifier {
	return &Classifier{observer: observer}
}

// OnActivityEvent classifies ev and notifies the observer when the state changes.
// The first event of a session always notifies.
func (c *Classifier) OnActivityEvent(ev sensor.ActivityEvent) {
	result := Explain(ev)
	if result.Fallback {
		logrus.Debugf("activity event with no flags set, falling back to %s", result.State)
	} else {
		logrus.Debugf("activity event flags=%v classified as %s", ev.Flags(), result.State)
	}

	if c.seen && result.State == c.current {
		return
	}
	c.current = result.State
	c.seen = true

	if c.observer != nil {
		c.observer.OnActivityChanged(result.State)
	}
}

// Current returns the last classified state, Unknown before any event.
func (c *Classifier) Current() State {
	return c.current
}

// Reset forgets the session state.
func (c *Classifier) Reset() {
	c.current = Unknown
	c.seen = false
}
