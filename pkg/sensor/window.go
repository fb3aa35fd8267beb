// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package sensor

import (
	"fmt"
	"time"
)

// Window is a half-open time range [Start, End) used for day-bounded step queries.
type Window struct {
	Start time.Time
	End   time.Time
}

// StartOfDay returns local midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayWindow returns the window covering the calendar day containing t.
// The end is the next local midnight, so DST days are 23 or 25 hours long.
func DayWindow(t time.Time) Window {
	start := StartOfDay(t)
	return Window{
		Start: start,
		End:   start.AddDate(0, 0, 1),
	}
}

// Today returns the window [midnightToday, midnightTomorrow).
func Today(now time.Time) Window {
	return DayWindow(now)
}

// Yesterday returns the window [midnightYesterday, midnightToday).
func Yesterday(now time.Time) Window {
	today := StartOfDay(now)
	return Window{
		Start: today.AddDate(0, 0, -1),
		End:   today,
	}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Duration returns the length of the window.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
}
