// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package history keeps the pedometer's own record of step increments, the
// data day-bounded step queries are answered from.
package history

import (
	"context"
	"time"
)

// DefaultRetention is how long samples are kept before Prune drops them.
const DefaultRetention = 7 * 24 * time.Hour

// Sample is one pedometer increment.
type Sample struct {
	At    time.Time
	Steps int
}

// Total is the result of summing samples inside a window.
type Total struct {
	Steps   int
	Samples int
}

// Store records samples and sums them over half-open windows [from, to).
type Store interface {
	Record(ctx context.Context, sample Sample) error
	Sum(ctx context.Context, from, to time.Time) (Total, error)
	// Prune deletes samples strictly before `before` and returns how many were removed.
	Prune(ctx context.Context, before time.Time) (int64, error)
}
