// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package sensor

import "errors"

var (
	// ErrCapabilityUnavailable means the sensor is not present or not permitted.
	// The feature is disabled, never surfaced as a failure.
	ErrCapabilityUnavailable = errors.New("sensor capability unavailable")

	// ErrQueryFailed means a historical step query errored; the result is treated as zero.
	ErrQueryFailed = errors.New("step query failed")
)
