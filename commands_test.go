// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		day       string
		wantStart time.Time
		wantErr   bool
	}{
		{"", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), false},
		{"today", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), false},
		{"yesterday", time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), false},
		{"2025-01-01", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"2025-13-01", time.Time{}, true},
		{"last week", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			window, err := parseDay(tt.day, now)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseDay(%q) expected error", tt.day)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDay(%q) error = %v", tt.day, err)
			}
			if !window.Start.Equal(tt.wantStart) {
				t.Errorf("parseDay(%q).Start = %v, expected %v", tt.day, window.Start, tt.wantStart)
			}
			if !window.End.Equal(tt.wantStart.AddDate(0, 0, 1)) {
				t.Errorf("parseDay(%q).End = %v, expected next midnight", tt.day, window.End)
			}
		})
	}
}

func TestGoalAndStepsCommands(t *testing.T) {
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", t.TempDir()+"/cli.db")
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "error")

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		root := newRootCmd()
		root.SetOut(&out)
		root.SetArgs(args)
		err := root.Execute()
		return out.String(), err
	}

	if out, err := run("goal", "set", "4000"); err != nil || !strings.Contains(out, "daily goal set to 4000") {
		t.Fatalf("goal set = %q, %v", out, err)
	}
	if out, err := run("goal", "get"); err != nil || strings.TrimSpace(out) != "4000" {
		t.Errorf("goal get = %q, %v, expected 4000", out, err)
	}
	if _, err := run("goal", "set", "12.5"); err == nil {
		t.Error("goal set 12.5 expected error")
	}

	out, err := run("steps", "--day", "yesterday")
	if err != nil {
		t.Fatalf("steps error = %v", err)
	}
	if !strings.Contains(out, ": 0 steps") || !strings.Contains(out, "4000") {
		t.Errorf("steps output = %q, expected zero steps and 4000 remaining", out)
	}
}
