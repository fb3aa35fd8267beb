// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-step-tracker/internal/app"
	"github.com/AccelByte/extend-step-tracker/pkg/sensor"
	"github.com/AccelByte/extend-step-tracker/pkg/sensor/replay"
	"github.com/AccelByte/extend-step-tracker/pkg/settings"
	"github.com/AccelByte/extend-step-tracker/pkg/steps"

	"github.com/spf13/cobra"
)

const commandTimeout = 30 * time.Second

func newGoalCmd() *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Read or change the daily step goal"}

	goal.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the daily step goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			stores, closeStores, err := app.OpenStores(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStores()

			value, err := stores.Settings.GetInt(ctx, settings.KeyDailyGoal)
			if err != nil {
				return fmt.Errorf("failed to read daily goal: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	})

	goal.AddCommand(&cobra.Command{
		Use:   "set <steps>",
		Short: "Set the daily step goal; a running tracker picks it up when the backend supports notifications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			stores, closeStores, err := app.OpenStores(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStores()

			aggregator := steps.NewAggregator(nil, stores.Settings, nil)
			if !aggregator.SetGoalText(ctx, args[0]) {
				return fmt.Errorf("%w: %q is not a non-negative whole number", steps.ErrInvalidInput, args[0])
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "daily goal set to %d\n", aggregator.DailyGoal())
			return nil
		},
	})

	return goal
}

func newStepsCmd() *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "steps",
		Short: "Print the steps recorded for a day and the remaining steps to the goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			window, err := parseDay(day, time.Now())
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			stores, closeStores, err := app.OpenStores(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStores()

			feed := sensor.NewFeed(replay.New(nil, stores.History), sensor.InlineQueue{})
			count, err := feed.QuerySteps(ctx, window).Wait(ctx)
			if err != nil {
				return fmt.Errorf("failed to query steps: %w", err)
			}

			goal, err := stores.Settings.GetInt(ctx, settings.KeyDailyGoal)
			if err != nil {
				return fmt.Errorf("failed to read daily goal: %w", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s: %d steps\n", window.Start.Format("2006-01-02"), count)
			_, _ = fmt.Fprintln(out, steps.Remaining(goal, count).String())
			return nil
		},
	}
	cmd.Flags().StringVar(&day, "day", "today", "day to report: today|yesterday|YYYY-MM-DD")
	return cmd
}

// parseDay resolves the --day flag to a local calendar day window.
func parseDay(day string, now time.Time) (sensor.Window, error) {
	switch day {
	case "", "today":
		return sensor.Today(now), nil
	case "yesterday":
		return sensor.Yesterday(now), nil
	}

	t, err := time.ParseInLocation("2006-01-02", day, now.Location())
	if err != nil {
		return sensor.Window{}, fmt.Errorf("invalid --day %q: want today, yesterday or YYYY-MM-DD", day)
	}
	return sensor.DayWindow(t), nil
}
