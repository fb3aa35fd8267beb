// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package presenter

import (
	"fmt"
	"io"
	"math"

	"github.com/AccelByte/extend-step-tracker/pkg/activity"
	"github.com/AccelByte/extend-step-tracker/pkg/sensor"
	"github.com/AccelByte/extend-step-tracker/pkg/steps"

	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	goalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	metStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)
)

// Console renders status lines to a terminal.
type Console struct {
	out          io.Writer
	lastRotation float64
	rotated      bool
}

// NewConsole creates a console presenter writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) OnStepsChanged(today, yesterday int, remaining steps.RemainingSteps) {
	goal := goalStyle.Render(remaining.String())
	if remaining.GoalMet() {
		goal = metStyle.Render(remaining.String())
	}

	fmt.Fprintln(c.out, lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render("Today's Steps: "), countStyle.Render(fmt.Sprint(today)),
		mutedStyle.Render(fmt.Sprintf("  (yesterday %d)  ", yesterday)),
		goal,
	))
}

func (c *Console) OnActivityChanged(state activity.State) {
	fmt.Fprintln(c.out, labelStyle.Render("Activity: ")+countStyle.Render(state.Label()))
}

// OnOrientationChanged prints only when the rotation moves by more than a degree.
func (c *Console) OnOrientationChanged(gravity sensor.Gravity) {
	rotation := gravity.Rotation()
	if c.rotated && math.Abs(rotation-c.lastRotation) < math.Pi/180 {
		return
	}
	c.lastRotation = rotation
	c.rotated = true
	fmt.Fprintln(c.out, mutedStyle.Render(fmt.Sprintf("Rotation: %.1f°", rotation*180/math.Pi)))
}
