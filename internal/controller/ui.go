// Package controller provides output adapters for displaying metamorphic
// testing progress and results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "metamorph.dev/pkg/metamorph/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeEstimate StartMode = iota
	ModeTest
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithEstimateMode sets the UI to estimation mode.
func WithEstimateMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeEstimate
	}
}

// WithTestMode sets the UI to sweep execution mode.
func WithTestMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeTest
	}
}

// WithViewMode sets the UI to saved report browsing mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

func newStartConfig(options []StartOption) StartConfig {
	config := StartConfig{mode: ModeTest}
	for _, option := range options {
		option(&config)
	}

	return config
}

// UI defines the interface for displaying sweeps and their reports.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayEstimation(ctx context.Context, estimates []m.Estimate, err error) error
	DisplayConcurrencyInfo(ctx context.Context, threads int, sweeps int)
	DisplayUnitStarted(ctx context.Context, label string, strategy string, unit int)
	DisplayReport(ctx context.Context, report m.Report)
	DisplayViolations(ctx context.Context, report m.Report)
	DisplaySummary(ctx context.Context, reports []m.Report, passRate float64)
}

// NewUI picks the interactive UI when attached to a terminal.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
