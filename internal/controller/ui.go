// Package controller provides output adapters for displaying harness
// progress and comparison results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "formprobe.dev/pkg/formprobe/internal/model"
)

// StartMode defines what kind of run the UI is about to display.
type StartMode int

// Available StartMode values.
const (
	ModeSingle StartMode = iota
	ModeCombined
)

// StartOption is a functional option for the Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithSingleMode sets the UI up for one mode's suite execution.
func WithSingleMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeSingle
	}
}

// WithCombinedMode sets the UI up for the dual-mode comparison run.
func WithCombinedMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCombined
	}
}

// UI is the interface the workflow reports through. Implementations can
// use different output methods (plain text, TUI).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)

	DisplayModeStart(ctx context.Context, mode m.Mode, total int)
	DisplayScenarioResult(ctx context.Context, result m.ScenarioResult, index, total int)
	DisplayModeSummary(ctx context.Context, report m.RunReport)
	DisplayComparison(ctx context.Context, report m.ComparisonReport)
	DisplayRegistry(ctx context.Context, scenarios []m.ScenarioInfo)
	DisplayHarnessError(ctx context.Context, stage string, err error)
}

// IsTTY reports whether the file is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewUI selects the TUI when stdout is a terminal and the plain UI
// otherwise, so piped output stays machine-friendly.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}
