package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "formprobe.dev/pkg/formprobe/internal/model"
)

var (
	passStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	divergedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	brokenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// SimpleUI implements UI using the cobra command's writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI (no-op for SimpleUI).
func (s *SimpleUI) Close(ctx context.Context) {
	_ = ctx
}

// DisplayModeStart announces a suite execution.
func (s *SimpleUI) DisplayModeStart(ctx context.Context, mode m.Mode, total int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Running %d scenario(s) in %s mode\n", total, mode)
}

// DisplayScenarioResult prints one scenario's outcome as it completes.
func (s *SimpleUI) DisplayScenarioResult(ctx context.Context, result m.ScenarioResult, index, total int) {
	if ctx.Err() != nil {
		return
	}

	label := passStyle.Render("pass")
	if result.Outcome == m.OutcomeFail {
		label = failStyle.Render(fmt.Sprintf("fail (%s)", result.FailureKind))
	}

	s.printf("[%d/%d] %s %s\n", index, total, result.ScenarioID, label)

	if result.Outcome == m.OutcomeFail && result.Detail != "" {
		s.printf("        %s\n", result.Detail)
	}
}

// DisplayModeSummary prints one mode's pass/fail counts.
func (s *SimpleUI) DisplayModeSummary(ctx context.Context, report m.RunReport) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s: %d passed, %d failed (%d scenarios)\n",
		report.Mode, report.PassCount(), report.FailCount(), len(report.Results))
}

// DisplayComparison renders the dual-mode comparison table. A scenario
// failing only in transformed mode is the expected, informative signal
// and is highlighted differently from one broken in both modes.
func (s *SimpleUI) DisplayComparison(ctx context.Context, report m.ComparisonReport) {
	if ctx.Err() != nil {
		return
	}

	s.printf("\n%s", renderComparisonTable(report))

	if len(report.Divergent) > 0 {
		s.printf("\nDivergent scenarios (work baseline, break transformed):\n")

		for _, d := range report.Divergent {
			s.printf("  %s %s (%s -> %s)\n",
				divergedStyle.Render("≠"), d.ScenarioID, d.Baseline, d.Transformed)
		}
	}

	if len(report.BrokenInBoth) > 0 {
		s.printf("\nBroken in both modes (defective scenario, not a finding):\n")

		for _, id := range report.BrokenInBoth {
			s.printf("  %s %s\n", brokenStyle.Render("✗"), id)
		}
	}
}

// DisplayRegistry lists the loaded scenarios.
func (s *SimpleUI) DisplayRegistry(ctx context.Context, scenarios []m.ScenarioInfo) {
	if ctx.Err() != nil {
		return
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"ID", "Name", "Kind", "Pairs With"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	for _, sc := range scenarios {
		kind := "probe"
		if sc.Workaround {
			kind = "workaround"
		}

		table.Append([]string{sc.ID, sc.Name, kind, sc.PairID})
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", len(scenarios)), "", "", ""})
	table.Render()

	s.printf("\n%s", buf.String())
}

// DisplayHarnessError reports a failure of the harness machinery itself,
// naming the stage that failed.
func (s *SimpleUI) DisplayHarnessError(ctx context.Context, stage string, err error) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s: %v\n", brokenStyle.Render("harness error ("+stage+")"), err)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderComparisonTable(report m.ComparisonReport) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Mode", "Pass", "Fail"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	table.Append([]string{
		string(m.ModeBaseline),
		fmt.Sprintf("%d", report.BaselinePass),
		fmt.Sprintf("%d", report.BaselineFail),
	})
	table.Append([]string{
		string(m.ModeTransformed),
		fmt.Sprintf("%d", report.TransformedPass),
		fmt.Sprintf("%d", report.TransformedFail),
	})

	table.SetFooter([]string{
		fmt.Sprintf("Scenarios %d", report.TotalScenarios),
		fmt.Sprintf("Δ %d", len(report.Divergent)),
		"",
	})
	table.Render()

	return buf.String()
}
