package controller

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "formprobe.dev/pkg/formprobe/internal/model"
)

const (
	// ANSI color codes for de-emphasized rows (dark gray, faint).
	grayColor  = "\033[2;90m"
	resetColor = "\033[0m"

	progressBarWidth = 40
)

// TUI implements UI with Bubble Tea rendering for terminal sessions.
type TUI struct {
	cmd *cobra.Command
	bar progress.Model
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = progressBarWidth

	return &TUI{cmd: cmd, bar: bar}
}

// Start initializes the UI.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	cfg := StartConfig{}
	for _, opt := range options {
		opt(&cfg)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	var b strings.Builder

	renderBanner(&b)

	if cfg.mode == ModeCombined {
		b.WriteString("  🔁 Combined run: baseline first, then transformed\n\n")
	}

	_, err := fmt.Fprint(p.cmd.OutOrStdout(), b.String())

	return err
}

// Close finalizes the UI (no-op for TUI).
func (p *TUI) Close(ctx context.Context) {
	_ = ctx
}

// DisplayModeStart announces a suite execution.
func (p *TUI) DisplayModeStart(ctx context.Context, mode m.Mode, total int) {
	if ctx.Err() != nil {
		return
	}

	p.printf("  ▶ %s mode: %d scenario(s)\n", mode, total)
}

// DisplayScenarioResult shows one scenario's outcome with a running
// progress bar.
func (p *TUI) DisplayScenarioResult(ctx context.Context, result m.ScenarioResult, index, total int) {
	if ctx.Err() != nil {
		return
	}

	icon := "✓"
	if result.Outcome == m.OutcomeFail {
		icon = "✗"
	}

	frac := 0.0
	if total > 0 {
		frac = float64(index) / float64(total)
	}

	p.printf("  %s %s %s\n", p.bar.ViewAs(frac), icon, result.ScenarioID)

	if result.Outcome == m.OutcomeFail && result.Detail != "" {
		p.printf("        %s%s: %s%s\n", grayColor, result.FailureKind, result.Detail, resetColor)
	}
}

// DisplayModeSummary prints one mode's pass/fail totals.
func (p *TUI) DisplayModeSummary(ctx context.Context, report m.RunReport) {
	if ctx.Err() != nil {
		return
	}

	p.printf("\n  📊 %s: %d passed, %d failed of %d\n\n",
		report.Mode, report.PassCount(), report.FailCount(), len(report.Results))
}

// DisplayComparison shows the dual-mode verdict: which scenarios pass
// untransformed but fail transformed.
func (p *TUI) DisplayComparison(ctx context.Context, report m.ComparisonReport) {
	if ctx.Err() != nil {
		return
	}

	var b strings.Builder

	b.WriteString("  🧪 Comparison:\n\n")
	fmt.Fprintf(&b, "  %-12s pass %3d  fail %3d\n",
		m.ModeBaseline, report.BaselinePass, report.BaselineFail)
	fmt.Fprintf(&b, "  %-12s pass %3d  fail %3d\n\n",
		m.ModeTransformed, report.TransformedPass, report.TransformedFail)

	if len(report.Divergent) == 0 {
		b.WriteString("  ✅ No divergent scenarios\n")
	} else {
		fmt.Fprintf(&b, "  ⚠️  %d divergent scenario(s):\n", len(report.Divergent))

		for _, d := range report.Divergent {
			fmt.Fprintf(&b, "    ✗ %s (%s): %s → %s\n", d.ScenarioID, d.Name, d.Baseline, d.Transformed)
		}
	}

	if len(report.BrokenInBoth) > 0 {
		fmt.Fprintf(&b, "\n  %s%d scenario(s) broken in both modes:%s\n", grayColor, len(report.BrokenInBoth), resetColor)

		for _, id := range report.BrokenInBoth {
			fmt.Fprintf(&b, "    %s%s%s\n", grayColor, id, resetColor)
		}
	}

	p.printf("%s", b.String())
}

// DisplayRegistry shows the scenario list, paginating through a Bubble
// Tea program when it does not fit on screen.
func (p *TUI) DisplayRegistry(ctx context.Context, scenarios []m.ScenarioInfo) {
	if ctx.Err() != nil {
		return
	}

	model := newRegistryModel(scenarios)

	out := p.cmd.OutOrStdout()

	if f, ok := out.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	if !model.needsPagination() {
		_, _ = fmt.Fprint(out, model.View())
		return
	}

	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		_, _ = fmt.Fprint(out, model.View())
	}
}

// DisplayHarnessError reports a failure of the harness itself.
func (p *TUI) DisplayHarnessError(ctx context.Context, stage string, err error) {
	if ctx.Err() != nil {
		return
	}

	p.printf("  💥 harness error (%s): %v\n", stage, err)
}

func (p *TUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.cmd.OutOrStdout(), format, args...)
}

func renderBanner(b *strings.Builder) {
	b.WriteString("╔════════════════════════════════════════════════════════════════╗\n")
	b.WriteString("║                Formprobe - Compatibility Harness               ║\n")
	b.WriteString("╚════════════════════════════════════════════════════════════════╝\n\n")
}

// registryModel is the Bubble Tea model for the scenario list.
type registryModel struct {
	scenarios []m.ScenarioInfo
	height    int
	width     int
	offset    int
	quitting  bool
}

func newRegistryModel(scenarios []m.ScenarioInfo) registryModel {
	return registryModel{scenarios: scenarios}
}

func (rm registryModel) Init() tea.Cmd {
	return nil
}

func (rm registryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.height = msg.Height
		rm.width = msg.Width

		return rm, nil

	case tea.KeyMsg:
		return rm.handleKeyPress(msg)
	}

	return rm, nil
}

//nolint:exhaustive // We only handle specific navigation keys
func (rm registryModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		rm.quitting = true
		return rm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		rm.quitting = true
		return rm, tea.Quit

	case "down", "j":
		rm.offset++
		if rm.offset > rm.maxOffset() {
			rm.offset = rm.maxOffset()
		}

		return rm, nil

	case "up", "k":
		rm.offset--
		if rm.offset < 0 {
			rm.offset = 0
		}

		return rm, nil

	case "g", "home":
		rm.offset = 0
		return rm, nil

	case "G", "end":
		rm.offset = rm.maxOffset()
		return rm, nil

	case "d", "pgdown":
		rm.offset += rm.itemsPerPage()
		if rm.offset > rm.maxOffset() {
			rm.offset = rm.maxOffset()
		}

		return rm, nil

	case "u", "pgup":
		rm.offset -= rm.itemsPerPage()
		if rm.offset < 0 {
			rm.offset = 0
		}

		return rm, nil
	}

	return rm, nil
}

// itemsPerPage calculates how many scenarios fit on screen.
func (rm registryModel) itemsPerPage() int {
	if rm.height == 0 {
		return 10
	}
	// Reserved lines:
	// - Banner box: 4 lines
	// - Title + blank: 2 lines
	// - Total line: 2 lines
	// - Footer (pagination + help): 3 lines
	// - Top margin: 1 line
	reserved := 12

	available := rm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

func (rm registryModel) maxOffset() int {
	perPage := rm.itemsPerPage()
	if perPage <= 0 {
		return 0
	}

	maxOff := len(rm.scenarios) - perPage
	if maxOff < 0 {
		return 0
	}

	return maxOff
}

func (rm registryModel) needsPagination() bool {
	if len(rm.scenarios) == 0 {
		return false
	}

	return len(rm.scenarios) > rm.itemsPerPage() && rm.height > 0
}

func (rm registryModel) View() string {
	var b strings.Builder

	renderBanner(&b)

	if len(rm.scenarios) == 0 {
		b.WriteString("  📭 No scenarios registered\n")
		return b.String()
	}

	rm.renderList(&b)

	return b.String()
}

func (rm registryModel) renderList(b *strings.Builder) {
	total := len(rm.scenarios)

	b.WriteString("  📋 Registered scenarios:\n\n")

	itemsPerPage := rm.itemsPerPage()
	needsPagination := rm.needsPagination()

	start := rm.offset

	end := start + itemsPerPage
	if end > total {
		end = total
	}

	if start >= total {
		start = total - 1
		if start < 0 {
			start = 0
		}
	}

	display := rm.scenarios
	if needsPagination {
		display = rm.scenarios[start:end]
	}

	for _, sc := range display {
		if sc.Workaround {
			fmt.Fprintf(b, "  %s%s: %s (workaround for %s)%s\n",
				grayColor, sc.ID, sc.Name, sc.PairID, resetColor)
		} else {
			fmt.Fprintf(b, "  %s: %s\n", sc.ID, sc.Name)
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(b, "  📊 Total: %d scenario(s)\n", total)

	if needsPagination {
		b.WriteString("\n")

		currentPage := (rm.offset / itemsPerPage) + 1
		totalPages := (total + itemsPerPage - 1) / itemsPerPage
		fmt.Fprintf(b, "  Page %d/%d | Showing %d-%d of %d\n",
			currentPage, totalPages, start+1, end, total)
		b.WriteString("  ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit\n")
	}
}
