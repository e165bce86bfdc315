package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formprobe.dev/pkg/formprobe/internal/adapter"
	m "formprobe.dev/pkg/formprobe/internal/model"
)

// fakeModeRunner stands in for the child process: instead of re-invoking
// the binary it writes a canned report where the child would have.
type fakeModeRunner struct {
	store   adapter.ReportStore
	reports map[m.Mode]m.RunReport
	calls   []m.Mode
	err     error
}

func (f *fakeModeRunner) RunMode(_ context.Context, args adapter.ModeRunArgs) error {
	f.calls = append(f.calls, args.Mode)
	if f.err != nil {
		return f.err
	}

	return f.store.SaveReport(args.ReportPath, f.reports[args.Mode])
}

func newTestWorkflow(runner adapter.ModeRunnerAdapter, ui *quietUI) Workflow {
	return NewWorkflow(
		adapter.NewLocalSourceFSAdapter(),
		adapter.NewMemoTransformer(),
		adapter.NewReportStore(),
		runner,
		ui,
		m.TransformOptions{TargetVersion: "go1.25"},
	)
}

func cannedReport(mode m.Mode, outcome m.Outcome) m.RunReport {
	r := m.RunReport{RunID: "run-" + string(mode), Mode: mode, RegistryHash: "h"}
	r.Results = []m.ScenarioResult{{ScenarioID: "s", Name: "s", Mode: mode, Outcome: outcome}}

	if outcome == m.OutcomeFail {
		r.Results[0].FailureKind = m.FailureAssertion
	}

	return r
}

func TestWorkflow_RunModeSavesReport(t *testing.T) {
	dir := writeFixtures(t, map[string]string{"a.go": fixtureOne})
	reportPath := m.Path(filepath.Join(t.TempDir(), "baseline.yaml"))

	ui := &quietUI{}
	wf := newTestWorkflow(&fakeModeRunner{}, ui)

	report, err := wf.RunMode(context.Background(), ModeArgs{
		Mode:        m.ModeBaseline,
		ScenarioDir: dir,
		ReportPath:  reportPath,
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Empty(t, ui.errors)

	saved, err := adapter.NewReportStore().LoadReport(reportPath)
	require.NoError(t, err)
	assert.Equal(t, report.RunID, saved.RunID)
	assert.Equal(t, report.ScenarioIDs(), saved.ScenarioIDs())
}

func TestWorkflow_RunModeTransformedLoadsThroughGate(t *testing.T) {
	dir := writeFixtures(t, map[string]string{"a.go": fixtureOne})
	reportPath := m.Path(filepath.Join(t.TempDir(), "transformed.yaml"))

	report, err := newTestWorkflow(&fakeModeRunner{}, &quietUI{}).RunMode(context.Background(), ModeArgs{
		Mode:        m.ModeTransformed,
		ScenarioDir: dir,
		ReportPath:  reportPath,
	})
	require.NoError(t, err)
	assert.Equal(t, m.ModeTransformed, report.Mode)
}

func TestWorkflow_RunModeStreamsEventLog(t *testing.T) {
	dir := writeFixtures(t, map[string]string{"a.go": fixtureOne})
	tmp := t.TempDir()
	logPath := filepath.Join(tmp, "events.log")

	_, err := newTestWorkflow(&fakeModeRunner{}, &quietUI{}).RunMode(context.Background(), ModeArgs{
		Mode:         m.ModeBaseline,
		ScenarioDir:  dir,
		ReportPath:   m.Path(filepath.Join(tmp, "baseline.yaml")),
		EventLogPath: m.Path(logPath),
	})
	require.NoError(t, err)

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWorkflow_RunModeBadScenarioDir(t *testing.T) {
	ui := &quietUI{}

	_, err := newTestWorkflow(&fakeModeRunner{}, ui).RunMode(context.Background(), ModeArgs{
		Mode:        m.ModeBaseline,
		ScenarioDir: m.Path(filepath.Join(t.TempDir(), "missing")),
		ReportPath:  "unused.yaml",
	})

	require.Error(t, err)
	assert.Equal(t, []string{"load"}, ui.errors)
}

func TestWorkflow_RunBothComparesChildReports(t *testing.T) {
	store := adapter.NewReportStore()
	runner := &fakeModeRunner{
		store: store,
		reports: map[m.Mode]m.RunReport{
			m.ModeBaseline:    cannedReport(m.ModeBaseline, m.OutcomePass),
			m.ModeTransformed: cannedReport(m.ModeTransformed, m.OutcomeFail),
		},
	}

	reportsDir := m.Path(t.TempDir())
	ui := &quietUI{}

	comparison, err := newTestWorkflow(runner, ui).RunBoth(context.Background(), CompareArgs{
		ScenarioDir:    "./scenarios",
		ReportsDir:     reportsDir,
		Binary:         "formprobe",
		SaveComparison: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []m.Mode{m.ModeBaseline, m.ModeTransformed}, runner.calls)
	require.Len(t, comparison.Divergent, 1)
	assert.Equal(t, "s", comparison.Divergent[0].ScenarioID)

	saved, err := os.ReadFile(filepath.Join(string(reportsDir), "comparison.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(saved), "run-baseline")
}

func TestWorkflow_RunBothAbortsOnChildFailure(t *testing.T) {
	runner := &fakeModeRunner{err: errors.New("child exploded")}
	ui := &quietUI{}

	_, err := newTestWorkflow(runner, ui).RunBoth(context.Background(), CompareArgs{
		ScenarioDir: "./scenarios",
		ReportsDir:  m.Path(t.TempDir()),
		Binary:      "formprobe",
	})

	require.Error(t, err)
	assert.Equal(t, []m.Mode{m.ModeBaseline}, runner.calls, "transformed mode must not start")
	assert.Equal(t, []string{"baseline run"}, ui.errors)
}

func TestWorkflow_RunBothRejectsMismatchedRegistries(t *testing.T) {
	store := adapter.NewReportStore()
	transformed := cannedReport(m.ModeTransformed, m.OutcomePass)
	transformed.RegistryHash = "other"

	runner := &fakeModeRunner{
		store: store,
		reports: map[m.Mode]m.RunReport{
			m.ModeBaseline:    cannedReport(m.ModeBaseline, m.OutcomePass),
			m.ModeTransformed: transformed,
		},
	}

	ui := &quietUI{}

	_, err := newTestWorkflow(runner, ui).RunBoth(context.Background(), CompareArgs{
		ScenarioDir: "./scenarios",
		ReportsDir:  m.Path(t.TempDir()),
		Binary:      "formprobe",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry mismatch")
	assert.Equal(t, []string{"compare"}, ui.errors)
}

func TestWorkflow_List(t *testing.T) {
	dir := writeFixtures(t, map[string]string{"a.go": fixtureOne})

	require.NoError(t, newTestWorkflow(&fakeModeRunner{}, &quietUI{}).List(context.Background(), ListArgs{
		ScenarioDir: dir,
	}))
}

func TestWorkflow_ViewRecomparesSavedReports(t *testing.T) {
	store := adapter.NewReportStore()
	dir := t.TempDir()

	basePath := m.Path(filepath.Join(dir, "baseline.yaml"))
	transPath := m.Path(filepath.Join(dir, "transformed.yaml"))
	require.NoError(t, store.SaveReport(basePath, cannedReport(m.ModeBaseline, m.OutcomePass)))
	require.NoError(t, store.SaveReport(transPath, cannedReport(m.ModeTransformed, m.OutcomeFail)))

	ui := &quietUI{}

	require.NoError(t, newTestWorkflow(&fakeModeRunner{}, ui).View(context.Background(), ViewArgs{
		BaselinePath:    basePath,
		TransformedPath: transPath,
	}))
	assert.Empty(t, ui.errors)
}

func TestWorkflow_ViewMissingReport(t *testing.T) {
	ui := &quietUI{}

	err := newTestWorkflow(&fakeModeRunner{}, ui).View(context.Background(), ViewArgs{
		BaselinePath:    "missing-baseline.yaml",
		TransformedPath: "missing-transformed.yaml",
	})

	require.Error(t, err)
	assert.Equal(t, []string{"load baseline report"}, ui.errors)
}
