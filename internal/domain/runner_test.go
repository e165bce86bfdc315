package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formprobe.dev/pkg/formprobe/internal/controller"
	m "formprobe.dev/pkg/formprobe/internal/model"
	"formprobe.dev/pkg/formprobe/pkg/probe"
	"formprobe.dev/pkg/formprobe/pkg/render"
)

// quietUI is a no-op controller.UI for exercising domain logic.
type quietUI struct {
	results []m.ScenarioResult
	errors  []string
}

func (q *quietUI) Start(context.Context, ...controller.StartOption) error { return nil }
func (q *quietUI) Close(context.Context)                                  {}
func (q *quietUI) DisplayModeStart(context.Context, m.Mode, int)          {}
func (q *quietUI) DisplayModeSummary(context.Context, m.RunReport)        {}
func (q *quietUI) DisplayComparison(context.Context, m.ComparisonReport)  {}
func (q *quietUI) DisplayRegistry(context.Context, []m.ScenarioInfo)      {}

func (q *quietUI) DisplayScenarioResult(_ context.Context, result m.ScenarioResult, _, _ int) {
	q.results = append(q.results, result)
}

func (q *quietUI) DisplayHarnessError(_ context.Context, stage string, _ error) {
	q.errors = append(q.errors, stage)
}

// recordingLog collects appended results in memory.
type recordingLog struct {
	items []m.ScenarioResult
}

func (r *recordingLog) Append(result m.ScenarioResult) error {
	r.items = append(r.items, result)
	return nil
}

func testRegistry() Registry {
	return Registry{
		Hash: "h",
		Scenarios: []probe.Scenario{
			{
				ID:   "passes",
				Name: "always passes",
				Run:  func(s *render.Session) error { return nil },
			},
			{
				ID:   "times-out",
				Name: "assertion never settles",
				Run: func(s *render.Session) error {
					return &render.TimeoutError{After: time.Second, Err: errors.New("text mismatch")}
				},
			},
			{
				ID:   "crashes",
				Name: "panics mid-body",
				Run:  func(s *render.Session) error { panic("boom") },
			},
			{
				ID:         "misuses-api",
				Name:       "returns a non-timeout error",
				Workaround: true,
				PairID:     "passes",
				Run:        func(s *render.Session) error { return errors.New("button \"x\" has no handler") },
			},
		},
	}
}

func TestRunner_ClassifiesOutcomes(t *testing.T) {
	ui := &quietUI{}
	rec := &recordingLog{}

	report := NewRunner(ui, rec).Run(context.Background(), testRegistry(), m.ModeTransformed)

	require.Len(t, report.Results, 4)
	assert.Equal(t, m.ModeTransformed, report.Mode)
	assert.Equal(t, "h", report.RegistryHash)
	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.FinishedAt.Before(report.StartedAt))

	byID := report.ByID()

	assert.Equal(t, m.OutcomePass, byID["passes"].Outcome)
	assert.Equal(t, m.FailureNone, byID["passes"].FailureKind)

	assert.Equal(t, m.OutcomeFail, byID["times-out"].Outcome)
	assert.Equal(t, m.FailureAssertion, byID["times-out"].FailureKind)

	assert.Equal(t, m.OutcomeFail, byID["crashes"].Outcome)
	assert.Equal(t, m.FailureCrash, byID["crashes"].FailureKind)
	assert.Contains(t, byID["crashes"].Detail, "boom")

	assert.Equal(t, m.FailureCrash, byID["misuses-api"].FailureKind)
	assert.True(t, byID["misuses-api"].Workaround)
	assert.Equal(t, "passes", byID["misuses-api"].PairID)
}

func TestRunner_FailuresDoNotAbortSuite(t *testing.T) {
	ui := &quietUI{}

	report := NewRunner(ui, nil).Run(context.Background(), testRegistry(), m.ModeBaseline)

	assert.Equal(t, []string{"passes", "times-out", "crashes", "misuses-api"}, report.ScenarioIDs())
	assert.Equal(t, 1, report.PassCount())
	assert.Equal(t, 3, report.FailCount())
}

func TestRunner_StreamsIntoRecorder(t *testing.T) {
	rec := &recordingLog{}

	report := NewRunner(&quietUI{}, rec).Run(context.Background(), testRegistry(), m.ModeBaseline)

	require.Len(t, rec.items, len(report.Results))
	assert.Equal(t, report.Results, rec.items)
}

func TestRunner_ReportsProgressThroughUI(t *testing.T) {
	ui := &quietUI{}

	NewRunner(ui, nil).Run(context.Background(), testRegistry(), m.ModeBaseline)

	require.Len(t, ui.results, 4)
	assert.Equal(t, "passes", ui.results[0].ScenarioID)
}

func TestRunner_CancelledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := NewRunner(&quietUI{}, nil).Run(ctx, testRegistry(), m.ModeBaseline)

	assert.Empty(t, report.Results)
}
