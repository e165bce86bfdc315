package domain

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"formprobe.dev/pkg/formprobe/internal/controller"
	m "formprobe.dev/pkg/formprobe/internal/model"
	"formprobe.dev/pkg/formprobe/pkg/probe"
	"formprobe.dev/pkg/formprobe/pkg/render"
)

// Recorder receives each result as soon as it is produced, before the
// suite finishes. The runner streams into it so a crash mid-suite still
// leaves a record of everything that ran.
type Recorder interface {
	Append(result m.ScenarioResult) error
}

// Runner executes a loaded registry under one mode and collects the
// results into a RunReport.
type Runner interface {
	Run(ctx context.Context, registry Registry, mode m.Mode) m.RunReport
}

type runner struct {
	ui          controller.UI
	recorder    Recorder
	sessionOpts []render.SessionOption
}

// NewRunner constructs a Runner. The recorder may be nil; session options
// apply to every scenario's session.
func NewRunner(ui controller.UI, recorder Recorder, sessionOpts ...render.SessionOption) Runner {
	return &runner{ui: ui, recorder: recorder, sessionOpts: sessionOpts}
}

// Run executes every scenario sequentially in registry order. Each
// scenario gets a fresh Session; nothing is shared between them, so the
// order could not change an outcome even though it is fixed. Scenario
// failures never abort the suite.
func (r *runner) Run(ctx context.Context, registry Registry, mode m.Mode) m.RunReport {
	report := m.RunReport{
		RunID:        uuid.NewString(),
		Mode:         mode,
		StartedAt:    time.Now(),
		RegistryHash: registry.Hash,
		Results:      make([]m.ScenarioResult, 0, len(registry.Scenarios)),
	}

	total := len(registry.Scenarios)
	r.ui.DisplayModeStart(ctx, mode, total)

	for i, sc := range registry.Scenarios {
		if err := ctx.Err(); err != nil {
			slog.Warn("run cancelled", "mode", mode, "completed", i, "total", total)
			break
		}

		result := runScenario(sc, mode, r.sessionOpts)
		report.Results = append(report.Results, result)

		if r.recorder != nil {
			if err := r.recorder.Append(result); err != nil {
				slog.Error("failed to record result", "scenario", sc.ID, "error", err)
			}
		}

		r.ui.DisplayScenarioResult(ctx, result, i+1, total)
	}

	report.FinishedAt = time.Now()
	r.ui.DisplayModeSummary(ctx, report)

	return report
}

// runScenario executes one scenario body against a fresh session and
// classifies the outcome. A settle timeout is an assertion failure: the
// expected value never arrived. Any other error, and any panic, means
// the scenario itself is broken.
func runScenario(sc probe.Scenario, mode m.Mode, sessionOpts []render.SessionOption) (result m.ScenarioResult) {
	result = m.ScenarioResult{
		ScenarioID: sc.ID,
		Name:       sc.Name,
		Mode:       mode,
		Outcome:    m.OutcomePass,
		Workaround: sc.Workaround,
		PairID:     sc.PairID,
	}

	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("scenario panicked", "scenario", sc.ID, "panic", rec)
			result.Outcome = m.OutcomeFail
			result.FailureKind = m.FailureCrash
			result.Detail = fmt.Sprintf("panic: %v", rec)

			slog.Debug("panic stack", "scenario", sc.ID, "stack", string(debug.Stack()))
		}
	}()

	session := render.NewSession(sessionOpts...)

	err := sc.Run(session)
	if err == nil {
		return result
	}

	result.Outcome = m.OutcomeFail
	result.Detail = err.Error()

	if render.IsTimeout(err) {
		result.FailureKind = m.FailureAssertion
	} else {
		result.FailureKind = m.FailureCrash
	}

	return result
}
