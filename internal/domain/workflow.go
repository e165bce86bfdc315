package domain

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"formprobe.dev/pkg/formprobe/internal/adapter"
	"formprobe.dev/pkg/formprobe/internal/controller"
	m "formprobe.dev/pkg/formprobe/internal/model"
	"formprobe.dev/pkg/formprobe/pkg/eventlog"
	"formprobe.dev/pkg/formprobe/pkg/render"
)

// ModeArgs parameterizes one single-mode suite execution.
type ModeArgs struct {
	Mode        m.Mode
	ScenarioDir m.Path
	ReportPath  m.Path

	// EventLogPath, when set, streams each result to an append-only log
	// as it is produced.
	EventLogPath m.Path

	// WaitTimeout, when positive, overrides the default settle timeout on
	// every scenario session.
	WaitTimeout time.Duration
}

// CompareArgs parameterizes the combined dual-mode run.
type CompareArgs struct {
	ScenarioDir m.Path

	// ReportsDir receives the two mode reports and, when SaveComparison
	// is set, the comparison itself.
	ReportsDir m.Path

	// CaptureDir, when set, receives a copy of each child's console
	// output.
	CaptureDir m.Path

	// Binary is the executable to re-invoke per mode.
	Binary string

	// Stdout receives the live child output streams.
	Stdout io.Writer

	SaveComparison bool
}

// ListArgs parameterizes the registry listing.
type ListArgs struct {
	ScenarioDir m.Path
}

// ViewArgs names the two saved reports to re-compare and display.
type ViewArgs struct {
	BaselinePath    m.Path
	TransformedPath m.Path
}

// Workflow is the use-case layer the CLI commands call into.
type Workflow interface {
	// RunMode loads the registry under one mode's resolver, executes the
	// suite and saves the report. This is what each isolated child
	// process runs.
	RunMode(ctx context.Context, args ModeArgs) (m.RunReport, error)

	// RunBoth executes both modes in separate child processes, compares
	// the two reports and displays the verdict.
	RunBoth(ctx context.Context, args CompareArgs) (m.ComparisonReport, error)

	// List loads the registry without executing anything and displays it.
	List(ctx context.Context, args ListArgs) error

	// View re-compares two saved reports and displays the result.
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	fs          adapter.SourceFSAdapter
	transformer adapter.Transformer
	store       adapter.ReportStore
	modeRunner  adapter.ModeRunnerAdapter
	ui          controller.UI
	opts        m.TransformOptions
}

// NewWorkflow constructs a Workflow backed by the provided adapters.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	transformer adapter.Transformer,
	store adapter.ReportStore,
	modeRunner adapter.ModeRunnerAdapter,
	ui controller.UI,
	opts m.TransformOptions,
) Workflow {
	return &workflow{
		fs:          fs,
		transformer: transformer,
		store:       store,
		modeRunner:  modeRunner,
		ui:          ui,
		opts:        opts,
	}
}

func (w *workflow) RunMode(ctx context.Context, args ModeArgs) (m.RunReport, error) {
	registry, err := w.loadRegistry(ctx, args.ScenarioDir, args.Mode)
	if err != nil {
		w.ui.DisplayHarnessError(ctx, "load", err)
		return m.RunReport{}, err
	}

	var recorder Recorder

	if args.EventLogPath != "" {
		log, logErr := eventlog.New[m.ScenarioResult](string(args.EventLogPath))
		if logErr != nil {
			w.ui.DisplayHarnessError(ctx, "eventlog", logErr)
			return m.RunReport{}, logErr
		}

		defer func() {
			if closeErr := log.Close(); closeErr != nil {
				slog.Error("failed to close event log", "error", closeErr)
			}
		}()

		recorder = log
	}

	var sessionOpts []render.SessionOption
	if args.WaitTimeout > 0 {
		sessionOpts = append(sessionOpts, render.WithWaitTimeout(args.WaitTimeout))
	}

	report := NewRunner(w.ui, recorder, sessionOpts...).Run(ctx, registry, args.Mode)

	if err := w.store.SaveReport(args.ReportPath, report); err != nil {
		w.ui.DisplayHarnessError(ctx, "save report", err)
		return m.RunReport{}, err
	}

	slog.Info("mode run complete",
		"mode", args.Mode, "run_id", report.RunID,
		"passed", report.PassCount(), "failed", report.FailCount())

	return report, nil
}

func (w *workflow) RunBoth(ctx context.Context, args CompareArgs) (m.ComparisonReport, error) {
	if err := w.fs.MkdirAll(args.ReportsDir); err != nil {
		w.ui.DisplayHarnessError(ctx, "prepare reports dir", err)
		return m.ComparisonReport{}, fmt.Errorf("prepare reports dir: %w", err)
	}

	if args.CaptureDir != "" {
		if err := w.fs.MkdirAll(args.CaptureDir); err != nil {
			w.ui.DisplayHarnessError(ctx, "prepare capture dir", err)
			return m.ComparisonReport{}, fmt.Errorf("prepare capture dir: %w", err)
		}
	}

	baseline, err := w.runChildMode(ctx, args, m.ModeBaseline)
	if err != nil {
		return m.ComparisonReport{}, err
	}

	transformed, err := w.runChildMode(ctx, args, m.ModeTransformed)
	if err != nil {
		return m.ComparisonReport{}, err
	}

	comparison, err := Compare(baseline, transformed)
	if err != nil {
		w.ui.DisplayHarnessError(ctx, "compare", err)
		return m.ComparisonReport{}, err
	}

	w.ui.DisplayComparison(ctx, comparison)

	if args.SaveComparison {
		path := w.reportPath(args.ReportsDir, "comparison.yaml")
		if err := w.store.SaveComparison(path, comparison); err != nil {
			w.ui.DisplayHarnessError(ctx, "save comparison", err)
			return m.ComparisonReport{}, err
		}
	}

	return comparison, nil
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	registry, err := w.loadRegistry(ctx, args.ScenarioDir, m.ModeBaseline)
	if err != nil {
		w.ui.DisplayHarnessError(ctx, "load", err)
		return err
	}

	w.ui.DisplayRegistry(ctx, registry.Infos())

	return nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	baseline, err := w.store.LoadReport(args.BaselinePath)
	if err != nil {
		w.ui.DisplayHarnessError(ctx, "load baseline report", err)
		return err
	}

	transformed, err := w.store.LoadReport(args.TransformedPath)
	if err != nil {
		w.ui.DisplayHarnessError(ctx, "load transformed report", err)
		return err
	}

	comparison, err := Compare(baseline, transformed)
	if err != nil {
		w.ui.DisplayHarnessError(ctx, "compare", err)
		return err
	}

	w.ui.DisplayModeSummary(ctx, baseline)
	w.ui.DisplayModeSummary(ctx, transformed)
	w.ui.DisplayComparison(ctx, comparison)

	return nil
}

// loadRegistry builds the mode's environment and loads the suite through
// it. The baseline environment gets no gate at all.
func (w *workflow) loadRegistry(ctx context.Context, dir m.Path, mode m.Mode) (Registry, error) {
	var gate *Gate

	if mode == m.ModeTransformed {
		g, err := NewGate(dir, w.fs, w.transformer, w.opts)
		if err != nil {
			return Registry{}, err
		}

		gate = g
	}

	loader := NewInterpLoader(w.fs, dir, ResolverForMode(mode, gate))

	return loader.Load(ctx)
}

// runChildMode executes one mode in an isolated child process and reads
// back the report it saved.
func (w *workflow) runChildMode(ctx context.Context, args CompareArgs, mode m.Mode) (m.RunReport, error) {
	reportPath := w.reportPath(args.ReportsDir, string(mode)+".yaml")

	runArgs := adapter.ModeRunArgs{
		Binary:      args.Binary,
		Mode:        mode,
		ScenarioDir: args.ScenarioDir,
		ReportPath:  reportPath,
		Stdout:      args.Stdout,
	}

	if args.CaptureDir != "" {
		runArgs.CapturePath = w.reportPath(args.CaptureDir, string(mode)+".log")
	}

	if err := w.modeRunner.RunMode(ctx, runArgs); err != nil {
		w.ui.DisplayHarnessError(ctx, string(mode)+" run", err)
		return m.RunReport{}, err
	}

	report, err := w.store.LoadReport(reportPath)
	if err != nil {
		w.ui.DisplayHarnessError(ctx, "load "+string(mode)+" report", err)
		return m.RunReport{}, err
	}

	return report, nil
}

func (w *workflow) reportPath(dir m.Path, name string) m.Path {
	return m.Path(filepath.Join(string(dir), name))
}
