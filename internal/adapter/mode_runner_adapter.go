package adapter

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"golang.org/x/sync/errgroup"

	m "formprobe.dev/pkg/formprobe/internal/model"
)

// ModeRunArgs describes one child-mode execution.
type ModeRunArgs struct {
	// Binary is the formprobe executable to re-invoke, normally the
	// running binary itself.
	Binary string

	Mode        m.Mode
	ScenarioDir m.Path
	ReportPath  m.Path

	// CapturePath, when set, receives a copy of the child's raw console
	// output for later inspection.
	CapturePath m.Path

	// Stdout is the live stream target, normally the parent's stdout.
	Stdout io.Writer
}

// ModeRunnerAdapter abstracts execution of one mode in an isolated child
// process. Process isolation is what keeps the two modes' module state
// apart: nothing loaded in one mode can survive into the other.
type ModeRunnerAdapter interface {
	RunMode(ctx context.Context, args ModeRunArgs) error
}

// LocalModeRunnerAdapter provides a concrete implementation using os/exec.
type LocalModeRunnerAdapter struct {
	timeout time.Duration
}

// NewLocalModeRunnerAdapter constructs a LocalModeRunnerAdapter with the
// given per-mode timeout.
func NewLocalModeRunnerAdapter(timeout time.Duration) *LocalModeRunnerAdapter {
	return &LocalModeRunnerAdapter{timeout: timeout}
}

// RunMode spawns `binary <mode> --scenarios DIR --report FILE` and streams
// the child's combined output to args.Stdout, teeing it into the capture
// file when one is configured. A non-zero child exit is a harness error:
// scenario failures are recorded inside the child's report and never fail
// the child process.
func (a *LocalModeRunnerAdapter) RunMode(ctx context.Context, args ModeRunArgs) error {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, args.Binary,
		string(args.Mode),
		"--scenarios", string(args.ScenarioDir),
		"--report", string(args.ReportPath),
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	sink := args.Stdout
	if sink == nil {
		sink = io.Discard
	}

	var capture *os.File

	if args.CapturePath != "" {
		capture, err = os.Create(string(args.CapturePath))
		if err != nil {
			return fmt.Errorf("create capture file: %w", err)
		}

		defer func() {
			_ = capture.Close()
		}()

		sink = io.MultiWriter(sink, capture)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s mode: %w", args.Mode, err)
	}

	var group errgroup.Group

	group.Go(func() error {
		_, copyErr := io.Copy(sink, stdout)
		return copyErr
	})

	group.Go(func() error {
		_, copyErr := io.Copy(sink, stderr)
		return copyErr
	})

	if err := group.Wait(); err != nil {
		_ = cmd.Wait()
		return fmt.Errorf("stream %s mode output: %w", args.Mode, err)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%s mode execution failed: %w", args.Mode, err)
	}

	return nil
}
