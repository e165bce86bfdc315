package adapter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "formprobe.dev/pkg/formprobe/internal/model"
)

func TestModeRunner_StreamsChildOutput(t *testing.T) {
	runner := NewLocalModeRunnerAdapter(10 * time.Second)

	var out bytes.Buffer

	err := runner.RunMode(context.Background(), ModeRunArgs{
		Binary:      "echo",
		Mode:        m.ModeBaseline,
		ScenarioDir: "./scenarios",
		ReportPath:  "r.yaml",
		Stdout:      &out,
	})
	require.NoError(t, err)

	assert.Equal(t, "baseline --scenarios ./scenarios --report r.yaml\n", out.String())
}

func TestModeRunner_TeesIntoCaptureFile(t *testing.T) {
	runner := NewLocalModeRunnerAdapter(10 * time.Second)
	capture := filepath.Join(t.TempDir(), "baseline.log")

	var out bytes.Buffer

	err := runner.RunMode(context.Background(), ModeRunArgs{
		Binary:      "echo",
		Mode:        m.ModeTransformed,
		ScenarioDir: "s",
		ReportPath:  "r.yaml",
		CapturePath: m.Path(capture),
		Stdout:      &out,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(capture)
	require.NoError(t, err)
	assert.Equal(t, out.String(), string(data))
}

func TestModeRunner_MissingBinary(t *testing.T) {
	runner := NewLocalModeRunnerAdapter(time.Second)

	err := runner.RunMode(context.Background(), ModeRunArgs{
		Binary:      "formprobe-does-not-exist",
		Mode:        m.ModeBaseline,
		ScenarioDir: "s",
		ReportPath:  "r.yaml",
	})
	assert.Error(t, err)
}

func TestModeRunner_NonZeroExitIsError(t *testing.T) {
	runner := NewLocalModeRunnerAdapter(10 * time.Second)

	err := runner.RunMode(context.Background(), ModeRunArgs{
		Binary:      "false",
		Mode:        m.ModeBaseline,
		ScenarioDir: "s",
		ReportPath:  "r.yaml",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "baseline mode execution failed")
}

func TestModeRunner_CancelledContext(t *testing.T) {
	runner := NewLocalModeRunnerAdapter(10 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runner.RunMode(ctx, ModeRunArgs{
		Binary:      "echo",
		Mode:        m.ModeBaseline,
		ScenarioDir: "s",
		ReportPath:  "r.yaml",
	})
	assert.Error(t, err)
}
