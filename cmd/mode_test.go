package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "formprobe.dev/pkg/formprobe/internal/model"
)

func TestModeCmd_ExplicitReportPath(t *testing.T) {
	fake := swapWorkflow(t)

	cmd := newTestRootCmd(newModeCmd(m.ModeBaseline))
	cmd.SetArgs([]string{
		"baseline",
		"--scenarios", "./fixtures",
		"--report", "/tmp/baseline.yaml",
		"--event-log", "/tmp/events.log",
	})

	require.NoError(t, cmd.Execute())
	require.NotNil(t, fake.modeArgs)

	assert.Equal(t, m.ModeBaseline, fake.modeArgs.Mode)
	assert.Equal(t, m.Path("./fixtures"), fake.modeArgs.ScenarioDir)
	assert.Equal(t, m.Path("/tmp/baseline.yaml"), fake.modeArgs.ReportPath)
	assert.Equal(t, m.Path("/tmp/events.log"), fake.modeArgs.EventLogPath)
	assert.Equal(t, defaultWaitTimeout, fake.modeArgs.WaitTimeout)
}

func TestModeCmd_DefaultReportPath(t *testing.T) {
	fake := swapWorkflow(t)
	outputDir := filepath.Join(t.TempDir(), "reports")

	cmd := newTestRootCmd(newModeCmd(m.ModeTransformed))
	cmd.SetArgs([]string{"transformed", "--scenarios", "./fixtures", "-o", outputDir})

	require.NoError(t, cmd.Execute())
	require.NotNil(t, fake.modeArgs)

	assert.Equal(t, m.ModeTransformed, fake.modeArgs.Mode)
	assert.Equal(t, m.Path(outputDir+"/transformed.yaml"), fake.modeArgs.ReportPath)
	assert.Empty(t, fake.modeArgs.EventLogPath)
	assert.DirExists(t, outputDir)
}

func TestModeCmd_RejectsPositionalArgs(t *testing.T) {
	swapWorkflow(t)

	cmd := newTestRootCmd(newModeCmd(m.ModeBaseline))
	cmd.SetArgs([]string{"baseline", "extra"})

	assert.Error(t, cmd.Execute())
}
