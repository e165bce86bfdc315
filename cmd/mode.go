package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"formprobe.dev/pkg/formprobe/internal/domain"
	m "formprobe.dev/pkg/formprobe/internal/model"
)

// baselineCmd and transformedCmd execute one mode's suite in the current
// process. The combined run command re-invokes the binary with one of
// these per mode; they are also usable directly for debugging a single
// mode.
var baselineCmd = newModeCmd(m.ModeBaseline)
var transformedCmd = newModeCmd(m.ModeTransformed)

func newModeCmd(mode m.Mode) *cobra.Command {
	var reportFlag string
	var eventLogFlag string

	cmd := &cobra.Command{
		Use:   string(mode),
		Short: fmt.Sprintf("Run the scenario suite in %s mode", mode),
		Long: fmt.Sprintf(`Load the scenario files, execute every scenario in %s mode and save
the run report. Scenario failures are recorded in the report; only
harness failures exit non-zero.`, mode),
		Args: cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			report := m.Path(reportFlag)
			if report == "" {
				report = m.Path(fmt.Sprintf("%s/%s.yaml", reportsDir(), mode))

				if err := fsAdapter.MkdirAll(reportsDir()); err != nil {
					return fmt.Errorf("prepare reports dir: %w", err)
				}
			}

			_, err := workflow.RunMode(context.Background(), domain.ModeArgs{
				Mode:         mode,
				ScenarioDir:  scenarioDir(),
				ReportPath:   report,
				EventLogPath: m.Path(eventLogFlag),
				WaitTimeout:  waitTimeout(),
			})

			return err
		},
	}

	cmd.Flags().StringVar(&reportFlag, reportFlagName, "", "report file path (default <output>/<mode>.yaml)")
	cmd.Flags().StringVar(&eventLogFlag, eventLogFlagName, "", "stream results to an append-only event log")

	return cmd
}

func init() {
	rootCmd.AddCommand(baselineCmd)
	rootCmd.AddCommand(transformedCmd)
}
