package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"formprobe.dev/pkg/formprobe/internal/controller"
	"formprobe.dev/pkg/formprobe/internal/domain"
	m "formprobe.dev/pkg/formprobe/internal/model"
)

var runCaptureFlag bool
var runSaveFlag bool

// runCmd represents the combined run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run both modes and compare",
		Long: `Execute the scenario suite twice in isolated child processes, baseline
first and then transformed, and compare the two reports. Divergent
scenarios are listed; mismatched scenario sets are a fatal error.`,
		Args: cobra.ExactArgs(0),
		RunE: func(c *cobra.Command, _ []string) error {
			binary, err := os.Executable()
			if err != nil {
				return fmt.Errorf("locate own binary: %w", err)
			}

			ctx := context.Background()

			if err := ui.Start(ctx, controller.WithCombinedMode()); err != nil {
				return err
			}
			defer ui.Close(ctx)

			var captureDir m.Path
			if runCaptureFlag {
				captureDir = reportsDir()
			}

			_, err = workflow.RunBoth(ctx, domain.CompareArgs{
				ScenarioDir:    scenarioDir(),
				ReportsDir:     reportsDir(),
				CaptureDir:     captureDir,
				Binary:         binary,
				Stdout:         c.OutOrStdout(),
				SaveComparison: runSaveFlag,
			})

			return err
		},
	}

	cmd.Flags().BoolVar(&runCaptureFlag, captureFlagName, false, "capture each mode's console output next to its report")
	cmd.Flags().BoolVar(&runSaveFlag, saveFlagName, true, "save the comparison report")

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}
