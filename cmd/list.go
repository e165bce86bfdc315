package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"formprobe.dev/pkg/formprobe/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered scenarios",
		Long:  "Load the scenario files without executing anything and list every registered scenario.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.List(context.Background(), domain.ListArgs{
				ScenarioDir: scenarioDir(),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
