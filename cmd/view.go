package cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"formprobe.dev/pkg/formprobe/internal/domain"
	m "formprobe.dev/pkg/formprobe/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously generated run reports",
		Long:  "Re-compare the saved baseline and transformed reports from the output directory and display the result.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			dir := string(reportsDir())

			return workflow.View(context.Background(), domain.ViewArgs{
				BaselinePath:    m.Path(filepath.Join(dir, string(m.ModeBaseline)+".yaml")),
				TransformedPath: m.Path(filepath.Join(dir, string(m.ModeTransformed)+".yaml")),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
