// Package cmd provides the root command and CLI setup for formprobe.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"formprobe.dev/pkg/formprobe/internal/adapter"
	"formprobe.dev/pkg/formprobe/internal/controller"
	"formprobe.dev/pkg/formprobe/internal/domain"
	m "formprobe.dev/pkg/formprobe/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var transformer adapter.Transformer
var reportStore adapter.ReportStore
var modeRunner adapter.ModeRunnerAdapter
var ui controller.UI
var workflow domain.Workflow

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// scenarioDirFlag points at the directory holding scenario fixture files.
var scenarioDirFlag string

// verboseFlag switches file logging to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	transformer = adapter.NewMemoTransformer()
	reportStore = adapter.NewReportStore()
	modeRunner = adapter.NewLocalModeRunnerAdapter(modeTimeout())
	workflow = domain.NewWorkflow(
		fsAdapter,
		transformer,
		reportStore,
		modeRunner,
		ui,
		transformOptions(),
	)
}

const rootLongDescription = `Formprobe checks whether form code survives a memoizing render
transform. Every scenario runs twice in isolated processes: once
untransformed (baseline) and once with the transform applied. A scenario
that passes baseline but fails transformed marks a real incompatibility
between the form library and the transform.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formprobe",
		Short: "Dual-mode compatibility harness for memoized form rendering",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for run reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().
		StringVar(
			&scenarioDirFlag, scenariosFlagName,
			viper.GetString(scenariosConfigKey),
			"directory holding scenario files",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(scenariosFlagName), scenariosConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func scenarioDir() m.Path {
	return m.Path(viper.GetString(scenariosConfigKey))
}

func reportsDir() m.Path {
	return m.Path(viper.GetString(outputFlagName))
}

func modeTimeout() time.Duration {
	return time.Duration(viper.GetInt64(modeTimeoutConfigKey)) * time.Second
}

func waitTimeout() time.Duration {
	return time.Duration(viper.GetInt64(waitTimeoutConfigKey)) * time.Second
}

func transformOptions() m.TransformOptions {
	return m.TransformOptions{TargetVersion: viper.GetString(transformTargetKey)}
}
