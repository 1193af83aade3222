// Package cmd provides the root command and CLI setup for gcovcheck.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gcovcheck.dev/pkg/gcovcheck/internal/adapter"
	"gcovcheck.dev/pkg/gcovcheck/internal/controller"
	"gcovcheck.dev/pkg/gcovcheck/internal/domain"
)

var fsAdapter adapter.SourceFSAdapter
var recordStore adapter.RecordStore
var ui controller.UI

// workflow is built on first use because the gcov adapter depends on flags.
var workflow domain.Workflow

// srcDirsFlag limits comparisons to files under these directories.
var srcDirsFlag []string

// toolchainFlag is prepended to the gcov binary name.
var toolchainFlag string

var verboseFlag bool
var logFileFlag string

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	recordStore = adapter.NewRecordStore()
}

const dumpPathsHelp = `Dump paths ending in .gcov are parsed directly, .yaml snapshots written by
"gcovcheck export" are loaded as-is and anything else (usually .gcda) is
decoded first with "<toolchain>gcov -ib".`

const rootLongDescription = `gcovcheck reads gcov intermediate text dumps, compares coverage records
restricted to your source directories and checks line execution counts
across repeated coverage dumps of the same program.

` + dumpPathsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gcovcheck",
		Short: "gcov coverage dump comparison tool",
		Long:  rootLongDescription,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			if configReadErr != nil {
				slog.Warn("Config file could not be read, using defaults", "error", configReadErr)
			}

			return prepareWorkflow()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringArrayVarP(&srcDirsFlag, srcDirFlagName, "d", viper.GetStringSlice(srcDirsConfigKey), "only compare files under this source directory (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(srcDirFlagName), srcDirsConfigKey)

	cmd.PersistentFlags().StringVarP(&toolchainFlag, toolchainFlagName, "t", viper.GetString(toolchainPrefixConfigKey), "toolchain prefix of the gcov binary (e.g. xtensa-esp32-elf-)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(toolchainFlagName), toolchainPrefixConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// prepareWorkflow wires the workflow unless one is already set.
func prepareWorkflow() error {
	if workflow != nil {
		return nil
	}

	gcovAdapter, err := adapter.NewLocalGcovAdapter(gcovOptions())
	if err != nil {
		return err
	}

	workflow = domain.NewWorkflow(
		recordStore,
		ui,
		domain.NewLoader(fsAdapter, gcovAdapter, recordStore),
	)

	return nil
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
