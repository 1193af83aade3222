package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gcovcheck.dev/pkg/gcovcheck/internal/domain"
)

var checkIterationFlag int
var checkParallelFlag int

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check monitored files against their reference dumps",
		Long: `Check the monitored files listed under check.files in gcovcheck.yaml.

Iteration 0 compares each data dump with its reference dump. Any later
iteration i expects the constant lines to keep their reference counts and
the dynamic lines to have executed exactly i more times than in the
reference.

Exits non-zero when any monitored file fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := monitoredFiles()
			if err != nil {
				return err
			}

			cmd.SilenceUsage = true

			return workflow.Check(cmd.Context(), domain.CheckArgs{
				Files:      files,
				SourceDirs: sourceDirs(),
				Iteration:  checkIterationFlag,
				Parallel:   viper.GetInt(checkParallelConfigKey),
			})
		},
	}

	configureCheckFlags(cmd)

	return cmd
}

func configureCheckFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&checkIterationFlag, iterationFlagName, "i", 0, "number of times the monitored code ran since the reference dump")
	cobra.CheckErr(cmd.MarkFlagRequired(iterationFlagName))

	cmd.Flags().IntVarP(&checkParallelFlag, parallelFlagName, "p", viper.GetInt(checkParallelConfigKey), "number of dumps loaded in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), checkParallelConfigKey)
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
