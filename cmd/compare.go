package cmd

import (
	"github.com/spf13/cobra"

	"gcovcheck.dev/pkg/gcovcheck/internal/domain"
	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

var compareDiffFlag bool

// compareCmd represents the compare command.
var compareCmd = newCompareCmd()

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare two coverage dumps",
		Long: `Check that every file of <a> exists in <b> and that, for files under
--src-dir, functions of <a> exist in <b> and line and branch records match
position by position. The comparison is not symmetric: scope comes from <a>
and files or functions only present in <b> are ignored.

Exits non-zero when the dumps differ.

` + dumpPathsHelp,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			return workflow.Compare(cmd.Context(), domain.CompareArgs{
				Left:       m.Path(args[0]),
				Right:      m.Path(args[1]),
				SourceDirs: sourceDirs(),
				Diff:       compareDiffFlag,
			})
		},
	}

	cmd.Flags().BoolVar(&compareDiffFlag, diffFlagName, false, "print a unified diff of the in-scope records")

	return cmd
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
