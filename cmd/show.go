package cmd

import (
	"github.com/spf13/cobra"

	"gcovcheck.dev/pkg/gcovcheck/internal/domain"
	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

var showFormatFlag string

// showCmd represents the show command.
var showCmd = newShowCmd()

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <dump>",
		Short: "Show a per-file summary of a coverage dump",
		Long: `Parse a coverage dump and print one row per source file with its function,
line and branch record counts. Files under --src-dir are marked in scope.

` + dumpPathsHelp,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Show(cmd.Context(), domain.ShowArgs{
				Path:       m.Path(args[0]),
				SourceDirs: sourceDirs(),
				Format:     showFormatFlag,
			})
		},
	}

	cmd.Flags().StringVarP(&showFormatFlag, formatFlagName, "f", domain.FormatTable, "output format: table or yaml")

	return cmd
}

func init() {
	rootCmd.AddCommand(showCmd)
}
