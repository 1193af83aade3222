package cmd

import (
	"github.com/spf13/cobra"

	"gcovcheck.dev/pkg/gcovcheck/internal/domain"
	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

// exportCmd represents the export command.
var exportCmd = newExportCmd()

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <dump> <output>",
		Short: "Save a coverage dump as a YAML snapshot",
		Long: `Parse a coverage dump and write it as a YAML snapshot. Snapshots keep the
records untouched and can be passed to every command in place of a dump,
which is handy for committing reference dumps next to the tests.

` + dumpPathsHelp,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Export(cmd.Context(), domain.ExportArgs{
				Path:       m.Path(args[0]),
				Output:     m.Path(args[1]),
				SourceDirs: sourceDirs(),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
