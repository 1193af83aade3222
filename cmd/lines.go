package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gcovcheck.dev/pkg/gcovcheck/internal/domain"
	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

// linesCmd represents the lines command.
var linesCmd = newLinesCmd()

func newLinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lines <dump> <file> <start> <end>",
		Short: "Print execution counts of a line range",
		Long: `Print the line records of <file> whose line number lies in [start, end],
in the order the dump lists them.

` + dumpPathsHelp,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := parseLineRange(args[2], args[3])
			if err != nil {
				return err
			}

			return workflow.Lines(cmd.Context(), domain.LinesArgs{
				Path:       m.Path(args[0]),
				SourceDirs: sourceDirs(),
				File:       m.Path(args[1]),
				Lines:      lines,
			})
		},
	}
}

func parseLineRange(start, end string) (m.LineRange, error) {
	s, err := strconv.Atoi(start)
	if err != nil {
		return m.LineRange{}, fmt.Errorf("invalid start line %q: %w", start, err)
	}

	e, err := strconv.Atoi(end)
	if err != nil {
		return m.LineRange{}, fmt.Errorf("invalid end line %q: %w", end, err)
	}

	return m.LineRange{Start: s, End: e}, nil
}

func init() {
	rootCmd.AddCommand(linesCmd)
}
