package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const initLongDescription = `Create gcovcheck.yaml in the current working directory populated with the
current defaults, flags and GCOVCHECK_* environment values.

List the files watched by "gcovcheck check" under check.files, e.g.:

  check:
    files:
      - source: /build/src/main/gcov_tests.c
        data: build/esp-idf/main/CMakeFiles/__idf_main.dir/gcov_tests.c.gcda
        reference: main/gcov_tests.gcda.gcov
        constant: {start: 15, end: 26}
        dynamic: {start: 28, end: 30}`

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default gcovcheck.yaml configuration file",
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			if err := viper.SafeWriteConfigAs(targetPath); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("Wrote %s\n", targetPath)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
