package cmd

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const unknownVersion = "unknown"

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the gcovcheck build version, the Go version and the gcov binary it will run.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("gcovcheck\t%s\n", toolVersion())
			cmd.Printf("go\t\t%s\n", runtime.Version())
			cmd.Printf("decoder\t\t%sgcov\n", viper.GetString(toolchainPrefixConfigKey))
		},
	}
}

// toolVersion returns the module version stamped by `go install`.
func toolVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return unknownVersion
	}

	return info.Main.Version
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
