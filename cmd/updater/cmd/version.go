package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ArtemKolodko/band-oracle-updater/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print detailed version information about the updater.
This includes version number, build time, commit hash, and Go version.`,
	Run: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Fprintln(cmd.OutOrStdout(), "Band Oracle Updater")
	fmt.Fprintln(cmd.OutOrStdout(), version.Info())
}
