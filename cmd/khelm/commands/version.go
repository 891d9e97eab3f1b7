package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CurrentVersion is the khelm release.
const CurrentVersion = "v0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the khelm version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "khelm %s\n", CurrentVersion)
	},
}
