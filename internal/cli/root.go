package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autopilotctl",
	Short: "autopilotctl – inspect Windows Autopilot registration state",
	Long: "autopilotctl reads a host's build information, Autopilot registration\n" +
		"values, and provisioning diagnostic events, prints them, and can append\n" +
		"them to CSV log files.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
