package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"autopilotctl/internal/diag"
	"autopilotctl/internal/system"
)

var (
	failCategory string
	failActivity string
	failTarget   string
	failMessage  string
	failLogPath  string
	failFile     string
)

func init() {
	rootCmd.AddCommand(logFailureCmd)
	logFailureCmd.Flags().StringVar(&failCategory, "category", "Unknown", "failure category")
	logFailureCmd.Flags().StringVar(&failActivity, "activity", "", "activity that failed")
	logFailureCmd.Flags().StringVar(&failTarget, "target", "", "object the activity was acting on")
	logFailureCmd.Flags().StringVar(&failMessage, "message", "", "failure message")
	logFailureCmd.Flags().StringVar(&failLogPath, "log-path", diag.DefaultLogDir(), "directory for the failure log")
	logFailureCmd.Flags().StringVar(&failFile, "file", diag.DefaultFailureFile(), "failure log file name")
	_ = logFailureCmd.MarkFlagRequired("message")
}

var logFailureCmd = &cobra.Command{
	Use:   "log-failure",
	Short: "Append a failure record to the failure log",
	Long: "log-failure records a caught failure's classification in the CSV\n" +
		"failure log. It is mainly used by tooling that wraps autopilotctl;\n" +
		"append problems are reported but never produce a non-zero exit.",
	Run: func(cmd *cobra.Command, args []string) {
		rec := diag.NewFailureRecord(failCategory, failActivity, failTarget, errors.New(failMessage))
		diag.LogFailure(system.Logger, rec, failLogPath, failFile)
	},
}
