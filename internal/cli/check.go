package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"autopilotctl/internal/diag"
	"autopilotctl/internal/system"
)

var (
	checkEventCount       int
	checkExport           bool
	checkJSON             bool
	checkVerbose          bool
	checkLogPath          string
	checkMachineFile      string
	checkRegistrationFile string
	checkEventFile        string
)

func init() {
	rootCmd.AddCommand(checkCmd)
	defaults := diag.DefaultOptions()
	checkCmd.Flags().IntVar(&checkEventCount, "event-count", defaults.EventCount, "maximum diagnostic events to query")
	checkCmd.Flags().BoolVar(&checkExport, "export", false, "append results to CSV files under the log path")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output the report as JSON")
	checkCmd.Flags().BoolVar(&checkVerbose, "verbose", false, "enable debug logging")
	checkCmd.Flags().StringVar(&checkLogPath, "log-path", defaults.LogDir, "directory for CSV log files")
	checkCmd.Flags().StringVar(&checkMachineFile, "machine-file", defaults.MachineFile, "machine info CSV file name")
	checkCmd.Flags().StringVar(&checkRegistrationFile, "registration-file", defaults.RegistrationFile, "registration info CSV file name")
	checkCmd.Flags().StringVar(&checkEventFile, "event-file", defaults.EventFile, "event info CSV file name")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the host's Autopilot registration state",
	RunE: func(cmd *cobra.Command, args []string) error {
		system.SetVerbose(checkVerbose)

		opts := diag.Options{
			EventCount:       checkEventCount,
			Export:           checkExport,
			JSON:             checkJSON,
			LogDir:           checkLogPath,
			MachineFile:      checkMachineFile,
			RegistrationFile: checkRegistrationFile,
			EventFile:        checkEventFile,
		}
		if opts.EventCount < 0 {
			opts.EventCount = 0
		}

		checker := diag.New(system.Logger)
		rep, err := checker.Run(cmd.Context(), opts)
		if err != nil {
			// the one fatal condition: machine information unreadable
			return err
		}
		if checkJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}
		return nil
	},
}
