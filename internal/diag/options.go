package diag

import (
	"os"
	"runtime"
)

// Options configures one registration check. There is no process-wide state;
// everything the check needs is carried here.
type Options struct {
	EventCount       int
	Export           bool
	JSON             bool
	LogDir           string
	MachineFile      string
	RegistrationFile string
	EventFile        string
}

// DefaultOptions returns the stock configuration: ten events, no export,
// hostname-derived file names under the platform log directory.
func DefaultOptions() Options {
	hn := hostName()
	return Options{
		EventCount:       10,
		LogDir:           DefaultLogDir(),
		MachineFile:      hn + "-MachineInfo.csv",
		RegistrationFile: hn + "-RegistrationInfo.csv",
		EventFile:        hn + "-EventInfo.csv",
	}
}

// DefaultLogDir is where exports and failure logs land unless overridden.
func DefaultLogDir() string {
	if runtime.GOOS == "windows" {
		return `C:\AutopilotLogfiles`
	}
	return "/var/log/autopilot"
}

// DefaultFailureFile returns the hostname-derived failure log file name.
func DefaultFailureFile() string {
	return hostName() + "-FailureLog.csv"
}

func hostName() string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return "host"
	}
	return h
}
