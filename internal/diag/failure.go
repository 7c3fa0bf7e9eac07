package diag

import (
	"path/filepath"
	"time"

	clog "github.com/charmbracelet/log"

	"autopilotctl/internal/csvlog"
	"autopilotctl/internal/report"
)

// timestampLayout matches the format the failure log has always used.
const timestampLayout = "01/02/2006 15:04:05"

// NewFailureRecord captures a failure's classification at the current time.
func NewFailureRecord(category, activity, target string, err error) report.FailureRecord {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return report.FailureRecord{
		Timestamp: time.Now().Format(timestampLayout),
		Category:  category,
		Activity:  activity,
		Target:    target,
		Message:   msg,
	}
}

// LogFailure appends one row to the failure log, creating the directory and
// file as needed. It never fails its caller: every problem is reported to
// the logger and swallowed.
func LogFailure(logger *clog.Logger, rec report.FailureRecord, dir, file string) {
	if err := csvlog.EnsureDir(dir); err != nil {
		logger.Warn("could not create failure log directory", "err", err)
	}
	if err := csvlog.Append(dir, file, report.FailureCSVHeader, [][]string{rec.CSVRow()}); err != nil {
		logger.Warn("could not write failure log", "file", file, "err", err)
		return
	}
	logger.Info("failure recorded", "file", filepath.Join(dir, file))
}
