// Package diag runs the registration check: read the host's build
// information, the Autopilot registration state, and the diagnostic event
// channel, then print and optionally export the results.
package diag

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	clog "github.com/charmbracelet/log"
	"github.com/google/uuid"

	"autopilotctl/internal/csvlog"
	"autopilotctl/internal/report"
	"autopilotctl/internal/source"
)

// Report is the collected outcome of one check. Registration stays nil when
// its store was unreadable; Events stays nil when the query failed.
type Report struct {
	Machine      *report.MachineInfo      `json:"machine"`
	Registration *report.RegistrationInfo `json:"registration,omitempty"`
	Channel      string                   `json:"channel,omitempty"`
	Events       []report.EventRecord     `json:"events,omitempty"`
}

// Checker wires the three host readers to an output stream. Tests substitute
// fake readers and a buffer.
type Checker struct {
	Machine      source.MachineReader
	Registration source.RegistrationReader
	Events       source.EventReader
	Out          io.Writer
	Log          *clog.Logger
}

// New returns a Checker bound to the host's real stores.
func New(logger *clog.Logger) *Checker {
	return &Checker{
		Machine:      source.NewMachineReader(logger),
		Registration: source.NewRegistrationReader(logger),
		Events:       source.NewEventReader(logger),
		Out:          os.Stdout,
		Log:          logger,
	}
}

// Run performs the check. The only error it returns is the fatal case: the
// machine information store could not be read at all. Every other failure is
// reported, recorded in the failure log where unexpected, and skipped over.
func (c *Checker) Run(ctx context.Context, opts Options) (*Report, error) {
	logger := c.Log.With("run", uuid.NewString())
	rep := &Report{}

	mi, err := c.Machine.ReadMachineInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading machine information: %w", err)
	}
	rep.Machine = mi
	c.print(opts, report.RenderMachineInfo(mi))

	ri, err := c.Registration.ReadRegistrationInfo(ctx)
	switch {
	case err == nil:
		ri.Normalize()
		rep.Registration = ri
		c.print(opts, report.RenderRegistrationInfo(ri))
	case errors.Is(err, source.ErrUnavailable):
		logger.Warn("registration info unavailable", "err", err)
	default:
		logger.Warn("registration read failed", "err", err)
		c.recordFailure(logger, opts, "ReadError", "ReadRegistrationInfo", "provisioning registration store", err)
	}

	rep.Channel = source.ChannelForRelease(mi.ReleaseID)
	if rep.Channel == "" {
		logger.Info("release has no autopilot diagnostic channel", "release", mi.ReleaseID)
	} else {
		events, err := c.Events.ReadEvents(ctx, rep.Channel, opts.EventCount)
		switch {
		case err == nil:
			rep.Events = events
			c.print(opts, report.RenderEvents(rep.Channel, events))
		case errors.Is(err, source.ErrUnavailable):
			logger.Warn("diagnostic events unavailable", "channel", rep.Channel, "err", err)
		default:
			logger.Warn("event query failed", "channel", rep.Channel, "err", err)
			c.recordFailure(logger, opts, "ReadError", "ReadEvents", rep.Channel, err)
		}
	}

	if opts.Export {
		c.export(logger, opts, rep)
	}
	logger.Info("check complete", "logDir", opts.LogDir)
	return rep, nil
}

func (c *Checker) print(opts Options, s string) {
	if opts.JSON {
		return
	}
	fmt.Fprintln(c.Out, s)
}

// export appends each populated record set to its file. Attempts are
// independent: one file failing does not stop the others, and nothing here
// reaches the caller.
func (c *Checker) export(logger *clog.Logger, opts Options, rep *Report) {
	if err := csvlog.EnsureDir(opts.LogDir); err != nil {
		logger.Warn("log directory unavailable", "err", err)
	}
	if rep.Machine != nil {
		if err := csvlog.Append(opts.LogDir, opts.MachineFile, report.MachineCSVHeader, [][]string{rep.Machine.CSVRow()}); err != nil {
			logger.Warn("machine info export failed", "file", opts.MachineFile, "err", err)
		}
	}
	if rep.Registration != nil {
		if err := csvlog.Append(opts.LogDir, opts.RegistrationFile, report.RegistrationCSVHeader, [][]string{rep.Registration.CSVRow()}); err != nil {
			logger.Warn("registration info export failed", "file", opts.RegistrationFile, "err", err)
		}
	}
	if len(rep.Events) > 0 {
		if err := csvlog.Append(opts.LogDir, opts.EventFile, report.EventCSVHeader, report.EventRows(rep.Events)); err != nil {
			logger.Warn("event export failed", "file", opts.EventFile, "err", err)
		}
	}
}

func (c *Checker) recordFailure(logger *clog.Logger, opts Options, category, activity, target string, err error) {
	LogFailure(logger, NewFailureRecord(category, activity, target, err), opts.LogDir, DefaultFailureFile())
}
