// Package source provides narrow read-only access to the three host stores
// the registration check consults: the OS version registry key, the
// provisioning diagnostics registry key, and the Autopilot event channel.
package source

import (
	"context"
	"errors"
	"fmt"

	"autopilotctl/internal/report"
)

// ErrUnavailable marks a store that does not exist on this host, as opposed
// to one that failed mid-read. Callers branch on it with errors.Is.
var ErrUnavailable = errors.New("source unavailable")

// MachineReader reads the OS build identification snapshot.
type MachineReader interface {
	ReadMachineInfo(ctx context.Context) (*report.MachineInfo, error)
}

// RegistrationReader reads the Autopilot registration state.
type RegistrationReader interface {
	ReadRegistrationInfo(ctx context.Context) (*report.RegistrationInfo, error)
}

// EventReader reads up to max entries from the named event channel,
// newest first.
type EventReader interface {
	ReadEvents(ctx context.Context, channel string, max int) ([]report.EventRecord, error)
}

// CommandError records a failed system command execution.
// Use errors.As to extract the command name from wrapped errors.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
