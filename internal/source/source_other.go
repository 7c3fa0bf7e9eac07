//go:build !windows

package source

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/shirou/gopsutil/v3/host"

	"autopilotctl/internal/report"
)

// Off Windows the tool runs in a degraded mode: build information comes from
// the platform via gopsutil, and the registration and event stores are
// reported unavailable. This keeps the binary usable for development and for
// exercising the output paths on non-Windows hosts.

type hostMachineReader struct {
	log *log.Logger
}

// NewMachineReader returns the gopsutil-backed machine reader.
func NewMachineReader(logger *log.Logger) MachineReader {
	return &hostMachineReader{log: logger}
}

func (r *hostMachineReader) ReadMachineInfo(ctx context.Context) (*report.MachineInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading host info: %w", err)
	}
	r.log.Debug("host info", "platform", info.Platform, "version", info.PlatformVersion)
	return &report.MachineInfo{
		CurrentBuild:     info.KernelVersion,
		CurrentVersion:   info.PlatformVersion,
		DisplayVersion:   info.PlatformVersion,
		EditionID:        info.PlatformFamily,
		InstallationType: info.OS,
		ProductName:      info.Platform,
	}, nil
}

type unavailableRegistrationReader struct{}

// NewRegistrationReader returns a reader that always reports the
// registration store unavailable; there is no Autopilot state off Windows.
func NewRegistrationReader(*log.Logger) RegistrationReader {
	return unavailableRegistrationReader{}
}

func (unavailableRegistrationReader) ReadRegistrationInfo(context.Context) (*report.RegistrationInfo, error) {
	return nil, fmt.Errorf("provisioning registration store: %w", ErrUnavailable)
}

type unavailableEventReader struct{}

// NewEventReader returns a reader that always reports the event channel
// unavailable.
func NewEventReader(*log.Logger) EventReader {
	return unavailableEventReader{}
}

func (unavailableEventReader) ReadEvents(_ context.Context, channel string, max int) ([]report.EventRecord, error) {
	if channel == "" || max <= 0 {
		return []report.EventRecord{}, nil
	}
	return nil, fmt.Errorf("event channel %s: %w", channel, ErrUnavailable)
}
