//go:build windows

package source

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/windows/registry"

	"autopilotctl/internal/report"
)

const (
	currentVersionKeyPath = `SOFTWARE\Microsoft\Windows NT\CurrentVersion`
	autopilotKeyPath      = `SOFTWARE\Microsoft\Provisioning\Diagnostics\AutoPilot`
)

type registryMachineReader struct {
	log *log.Logger
}

// NewMachineReader returns the Windows registry-backed machine reader.
func NewMachineReader(logger *log.Logger) MachineReader {
	return &registryMachineReader{log: logger}
}

func (r *registryMachineReader) ReadMachineInfo(_ context.Context) (*report.MachineInfo, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, currentVersionKeyPath, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil, fmt.Errorf("opening %s: %w", currentVersionKeyPath, ErrUnavailable)
		}
		return nil, fmt.Errorf("opening %s: %w", currentVersionKeyPath, err)
	}
	defer k.Close()

	return &report.MachineInfo{
		BuildBranch:      r.stringValue(k, "BuildBranch"),
		BuildLab:         r.stringValue(k, "BuildLab"),
		CurrentBuild:     r.stringValue(k, "CurrentBuild"),
		CurrentVersion:   r.stringValue(k, "CurrentVersion"),
		DisplayVersion:   r.stringValue(k, "DisplayVersion"),
		EditionID:        r.stringValue(k, "EditionID"),
		InstallationType: r.stringValue(k, "InstallationType"),
		ProductName:      r.stringValue(k, "ProductName"),
		ReleaseID:        r.stringValue(k, "ReleaseId"),
	}, nil
}

type registryRegistrationReader struct {
	log *log.Logger
}

// NewRegistrationReader returns the Windows registry-backed registration reader.
func NewRegistrationReader(logger *log.Logger) RegistrationReader {
	return &registryRegistrationReader{log: logger}
}

func (r *registryRegistrationReader) ReadRegistrationInfo(_ context.Context) (*report.RegistrationInfo, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, autopilotKeyPath, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil, fmt.Errorf("opening %s: %w", autopilotKeyPath, ErrUnavailable)
		}
		return nil, fmt.Errorf("opening %s: %w", autopilotKeyPath, err)
	}
	defer k.Close()

	return &report.RegistrationInfo{
		CorrelationID:     r.stringValue(k, "AutopilotServiceCorrelationId"),
		TenantDomain:      r.stringValue(k, "CloudAssignedTenantDomain"),
		TenantID:          r.stringValue(k, "CloudAssignedTenantId"),
		DeviceName:        r.stringValue(k, "CloudAssignedDeviceName"),
		Language:          r.stringValue(k, "CloudAssignedLanguage"),
		AssignedUser:      r.stringValue(k, "CloudAssignedUpn"),
		OobeConfig:        r.stringValue(k, "CloudAssignedOobeConfig"),
		AutopilotDisabled: r.stringValue(k, "IsAutoPilotDisabled"),
		DevicePersonalize: r.stringValue(k, "IsDevicePersonalizationDisabled"),
		LastProcessedName: r.stringValue(k, "LastProcessedDeviceName"),
		AgilityVersion:    r.stringValue(k, "AgilityProductVersion"),
	}, nil
}

func (r *registryMachineReader) stringValue(k registry.Key, name string) string {
	return readStringValue(k, name, r.log)
}

func (r *registryRegistrationReader) stringValue(k registry.Key, name string) string {
	return readStringValue(k, name, r.log)
}

// readStringValue reads a registry value as a string, falling back to DWORD
// values formatted as decimal. Missing values yield "".
func readStringValue(k registry.Key, name string, logger *log.Logger) string {
	s, _, err := k.GetStringValue(name)
	if err == nil {
		logger.Debug("registry value", "name", name, "value", s)
		return s
	}
	if errors.Is(err, registry.ErrNotExist) {
		logger.Debug("registry value missing", "name", name)
		return ""
	}
	if n, _, ierr := k.GetIntegerValue(name); ierr == nil {
		v := strconv.FormatUint(n, 10)
		logger.Debug("registry value", "name", name, "value", v)
		return v
	}
	logger.Debug("registry value unreadable", "name", name, "err", err)
	return ""
}
