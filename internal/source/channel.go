package source

import (
	"strconv"
	"strings"
)

// Autopilot diagnostic event channels. The provider moved between releases:
// 1803/1809 shipped the Provisioning-Diagnostics channel, 1903 and later use
// ModernDeployment-Diagnostics.
const (
	LegacyEventChannel = `Microsoft-Windows-Provisioning-Diagnostics-Provider/AutoPilot`
	ModernEventChannel = `Microsoft-Windows-ModernDeployment-Diagnostics-Provider/Autopilot`

	modernMinRelease = 1903
)

// ChannelForRelease maps a ReleaseID to the event channel that carries
// Autopilot diagnostics on that release. An empty result means the release
// has no such channel and no events should be queried.
func ChannelForRelease(releaseID string) string {
	releaseID = strings.TrimSpace(releaseID)
	switch releaseID {
	case "1803", "1809":
		return LegacyEventChannel
	}
	if n, err := strconv.Atoi(releaseID); err == nil && n >= modernMinRelease {
		return ModernEventChannel
	}
	return ""
}
