package report

// NoneAssigned is the placeholder written for registration fields that the
// provisioning service never populated on this host.
const NoneAssigned = "None Assigned"

// MachineInfo is a read-only snapshot of the OS build identification values
// under the CurrentVersion registry key. Values missing on the host are left
// empty rather than treated as errors.
type MachineInfo struct {
	BuildBranch      string `json:"buildBranch"`
	BuildLab         string `json:"buildLab"`
	CurrentBuild     string `json:"currentBuild"`
	CurrentVersion   string `json:"currentVersion"`
	DisplayVersion   string `json:"displayVersion"`
	EditionID        string `json:"editionId"`
	InstallationType string `json:"installationType"`
	ProductName      string `json:"productName"`
	ReleaseID        string `json:"releaseId"`
}

// RegistrationInfo holds the Autopilot registration state recorded by the
// provisioning diagnostics registry key.
type RegistrationInfo struct {
	CorrelationID     string `json:"correlationId"`
	TenantDomain      string `json:"tenantDomain"`
	TenantID          string `json:"tenantId"`
	DeviceName        string `json:"deviceName"`
	Language          string `json:"language"`
	AssignedUser      string `json:"assignedUser"`
	OobeConfig        string `json:"oobeConfig"`
	AutopilotDisabled string `json:"autopilotDisabled"`
	DevicePersonalize string `json:"devicePersonalizationDisabled"`
	LastProcessedName string `json:"lastProcessedName"`
	AgilityVersion    string `json:"agilityVersion"`
}

// Normalize replaces fields the provisioning service may leave blank with
// the NoneAssigned placeholder. Calling it again is a no-op.
func (r *RegistrationInfo) Normalize() {
	if r.AssignedUser == "" {
		r.AssignedUser = NoneAssigned
	}
	if r.LastProcessedName == "" {
		r.LastProcessedName = NoneAssigned
	}
}

// EventRecord is one entry from the Autopilot diagnostic event channel.
// TimeCreated keeps the channel's own timestamp string.
type EventRecord struct {
	TimeCreated string `json:"timeCreated"`
	EventID     string `json:"eventId"`
	Level       string `json:"level"`
	Provider    string `json:"provider"`
	Message     string `json:"message"`
}

// FailureRecord is one appended row of the failure log.
type FailureRecord struct {
	Timestamp string `json:"timestamp"`
	Category  string `json:"category"`
	Activity  string `json:"activity"`
	Target    string `json:"target"`
	Message   string `json:"message"`
}

// CSV column orders are fixed; the export files are append-only across runs
// and rows written by older builds must keep lining up.
var (
	MachineCSVHeader = []string{
		"BuildBranch", "BuildLab", "CurrentBuild", "CurrentVersion",
		"DisplayVersion", "EditionID", "InstallationType", "ProductName", "ReleaseID",
	}
	RegistrationCSVHeader = []string{
		"CorrelationID", "TenantDomain", "TenantID", "DeviceName", "Language",
		"AssignedUser", "OobeConfig", "AutopilotDisabled",
		"DevicePersonalizationDisabled", "LastProcessedName", "AgilityVersion",
	}
	EventCSVHeader = []string{
		"TimeCreated", "EventID", "Level", "Provider", "Message",
	}
	FailureCSVHeader = []string{
		"Timestamp", "Category", "Activity", "Target", "Message",
	}
)

// CSVRow returns the record's values in MachineCSVHeader order.
func (m *MachineInfo) CSVRow() []string {
	return []string{
		m.BuildBranch, m.BuildLab, m.CurrentBuild, m.CurrentVersion,
		m.DisplayVersion, m.EditionID, m.InstallationType, m.ProductName, m.ReleaseID,
	}
}

// CSVRow returns the record's values in RegistrationCSVHeader order.
func (r *RegistrationInfo) CSVRow() []string {
	return []string{
		r.CorrelationID, r.TenantDomain, r.TenantID, r.DeviceName, r.Language,
		r.AssignedUser, r.OobeConfig, r.AutopilotDisabled,
		r.DevicePersonalize, r.LastProcessedName, r.AgilityVersion,
	}
}

// CSVRow returns the record's values in EventCSVHeader order.
func (e *EventRecord) CSVRow() []string {
	return []string{e.TimeCreated, e.EventID, e.Level, e.Provider, e.Message}
}

// CSVRow returns the record's values in FailureCSVHeader order.
func (f *FailureRecord) CSVRow() []string {
	return []string{f.Timestamp, f.Category, f.Activity, f.Target, f.Message}
}

// EventRows converts an event slice for CSV export, preserving order.
func EventRows(events []EventRecord) [][]string {
	rows := make([][]string, 0, len(events))
	for i := range events {
		rows = append(rows, events[i].CSVRow())
	}
	return rows
}
