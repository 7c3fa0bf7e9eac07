package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Terminal styles, loosely based on the Vitesse palette.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4d9375"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bfbaaa")).
			Width(22)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#dedcd590"))

	tableBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#252525"))

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#6394bf")).
				Padding(0, 1)

	tableCellStyle = lipgloss.NewStyle().Padding(0, 1)
)

func renderFields(title string, pairs [][2]string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for _, p := range pairs {
		val := p[1]
		if val == "" {
			val = mutedStyle.Render("-")
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(p[0]), val)
	}
	return b.String()
}

// RenderMachineInfo formats a MachineInfo record for the terminal.
func RenderMachineInfo(m *MachineInfo) string {
	return renderFields("Machine Information", [][2]string{
		{"Build Branch", m.BuildBranch},
		{"Build Lab", m.BuildLab},
		{"Current Build", m.CurrentBuild},
		{"Current Version", m.CurrentVersion},
		{"Display Version", m.DisplayVersion},
		{"Edition", m.EditionID},
		{"Installation Type", m.InstallationType},
		{"Product Name", m.ProductName},
		{"Release ID", m.ReleaseID},
	})
}

// RenderRegistrationInfo formats a RegistrationInfo record for the terminal.
func RenderRegistrationInfo(r *RegistrationInfo) string {
	return renderFields("Autopilot Registration", [][2]string{
		{"Correlation ID", r.CorrelationID},
		{"Tenant Domain", r.TenantDomain},
		{"Tenant ID", r.TenantID},
		{"Device Name", r.DeviceName},
		{"Language", r.Language},
		{"Assigned User", r.AssignedUser},
		{"OOBE Config", r.OobeConfig},
		{"Autopilot Disabled", r.AutopilotDisabled},
		{"Personalization Off", r.DevicePersonalize},
		{"Last Processed Name", r.LastProcessedName},
		{"Agility Version", r.AgilityVersion},
	})
}

// RenderEvents formats diagnostic events as a bordered table, newest first.
func RenderEvents(channel string, events []EventRecord) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Diagnostic Events"))
	if channel != "" {
		b.WriteString(" " + mutedStyle.Render(channel))
	}
	b.WriteString("\n")
	if len(events) == 0 {
		b.WriteString(mutedStyle.Render("no events") + "\n")
		return b.String()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers("Time", "ID", "Level", "Message").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
	for i := range events {
		e := &events[i]
		t.Row(e.TimeCreated, e.EventID, e.Level, truncate(e.Message, 80))
	}
	b.WriteString(t.String())
	b.WriteString("\n")
	return b.String()
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
