package source

import (
	"encoding/xml"
	"fmt"
	"strings"

	"autopilotctl/internal/report"
)

// wevtutil's renderedxml format emits a flat sequence of <Event> elements
// with no document root, so the output is wrapped before unmarshaling.
type renderedEventList struct {
	Events []renderedEvent `xml:"Event"`
}

type renderedEvent struct {
	System struct {
		Provider struct {
			Name string `xml:"Name,attr"`
		} `xml:"Provider"`
		EventID     string `xml:"EventID"`
		Level       string `xml:"Level"`
		TimeCreated struct {
			SystemTime string `xml:"SystemTime,attr"`
		} `xml:"TimeCreated"`
	} `xml:"System"`
	RenderingInfo struct {
		Message string `xml:"Message"`
		Level   string `xml:"Level"`
	} `xml:"RenderingInfo"`
}

// parseRenderedEvents converts wevtutil renderedxml output into event
// records, keeping the query's order and truncating to max entries.
// max <= 0 yields an empty slice.
func parseRenderedEvents(out string, max int) ([]report.EventRecord, error) {
	events := []report.EventRecord{}
	out = strings.TrimSpace(out)
	if out == "" || max <= 0 {
		return events, nil
	}

	var list renderedEventList
	wrapped := "<Events>" + out + "</Events>"
	if err := xml.Unmarshal([]byte(wrapped), &list); err != nil {
		return nil, fmt.Errorf("parsing event query output: %w", err)
	}

	for i := range list.Events {
		if len(events) >= max {
			break
		}
		ev := &list.Events[i]
		level := ev.RenderingInfo.Level
		if level == "" {
			level = ev.System.Level
		}
		events = append(events, report.EventRecord{
			TimeCreated: ev.System.TimeCreated.SystemTime,
			EventID:     ev.System.EventID,
			Level:       level,
			Provider:    ev.System.Provider.Name,
			Message:     strings.TrimSpace(ev.RenderingInfo.Message),
		})
	}
	return events, nil
}
