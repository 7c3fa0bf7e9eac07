//go:build windows

package source

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/charmbracelet/log"

	"autopilotctl/internal/report"
)

type wevtutilEventReader struct {
	exec CommandExecutor
	log  *log.Logger
}

// NewEventReader returns an event reader that shells out to wevtutil.
func NewEventReader(logger *log.Logger) EventReader {
	return &wevtutilEventReader{exec: &defaultExecutor{}, log: logger}
}

func (r *wevtutilEventReader) ReadEvents(ctx context.Context, channel string, max int) ([]report.EventRecord, error) {
	if channel == "" || max <= 0 {
		return []report.EventRecord{}, nil
	}

	// /rd:true reverses direction: newest entries come back first.
	out, err := r.exec.Execute(ctx, "wevtutil",
		"qe", channel,
		"/c:"+strconv.Itoa(max),
		"/rd:true",
		"/f:renderedxml",
	)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// wevtutil exits non-zero when the channel does not exist
			// or access is denied; both read as "no events here".
			return nil, fmt.Errorf("querying channel %s: %w", channel, ErrUnavailable)
		}
		return nil, fmt.Errorf("querying channel %s: %w", channel, err)
	}

	events, err := parseRenderedEvents(out, max)
	if err != nil {
		return nil, fmt.Errorf("channel %s: %w", channel, err)
	}
	r.log.Debug("event query", "channel", channel, "requested", max, "returned", len(events))
	return events, nil
}
