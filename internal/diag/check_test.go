package diag

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	clog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autopilotctl/internal/report"
	"autopilotctl/internal/source"
)

type fakeMachine struct {
	mi     *report.MachineInfo
	err    error
	called bool
}

func (f *fakeMachine) ReadMachineInfo(context.Context) (*report.MachineInfo, error) {
	f.called = true
	return f.mi, f.err
}

type fakeRegistration struct {
	ri     *report.RegistrationInfo
	err    error
	called bool
}

func (f *fakeRegistration) ReadRegistrationInfo(context.Context) (*report.RegistrationInfo, error) {
	f.called = true
	return f.ri, f.err
}

type fakeEvents struct {
	events     []report.EventRecord
	err        error
	called     bool
	gotChannel string
	gotMax     int
}

func (f *fakeEvents) ReadEvents(_ context.Context, channel string, max int) ([]report.EventRecord, error) {
	f.called = true
	f.gotChannel = channel
	f.gotMax = max
	if f.err != nil {
		return nil, f.err
	}
	if len(f.events) > max {
		return f.events[:max], nil
	}
	return f.events, nil
}

func modernMachine() *report.MachineInfo {
	return &report.MachineInfo{
		ProductName:  "Windows 10 Enterprise",
		CurrentBuild: "19045",
		ReleaseID:    "2009",
	}
}

func someEvents(n int) []report.EventRecord {
	events := make([]report.EventRecord, n)
	for i := range events {
		events[i] = report.EventRecord{EventID: "110", Message: "profile available"}
	}
	return events
}

func newTestChecker(m *fakeMachine, r *fakeRegistration, e *fakeEvents, out io.Writer) *Checker {
	return &Checker{
		Machine:      m,
		Registration: r,
		Events:       e,
		Out:          out,
		Log:          clog.New(io.Discard),
	}
}

func testOptions(dir string) Options {
	return Options{
		EventCount:       10,
		LogDir:           dir,
		MachineFile:      "machine.csv",
		RegistrationFile: "registration.csv",
		EventFile:        "events.csv",
	}
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return len(rows)
}

func TestRunFatalWhenMachineInfoUnavailable(t *testing.T) {
	dir := t.TempDir()
	m := &fakeMachine{err: source.ErrUnavailable}
	r := &fakeRegistration{ri: &report.RegistrationInfo{}}
	e := &fakeEvents{}
	c := newTestChecker(m, r, e, &bytes.Buffer{})

	rep, err := c.Run(context.Background(), testOptions(dir))
	require.Error(t, err)
	assert.Nil(t, rep)

	// nothing after the fatal read runs
	assert.False(t, r.called)
	assert.False(t, e.called)
	entries, rerr := os.ReadDir(dir)
	require.NoError(t, rerr)
	assert.Empty(t, entries)
}

func TestRunRegistrationUnavailableIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	m := &fakeMachine{mi: modernMachine()}
	r := &fakeRegistration{err: source.ErrUnavailable}
	e := &fakeEvents{events: someEvents(3)}
	c := newTestChecker(m, r, e, &out)

	opts := testOptions(dir)
	opts.EventCount = 5
	rep, err := c.Run(context.Background(), opts)
	require.NoError(t, err)

	assert.NotNil(t, rep.Machine)
	assert.Nil(t, rep.Registration)
	assert.True(t, e.called)
	assert.Equal(t, source.ModernEventChannel, e.gotChannel)
	assert.Equal(t, 5, e.gotMax)
	assert.Contains(t, out.String(), "Machine Information")

	// no export requested: zero files written
	entries, rerr := os.ReadDir(dir)
	require.NoError(t, rerr)
	assert.Empty(t, entries)
}

func TestRunLegacyReleaseUsesLegacyChannel(t *testing.T) {
	mi := modernMachine()
	mi.ReleaseID = "1809"
	m := &fakeMachine{mi: mi}
	r := &fakeRegistration{ri: &report.RegistrationInfo{}}
	e := &fakeEvents{events: someEvents(1)}
	c := newTestChecker(m, r, e, &bytes.Buffer{})

	_, err := c.Run(context.Background(), testOptions(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, source.LegacyEventChannel, e.gotChannel)
}

func TestRunUnsupportedReleaseSkipsEvents(t *testing.T) {
	mi := modernMachine()
	mi.ReleaseID = "1709"
	m := &fakeMachine{mi: mi}
	r := &fakeRegistration{ri: &report.RegistrationInfo{}}
	e := &fakeEvents{}
	c := newTestChecker(m, r, e, &bytes.Buffer{})

	rep, err := c.Run(context.Background(), testOptions(t.TempDir()))
	require.NoError(t, err)
	assert.False(t, e.called)
	assert.Empty(t, rep.Channel)
	assert.Empty(t, rep.Events)
}

func TestRunNormalizesRegistration(t *testing.T) {
	m := &fakeMachine{mi: modernMachine()}
	r := &fakeRegistration{ri: &report.RegistrationInfo{TenantDomain: "contoso.com"}}
	e := &fakeEvents{}
	c := newTestChecker(m, r, e, &bytes.Buffer{})

	rep, err := c.Run(context.Background(), testOptions(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, rep.Registration)
	assert.Equal(t, report.NoneAssigned, rep.Registration.AssignedUser)
	assert.Equal(t, report.NoneAssigned, rep.Registration.LastProcessedName)
	assert.Equal(t, "contoso.com", rep.Registration.TenantDomain)
}

func TestRunExportAppendsAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	m := &fakeMachine{mi: modernMachine()}
	r := &fakeRegistration{ri: &report.RegistrationInfo{}}
	e := &fakeEvents{events: someEvents(25)}

	opts := testOptions(dir)
	opts.EventCount = 25
	opts.Export = true

	for i := 0; i < 2; i++ {
		c := newTestChecker(m, r, e, &bytes.Buffer{})
		_, err := c.Run(context.Background(), opts)
		require.NoError(t, err)
	}

	// header plus one row per run for the record files, header plus
	// 25 rows per run for events
	assert.Equal(t, 3, countRows(t, filepath.Join(dir, "machine.csv")))
	assert.Equal(t, 3, countRows(t, filepath.Join(dir, "registration.csv")))
	assert.Equal(t, 51, countRows(t, filepath.Join(dir, "events.csv")))
}

func TestRunExportSkipsUnsetRecords(t *testing.T) {
	dir := t.TempDir()
	m := &fakeMachine{mi: modernMachine()}
	r := &fakeRegistration{err: source.ErrUnavailable}
	e := &fakeEvents{err: source.ErrUnavailable}
	c := newTestChecker(m, r, e, &bytes.Buffer{})

	opts := testOptions(dir)
	opts.Export = true
	_, err := c.Run(context.Background(), opts)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "machine.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "registration.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "events.csv"))
}

func TestRunUnexpectedErrorIsRecordedAndNotFatal(t *testing.T) {
	dir := t.TempDir()
	m := &fakeMachine{mi: modernMachine()}
	r := &fakeRegistration{err: errors.New("registry hive corrupt")}
	e := &fakeEvents{events: someEvents(1)}
	c := newTestChecker(m, r, e, &bytes.Buffer{})

	rep, err := c.Run(context.Background(), testOptions(dir))
	require.NoError(t, err)
	assert.Nil(t, rep.Registration)
	assert.True(t, e.called)

	// the failure landed in the failure log
	rows := countRows(t, filepath.Join(dir, DefaultFailureFile()))
	assert.Equal(t, 2, rows)
}

func TestRunExportFailureDoesNotStopOtherFiles(t *testing.T) {
	dir := t.TempDir()
	m := &fakeMachine{mi: modernMachine()}
	r := &fakeRegistration{ri: &report.RegistrationInfo{}}
	e := &fakeEvents{events: someEvents(2)}
	c := newTestChecker(m, r, e, &bytes.Buffer{})

	// block the machine file with a directory of the same name
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "machine.csv"), 0o755))

	opts := testOptions(dir)
	opts.Export = true
	_, err := c.Run(context.Background(), opts)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "registration.csv"))
	assert.FileExists(t, filepath.Join(dir, "events.csv"))
}
