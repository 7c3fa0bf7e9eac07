package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRenderedXML = `<Event xmlns='http://schemas.microsoft.com/win/2004/08/events/event'><System><Provider Name='Microsoft-Windows-ModernDeployment-Diagnostics-Provider' Guid='{88ca7a2e-bd16-4ae4-8d3b-ba1ad26110ae}'/><EventID>110</EventID><Version>0</Version><Level>4</Level><Task>0</Task><Opcode>0</Opcode><Keywords>0x8000000000000000</Keywords><TimeCreated SystemTime='2024-03-14T13:05:22.1234567Z'/><EventRecordID>42</EventRecordID><Channel>Microsoft-Windows-ModernDeployment-Diagnostics-Provider/Autopilot</Channel><Computer>DESKTOP-1</Computer></System><EventData></EventData><RenderingInfo Culture='en-US'><Message>AutopilotManager reported profile available.</Message><Level>Information</Level></RenderingInfo></Event>
<Event xmlns='http://schemas.microsoft.com/win/2004/08/events/event'><System><Provider Name='Microsoft-Windows-ModernDeployment-Diagnostics-Provider'/><EventID>111</EventID><Level>3</Level><TimeCreated SystemTime='2024-03-14T13:04:01.0000000Z'/><Computer>DESKTOP-1</Computer></System><RenderingInfo Culture='en-US'><Message>AutopilotManager retry scheduled.</Message><Level>Warning</Level></RenderingInfo></Event>
<Event xmlns='http://schemas.microsoft.com/win/2004/08/events/event'><System><Provider Name='Microsoft-Windows-ModernDeployment-Diagnostics-Provider'/><EventID>112</EventID><Level>2</Level><TimeCreated SystemTime='2024-03-14T13:02:55.0000000Z'/><Computer>DESKTOP-1</Computer></System></Event>`

func TestParseRenderedEvents(t *testing.T) {
	events, err := parseRenderedEvents(sampleRenderedXML, 10)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, "2024-03-14T13:05:22.1234567Z", events[0].TimeCreated)
	assert.Equal(t, "110", events[0].EventID)
	assert.Equal(t, "Information", events[0].Level)
	assert.Equal(t, "Microsoft-Windows-ModernDeployment-Diagnostics-Provider", events[0].Provider)
	assert.Equal(t, "AutopilotManager reported profile available.", events[0].Message)

	assert.Equal(t, "Warning", events[1].Level)

	// no RenderingInfo: numeric level is kept, message stays empty
	assert.Equal(t, "2", events[2].Level)
	assert.Empty(t, events[2].Message)
}

func TestParseRenderedEventsTruncates(t *testing.T) {
	events, err := parseRenderedEvents(sampleRenderedXML, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	// order preserved: newest first as wevtutil returned them
	assert.Equal(t, "110", events[0].EventID)
	assert.Equal(t, "111", events[1].EventID)
}

func TestParseRenderedEventsEmpty(t *testing.T) {
	events, err := parseRenderedEvents("", 10)
	require.NoError(t, err)
	assert.Empty(t, events)

	events, err = parseRenderedEvents(sampleRenderedXML, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestParseRenderedEventsMalformed(t *testing.T) {
	_, err := parseRenderedEvents("<Event><System>", 10)
	assert.Error(t, err)
}
