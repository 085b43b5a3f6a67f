package feed_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-dashtyar/internal/config"
	"github.com/tartampluch/go-dashtyar/internal/feed"
	"github.com/tartampluch/go-dashtyar/internal/notes"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func TestBuild_DatedNotes(t *testing.T) {
	snap := notes.NewSnapshot([]notes.Note{
		{ID: 7, Title: "Nowruz dinner", Content: "family", Date: "2024-03-21"},
		{ID: 3, Title: "Undated", Content: "ignored"},
		{ID: 2, Title: "Trip", Date: "2024-04-02"},
	})

	g := &feed.Generator{Clock: MockClock{CurrentTime: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}}
	data, err := g.Build(snap)
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)

	summary, err := events[0].Props.Text(config.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Nowruz dinner", summary)

	uid, err := events[0].Props.Text(config.PropUID)
	require.NoError(t, err)
	assert.Equal(t, "note-7@dashtyar", uid)

	start := events[0].Props.Get(config.PropDTStart)
	require.NotNil(t, start)
	assert.Equal(t, "20240321", start.Value)

	name, err := cal.Props.Text(config.PropXWRCalName)
	require.NoError(t, err)
	assert.Equal(t, config.ICalCalName, name)
}

func TestBuild_NoDatedNotesGivesStub(t *testing.T) {
	g := &feed.Generator{}
	data, err := g.Build(notes.NewSnapshot(notes.Welcome()))
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)

	prodid, err := cal.Props.Text(config.PropProdid)
	require.NoError(t, err)
	assert.Equal(t, config.ICalProdid, prodid)
	assert.Empty(t, cal.Events())
}
