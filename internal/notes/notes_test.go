package notes_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-dashtyar/internal/calendar"
	"github.com/tartampluch/go-dashtyar/internal/config"
	"github.com/tartampluch/go-dashtyar/internal/notes"
)

const sample = `[
  {"id": 4, "title": "Nowruz dinner", "content": "family", "date": "2024-03-21"},
  {"id": 3, "title": "Groceries", "content": "milk"},
  {"id": 2, "title": "Call", "content": "dentist", "date": "2024-03-21"},
  {"id": 5, "title": "Broken", "content": "x", "date": "21/03/2024"},
  {"id": 1, "title": "Trip", "content": "Shiraz", "date": "2024-04-02"}
]`

func writeNotes(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.NotesFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), config.FilePermUserRW))
	return path
}

func TestFileSource_Load(t *testing.T) {
	snap, err := notes.FileSource{Path: writeNotes(t, sample)}.Load()
	require.NoError(t, err)

	assert.Len(t, snap.Notes, 5)
	assert.Equal(t, 2, snap.Days(), "malformed and undated notes are not attached to a day")

	nowruz := calendar.DateKey{Year: 2024, Month: time.March, Day: 21}
	assert.True(t, snap.HasNotes(nowruz))
	assert.False(t, snap.HasNotes(nowruz.AddDays(1)))

	day := snap.ForDate(nowruz)
	require.Len(t, day, 2)
	assert.Equal(t, 4, day[0].ID, "file order (newest first) is kept")
	assert.Equal(t, 2, day[1].ID)
}

func TestFileSource_MissingFileGivesWelcome(t *testing.T) {
	snap, err := notes.FileSource{Path: filepath.Join(t.TempDir(), "absent.json")}.Load()
	require.NoError(t, err)
	require.Len(t, snap.Notes, 1)
	assert.Equal(t, config.WelcomeNoteTitle, snap.Notes[0].Title)
	assert.Zero(t, snap.Days())
}

func TestFileSource_BadJSON(t *testing.T) {
	_, err := notes.FileSource{Path: writeNotes(t, `{"id": 1}`)}.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrNotesParse)
}

func TestDecode_Empty(t *testing.T) {
	list, err := notes.Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = notes.Decode(strings.NewReader("null"))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSnapshot_Dated(t *testing.T) {
	snap, err := notes.FileSource{Path: writeNotes(t, sample)}.Load()
	require.NoError(t, err)

	var ids []int
	for _, n := range snap.Dated() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []int{2, 4, 1}, ids)
}

func TestSnapshot_ForDateReturnsCopy(t *testing.T) {
	snap := notes.NewSnapshot([]notes.Note{{ID: 1, Title: "a", Date: "2024-03-21"}})
	k := calendar.DateKey{Year: 2024, Month: time.March, Day: 21}

	got := snap.ForDate(k)
	got[0].Title = "changed"
	assert.Equal(t, "a", snap.ForDate(k)[0].Title)
}

func TestSnapshot_NilIsEmpty(t *testing.T) {
	var snap *notes.Snapshot
	assert.False(t, snap.HasNotes(calendar.DateKey{Year: 2024, Month: time.March, Day: 21}))
	assert.Nil(t, snap.ForDate(calendar.DateKey{}))
	assert.Zero(t, snap.Days())
}

// The predicate plugs straight into the month builder.
func TestSnapshot_DrivesMonthGrid(t *testing.T) {
	snap := notes.NewSnapshot([]notes.Note{{ID: 1, Title: "a", Date: "2024-03-21"}})

	view, err := calendar.BuildMonthView(calendar.DateKey{Year: 2024, Month: time.March, Day: 20}, calendar.Jalali, snap.HasNotes)
	require.NoError(t, err)

	var marked []int
	for _, c := range view.Cells {
		if c.HasNotes {
			marked = append(marked, c.Day)
		}
	}
	assert.Equal(t, []int{2}, marked)
}
