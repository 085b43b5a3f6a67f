// Package notes reads the notes file maintained by the dashboard's note
// editor and exposes which days carry notes.
//
// The file is a JSON array of records. A record is attached to a day when its
// "date" field holds a YYYY-MM-DD string. This package never writes the file.
package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sort"

	"github.com/tartampluch/go-dashtyar/internal/calendar"
	"github.com/tartampluch/go-dashtyar/internal/config"
)

// Note is one stored note.
type Note struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date,omitempty"`
}

// Key returns the day the note is attached to. ok is false for undated notes
// and for dates that do not parse.
func (n Note) Key() (calendar.DateKey, bool) {
	if n.Date == "" {
		return calendar.DateKey{}, false
	}
	k, err := calendar.ParseDateKey(n.Date)
	if err != nil {
		return calendar.DateKey{}, false
	}
	return k, true
}

// Welcome is the list shown before any note has been saved.
func Welcome() []Note {
	return []Note{{ID: config.WelcomeNoteID, Title: config.WelcomeNoteTitle, Content: config.WelcomeNoteContent}}
}

// Snapshot is an immutable view of the notes file at one point in time.
type Snapshot struct {
	Notes []Note
	dates calendar.DateSet
	byDay map[calendar.DateKey][]Note
}

// NewSnapshot indexes notes by day. The slice order is kept: the editor stores
// the newest note first.
func NewSnapshot(notes []Note) *Snapshot {
	s := &Snapshot{
		Notes: notes,
		dates: calendar.DateSet{},
		byDay: make(map[calendar.DateKey][]Note),
	}
	for _, n := range notes {
		if n.Date == "" {
			continue
		}
		k, ok := n.Key()
		if !ok {
			slog.Warn(config.MsgNoteBadDate,
				config.LogKeyComponent, config.CompNotes,
				config.LogKeyID, n.ID,
				config.LogKeyValue, n.Date)
			continue
		}
		s.dates.Add(k)
		s.byDay[k] = append(s.byDay[k], n)
	}
	return s
}

// HasNotes is the calendar.NotePredicate of the snapshot.
func (s *Snapshot) HasNotes(k calendar.DateKey) bool {
	if s == nil {
		return false
	}
	return s.dates.Has(k)
}

// ForDate returns the notes of one day, newest first.
func (s *Snapshot) ForDate(k calendar.DateKey) []Note {
	if s == nil {
		return nil
	}
	out := make([]Note, len(s.byDay[k]))
	copy(out, s.byDay[k])
	return out
}

// Dated returns every note that is attached to a day, ordered by day then ID.
func (s *Snapshot) Dated() []Note {
	if s == nil {
		return nil
	}
	var out []Note
	for _, list := range s.byDay {
		out = append(out, list...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Days returns the number of distinct days carrying notes.
func (s *Snapshot) Days() int {
	if s == nil {
		return 0
	}
	return len(s.dates)
}

// Source provides the current notes.
type Source interface {
	Load() (*Snapshot, error)
}

// FileSource reads the notes JSON file at Path.
type FileSource struct {
	Path string
}

// Load reads and indexes the file. A missing file is not an error: the
// welcome note is returned, as the dashboard does on first start.
func (f FileSource) Load() (*Snapshot, error) {
	log := slog.With(config.LogKeyComponent, config.CompNotes, config.LogKeyPath, f.Path)

	file, err := os.Open(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug(config.MsgNotesMissing)
			return NewSnapshot(Welcome()), nil
		}
		return nil, fmt.Errorf("%s: %w", config.ErrNotesRead, err)
	}
	defer func() { _ = file.Close() }()

	list, err := Decode(file)
	if err != nil {
		return nil, err
	}

	snap := NewSnapshot(list)
	log.Debug(config.MsgNotesLoaded,
		config.LogKeyCount, len(list),
		config.LogKeyDated, snap.Days())
	return snap, nil
}

// Decode parses a notes array. A JSON null decodes to an empty list.
func Decode(r io.Reader) ([]Note, error) {
	var list []Note
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", config.ErrNotesParse, err)
	}
	return list, nil
}
