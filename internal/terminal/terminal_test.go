package terminal_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-dashtyar/internal/calendar"
	"github.com/tartampluch/go-dashtyar/internal/config"
	"github.com/tartampluch/go-dashtyar/internal/terminal"
)

type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func farvardin1403(t *testing.T) calendar.MonthView {
	t.Helper()
	nowruz := calendar.DateKey{Year: 2024, Month: time.March, Day: 21}
	b := calendar.Builder{Clock: MockClock{CurrentTime: time.Date(2024, 3, 21, 9, 0, 0, 0, time.UTC)}}
	view, err := b.Build(nowruz, calendar.Jalali, calendar.DateSet{nowruz: {}}.Has)
	require.NoError(t, err)
	return view
}

func TestRender_Jalali(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	require.NoError(t, terminal.Render(&buf, farvardin1403(t)))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 8, "title, weekdays, five weeks, footer")

	assert.Equal(t, "فروردین 1403", strings.TrimSpace(lines[0]))
	assert.Equal(t, "ش   ی   د   س   چ   پ   ج", strings.TrimSpace(lines[1]))
	assert.Equal(t, strings.Repeat(" ", 16)+"  1   2"+config.MarkerTerminalNotes+"  3 ", lines[2])
	assert.Equal(t, "  4   5   6   7   8   9  10 ", lines[3])
	assert.Equal(t, " 25  26  27  28  29  30  31 ", lines[6])
	assert.Equal(t, "Today: 2 فروردین 1403", lines[7])
}

func TestRender_NoTodayFooterOutsideCurrentMonth(t *testing.T) {
	color.NoColor = true

	b := calendar.Builder{Clock: MockClock{CurrentTime: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}}
	view, err := b.Build(calendar.DateKey{Year: 2024, Month: time.March, Day: 5}, calendar.Gregorian, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, terminal.Render(&buf, view))

	out := buf.String()
	assert.Contains(t, out, "March 2024")
	assert.Contains(t, out, "Sun Mon Tue Wed Thu Fri Sat")
	assert.NotContains(t, out, "Today:")
	assert.NotContains(t, out, config.MarkerTerminalNotes)
}

func TestRender_WriteError(t *testing.T) {
	err := terminal.Render(failingWriter{}, farvardin1403(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrTerminalWrite)
}
