// Package terminal prints a month view as a fixed-width text grid.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/tartampluch/go-dashtyar/internal/calendar"
	"github.com/tartampluch/go-dashtyar/internal/config"
)

// cellWidth is the number of columns a day occupies, marker included.
const cellWidth = 4

var (
	todayColor = color.New(color.ReverseVideo, color.Bold)
	notesColor = color.New(color.FgYellow)
	titleColor = color.New(color.Bold)
)

// Render writes the header, the weekday row and one line per week.
// Days with notes carry config.MarkerTerminalNotes; today is inverted.
func Render(w io.Writer, view calendar.MonthView) error {
	var b strings.Builder
	lineWidth := cellWidth * config.GridColumns

	title := view.MonthName + " " + view.YearLabel
	if pad := (lineWidth - len([]rune(title))) / 2; pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(titleColor.Sprint(title))
	b.WriteByte('\n')

	for _, label := range view.WeekdayLabels {
		fmt.Fprintf(&b, "%*s", cellWidth, label+" ")
	}
	b.WriteByte('\n')

	for _, row := range view.Rows() {
		for _, c := range row {
			b.WriteString(renderCell(c))
		}
		b.WriteByte('\n')
	}

	if today, ok := view.Today(); ok {
		if s, err := calendar.FormatDisplay(today.Key, view.System); err == nil {
			fmt.Fprintf(&b, config.FormatTerminalToday, s)
			b.WriteByte('\n')
		}
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrTerminalWrite, err)
	}
	return nil
}

func renderCell(c calendar.Cell) string {
	if c.Kind == calendar.CellEmpty {
		return strings.Repeat(" ", cellWidth)
	}

	day := fmt.Sprintf("%*d", cellWidth-1, c.Day)
	marker := " "
	if c.HasNotes {
		marker = config.MarkerTerminalNotes
		day = notesColor.Sprint(day)
	}
	if c.IsToday {
		day = todayColor.Sprint(day)
	}
	return day + marker
}
