package ui

import (
	"strconv"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// maxYearDigits bounds the entry to four-digit years.
const maxYearDigits = 4

// NumericalEntry is an Entry widget that only accepts year digits.
// Persian and Arabic-Indic digits are stored as ASCII.
type NumericalEntry struct {
	widget.Entry
}

// NewNumericalEntry creates a new instance of NumericalEntry.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune drops anything that is not a digit or would exceed four digits.
func (e *NumericalEntry) TypedRune(r rune) {
	d, ok := asciiDigit(r)
	if !ok || len([]rune(e.Text)) >= maxYearDigits {
		return
	}
	e.Entry.TypedRune(d)
}

// Keyboard shows the numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

// Value returns the typed year. Pasted text bypasses TypedRune, so it is
// normalized here as well.
func (e *NumericalEntry) Value() (int, bool) {
	digits := make([]rune, 0, maxYearDigits)
	for _, r := range e.Text {
		d, ok := asciiDigit(r)
		if !ok {
			return 0, false
		}
		digits = append(digits, d)
	}
	if len(digits) == 0 || len(digits) > maxYearDigits {
		return 0, false
	}
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0, false
	}
	return n, true
}

// asciiDigit maps 0-9, ۰-۹ and ٠-٩ onto 0-9.
func asciiDigit(r rune) (rune, bool) {
	switch {
	case r >= '0' && r <= '9':
		return r, true
	case r >= '۰' && r <= '۹':
		return '0' + (r - '۰'), true
	case r >= '٠' && r <= '٩':
		return '0' + (r - '٠'), true
	}
	return 0, false
}
