package calendar

import (
	"fmt"
	"strings"
	"time"
)

// System selects the calendar used to lay out and label a month.
type System int

const (
	Gregorian System = iota
	Jalali
)

const (
	gregorianName = "gregorian"
	jalaliName    = "jalali"
)

// String returns the lower-case identifier used in settings, preferences and query strings.
func (s System) String() string {
	switch s {
	case Gregorian:
		return gregorianName
	case Jalali:
		return jalaliName
	default:
		return fmt.Sprintf("system(%d)", int(s))
	}
}

// Other returns the opposite system. The dashboard toggle flips between the two.
func (s System) Other() System {
	if s == Jalali {
		return Gregorian
	}
	return Jalali
}

// ParseSystem accepts the String form plus the common aliases ("persian", "shamsi").
func ParseSystem(v string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case gregorianName, "miladi":
		return Gregorian, nil
	case jalaliName, "persian", "shamsi", "solar-hijri":
		return Jalali, nil
	default:
		return Gregorian, fmt.Errorf("unknown calendar system %q", v)
	}
}

// MarshalText implements encoding.TextMarshaler so MonthView encodes the system by name.
func (s System) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *System) UnmarshalText(b []byte) error {
	v, err := ParseSystem(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// locale groups everything that differs between the two systems when drawing a month.
type locale struct {
	months   [12]string
	weekdays [7]string
	// weekShift rotates time.Weekday (Sunday = 0) into the grid column of the system.
	weekShift int
	// name is the label shown on the toggle button that switches to this system.
	name string
}

var locales = map[System]locale{
	Gregorian: {
		months: [12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		weekdays:  [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		weekShift: 0,
		name:      "میلادی",
	},
	Jalali: {
		months: [12]string{
			"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور",
			"مهر", "آبان", "آذر", "دی", "بهمن", "اسفند",
		},
		weekdays:  [7]string{"ش", "ی", "د", "س", "چ", "پ", "ج"},
		weekShift: 1,
		name:      "شمسی",
	},
}

// localeOf panics on an unknown system: the set of systems is closed.
func localeOf(s System) locale {
	l, ok := locales[s]
	if !ok {
		panic(fmt.Sprintf("calendar: no locale for %s", s))
	}
	return l
}

// MonthName returns the display name of a 0-based month index.
func (s System) MonthName(monthIndex int) string {
	return localeOf(s).months[monthIndex]
}

// WeekdayLabels returns the 7 column headers, first column first.
func (s System) WeekdayLabels() [7]string {
	return localeOf(s).weekdays
}

// DisplayName is the native name of the system ("میلادی" or "شمسی").
func (s System) DisplayName() string {
	return localeOf(s).name
}

// Column maps a native weekday onto the grid column of the system.
func (s System) Column(wd time.Weekday) int {
	return (int(wd) + localeOf(s).weekShift) % 7
}
