package calendar

import (
	"fmt"
	"time"
)

// DateKeyLayout is the text form of a DateKey. It matches the "date" field of
// stored notes.
const DateKeyLayout = "2006-01-02"

// DateKey identifies one local calendar day in the Gregorian calendar. It is
// comparable and is the key of every "does this day have notes" lookup.
type DateKey struct {
	Year  int
	Month time.Month
	Day   int
}

// Clock abstracts time.Now() so "today" is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Normalize strips the time of day, keeping the year/month/day fields of t as
// seen in t's own location.
func Normalize(t time.Time) DateKey {
	y, m, d := t.Date()
	return DateKey{Year: y, Month: m, Day: d}
}

// Today is Normalize applied to the clock's current moment.
func Today(c Clock) DateKey {
	if c == nil {
		c = RealClock{}
	}
	return Normalize(c.Now())
}

// ParseDateKey parses the YYYY-MM-DD form.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(DateKeyLayout, s)
	if err != nil {
		return DateKey{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Normalize(t), nil
}

// String formats the key as YYYY-MM-DD.
func (k DateKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (k DateKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *DateKey) UnmarshalText(b []byte) error {
	v, err := ParseDateKey(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Time returns midnight UTC of the day. UTC keeps day arithmetic free of DST gaps.
func (k DateKey) Time() time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, time.UTC)
}

// In returns the start of the day in loc.
func (k DateKey) In(loc *time.Location) time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, loc)
}

// Weekday returns the native weekday (Sunday = 0).
func (k DateKey) Weekday() time.Weekday {
	return k.Time().Weekday()
}

// AddDays moves the key by n days with normal month and year carry.
func (k DateKey) AddDays(n int) DateKey {
	return Normalize(time.Date(k.Year, k.Month, k.Day+n, 0, 0, 0, 0, time.UTC))
}

// DaysSince returns the signed number of days from other to k.
func (k DateKey) DaysSince(other DateKey) int {
	return int(k.Time().Sub(other.Time()).Hours() / 24)
}

// Before reports whether k is an earlier day than other.
func (k DateKey) Before(other DateKey) bool {
	return k.Time().Before(other.Time())
}

// IsZero reports whether k is the zero value.
func (k DateKey) IsZero() bool {
	return k == DateKey{}
}

// Validate checks that k names a real day inside the supported range.
func (k DateKey) Validate() error {
	return validateGregorian(k.Year, int(k.Month), k.Day)
}

func keyFromTriple(y, m, d int) DateKey {
	return DateKey{Year: y, Month: time.Month(m), Day: d}
}

// Date is a calendar day tagged with its system. Gregorian months are 1-12,
// Jalali months are 0-11 with 0 = Farvardin, matching the month-name tables.
type Date struct {
	System System
	Year   int
	Month  int
	Day    int
}

// GregorianOf wraps a key as a Gregorian Date.
func GregorianOf(k DateKey) Date {
	return Date{System: Gregorian, Year: k.Year, Month: int(k.Month), Day: k.Day}
}

// JalaliOf converts a key into its Jalali Date.
func JalaliOf(k DateKey) (Date, error) {
	jy, jm, jd, err := GregorianToJalali(k.Year, int(k.Month), k.Day)
	if err != nil {
		return Date{}, err
	}
	return Date{System: Jalali, Year: jy, Month: jm - 1, Day: jd}, nil
}

// In converts k into the given system.
func In(k DateKey, s System) (Date, error) {
	if s == Jalali {
		return JalaliOf(k)
	}
	if err := k.Validate(); err != nil {
		return Date{}, err
	}
	return GregorianOf(k), nil
}

// Key returns the Gregorian identity of d.
func (d Date) Key() (DateKey, error) {
	switch d.System {
	case Jalali:
		gy, gm, gd, err := JalaliToGregorian(d.Year, d.Month+1, d.Day)
		if err != nil {
			return DateKey{}, err
		}
		return keyFromTriple(gy, gm, gd), nil
	default:
		k := keyFromTriple(d.Year, d.Month, d.Day)
		if err := k.Validate(); err != nil {
			return DateKey{}, err
		}
		return k, nil
	}
}
