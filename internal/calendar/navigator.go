package calendar

import "time"

// Advance moves ref by delta whole months of sys and returns the new reference day.
//
// Gregorian steps keep the day of month, clamped to the length of the target
// month so that Jan 31 + 1 lands in February. Jalali steps always land on the
// 1st of the target month.
func Advance(ref DateKey, sys System, delta int) (DateKey, error) {
	if sys == Jalali {
		return advanceJalali(ref, delta)
	}
	return advanceGregorian(ref, delta)
}

func advanceGregorian(ref DateKey, delta int) (DateKey, error) {
	if err := ref.Validate(); err != nil {
		return DateKey{}, err
	}
	year, month := rollMonth(ref.Year, int(ref.Month)-1, delta)
	if year < MinGregorianYear || year > MaxGregorianYear {
		return DateKey{}, invalid(Gregorian, year, month+1, 1, ErrOutOfRange)
	}
	day := min(ref.Day, GregorianMonthLength(year, month+1))
	return DateKey{Year: year, Month: time.Month(month + 1), Day: day}, nil
}

func advanceJalali(ref DateKey, delta int) (DateKey, error) {
	d, err := JalaliOf(ref)
	if err != nil {
		return DateKey{}, err
	}
	year, month := rollMonth(d.Year, d.Month, delta)
	return Date{System: Jalali, Year: year, Month: month, Day: 1}.Key()
}

// rollMonth adds delta to a 0-based month index and carries whole years, in
// both directions.
func rollMonth(year, monthIndex, delta int) (int, int) {
	total := year*12 + monthIndex + delta
	y, m := total/12, total%12
	if m < 0 {
		m += 12
		y--
	}
	return y, m
}

// Selection is the reference day plus the optionally selected day of a
// calendar widget.
type Selection struct {
	Reference DateKey
	Selected  DateKey
	HasSelect bool
}

// Select marks k as the selected day without moving the reference.
func (s Selection) Select(k DateKey) Selection {
	s.Selected = k
	s.HasSelect = true
	return s
}

// GotoToday resets the reference to today and clears any selected day.
func GotoToday(c Clock) Selection {
	return Selection{Reference: Today(c)}
}
