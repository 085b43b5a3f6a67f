package calendar

import (
	"strconv"
	"time"
)

// CellKind tells a padding cell from a numbered day.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellDay
)

// Cell is one slot of the month grid. For CellEmpty every other field is zero.
type Cell struct {
	Kind     CellKind `json:"kind"`
	Day      int      `json:"day,omitempty"`
	Key      DateKey  `json:"date,omitzero"`
	IsToday  bool     `json:"is_today,omitempty"`
	HasNotes bool     `json:"has_notes,omitempty"`
}

// NotePredicate reports whether at least one note exists on a day.
type NotePredicate func(DateKey) bool

// DateSet is a set of days. DateSet.Has is a NotePredicate.
type DateSet map[DateKey]struct{}

// Add inserts k.
func (s DateSet) Add(k DateKey) {
	s[k] = struct{}{}
}

// Has reports membership. A nil set is empty.
func (s DateSet) Has(k DateKey) bool {
	_, ok := s[k]
	return ok
}

// MonthView is everything a renderer needs to draw one month. Cells run
// row-major, 7 per row, from the first blank to the last day.
type MonthView struct {
	System        System    `json:"calendar"`
	Year          int       `json:"year"`
	MonthIndex    int       `json:"month_index"`
	MonthName     string    `json:"month_name"`
	YearLabel     string    `json:"year_label"`
	WeekdayLabels [7]string `json:"weekday_labels"`
	LeadingBlanks int       `json:"leading_blanks"`
	DaysInMonth   int       `json:"days_in_month"`
	Cells         []Cell    `json:"cells"`
}

// Rows splits the cells into weeks. The last row may be shorter than 7.
func (v MonthView) Rows() [][]Cell {
	var rows [][]Cell
	for i := 0; i < len(v.Cells); i += 7 {
		end := i + 7
		if end > len(v.Cells) {
			end = len(v.Cells)
		}
		rows = append(rows, v.Cells[i:end])
	}
	return rows
}

// Today returns the cell marked as today, if the month holds it.
func (v MonthView) Today() (Cell, bool) {
	for _, c := range v.Cells {
		if c.IsToday {
			return c, true
		}
	}
	return Cell{}, false
}

// Builder derives month views. Clock decides which cell is today.
type Builder struct {
	Clock Clock
}

// BuildMonthView builds the month of ref using the real clock.
func BuildMonthView(ref DateKey, sys System, hasNotes NotePredicate) (MonthView, error) {
	return Builder{Clock: RealClock{}}.Build(ref, sys, hasNotes)
}

// Build returns the month of sys that contains ref. hasNotes may be nil.
func (b Builder) Build(ref DateKey, sys System, hasNotes NotePredicate) (MonthView, error) {
	d, err := In(ref, sys)
	if err != nil {
		return MonthView{}, err
	}

	var first DateKey
	var monthIndex, days int
	switch sys {
	case Jalali:
		monthIndex = d.Month
		first = keyFromTriple(jalaliToGregorian(d.Year, monthIndex+1, 1))
		days = jalaliDaysInMonth(d.Year, monthIndex)
	default:
		monthIndex = d.Month - 1
		first = DateKey{Year: d.Year, Month: time.Month(d.Month), Day: 1}
		days = GregorianMonthLength(d.Year, d.Month)
	}

	// The Jalali months around both ends of the range straddle it.
	if err := first.Validate(); err != nil {
		return MonthView{}, err
	}
	if err := first.AddDays(days - 1).Validate(); err != nil {
		return MonthView{}, err
	}

	blanks := sys.Column(first.Weekday())
	today := Today(b.Clock)

	cells := make([]Cell, blanks, blanks+days)
	for day := 1; day <= days; day++ {
		k := first.AddDays(day - 1)
		cells = append(cells, Cell{
			Kind:     CellDay,
			Day:      day,
			Key:      k,
			IsToday:  k == today,
			HasNotes: hasNotes != nil && hasNotes(k),
		})
	}

	return MonthView{
		System:        sys,
		Year:          d.Year,
		MonthIndex:    monthIndex,
		MonthName:     sys.MonthName(monthIndex),
		YearLabel:     strconv.Itoa(d.Year),
		WeekdayLabels: sys.WeekdayLabels(),
		LeadingBlanks: blanks,
		DaysInMonth:   days,
		Cells:         cells,
	}, nil
}

// jalaliDaysInMonth walks back one day from the first of the next month, so
// the converter remains the only place that knows the leap rule.
func jalaliDaysInMonth(year, monthIndex int) int {
	nextYear, nextMonth := year, monthIndex+1
	if nextMonth > 11 {
		nextMonth = 0
		nextYear++
	}
	last := keyFromTriple(jalaliToGregorian(nextYear, nextMonth+1, 1)).AddDays(-1)
	_, _, jd := gregorianToJalali(last.Year, int(last.Month), last.Day)
	return jd
}

// FormatDisplay renders a day for headings: "March 21, 2024" or "2 فروردین 1403".
func FormatDisplay(k DateKey, sys System) (string, error) {
	d, err := In(k, sys)
	if err != nil {
		return "", err
	}
	if sys == Jalali {
		return strconv.Itoa(d.Day) + " " + sys.MonthName(d.Month) + " " + strconv.Itoa(d.Year), nil
	}
	return sys.MonthName(d.Month-1) + " " + strconv.Itoa(d.Day) + ", " + strconv.Itoa(d.Year), nil
}
