package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-dashtyar/internal/calendar"
)

func displayed(t *testing.T, ref calendar.DateKey, sys calendar.System) (int, int) {
	t.Helper()
	view, err := calendar.Builder{Clock: MockClock{}}.Build(ref, sys, nil)
	require.NoError(t, err)
	return view.Year, view.MonthIndex
}

func TestAdvance_Gregorian(t *testing.T) {
	tests := []struct {
		name  string
		ref   calendar.DateKey
		delta int
		want  calendar.DateKey
	}{
		{"next month", key(2024, time.March, 15), 1, key(2024, time.April, 15)},
		{"previous month", key(2024, time.March, 15), -1, key(2024, time.February, 15)},
		{"year rollover forward", key(2024, time.December, 3), 1, key(2025, time.January, 3)},
		{"year rollover backward", key(2024, time.January, 3), -1, key(2023, time.December, 3)},
		{"clamped to february", key(2023, time.January, 31), 1, key(2023, time.February, 28)},
		{"clamped to leap february", key(2024, time.January, 31), 1, key(2024, time.February, 29)},
		{"many months", key(2024, time.March, 1), -27, key(2021, time.December, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calendar.Advance(tt.ref, calendar.Gregorian, tt.delta)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdvance_Jalali(t *testing.T) {
	jalali := func(y, m, d int) calendar.DateKey {
		k, err := calendar.Date{System: calendar.Jalali, Year: y, Month: m, Day: d}.Key()
		require.NoError(t, err)
		return k
	}

	tests := []struct {
		name  string
		ref   calendar.DateKey
		delta int
		want  calendar.DateKey
	}{
		{"next month pins day 1", jalali(1403, 0, 31), 1, jalali(1403, 1, 1)},
		{"previous month", jalali(1403, 6, 20), -1, jalali(1403, 5, 1)},
		{"esfand to farvardin", jalali(1403, 11, 30), 1, jalali(1404, 0, 1)},
		{"farvardin to esfand", jalali(1404, 0, 1), -1, jalali(1403, 11, 1)},
		{"two years forward", jalali(1403, 5, 5), 24, jalali(1405, 5, 1)},
		{"thirteen back", jalali(1404, 0, 10), -13, jalali(1402, 11, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calendar.Advance(tt.ref, calendar.Jalali, tt.delta)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestAdvance_Symmetry steps forward and back from every day of a few years and
// checks the displayed month is where it started.
func TestAdvance_Symmetry(t *testing.T) {
	systems := []calendar.System{calendar.Gregorian, calendar.Jalali}
	day := key(2023, time.January, 1)
	end := key(2026, time.December, 31)

	for !end.Before(day) {
		for _, sys := range systems {
			fwd, err := calendar.Advance(day, sys, 1)
			require.NoError(t, err)
			back, err := calendar.Advance(fwd, sys, -1)
			require.NoError(t, err)

			wy, wm := displayed(t, day, sys)
			gy, gm := displayed(t, back, sys)
			if wy != gy || wm != gm {
				t.Fatalf("%s %s: +1/-1 moved month (%d,%d) to (%d,%d)", sys, day, wy, wm, gy, gm)
			}

			ny, nm := displayed(t, fwd, sys)
			if (ny*12 + nm) != (wy*12 + wm + 1) {
				t.Fatalf("%s %s: +1 displayed (%d,%d), want month after (%d,%d)", sys, day, ny, nm, wy, wm)
			}
		}
		day = day.AddDays(1)
	}
}

func TestAdvance_OutOfRange(t *testing.T) {
	_, err := calendar.Advance(key(calendar.MaxGregorianYear, time.December, 1), calendar.Gregorian, 1)
	assert.ErrorIs(t, err, calendar.ErrOutOfRange)

	_, err = calendar.Advance(key(calendar.MinGregorianYear, time.January, 1), calendar.Gregorian, -1)
	assert.ErrorIs(t, err, calendar.ErrOutOfRange)

	_, err = calendar.Advance(key(2024, time.February, 30), calendar.Jalali, 1)
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)
}

func TestGotoToday(t *testing.T) {
	clock := MockClock{CurrentTime: time.Date(2026, 10, 14, 23, 59, 0, 0, time.UTC)}

	sel := calendar.Selection{Reference: key(2020, time.May, 5)}.Select(key(2020, time.May, 6))
	require.True(t, sel.HasSelect)

	sel = calendar.GotoToday(clock)
	assert.Equal(t, key(2026, time.October, 14), sel.Reference)
	assert.False(t, sel.HasSelect)
	assert.True(t, sel.Selected.IsZero())
}
