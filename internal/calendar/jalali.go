package calendar

// Day offsets of the first of each Gregorian month in a common year.
var gregorianMonthOffset = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

const (
	jalaliGrandCycleDays = 12053 // 33 Jalali years
	julianCycleDays      = 1461  // 4 years
	gregorianCycleDays   = 146097
	gregorianCenturyDays = 36524
	jalaliFirstHalfDays  = 186 // six 31-day months
)

// IsGregorianLeapYear applies the 400/100/4 rule.
func IsGregorianLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// GregorianMonthLength returns the number of days of a 1-based Gregorian month.
func GregorianMonthLength(year, month int) int {
	switch month {
	case 2:
		if IsGregorianLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// GregorianToJalali converts a Gregorian date (1-based month) to Jalali (1-based month).
func GregorianToJalali(gy, gm, gd int) (jy, jm, jd int, err error) {
	if err := validateGregorian(gy, gm, gd); err != nil {
		return 0, 0, 0, err
	}
	jy, jm, jd = gregorianToJalali(gy, gm, gd)
	return jy, jm, jd, nil
}

// JalaliToGregorian converts a Jalali date (1-based month) to Gregorian (1-based month).
func JalaliToGregorian(jy, jm, jd int) (gy, gm, gd int, err error) {
	if err := validateJalali(jy, jm, jd); err != nil {
		return 0, 0, 0, err
	}
	gy, gm, gd = jalaliToGregorian(jy, jm, jd)
	return gy, gm, gd, nil
}

// IsJalaliLeapYear reports whether Esfand of year has 30 days. It is derived
// from the converter (distance between two consecutive 1 Farvardin), so it
// always agrees with the month grid.
func IsJalaliLeapYear(year int) bool {
	return jalaliYearLength(year) == 366
}

// JalaliMonthLength returns the length of a 0-based Jalali month.
func JalaliMonthLength(year, monthIndex int) int {
	switch {
	case monthIndex < 6:
		return 31
	case monthIndex < 11:
		return 30
	case IsJalaliLeapYear(year):
		return 30
	default:
		return 29
	}
}

func jalaliYearLength(year int) int {
	start := keyFromTriple(jalaliToGregorian(year, 1, 1))
	next := keyFromTriple(jalaliToGregorian(year+1, 1, 1))
	return next.DaysSince(start)
}

func validateGregorian(y, m, d int) error {
	if m < 1 || m > 12 || d < 1 || d > GregorianMonthLength(y, m) {
		return invalid(Gregorian, y, m, d, ErrInvalidDate)
	}
	if y < MinGregorianYear || y > MaxGregorianYear {
		return invalid(Gregorian, y, m, d, ErrOutOfRange)
	}
	return nil
}

func validateJalali(y, m, d int) error {
	if y < MinJalaliYear || y > MaxJalaliYear {
		return invalid(Jalali, y, m, d, ErrOutOfRange)
	}
	if m < 1 || m > 12 || d < 1 || d > JalaliMonthLength(y, m-1) {
		return invalid(Jalali, y, m, d, ErrInvalidDate)
	}
	return nil
}

// gregorianToJalali is the unchecked conversion. Two epochs are used: years up to
// 1600 count from Jalali year 0 (Gregorian 621), later years from Jalali 979
// (Gregorian 1600) to keep the day count small.
func gregorianToJalali(gy, gm, gd int) (int, int, int) {
	var jy int
	if gy <= 1600 {
		jy = 0
		gy -= 621
	} else {
		jy = 979
		gy -= 1600
	}

	gy2 := gy
	if gm > 2 {
		gy2 = gy + 1
	}
	days := 365*gy + (gy2+3)/4 - (gy2+99)/100 + (gy2+399)/400 - 80 + gd + gregorianMonthOffset[gm-1]

	jy += 33 * (days / jalaliGrandCycleDays)
	days %= jalaliGrandCycleDays

	jy += 4 * (days / julianCycleDays)
	days %= julianCycleDays

	jy += (days - 1) / 365
	if days > 365 {
		days = (days - 1) % 365
	}

	if days < jalaliFirstHalfDays {
		return jy, 1 + days/31, 1 + days%31
	}
	days -= jalaliFirstHalfDays
	return jy, 7 + days/30, 1 + days%30
}

// jalaliToGregorian is the unchecked inverse.
func jalaliToGregorian(jy, jm, jd int) (int, int, int) {
	jy += 1595
	days := -355668 + 365*jy + (jy/33)*8 + ((jy%33)+3)/4 + jd
	if jm < 7 {
		days += (jm - 1) * 31
	} else {
		days += (jm-7)*30 + jalaliFirstHalfDays
	}

	gy := 400 * (days / gregorianCycleDays)
	days %= gregorianCycleDays

	if days > gregorianCenturyDays {
		days--
		gy += 100 * (days / gregorianCenturyDays)
		days %= gregorianCenturyDays
		if days >= 365 {
			days++
		}
	}

	gy += 4 * (days / julianCycleDays)
	days %= julianCycleDays

	if days > 365 {
		gy += (days - 1) / 365
		days = (days - 1) % 365
	}

	gd := days + 1
	gm := 1
	for ; gm <= 12; gm++ {
		n := GregorianMonthLength(gy, gm)
		if gd <= n {
			break
		}
		gd -= n
	}
	return gy, gm, gd
}
