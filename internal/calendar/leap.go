package calendar

import "math"

const (
	// synodicMonth is the mean length of a lunation, in days.
	synodicMonth = 29.530588853

	// lunationEpoch is the JDN of the new moon numbered 0 (January 1900).
	lunationEpoch = 2415021.076998695

	// maxLeapScan bounds the lunations examined when looking for a leap month.
	maxLeapScan = 14
)

// LunarMonth11 returns the JDN on which lunar month 11 of year begins:
// the month containing the winter solstice.
func LunarMonth11(year int, tz float64) int {
	// 32 December overflows into 1 January of the next year.
	off := float64(JulianDays(32, 12, year)) - 2415021
	k := int(math.Floor(off / synodicMonth))
	nm := NewMoonDay(k, tz)
	if SunLongitude(nm, tz) >= 9 {
		nm = NewMoonDay(k-1, tz)
	}
	return nm
}

// LeapMonthOffset returns how many lunations after month 11 (starting at
// a11) the leap month lies: the first lunar month during which the sun
// does not enter a new 30-degree sector. converged is false when the scan
// stopped at its iteration cap instead.
func LeapMonthOffset(a11 int, tz float64) (offset int, converged bool) {
	k := lunationIndex(a11)
	i := 1 // start with the month following month 11
	arc := SunLongitude(NewMoonDay(k+i, tz), tz)
	for {
		last := arc
		i++
		arc = SunLongitude(NewMoonDay(k+i, tz), tz)
		if arc == last {
			return i - 1, true
		}
		if i >= maxLeapScan {
			return i - 1, false
		}
	}
}

// lunationIndex returns the lunation number of the new moon starting on jd.
func lunationIndex(jd int) int {
	return int(math.Floor(0.5 + (float64(jd)-lunationEpoch)/synodicMonth))
}

// leapMonthNumber maps a leap month offset to the month it repeats.
// Offset 1 repeats month 11, offset 2 month 12, offset 3 month 1 and so on.
func leapMonthNumber(offset int) int {
	m := offset - 2
	if m <= 0 {
		m += 12
	}
	return m
}

// isLeapSpan reports whether two consecutive month-11 starts enclose 13 months.
func isLeapSpan(a11, b11 int) bool {
	return b11-a11 > 365
}
