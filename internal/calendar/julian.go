package calendar

import "math"

// GregorianReformJDN is the first day of the Gregorian calendar,
// 15 October 1582. Earlier days are counted with Julian rules.
const GregorianReformJDN = 2299161

// JulianDays converts a civil date to its Julian Day Number.
//
// Inputs are not validated; use NewGregorianDay for that. The arithmetic is
// done in float64 and truncated once at the end so that it matches the
// reference tables exactly.
func JulianDays(day, month, year int) int {
	a := float64((14 - month) / 12)
	y := float64(year) + 4800 - a
	m := float64(month) + 12*a - 3

	base := float64(day) + math.Floor((153*m+2)/5) + 365*y + math.Floor(y/4)
	jd := base - math.Floor(y/100) + math.Floor(y/400) - 32045
	if jd < GregorianReformJDN {
		// Julian calendar: no century correction.
		jd = base - 32083
	}
	return int(jd)
}

// civilFromJulianDays is the inverse of JulianDays.
func civilFromJulianDays(jd int) Day {
	j := float64(jd)

	var b, c float64
	if j > GregorianReformJDN-1 {
		a := j + 32044
		b = math.Floor((4*a + 3) / 146097)
		c = a - math.Floor(b*146097/4)
	} else {
		c = j + 32082
	}

	d := math.Floor((4*c + 3) / 1461)
	e := c - math.Floor(1461*d/4)
	m := math.Floor((5*e + 2) / 153)

	return Day{
		Day:   int(e - math.Floor((153*m+2)/5) + 1),
		Month: int(m + 3 - 12*math.Floor(m/10)),
		Year:  int(b*100 + d - 4800 + math.Floor(m/10)),
	}
}
