// Package calendar converts dates between the proleptic Gregorian/Julian
// calendar, Julian Day Numbers and the Vietnamese lunisolar calendar.
//
// The Julian Day Number (JDN) is the common axis: every conversion goes
// through it, and two dates are the same day exactly when their JDNs match.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Day is a day/month/year triple shared by both calendars. It carries no
// validation of its own.
type Day struct {
	Day   int
	Month int
	Year  int
}

// Date is a day that can be placed on the Julian day axis.
// It is implemented by GregorianDay and LunarDay.
type Date interface {
	fmt.Stringer
	julianDays(c *Converter) (int, error)
}

// GregorianDay is a civil date. Dates on or after 15 October 1582 follow
// the Gregorian rules, earlier ones the Julian rules.
type GregorianDay struct {
	inner Day
}

// NewGregorianDay validates and returns a civil date. A date is valid when
// converting it to a JDN and back reproduces it, which rejects 30 February,
// 29 February in common years and the days dropped in October 1582.
func NewGregorianDay(day, month, year int) (GregorianDay, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return GregorianDay{}, fmt.Errorf("%w: %02d/%02d/%04d", ErrInvalidDate, day, month, year)
	}
	d := Day{Day: day, Month: month, Year: year}
	if civilFromJulianDays(JulianDays(day, month, year)) != d {
		return GregorianDay{}, fmt.Errorf("%w: %02d/%02d/%04d", ErrInvalidDate, day, month, year)
	}
	return GregorianDay{inner: d}, nil
}

// GregorianFromJulianDays returns the civil date of a JDN.
func GregorianFromJulianDays(jd int) GregorianDay {
	return GregorianDay{inner: civilFromJulianDays(jd)}
}

// GregorianFromTime returns the civil date of t in t's location.
func GregorianFromTime(t time.Time) GregorianDay {
	y, m, d := t.Date()
	return GregorianDay{inner: Day{Day: d, Month: int(m), Year: y}}
}

// ParseGregorian parses a date in YYYY-MM-DD format.
func ParseGregorian(s string) (GregorianDay, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return GregorianDay{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return GregorianDay{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
		}
		n[i] = v
	}
	return NewGregorianDay(n[2], n[1], n[0])
}

func (g GregorianDay) Day() int   { return g.inner.Day }
func (g GregorianDay) Month() int { return g.inner.Month }
func (g GregorianDay) Year() int  { return g.inner.Year }

// Value returns the underlying triple.
func (g GregorianDay) Value() Day { return g.inner }

// JulianDays returns the JDN of the date.
func (g GregorianDay) JulianDays() int {
	return JulianDays(g.inner.Day, g.inner.Month, g.inner.Year)
}

// DayOfWeek returns the weekday of the date.
func (g GregorianDay) DayOfWeek() DayOfWeek {
	dow, _ := DayOfWeekOf(g.JulianDays())
	return dow
}

// AddDays returns the date n days later (earlier for negative n).
func (g GregorianDay) AddDays(n int) GregorianDay {
	return GregorianFromJulianDays(g.JulianDays() + n)
}

// ToMonth returns the calendar month containing the date.
func (g GregorianDay) ToMonth() GregorianMonth {
	return GregorianMonth{year: g.inner.Year, month: g.inner.Month}
}

// String formats the date as DD/MM/YYYY.
func (g GregorianDay) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", g.inner.Day, g.inner.Month, g.inner.Year)
}

// ISO formats the date as YYYY-MM-DD.
func (g GregorianDay) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", g.inner.Year, g.inner.Month, g.inner.Day)
}

func (g GregorianDay) julianDays(_ *Converter) (int, error) {
	return g.JulianDays(), nil
}

// LunarDay is a date in the Vietnamese lunisolar calendar. Leap reports
// whether the month is the inserted thirteenth month of its year.
type LunarDay struct {
	inner Day
	leap  bool
}

// NewLunarDay range-checks a lunar date. Whether the leap flag and the day
// number fit the actual year is only known once the date is converted.
func NewLunarDay(day, month, year int, leap bool) (LunarDay, error) {
	if month < 1 || month > 12 || day < 1 || day > 30 {
		return LunarDay{}, fmt.Errorf("%w: lunar %02d/%02d/%04d", ErrInvalidDate, day, month, year)
	}
	return LunarDay{inner: Day{Day: day, Month: month, Year: year}, leap: leap}, nil
}

// ParseLunar parses a lunar date in DD/MM/YYYY format.
func ParseLunar(s string, leap bool) (LunarDay, error) {
	parts := strings.Split(strings.TrimSuffix(strings.TrimSpace(s), " AL"), "/")
	if len(parts) != 3 {
		return LunarDay{}, fmt.Errorf("%w: %q is not DD/MM/YYYY", ErrInvalidDate, s)
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return LunarDay{}, fmt.Errorf("%w: %q is not DD/MM/YYYY", ErrInvalidDate, s)
		}
		n[i] = v
	}
	return NewLunarDay(n[0], n[1], n[2], leap)
}

func (l LunarDay) Day() int   { return l.inner.Day }
func (l LunarDay) Month() int { return l.inner.Month }
func (l LunarDay) Year() int  { return l.inner.Year }
func (l LunarDay) Leap() bool { return l.leap }

// Value returns the underlying triple.
func (l LunarDay) Value() Day { return l.inner }

// String formats the date as DD/MM/YYYY AL.
func (l LunarDay) String() string {
	return fmt.Sprintf("%02d/%02d/%04d AL", l.inner.Day, l.inner.Month, l.inner.Year)
}

func (l LunarDay) julianDays(c *Converter) (int, error) {
	return c.LunarJulianDays(l)
}
