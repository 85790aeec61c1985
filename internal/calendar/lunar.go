package calendar

import (
	"fmt"
	"log/slog"
	"math"
)

// DefaultTimeZone is the UTC offset, in hours, the Vietnamese calendar is
// computed for.
const DefaultTimeZone = 7.0

// Converter converts between the civil and lunar calendars for one time
// zone. It holds no mutable state and is safe for concurrent use.
type Converter struct {
	tz     float64
	logger *slog.Logger
}

// NewConverter creates a converter for a zone tz hours east of UTC.
// A nil logger falls back to slog.Default().
func NewConverter(tz float64, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{tz: tz, logger: logger}
}

// TimeZone returns the converter's UTC offset in hours.
func (c *Converter) TimeZone() float64 {
	return c.tz
}

// JulianDays returns the JDN of any date.
func (c *Converter) JulianDays(d Date) (int, error) {
	return d.julianDays(c)
}

// ToGregorian converts any date to its civil date.
func (c *Converter) ToGregorian(d Date) (GregorianDay, error) {
	jd, err := d.julianDays(c)
	if err != nil {
		return GregorianDay{}, err
	}
	return GregorianFromJulianDays(jd), nil
}

// ToLunar converts any date to its lunar date.
func (c *Converter) ToLunar(d Date) (LunarDay, error) {
	jd, err := d.julianDays(c)
	if err != nil {
		return LunarDay{}, err
	}
	return c.LunarFromJulianDays(jd), nil
}

// DayOfWeek returns the weekday of any date.
func (c *Converter) DayOfWeek(d Date) (DayOfWeek, error) {
	jd, err := d.julianDays(c)
	if err != nil {
		return 0, err
	}
	return DayOfWeekOf(jd)
}

// LunarJulianDays returns the JDN of a lunar date.
//
// It fails with a *LeapMonthError when l is marked leap but its year has no
// leap month of that number, and with ErrInvalidDate when the day is past
// the end of a 29-day month.
func (c *Converter) LunarJulianDays(l LunarDay) (int, error) {
	d := l.inner

	var a11, b11 int
	if d.Month < 11 {
		a11 = LunarMonth11(d.Year-1, c.tz)
		b11 = LunarMonth11(d.Year, c.tz)
	} else {
		a11 = LunarMonth11(d.Year, c.tz)
		b11 = LunarMonth11(d.Year+1, c.tz)
	}

	off := mod(d.Month-11, 12)
	if isLeapSpan(a11, b11) {
		leapOff := c.leapMonthOffset(a11)
		leapMonth := leapMonthNumber(leapOff)
		if l.leap && d.Month != leapMonth {
			return 0, &LeapMonthError{Year: d.Year, Month: d.Month, LeapMonth: leapMonth}
		}
		if l.leap || off >= leapOff {
			off++
		}
	} else if l.leap {
		return 0, &LeapMonthError{Year: d.Year, Month: d.Month}
	}

	k := lunationIndex(a11)
	start := NewMoonDay(k+off, c.tz)
	if length := NewMoonDay(k+off+1, c.tz) - start; d.Day > length {
		return 0, fmt.Errorf("%w: %s, month has %d days", ErrInvalidDate, l, length)
	}
	return start + d.Day - 1, nil
}

// LunarFromJulianDays returns the lunar date of a JDN.
func (c *Converter) LunarFromJulianDays(jd int) LunarDay {
	greg := civilFromJulianDays(jd)

	// Start from the lunation after the estimate and step back; the true new
	// moon can trail the mean one by more than half a day.
	k := int(math.Floor((float64(jd)-lunationEpoch)/synodicMonth)) + 1
	monthStart := NewMoonDay(k, c.tz)
	for monthStart > jd {
		k--
		monthStart = NewMoonDay(k, c.tz)
	}

	a11 := LunarMonth11(greg.Year, c.tz)
	b11 := a11
	var year int
	if a11 >= monthStart {
		year = greg.Year
		a11 = LunarMonth11(greg.Year-1, c.tz)
	} else {
		year = greg.Year + 1
		b11 = LunarMonth11(greg.Year+1, c.tz)
	}

	day := jd - monthStart + 1
	diff := int(math.Floor(float64(monthStart-a11) / 29))
	month := diff + 11
	leap := false
	if isLeapSpan(a11, b11) {
		leapDiff := c.leapMonthOffset(a11)
		if diff >= leapDiff {
			month = diff + 10
			leap = diff == leapDiff
		}
	}
	if month > 12 {
		month -= 12
	}
	// Months 11 and 12 early in the span belong to the previous lunar year.
	if month >= 11 && diff < 4 {
		year--
	}

	return LunarDay{inner: Day{Day: day, Month: month, Year: year}, leap: leap}
}

// LeapMonth returns the leap month of lunar year year, if it has one.
func (c *Converter) LeapMonth(year int) (month int, ok bool) {
	a11 := LunarMonth11(year-1, c.tz)
	b11 := LunarMonth11(year, c.tz)
	if isLeapSpan(a11, b11) {
		// A repeated month 11 or 12 here still belongs to year-1.
		if m := leapMonthNumber(c.leapMonthOffset(a11)); m < 11 {
			return m, true
		}
	}

	a11, b11 = b11, LunarMonth11(year+1, c.tz)
	if isLeapSpan(a11, b11) {
		if m := leapMonthNumber(c.leapMonthOffset(a11)); m >= 11 {
			return m, true
		}
	}
	return 0, false
}

// LunarMonth is one month of a lunar year.
type LunarMonth struct {
	Month int
	Leap  bool
	Start int // JDN of day 1
	Days  int // 29 or 30
}

// LunarYear lists the months of lunar year year, from Tết to the day
// before the next Tết.
func (c *Converter) LunarYear(year int) ([]LunarMonth, error) {
	first, err := c.LunarJulianDays(LunarDay{inner: Day{Day: 1, Month: 1, Year: year}})
	if err != nil {
		return nil, fmt.Errorf("start of lunar year %d: %w", year, err)
	}
	next, err := c.LunarJulianDays(LunarDay{inner: Day{Day: 1, Month: 1, Year: year + 1}})
	if err != nil {
		return nil, fmt.Errorf("start of lunar year %d: %w", year+1, err)
	}

	months := make([]LunarMonth, 0, 13)
	k := lunationIndex(first)
	for start := NewMoonDay(k, c.tz); start < next; k++ {
		end := NewMoonDay(k+1, c.tz)
		l := c.LunarFromJulianDays(start)
		months = append(months, LunarMonth{
			Month: l.Month(),
			Leap:  l.Leap(),
			Start: start,
			Days:  end - start,
		})
		start = end
	}
	return months, nil
}

// leapMonthOffset wraps LeapMonthOffset and reports a scan that hit its cap.
func (c *Converter) leapMonthOffset(a11 int) int {
	off, converged := LeapMonthOffset(a11, c.tz)
	if !converged {
		c.logger.Warn("leap month scan did not converge",
			slog.Int("a11", a11),
			slog.Int("offset", off),
			slog.Float64("tz", c.tz),
		)
	}
	return off
}
