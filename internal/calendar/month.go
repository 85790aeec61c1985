package calendar

import (
	"fmt"
	"iter"
)

// GregorianMonth identifies a civil month without a day.
type GregorianMonth struct {
	year  int
	month int
}

// NewGregorianMonth returns the month, which must be in 1..12.
func NewGregorianMonth(year, month int) (GregorianMonth, error) {
	if month < 1 || month > 12 {
		return GregorianMonth{}, fmt.Errorf("%w: month %d not in 1..12", ErrInvalidDate, month)
	}
	return GregorianMonth{year: year, month: month}, nil
}

func (m GregorianMonth) Year() int  { return m.year }
func (m GregorianMonth) Month() int { return m.month }

// Bound returns the first and last day of the month.
//
// The last day is found by starting at 31 and stepping back until the date
// survives a round trip through its JDN, so month lengths, leap years and
// the Julian rules before 1582 all fall out of the day count.
func (m GregorianMonth) Bound() DayRange {
	last := 31
	for civilFromJulianDays(JulianDays(last, m.month, m.year)).Day != last {
		last--
	}
	return DayRange{
		begin: GregorianDay{inner: Day{Day: 1, Month: m.month, Year: m.year}},
		end:   GregorianDay{inner: Day{Day: last, Month: m.month, Year: m.year}},
	}
}

// Previous returns the month before m.
func (m GregorianMonth) Previous() GregorianMonth {
	if m.month == 1 {
		return GregorianMonth{year: m.year - 1, month: 12}
	}
	return GregorianMonth{year: m.year, month: m.month - 1}
}

// Next returns the month after m.
func (m GregorianMonth) Next() GregorianMonth {
	if m.month == 12 {
		return GregorianMonth{year: m.year + 1, month: 1}
	}
	return GregorianMonth{year: m.year, month: m.month + 1}
}

// Title returns the display title, e.g. "Am lich 09/2019".
func (m GregorianMonth) Title() string {
	return fmt.Sprintf("Am lich %02d/%04d", m.month, m.year)
}

// DayRange is an inclusive span of civil days.
type DayRange struct {
	begin GregorianDay
	end   GregorianDay
}

// NewDayRange returns the days from begin to end inclusive. It fails if end
// is before begin.
func NewDayRange(begin, end GregorianDay) (DayRange, error) {
	if end.JulianDays() < begin.JulianDays() {
		return DayRange{}, fmt.Errorf("%w: range ends %s before it begins %s", ErrInvalidInput, end, begin)
	}
	return DayRange{begin: begin, end: end}, nil
}

func (r DayRange) Begin() GregorianDay { return r.begin }
func (r DayRange) End() GregorianDay   { return r.end }

// Len returns the number of days in the range.
func (r DayRange) Len() int {
	return r.end.JulianDays() - r.begin.JulianDays() + 1
}

// Days yields every day of the range in order. Each call starts over.
func (r DayRange) Days() iter.Seq[GregorianDay] {
	return func(yield func(GregorianDay) bool) {
		first := r.begin.JulianDays()
		for jd := first; jd < first+r.Len(); jd++ {
			if !yield(GregorianFromJulianDays(jd)) {
				return
			}
		}
	}
}
