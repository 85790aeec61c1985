package calendar

import "fmt"

// DayOfWeek is a weekday, numbered from Sunday (0) to Saturday (6).
type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DayOfWeekFromIndex converts 0..6 to a DayOfWeek.
func DayOfWeekFromIndex(i int) (DayOfWeek, error) {
	if i < 0 || i > 6 {
		return 0, fmt.Errorf("%w: day of week %d not in 0..6", ErrInvalidInput, i)
	}
	return DayOfWeek(i), nil
}

// DayOfWeekOf returns the weekday of a JDN.
func DayOfWeekOf(jd int) (DayOfWeek, error) {
	return DayOfWeekFromIndex(mod(jd+1, 7))
}

// String returns the English name, e.g. "Saturday".
func (d DayOfWeek) String() string {
	if d < Sunday || d > Saturday {
		return fmt.Sprintf("DayOfWeek(%d)", int(d))
	}
	return dayNames[d]
}

// Short returns the first three letters of the English name.
func (d DayOfWeek) Short() string {
	return d.String()[:3]
}

// mod is the modulo that is never negative for a positive divisor.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
