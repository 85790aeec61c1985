package calendar

import (
	"errors"
	"fmt"
)

// Sentinel errors for date construction and conversion.
var (
	// ErrInvalidInput is returned when a numeric index is outside its domain.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDate is returned for a day, month or year that does not
	// name a real date in its calendar.
	ErrInvalidDate = errors.New("invalid date")

	// ErrLeapMonthMismatch is returned when a lunar date claims to be in a
	// leap month that its year does not have.
	ErrLeapMonthMismatch = errors.New("leap month mismatch")
)

// LeapMonthError describes a lunar date whose leap flag disagrees with the
// leap month computed for its year. LeapMonth is 0 when the year has none.
type LeapMonthError struct {
	Year      int
	Month     int
	LeapMonth int
}

func (e *LeapMonthError) Error() string {
	if e.LeapMonth == 0 {
		return fmt.Sprintf("%s: lunar year %d has no leap month (got leap month %d)",
			ErrLeapMonthMismatch, e.Year, e.Month)
	}
	return fmt.Sprintf("%s: lunar year %d has leap month %d, not %d",
		ErrLeapMonthMismatch, e.Year, e.LeapMonth, e.Month)
}

// Is lets errors.Is match a *LeapMonthError against ErrLeapMonthMismatch.
func (e *LeapMonthError) Is(target error) bool {
	return target == ErrLeapMonthMismatch
}
