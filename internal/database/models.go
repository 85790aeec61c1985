package database

import (
	"errors"
	"fmt"
	"strings"
)

// CalendarKind tells which calendar an observance's month and day refer to.
type CalendarKind string

const (
	CalendarLunar CalendarKind = "lunar"
	CalendarSolar CalendarKind = "solar"
)

// IsValid checks if a calendar kind is valid.
func (k CalendarKind) IsValid() bool {
	return k == CalendarLunar || k == CalendarSolar
}

// Observance is a yearly recurring day such as Tết or Trung Thu.
type Observance struct {
	ID          int64        `db:"id" json:"id" yaml:"-"`
	Name        string       `db:"name" json:"name" yaml:"name"`
	Calendar    CalendarKind `db:"calendar" json:"calendar" yaml:"calendar"`
	Month       int          `db:"month" json:"month" yaml:"month"`
	Day         int          `db:"day" json:"day" yaml:"day"`
	Description *string      `db:"description" json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   string       `db:"created_at" json:"created_at,omitempty" yaml:"-"`
}

// Validate checks field ranges before the row reaches SQLite.
// Lunar months have at most 30 days.
func (o *Observance) Validate() error {
	var errs []error

	if strings.TrimSpace(o.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if !o.Calendar.IsValid() {
		errs = append(errs, fmt.Errorf("calendar must be %q or %q, got %q", CalendarLunar, CalendarSolar, o.Calendar))
	}
	if o.Month < 1 || o.Month > 12 {
		errs = append(errs, fmt.Errorf("month must be between 1 and 12, got %d", o.Month))
	}

	maxDay := 31
	if o.Calendar == CalendarLunar {
		maxDay = 30
	}
	if o.Day < 1 || o.Day > maxDay {
		errs = append(errs, fmt.Errorf("day must be between 1 and %d, got %d", maxDay, o.Day))
	}

	return errors.Join(errs...)
}
