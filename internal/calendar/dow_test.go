package calendar

import (
	"errors"
	"testing"
)

func TestDayOfWeekOf(t *testing.T) {
	tests := []struct {
		jd   int
		want DayOfWeek
	}{
		{2451545, Saturday}, // 2000-01-01
		{2451546, Sunday},
		{2458874, Saturday}, // 2020-01-25
		{2299161, Friday},   // 1582-10-15
		{2299160, Thursday}, // 1582-10-04, Julian
		{-1, Sunday},
		{-2, Saturday},
	}

	for _, tt := range tests {
		got, err := DayOfWeekOf(tt.jd)
		if err != nil {
			t.Fatalf("DayOfWeekOf(%d) unexpected error: %v", tt.jd, err)
		}
		if got != tt.want {
			t.Errorf("DayOfWeekOf(%d) = %v, want %v", tt.jd, got, tt.want)
		}
	}
}

func TestDayOfWeekFromIndex(t *testing.T) {
	for i := 0; i <= 6; i++ {
		d, err := DayOfWeekFromIndex(i)
		if err != nil {
			t.Fatalf("DayOfWeekFromIndex(%d) unexpected error: %v", i, err)
		}
		if int(d) != i {
			t.Errorf("DayOfWeekFromIndex(%d) = %d", i, int(d))
		}
	}

	for _, i := range []int{-1, 7, 100} {
		if _, err := DayOfWeekFromIndex(i); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("DayOfWeekFromIndex(%d) error = %v, want ErrInvalidInput", i, err)
		}
	}
}

func TestDayOfWeek_Names(t *testing.T) {
	want := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	for i, short := range want {
		d := DayOfWeek(i)
		if d.Short() != short {
			t.Errorf("%v.Short() = %q, want %q", d, d.Short(), short)
		}
	}
	if Wednesday.String() != "Wednesday" {
		t.Errorf("Wednesday.String() = %q", Wednesday.String())
	}
}

func TestGregorianDay_DayOfWeek(t *testing.T) {
	g, _ := NewGregorianDay(17, 10, 2026)
	if got := g.DayOfWeek(); got != Saturday {
		t.Errorf("17/10/2026 DayOfWeek() = %v, want Saturday", got)
	}
}
