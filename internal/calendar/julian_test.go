package calendar

import (
	"errors"
	"testing"
)

func TestJulianDays_FixedPoints(t *testing.T) {
	tests := []struct {
		name             string
		day, month, year int
		want             int
	}{
		{"J2000", 1, 1, 2000, 2451545},
		{"first Gregorian day", 15, 10, 1582, 2299161},
		{"last Julian day", 4, 10, 1582, 2299160},
		{"Tet 2020", 25, 1, 2020, 2458874},
		{"start of 1900", 1, 1, 1900, 2415021},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDays(tt.day, tt.month, tt.year)
			if got != tt.want {
				t.Errorf("JulianDays(%d, %d, %d) = %d, want %d", tt.day, tt.month, tt.year, got, tt.want)
			}
		})
	}
}

func TestJulianDays_RoundTrip(t *testing.T) {
	for jd := 1_000_000; jd <= 3_000_000; jd++ {
		d := civilFromJulianDays(jd)
		if got := JulianDays(d.Day, d.Month, d.Year); got != jd {
			t.Fatalf("JulianDays(civilFromJulianDays(%d)) = %d (via %+v)", jd, got, d)
		}
	}
}

func TestCivil_RoundTrip(t *testing.T) {
	monthDays := []int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	isLeap := func(y int) bool { return y%4 == 0 && (y%100 != 0 || y%400 == 0) }

	prev := 0
	for year := 1600; year <= 2400; year++ {
		for month := 1; month <= 12; month++ {
			n := monthDays[month-1]
			if month == 2 && isLeap(year) {
				n++
			}
			for day := 1; day <= n; day++ {
				jd := JulianDays(day, month, year)
				want := Day{Day: day, Month: month, Year: year}
				if got := civilFromJulianDays(jd); got != want {
					t.Fatalf("civilFromJulianDays(JulianDays(%+v)) = %+v", want, got)
				}
				if prev != 0 && jd != prev+1 {
					t.Fatalf("JulianDays(%+v) = %d, not consecutive after %d", want, jd, prev)
				}
				prev = jd
			}
		}
	}
}

func TestGregorianFromJulianDays_ReformGap(t *testing.T) {
	before := GregorianFromJulianDays(2299160)
	after := GregorianFromJulianDays(2299161)

	if before.String() != "04/10/1582" {
		t.Errorf("day before reform = %s, want 04/10/1582", before)
	}
	if after.String() != "15/10/1582" {
		t.Errorf("reform day = %s, want 15/10/1582", after)
	}
}

func TestNewGregorianDay(t *testing.T) {
	tests := []struct {
		name             string
		day, month, year int
		wantErr          bool
	}{
		{"ordinary", 17, 10, 2026, false},
		{"leap day", 29, 2, 2020, false},
		{"leap day in common year", 29, 2, 2019, true},
		{"leap day century", 29, 2, 1900, true},
		{"leap day 400 years", 29, 2, 2000, false},
		{"julian leap century", 29, 2, 1500, false},
		{"30 February", 30, 2, 2020, true},
		{"31 April", 31, 4, 2020, true},
		{"dropped by reform", 10, 10, 1582, true},
		{"month 13", 1, 13, 2020, true},
		{"month 0", 1, 0, 2020, true},
		{"day 40", 40, 1, 2020, true},
		{"day 0", 0, 1, 2020, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGregorianDay(tt.day, tt.month, tt.year)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Fatalf("NewGregorianDay(%d, %d, %d) error = %v, want ErrInvalidDate", tt.day, tt.month, tt.year, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewGregorianDay(%d, %d, %d) unexpected error: %v", tt.day, tt.month, tt.year, err)
			}
			if g.Day() != tt.day || g.Month() != tt.month || g.Year() != tt.year {
				t.Errorf("NewGregorianDay = %s, want %02d/%02d/%04d", g, tt.day, tt.month, tt.year)
			}
		})
	}
}

func TestParseGregorian(t *testing.T) {
	g, err := ParseGregorian("2019-09-13")
	if err != nil {
		t.Fatalf("ParseGregorian() failed: %v", err)
	}
	if g.ISO() != "2019-09-13" {
		t.Errorf("ISO() = %q, want %q", g.ISO(), "2019-09-13")
	}
	if g.String() != "13/09/2019" {
		t.Errorf("String() = %q, want %q", g.String(), "13/09/2019")
	}

	for _, bad := range []string{"", "2019-09", "2019/09/13", "2019-02-30", "abcd-01-01"} {
		if _, err := ParseGregorian(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseGregorian(%q) error = %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestGregorianDay_AddDays(t *testing.T) {
	g, _ := NewGregorianDay(28, 2, 2020)
	if got := g.AddDays(1).String(); got != "29/02/2020" {
		t.Errorf("AddDays(1) = %s, want 29/02/2020", got)
	}
	if got := g.AddDays(2).String(); got != "01/03/2020" {
		t.Errorf("AddDays(2) = %s, want 01/03/2020", got)
	}
	if got := g.AddDays(-59).String(); got != "31/12/2019" {
		t.Errorf("AddDays(-59) = %s, want 31/12/2019", got)
	}
}
