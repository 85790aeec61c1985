package render

import (
	"slices"
	"strings"
	"testing"

	"github.com/zapponejosh/amlich/internal/calendar"
	"github.com/zapponejosh/amlich/internal/logger"
)

func testConverter() *calendar.Converter {
	return calendar.NewConverter(calendar.DefaultTimeZone, logger.Discard())
}

func gregorianMonth(t *testing.T, year, month int) calendar.GregorianMonth {
	t.Helper()
	m, err := calendar.NewGregorianMonth(year, month)
	if err != nil {
		t.Fatalf("NewGregorianMonth(%d, %d) failed: %v", year, month, err)
	}
	return m
}

func TestSubscript(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0123456789", "₀₁₂₃₄₅₆₇₈₉"},
		{"-7", "₋₇"},
		{"+1", "₊₁"},
		{"AL", "AL"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Subscript(tt.in); got != tt.want {
			t.Errorf("Subscript(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		day, lunarDay int
		want          string
	}{
		{25, 1, "25₀₁"},
		{1, 30, "01₃₀"},
	}
	for _, tt := range tests {
		if got := Cell(tt.day, tt.lunarDay); got != tt.want {
			t.Errorf("Cell(%d, %d) = %q, want %q", tt.day, tt.lunarDay, got, tt.want)
		}
	}
}

func TestMonthGrid(t *testing.T) {
	grid := MonthGrid(gregorianMonth(t, 2020, 2), testConverter())

	// 1 Feb 2020 is a Saturday and 29 Feb is too, so five full weeks.
	if len(grid) != 5 {
		t.Fatalf("len(grid) = %d, want 5", len(grid))
	}
	if want := []string{"", "", "", "", "", "", "01₀₈"}; !slices.Equal(grid[0], want) {
		t.Errorf("grid[0] = %q, want %q", grid[0], want)
	}

	cells := []struct {
		row, col int
		want     string
	}{
		{1, 0, "02₀₉"},
		{4, 0, "23₀₁"}, // lunar month 2 starts on 23 Feb
		{4, 6, "29₀₇"},
	}
	for _, c := range cells {
		if got := grid[c.row][c.col]; got != c.want {
			t.Errorf("grid[%d][%d] = %q, want %q", c.row, c.col, got, c.want)
		}
	}

	for i, row := range grid {
		if len(row) != 7 {
			t.Errorf("len(grid[%d]) = %d, want 7", i, len(row))
		}
	}
}

func TestMonthGridKeepsPartialLastWeek(t *testing.T) {
	grid := MonthGrid(gregorianMonth(t, 2020, 1), testConverter())

	// 1 Jan 2020 is a Wednesday, 31 Jan a Friday.
	if len(grid) != 5 {
		t.Fatalf("len(grid) = %d, want 5", len(grid))
	}
	if grid[0][3] != "01₀₇" {
		t.Errorf("grid[0][3] = %q, want 01₀₇", grid[0][3])
	}
	if grid[4][5] != "31₀₇" {
		t.Errorf("grid[4][5] = %q, want 31₀₇", grid[4][5])
	}
	if grid[4][6] != "" {
		t.Errorf("grid[4][6] = %q, want empty", grid[4][6])
	}
}

func TestSpan(t *testing.T) {
	want := "08/01/2020 AL to 07/02/2020 AL"
	if got := Span(gregorianMonth(t, 2020, 2), testConverter()); got != want {
		t.Errorf("Span() = %q, want %q", got, want)
	}
}

func trimLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

func TestMonth(t *testing.T) {
	lines := trimLines(Month(gregorianMonth(t, 2020, 2), testConverter(), PlainTheme()))
	if len(lines) != 8 {
		t.Fatalf("Month() has %d lines, want 8:\n%s", len(lines), strings.Join(lines, "\n"))
	}

	want := map[int]string{
		0: "[ Am lich 02/2020 ]",
		1: "Sun  Mon  Tue  Wed  Thu  Fri  Sat",
		2: "                              01₀₈",
		3: "02₀₉ 03₁₀ 04₁₁ 05₁₂ 06₁₃ 07₁₄ 08₁₅",
		7: "08/01/2020 AL to 07/02/2020 AL",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestYear(t *testing.T) {
	months, err := testConverter().LunarYear(2020)
	if err != nil {
		t.Fatalf("LunarYear(2020) failed: %v", err)
	}

	lines := trimLines(Year(2020, months, PlainTheme()))
	if len(lines) != 14 {
		t.Fatalf("Year() has %d lines, want 14:\n%s", len(lines), strings.Join(lines, "\n"))
	}

	if lines[0] != "[ Nam 2020 AL ]" {
		t.Errorf("title = %q, want [ Nam 2020 AL ]", lines[0])
	}
	if !strings.Contains(lines[1], "25/01/2020") {
		t.Errorf("line 1 = %q, want it to contain 25/01/2020", lines[1])
	}
	for _, want := range []string{"Thang  4 nhuan", "23/05/2020"} {
		if !strings.Contains(lines[5], want) {
			t.Errorf("line 5 = %q, want it to contain %q", lines[5], want)
		}
	}
}

func TestConversion(t *testing.T) {
	conv := testConverter()
	day, err := calendar.ParseGregorian("2020-05-23")
	if err != nil {
		t.Fatalf("ParseGregorian() failed: %v", err)
	}
	lunar, err := conv.ToLunar(day)
	if err != nil {
		t.Fatalf("ToLunar() failed: %v", err)
	}

	lines := trimLines(Conversion(day, lunar, []string{"Example"}, PlainTheme()))

	want := []string{
		"Saturday  23/05/2020",
		"01/04/2020 AL (nhuan)",
		"JDN 2458993",
		"* Example",
	}
	if len(lines) < len(want) {
		t.Fatalf("Conversion() has %d lines, want at least %d", len(lines), len(want))
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}
