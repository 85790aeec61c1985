// Package render draws calendar views for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zapponejosh/amlich/internal/calendar"
)

const cellWidth = 4

// Theme holds the styles a view is drawn with.
type Theme struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Footer lipgloss.Style
	Frame  lipgloss.Style
}

// DefaultTheme is the colored theme used on a terminal.
func DefaultTheme() Theme {
	return Theme{
		Title:  lipgloss.NewStyle().Bold(true),
		Header: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Footer: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Frame: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}

// PlainTheme draws without colors or borders.
func PlainTheme() Theme {
	return Theme{
		Title:  lipgloss.NewStyle(),
		Header: lipgloss.NewStyle(),
		Footer: lipgloss.NewStyle(),
		Frame:  lipgloss.NewStyle(),
	}
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	'-': '₋', '+': '₊',
}

// Subscript rewrites digits and signs as Unicode subscripts. Other runes
// are kept as is.
func Subscript(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for _, r := range s {
		if sub, ok := subscripts[r]; ok {
			r = sub
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Cell formats a civil day with its lunar day in subscript, e.g. "25₀₁".
func Cell(day, lunarDay int) string {
	return fmt.Sprintf("%02d", day) + Subscript(fmt.Sprintf("%02d", lunarDay))
}

// MonthGrid lays the days of m out in weeks starting on Sunday. Cells
// outside the month are empty; rows after the last day are dropped.
func MonthGrid(m calendar.GregorianMonth, conv *calendar.Converter) [][]string {
	grid := [][]string{make([]string, 7)}
	row := 0
	for day := range m.Bound().Days() {
		lunar := conv.LunarFromJulianDays(day.JulianDays())
		dow := day.DayOfWeek()
		grid[row][dow] = Cell(day.Day(), lunar.Day())
		if dow == calendar.Saturday {
			grid = append(grid, make([]string, 7))
			row++
		}
	}
	if isEmptyRow(grid[len(grid)-1]) {
		grid = grid[:len(grid)-1]
	}
	return grid
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

// Span describes the lunar dates a month covers, e.g.
// "08/01/2020 AL to 07/02/2020 AL".
func Span(m calendar.GregorianMonth, conv *calendar.Converter) string {
	bound := m.Bound()
	first := conv.LunarFromJulianDays(bound.Begin().JulianDays())
	last := conv.LunarFromJulianDays(bound.End().JulianDays())
	return fmt.Sprintf("%s to %s", first, last)
}

// Month draws m as a titled grid with the lunar span underneath.
func Month(m calendar.GregorianMonth, conv *calendar.Converter, theme Theme) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(fmt.Sprintf("[ %s ]", m.Title())))
	b.WriteByte('\n')

	header := make([]string, 7)
	for i := range header {
		dow, _ := calendar.DayOfWeekFromIndex(i)
		header[i] = pad(dow.Short())
	}
	b.WriteString(theme.Header.Render(strings.Join(header, " ")))
	b.WriteByte('\n')

	for _, row := range MonthGrid(m, conv) {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = pad(c)
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, " "), " "))
		b.WriteByte('\n')
	}

	b.WriteString(theme.Footer.Render(Span(m, conv)))

	return theme.Frame.Render(b.String())
}

// pad left-aligns s in a cell, counting runes rather than bytes.
func pad(s string) string {
	return fmt.Sprintf("%-*s", cellWidth, s)
}

// Year lists the months of a lunar year with their first civil day.
func Year(year int, months []calendar.LunarMonth, theme Theme) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(fmt.Sprintf("[ Nam %04d AL ]", year)))
	b.WriteByte('\n')

	for _, m := range months {
		label := fmt.Sprintf("Thang %2d", m.Month)
		if m.Leap {
			label += " nhuan"
		}
		start := calendar.GregorianFromJulianDays(m.Start)
		fmt.Fprintf(&b, "%-14s %s  %s  %d ngay\n", label, start.DayOfWeek().Short(), start, m.Days)
	}

	return theme.Frame.Render(strings.TrimRight(b.String(), "\n"))
}

// Conversion describes one date in both calendars plus any observances.
func Conversion(day calendar.GregorianDay, lunar calendar.LunarDay, observances []string, theme Theme) string {
	var b strings.Builder

	leap := ""
	if lunar.Leap() {
		leap = " (nhuan)"
	}
	fmt.Fprintf(&b, "%s  %s\n", theme.Title.Render(day.DayOfWeek().String()), day)
	fmt.Fprintf(&b, "%s%s\n", lunar, leap)
	fmt.Fprintf(&b, "JDN %d", day.JulianDays())
	for _, name := range observances {
		b.WriteByte('\n')
		b.WriteString(theme.Footer.Render("* " + name))
	}

	return theme.Frame.Render(b.String())
}
