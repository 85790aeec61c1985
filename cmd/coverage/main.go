// Command coverage walks every day in a span of years and checks that the
// lunar conversion round-trips and that month lengths and leap months are
// consistent.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/amlich/internal/calendar"
	"github.com/zapponejosh/amlich/internal/logger"
)

// TestResult holds the result for a single date.
type TestResult struct {
	Date    string `json:"date"`
	Lunar   string `json:"lunar"`
	Leap    bool   `json:"leap"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// YearStats tracks statistics for each lunar year.
type YearStats struct {
	Year        int      `json:"year"`
	TotalDays   int      `json:"total_days"`
	SuccessDays int      `json:"success_days"`
	FailedDays  int      `json:"failed_days"`
	Months      int      `json:"months"`
	LeapMonth   int      `json:"leap_month"`
	Problems    []string `json:"problems,omitempty"`
}

// Analysis contains the aggregated results.
type Analysis struct {
	TotalDays    int
	TotalSuccess int
	TotalFailed  int
	ByYear       map[int]*YearStats
	AllFailures  []TestResult
}

func main() {
	var (
		startYear  int
		years      int
		tz         float64
		verbose    bool
		outputFile string
	)

	cmd := &cobra.Command{
		Use:          "coverage",
		Short:        "Check lunar conversion over every day of a range of years",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			endYear := startYear + years - 1
			conv := calendar.NewConverter(tz, logger.New(os.Stderr, "warn", "text"))

			fmt.Println("================================================================")
			fmt.Println("Am lich - Full Coverage Test")
			fmt.Println("================================================================")
			fmt.Printf("Date Range:  %d-01-01 to %d-12-31\n", startYear, endYear)
			fmt.Printf("Time Zone:   UTC%+g\n", tz)
			fmt.Println()

			results := testAllDates(conv, startYear, endYear, verbose)
			analysis := analyzeResults(results)
			checkYears(conv, analysis, startYear, endYear)

			printSummary(analysis, startYear, endYear)
			printAllFailures(analysis)

			if outputFile != "" {
				if err := saveResults(outputFile, analysis); err != nil {
					return err
				}
			}

			if analysis.TotalFailed > 0 {
				return fmt.Errorf("%d day(s) failed", analysis.TotalFailed)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&startYear, "start", 1900, "Start year")
	cmd.Flags().IntVar(&years, "years", 201, "Number of years to test")
	cmd.Flags().Float64Var(&tz, "tz", calendar.DefaultTimeZone, "UTC offset in hours")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (show each date)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output results to JSON file")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func testAllDates(conv *calendar.Converter, startYear, endYear int, verbose bool) []TestResult {
	first := calendar.JulianDays(1, 1, startYear)
	last := calendar.JulianDays(31, 12, endYear)

	results := make([]TestResult, 0, last-first+1)
	for jd := first; jd <= last; jd++ {
		r := testDate(conv, calendar.GregorianFromJulianDays(jd))
		if verbose {
			mark := "✓"
			if !r.Success {
				mark = "✗"
			}
			fmt.Printf("  %s %s -> %s\n", mark, r.Date, r.Lunar)
		}
		results = append(results, r)
	}
	return results
}

func testDate(conv *calendar.Converter, day calendar.GregorianDay) TestResult {
	result := TestResult{Date: day.ISO()}

	lunar, err := conv.ToLunar(day)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Lunar = lunar.String()
	result.Leap = lunar.Leap()

	if lunar.Day() < 1 || lunar.Day() > 30 {
		result.Error = fmt.Sprintf("lunar day %d out of range", lunar.Day())
		return result
	}

	back, err := conv.ToGregorian(lunar)
	if err != nil {
		result.Error = fmt.Sprintf("round trip: %v", err)
		return result
	}
	if back != day {
		result.Error = fmt.Sprintf("round trip gave %s", back.ISO())
		return result
	}

	result.Success = true
	return result
}

func analyzeResults(results []TestResult) *Analysis {
	analysis := &Analysis{
		ByYear: make(map[int]*YearStats),
	}

	for _, r := range results {
		analysis.TotalDays++

		date, _ := time.Parse("2006-01-02", r.Date)
		year := date.Year()

		if _, ok := analysis.ByYear[year]; !ok {
			analysis.ByYear[year] = &YearStats{Year: year}
		}
		analysis.ByYear[year].TotalDays++

		if r.Success {
			analysis.TotalSuccess++
			analysis.ByYear[year].SuccessDays++
		} else {
			analysis.TotalFailed++
			analysis.ByYear[year].FailedDays++
			analysis.AllFailures = append(analysis.AllFailures, r)
		}
	}

	return analysis
}

// checkYears verifies the month structure of each lunar year: 12 or 13
// months of 29 or 30 days, with a leap month exactly when there are 13.
func checkYears(conv *calendar.Converter, analysis *Analysis, startYear, endYear int) {
	for year := startYear; year <= endYear; year++ {
		stats, ok := analysis.ByYear[year]
		if !ok {
			continue
		}

		months, err := conv.LunarYear(year)
		if err != nil {
			stats.Problems = append(stats.Problems, err.Error())
			continue
		}
		stats.Months = len(months)
		leap, hasLeap := conv.LeapMonth(year)
		if hasLeap {
			stats.LeapMonth = leap
		}

		if hasLeap != (len(months) == 13) {
			stats.Problems = append(stats.Problems, fmt.Sprintf("%d months but leap=%v", len(months), hasLeap))
		}
		for _, m := range months {
			if m.Days != 29 && m.Days != 30 {
				stats.Problems = append(stats.Problems, fmt.Sprintf("month %d has %d days", m.Month, m.Days))
			}
		}
	}
}

func printSummary(analysis *Analysis, startYear, endYear int) {
	fmt.Println("================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("================================================================")
	fmt.Printf("Total Days Tested: %d\n", analysis.TotalDays)
	fmt.Printf("Successful:        %d (%.1f%%)\n", analysis.TotalSuccess,
		float64(analysis.TotalSuccess)/float64(analysis.TotalDays)*100)
	fmt.Printf("Failed:            %d (%.1f%%)\n", analysis.TotalFailed,
		float64(analysis.TotalFailed)/float64(analysis.TotalDays)*100)
	fmt.Println()

	fmt.Println("By Year:")
	for year := startYear; year <= endYear; year++ {
		stats, ok := analysis.ByYear[year]
		if !ok {
			continue
		}
		status := "✓"
		if stats.FailedDays > 0 || len(stats.Problems) > 0 {
			status = "✗"
		}
		leap := "-"
		if stats.LeapMonth > 0 {
			leap = fmt.Sprint(stats.LeapMonth)
		}
		fmt.Printf("  %s %d: %d/%d days, %d months, leap %s\n",
			status, year, stats.SuccessDays, stats.TotalDays, stats.Months, leap)
		for _, p := range stats.Problems {
			fmt.Printf("      %s\n", p)
		}
	}
	fmt.Println()
}

func printAllFailures(analysis *Analysis) {
	if analysis.TotalFailed == 0 {
		fmt.Println("No failures!")
		return
	}

	fmt.Println("Failures:")
	sort.Slice(analysis.AllFailures, func(i, j int) bool {
		return analysis.AllFailures[i].Date < analysis.AllFailures[j].Date
	})
	for _, r := range analysis.AllFailures {
		fmt.Printf("  %s (%s): %s\n", r.Date, r.Lunar, r.Error)
	}
	fmt.Println()
}

func saveResults(filename string, analysis *Analysis) error {
	years := make([]*YearStats, 0, len(analysis.ByYear))
	for _, s := range analysis.ByYear {
		years = append(years, s)
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })

	output := struct {
		GeneratedAt string         `json:"generated_at"`
		Summary     map[string]any `json:"summary"`
		ByYear      []*YearStats   `json:"by_year"`
		Failures    []TestResult   `json:"failures"`
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Summary: map[string]any{
			"total_days":    analysis.TotalDays,
			"total_success": analysis.TotalSuccess,
			"total_failed":  analysis.TotalFailed,
			"success_rate":  fmt.Sprintf("%.2f%%", float64(analysis.TotalSuccess)/float64(analysis.TotalDays)*100),
		},
		ByYear:   years,
		Failures: analysis.AllFailures,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	fmt.Printf("Results saved to: %s\n", filename)
	return nil
}
