// Command apitest runs smoke checks against a running amlich API.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/amlich/internal/api"
)

// envelope mirrors api.Response with the payload left raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *api.ErrorInfo  `json:"error,omitempty"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Am lich API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)

	tr.testHealth()
	tr.testToday()
	tr.testKnownDays()
	tr.testLunarDays()
	tr.testMonth()
	tr.testYears()
	tr.testEdgeCases()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health struct {
		Status string `json:"status"`
	}
	if err := tr.getData("/health", &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testToday() {
	tr.printSection("Today")

	var day api.DayView
	if err := tr.getData("/api/v1/days/today", &day); err != nil {
		tr.recordError("Today", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Today (%s): %s", day.Gregorian, day.Lunar))
	tr.printDayDetail(&day)
}

func (tr *TestRunner) testKnownDays() {
	tr.printSection("Gregorian to Lunar")

	testCases := []struct {
		date        string
		lunar       string
		description string
	}{
		{"2019-02-05", "01/01/2019 AL", "Tết 2019"},
		{"2020-01-25", "01/01/2020 AL", "Tết 2020"},
		{"2024-02-10", "01/01/2024 AL", "Tết 2024"},
		{"2024-02-09", "30/12/2023 AL", "Giao thừa 2024"},
		{"2019-09-13", "15/08/2019 AL", "Trung Thu 2019"},
		{"2000-01-01", "25/11/1999 AL", "Millennium"},
		{"2020-05-23", "01/04/2020 AL", "First day of leap month 4"},
	}

	for _, tc := range testCases {
		var day api.DayView
		if err := tr.getData("/api/v1/days/"+tc.date, &day); err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		if day.Lunar == tc.lunar {
			tr.recordSuccess(fmt.Sprintf("%s: %s (%s)", tc.date, day.Lunar, tc.description))
		} else {
			tr.recordError(tc.date, fmt.Sprintf("Expected '%s', got '%s'", tc.lunar, day.Lunar))
		}

		if tr.verbose {
			tr.printDayDetail(&day)
		}
	}
}

func (tr *TestRunner) testLunarDays() {
	tr.printSection("Lunar to Gregorian")

	testCases := []struct {
		path      string
		gregorian string
	}{
		{"/api/v1/lunar/2020/1/1", "2020-01-25"},
		{"/api/v1/lunar/2020/4/1?leap=true", "2020-05-23"},
		{"/api/v1/lunar/2023/2/1?leap=true", "2023-03-22"},
		{"/api/v1/lunar/2025/6/1?leap=true", "2025-07-25"},
	}

	for _, tc := range testCases {
		var day api.DayView
		if err := tr.getData(tc.path, &day); err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}
		if day.Gregorian == tc.gregorian {
			tr.recordSuccess(fmt.Sprintf("%s -> %s", tc.path, day.Gregorian))
		} else {
			tr.recordError(tc.path, fmt.Sprintf("Expected %s, got %s", tc.gregorian, day.Gregorian))
		}
	}
}

func (tr *TestRunner) testMonth() {
	tr.printSection("Month View")

	var month api.MonthView
	if err := tr.getData("/api/v1/months/2020/2", &month); err != nil {
		tr.recordError("Month 2020-02", err.Error())
		return
	}

	if len(month.Days) == 29 && month.Previous == "2020-01" && month.Next == "2020-03" {
		tr.recordSuccess(fmt.Sprintf("%s: %d days", month.Title, len(month.Days)))
	} else {
		tr.recordError("Month 2020-02", fmt.Sprintf("Got %d days, previous %s, next %s",
			len(month.Days), month.Previous, month.Next))
	}
}

func (tr *TestRunner) testYears() {
	tr.printSection("Lunar Years")

	testCases := []struct {
		year      int
		leapMonth int
		months    int
	}{
		{2017, 6, 13},
		{2020, 4, 13},
		{2021, 0, 12},
		{2023, 2, 13},
		{2024, 0, 12},
		{2025, 6, 13},
	}

	for _, tc := range testCases {
		var year api.YearView
		if err := tr.getData(fmt.Sprintf("/api/v1/years/%d", tc.year), &year); err != nil {
			tr.recordError(fmt.Sprint(tc.year), err.Error())
			continue
		}
		if year.LeapMonth == tc.leapMonth && len(year.Months) == tc.months {
			tr.recordSuccess(fmt.Sprintf("%d: %d months, leap month %d", tc.year, len(year.Months), year.LeapMonth))
		} else {
			tr.recordError(fmt.Sprint(tc.year), fmt.Sprintf("Expected %d months with leap %d, got %d with leap %d",
				tc.months, tc.leapMonth, len(year.Months), year.LeapMonth))
		}
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	testCases := []struct {
		path   string
		status int
	}{
		{"/api/v1/days/2020-02-30", http.StatusBadRequest},
		{"/api/v1/days/1582-10-10", http.StatusBadRequest},
		{"/api/v1/lunar/2021/4/1?leap=true", http.StatusUnprocessableEntity},
		{"/api/v1/months/2020/13", http.StatusBadRequest},
		{"/api/v1/nothing", http.StatusNotFound},
	}

	for _, tc := range testCases {
		resp, err := tr.getRaw(tc.path)
		if err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == tc.status {
			tr.recordSuccess(fmt.Sprintf("%s -> HTTP %d", tc.path, resp.StatusCode))
		} else {
			tr.recordError(tc.path, fmt.Sprintf("Expected HTTP %d, got %d", tc.status, resp.StatusCode))
		}
	}
}

// =============================================================================
// Helpers
// =============================================================================

// getData fetches path and decodes the envelope's data into target.
func (tr *TestRunner) getData(path string, target any) error {
	resp, err := tr.getRaw(path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	if !env.Success {
		errMsg := "unknown error"
		if env.Error != nil {
			errMsg = env.Error.Message
		}
		return fmt.Errorf("API error: %s", errMsg)
	}

	return json.Unmarshal(env.Data, target)
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	return tr.client.Get(tr.baseURL + path)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) printDayDetail(d *api.DayView) {
	fmt.Printf("    JDN:     %d\n", d.JDN)
	fmt.Printf("    Weekday: %s\n", d.Weekday)
	if d.Leap {
		fmt.Printf("    Leap month\n")
	}
	for _, o := range d.Observances {
		fmt.Printf("    * %s\n", o.Name)
	}
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
		return
	}

	fmt.Println("All tests passed! ✓")
}

// =============================================================================
// Main
// =============================================================================

func main() {
	var (
		baseURL string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:          "apitest",
		Short:        "Smoke-test a running amlich API",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			client := &http.Client{Timeout: 2 * time.Second}
			resp, err := client.Get(baseURL + "/health")
			if err != nil {
				return fmt.Errorf("cannot connect to %s, is the API server running? %w", baseURL, err)
			}
			resp.Body.Close()

			runner := NewTestRunner(baseURL, verbose)
			runner.Run()

			if runner.errorCount > 0 {
				return fmt.Errorf("%d check(s) failed", runner.errorCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the API")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (show day details)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
