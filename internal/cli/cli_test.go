package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zapponejosh/amlich/internal/calendar"
	"github.com/zapponejosh/amlich/internal/database"
	"github.com/zapponejosh/amlich/internal/logger"
)

// run executes the root command with a clean environment and returns
// what it printed to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	for _, key := range []string{"PORT", "ENV", "DATABASE_PATH", "API_KEY", "LOG_LEVEL", "LOG_FORMAT", "TIMEZONE_OFFSET", "OBSERVANCES_PATH"} {
		t.Setenv(key, "")
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--plain"))

	err := cmd.Execute()
	return out.String(), err
}

// assertContains reports each want missing from out.
func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got:\n%s", want, out)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestConvertGregorian(t *testing.T) {
	out, err := run(t, "convert", "2020-01-25")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	assertContains(t, out, "Saturday  25/01/2020", "01/01/2020 AL", "JDN 2458874", "* Tết Nguyên Đán")
}

func TestConvertLunarLeap(t *testing.T) {
	out, err := run(t, "convert", "--lunar", "--leap", "01/04/2020")
	if err != nil {
		t.Fatalf("convert --lunar --leap failed: %v", err)
	}

	assertContains(t, out, "23/05/2020", "01/04/2020 AL (nhuan)")
}

func TestConvertLunarWithSuffix(t *testing.T) {
	out, err := run(t, "convert", "--lunar", "15/08/2019 AL")
	if err != nil {
		t.Fatalf("convert --lunar failed: %v", err)
	}

	assertContains(t, out, "13/09/2019", "* Trung Thu")
}

func TestConvertObservancesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.yaml")
	writeFile(t, path, "observances:\n  - {name: Giỗ ông, calendar: lunar, month: 1, day: 1}\n")

	out, err := run(t, "convert", "2020-01-25", "--observances", path)
	if err != nil {
		t.Fatalf("convert --observances failed: %v", err)
	}

	assertContains(t, out, "* Giỗ ông")
	if strings.Contains(out, "Tết Nguyên Đán") {
		t.Errorf("output lists a built-in observance, got:\n%s", out)
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"leap without lunar", []string{"convert", "--leap", "2020-01-25"}, errLeapWithoutLunar},
		{"no leap month 4 in 2021", []string{"convert", "--lunar", "--leap", "01/04/2021"}, calendar.ErrLeapMonthMismatch},
		{"30 February", []string{"convert", "2020-02-30"}, calendar.ErrInvalidDate},
		{"two dates", []string{"convert", "2020-01-25", "2020-01-26"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTimeZoneFlag(t *testing.T) {
	if _, err := run(t, "convert", "2020-01-25", "--tz", "20"); err == nil {
		t.Error("--tz 20 expected error, got nil")
	}

	out, err := run(t, "convert", "2020-01-25", "--tz", "8")
	if err != nil {
		t.Fatalf("convert --tz 8 failed: %v", err)
	}
	assertContains(t, out, "01/01/2020 AL")
}

func TestMonth(t *testing.T) {
	out, err := run(t, "month", "2020-02")
	if err != nil {
		t.Fatalf("month failed: %v", err)
	}

	assertContains(t, out,
		"[ Am lich 02/2020 ]",
		"Sun  Mon  Tue  Wed  Thu  Fri  Sat",
		"02₀₉ 03₁₀ 04₁₁ 05₁₂ 06₁₃ 07₁₄ 08₁₅",
		"08/01/2020 AL to 07/02/2020 AL",
	)
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in      string
		year    int
		month   int
		wantErr bool
	}{
		{"2020-02", 2020, 2, false},
		{"1999-12", 1999, 12, false},
		{"2020-13", 0, 0, true},
		{"2020", 0, 0, true},
		{"20x0-01", 0, 0, true},
	}

	for _, tt := range tests {
		m, err := parseMonth(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseMonth(%q) expected error, got nil", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseMonth(%q) failed: %v", tt.in, err)
			continue
		}
		if m.Year() != tt.year || m.Month() != tt.month {
			t.Errorf("parseMonth(%q) = %d-%02d, want %d-%02d", tt.in, m.Year(), m.Month(), tt.year, tt.month)
		}
	}
}

func TestYear(t *testing.T) {
	out, err := run(t, "year", "2020")
	if err != nil {
		t.Fatalf("year failed: %v", err)
	}

	assertContains(t, out, "[ Nam 2020 AL ]", "Thang  4 nhuan", "23/05/2020")

	if _, err := run(t, "year", "abc"); !errors.Is(err, calendar.ErrInvalidInput) {
		t.Errorf("year abc error = %v, want ErrInvalidInput", err)
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "observances.yaml")
	dbPath := filepath.Join(dir, "amlich.db")
	writeFile(t, yamlPath, `observances:
  - {name: Vu Lan, calendar: lunar, month: 7, day: 15}
  - {name: Quốc khánh, calendar: solar, month: 9, day: 2}
`)

	out, err := run(t, "import", yamlPath, "--db", dbPath)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	assertContains(t, out, "imported 2 observances")

	db, err := database.Open(database.DefaultConfig(dbPath), logger.Discard())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	list, err := db.ListObservances(context.Background())
	if err != nil {
		t.Fatalf("ListObservances() failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListObservances() returned %d, want 2", len(list))
	}
	if list[0].Name != "Vu Lan" {
		t.Errorf("list[0].Name = %q, want Vu Lan", list[0].Name)
	}
}

func TestImportBadFile(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "bad.yaml")
	writeFile(t, yamlPath, "observances:\n  - {name: x, calendar: lunar, month: 14, day: 1}\n")

	_, err := run(t, "import", yamlPath, "--db", filepath.Join(dir, "amlich.db"))
	if err == nil {
		t.Fatal("import expected error, got nil")
	}
	if !strings.Contains(err.Error(), "month must be between 1 and 12") {
		t.Errorf("error = %v, want month range error", err)
	}
}
