// Command apitest runs a smoke test against a running calendarium API.
//
// Usage:
//
//	go run ./cmd/apitest -url http://localhost:8080 -v
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rharbaugh/calendarium/internal/api"
	"github.com/rharbaugh/calendarium/internal/calendar"
	"github.com/rharbaugh/calendarium/internal/service"
)

// =============================================================================
// Response Types
// =============================================================================

// envelope mirrors api.Response with the payload left raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *api.ErrorInfo  `json:"error,omitempty"`
}

type rangeResponse struct {
	Days []service.DayInfo `json:"days"`
}

type feastsResponse struct {
	Count int `json:"count"`
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
		client:  &http.Client{Timeout: 10 * time.Second},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Liturgical Calendar API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)

	tr.testHealth()
	tr.testToday()
	tr.testSpecificDates()
	tr.testDateRange()
	tr.testYear()
	tr.testICS()
	tr.testFeasts()
	tr.testEdgeCases()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health struct {
		Status         string        `json:"status"`
		Today          calendar.Date `json:"today"`
		LiturgicalYear int           `json:"liturgical_year"`
	}
	if err := tr.getData("/health", &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}
	if health.Status != "healthy" {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
		return
	}
	tr.recordSuccess(fmt.Sprintf("Healthy, today is %s in liturgical year %d", health.Today, health.LiturgicalYear))
}

func (tr *TestRunner) testToday() {
	tr.printSection("Today")

	var day service.DayInfo
	if err := tr.getData("/api/v1/calendar/today", &day); err != nil {
		tr.recordError("Today", err.Error())
		return
	}
	if !day.Date.Valid() || day.Observance.Description == "" {
		tr.recordError("Today", "empty observance")
		return
	}
	tr.recordSuccess(fmt.Sprintf("Today (%s): %s", day.Date, day.Observance.Description))
	tr.printDayDetail(day)
}

func (tr *TestRunner) testSpecificDates() {
	tr.printSection("Specific Date Tests")

	testCases := []struct {
		date        string
		season      calendar.Season
		class       calendar.DayClass
		description string
	}{
		{"2024-12-01", calendar.SeasonAdvent, calendar.ClassSunday, "1st Sunday of Advent"},
		{"2024-12-25", calendar.SeasonChristmas, calendar.ClassSolemnity, "The Nativity of the Lord (Christmas)"},
		{"2025-01-05", calendar.SeasonChristmas, calendar.ClassSolemnity, "The Epiphany of the Lord"},
		{"2025-01-12", calendar.SeasonChristmas, calendar.ClassFeast, "The Baptism of the Lord"},
		{"2025-03-05", calendar.SeasonLent, calendar.ClassSolemnity, "Ash Wednesday"},
		{"2025-04-13", calendar.SeasonLent, calendar.ClassSunday, "Palm Sunday of the Passion of the Lord"},
		{"2025-04-18", calendar.SeasonTriduum, calendar.ClassSolemnity, "Friday of the Passion of the Lord"},
		{"2025-04-20", calendar.SeasonEaster, calendar.ClassSolemnity, "Easter Sunday of the Resurrection of the Lord"},
		{"2025-06-01", calendar.SeasonEaster, calendar.ClassSolemnity, "The Ascension of the Lord"},
		{"2025-06-08", calendar.SeasonEaster, calendar.ClassSolemnity, "Pentecost Sunday"},
		{"2025-06-15", calendar.SeasonOrdinaryTime, calendar.ClassSolemnity, "The Most Holy Trinity"},
		{"2025-11-23", calendar.SeasonOrdinaryTime, calendar.ClassSolemnity, "Our Lord Jesus Christ, King of the Universe"},
		{"2025-11-30", calendar.SeasonAdvent, calendar.ClassSunday, "1st Sunday of Advent"},
	}

	for _, tc := range testCases {
		var day service.DayInfo
		if err := tr.getData("/api/v1/calendar/date/"+tc.date, &day); err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		// Overlay feasts may add records, but never displace these.
		obs := day.Observance
		switch {
		case obs.Season != tc.season:
			tr.recordError(tc.date, fmt.Sprintf("Expected season '%s', got '%s'", tc.season, obs.Season))
		case obs.Class != tc.class:
			tr.recordError(tc.date, fmt.Sprintf("Expected class '%s', got '%s'", tc.class, obs.Class))
		case obs.Description != tc.description:
			tr.recordError(tc.date, fmt.Sprintf("Expected '%s', got '%s'", tc.description, obs.Description))
		default:
			tr.recordSuccess(fmt.Sprintf("%s: %s (%s in %s)", tc.date, obs.Description, obs.Class, obs.Season))
		}

		if tr.verbose {
			tr.printDayDetail(day)
		}
	}
}

func (tr *TestRunner) testDateRange() {
	tr.printSection("Date Range Tests")

	var week rangeResponse
	if err := tr.getData("/api/v1/calendar/range?start=2025-12-21&end=2025-12-27", &week); err != nil {
		tr.recordError("Range (week)", err.Error())
	} else if len(week.Days) == 7 {
		tr.recordSuccess(fmt.Sprintf("Week range returned %d days", len(week.Days)))
	} else {
		tr.recordError("Range (week)", fmt.Sprintf("Expected 7 days, got %d", len(week.Days)))
	}

	// Spans Advent 2025, so two liturgical years.
	var across rangeResponse
	if err := tr.getData("/api/v1/calendar/range?start=2025-11-28&end=2025-12-02", &across); err != nil {
		tr.recordError("Range (year boundary)", err.Error())
	} else if len(across.Days) == 5 && across.Days[0].LiturgicalYear == 2025 && across.Days[4].LiturgicalYear == 2026 {
		tr.recordSuccess("Range across Advent spans liturgical years 2025 and 2026")
	} else {
		tr.recordError("Range (year boundary)", fmt.Sprintf("unexpected days: %d", len(across.Days)))
	}

	tr.expectStatus("Range limit (>90 days rejected)", "/api/v1/calendar/range?start=2025-01-01&end=2025-12-31", http.StatusBadRequest)
	tr.expectStatus("Invalid range rejected (end before start)", "/api/v1/calendar/range?start=2025-12-31&end=2025-01-01", http.StatusBadRequest)
}

func (tr *TestRunner) testYear() {
	tr.printSection("Liturgical Year")

	var year struct {
		LiturgicalYear int                      `json:"liturgical_year"`
		Start          calendar.Date            `json:"start"`
		End            calendar.Date            `json:"end"`
		SundayCycle    calendar.SundayCycle     `json:"sunday_cycle"`
		Days           []calendar.LiturgicalDay `json:"days"`
	}
	if err := tr.getData("/api/v1/calendar/year/2026?observed=true", &year); err != nil {
		tr.recordError("Year 2026", err.Error())
	} else if len(year.Days) == 364 && year.Start.String() == "2025-11-30" && year.End.String() == "2026-11-28" {
		tr.recordSuccess(fmt.Sprintf("Year 2026: %s to %s, %d days, cycle %s", year.Start, year.End, len(year.Days), year.SundayCycle))
	} else {
		tr.recordError("Year 2026", fmt.Sprintf("%s to %s with %d days", year.Start, year.End, len(year.Days)))
	}

	var anchors calendar.Anchors
	if err := tr.getData("/api/v1/calendar/year/2026/anchors", &anchors); err != nil {
		tr.recordError("Anchors 2026", err.Error())
	} else if anchors.Easter.String() == "2026-04-05" {
		tr.recordSuccess(fmt.Sprintf("Easter 2026 is %s", anchors.Easter))
	} else {
		tr.recordError("Anchors 2026", fmt.Sprintf("Expected Easter 2026-04-05, got %s", anchors.Easter))
	}

	tr.expectStatus("Invalid year rejected", "/api/v1/calendar/year/abc", http.StatusBadRequest)
}

func (tr *TestRunner) testICS() {
	tr.printSection("iCalendar Export")

	resp, err := tr.getRaw("/api/v1/calendar/year/2026/ics?observed=true")
	if err != nil {
		tr.recordError("ICS", err.Error())
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		tr.recordError("ICS", fmt.Sprintf("Content-Type %q", ct))
		return
	}

	events := 0
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "BEGIN:VEVENT" {
			events++
		}
	}
	if err := sc.Err(); err != nil {
		tr.recordError("ICS", err.Error())
		return
	}
	if events == 364 {
		tr.recordSuccess(fmt.Sprintf("ICS export has %d events", events))
	} else {
		tr.recordError("ICS", fmt.Sprintf("Expected 364 events, got %d", events))
	}
}

func (tr *TestRunner) testFeasts() {
	tr.printSection("Feast Overlay")

	var feasts feastsResponse
	if err := tr.getData("/api/v1/feasts", &feasts); err != nil {
		tr.recordError("Feasts", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Overlay has %d feasts", feasts.Count))

	tr.expectStatus("Non-numeric feast id rejected", "/api/v1/feasts/abc", http.StatusBadRequest)
	tr.expectStatus("Unknown feast id not found", "/api/v1/feasts/999999999", http.StatusNotFound)

	// An invalid body, so a server without a key changes nothing.
	req, err := http.NewRequest(http.MethodPost, tr.baseURL+"/api/v1/feasts", strings.NewReader("{}"))
	if err != nil {
		tr.recordError("Feasts (no key)", err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := tr.client.Do(req)
	if err != nil {
		tr.recordError("Feasts (no key)", err.Error())
		return
	}
	resp.Body.Close()

	// Development servers without a key accept the request and reject the feast.
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		tr.recordSuccess("Adding feasts requires an API key")
	case http.StatusBadRequest:
		tr.recordSuccess("Adding feasts is open (development mode)")
	default:
		tr.recordError("Feasts (no key)", fmt.Sprintf("HTTP %d", resp.StatusCode))
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	tr.expectStatus("Invalid date format rejected", "/api/v1/calendar/date/invalid", http.StatusBadRequest)
	tr.expectStatus("Impossible date rejected", "/api/v1/calendar/date/2025-02-29", http.StatusBadRequest)
	tr.expectStatus("Missing end parameter rejected", "/api/v1/calendar/range?start=2025-01-01", http.StatusBadRequest)

	var leap service.DayInfo
	if err := tr.getData("/api/v1/calendar/date/2024-02-29", &leap); err != nil {
		tr.recordError("Leap year", err.Error())
	} else {
		tr.recordSuccess(fmt.Sprintf("Leap year date (2024-02-29): %s", leap.Observance.Description))
	}

	var far service.DayInfo
	if err := tr.getData("/api/v1/calendar/date/2400-04-16", &far); err != nil {
		tr.recordError("Far future", err.Error())
	} else {
		tr.recordSuccess(fmt.Sprintf("Far future date (2400-04-16): %s", far.Observance.Description))
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

// getData fetches path and decodes the success envelope's data into target.
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
		return fmt.Errorf("API error (HTTP %d): %s", resp.StatusCode, errMsg)
	}
	return json.Unmarshal(env.Data, target)
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	return tr.client.Get(tr.baseURL + path)
}

func (tr *TestRunner) expectStatus(name, path string, status int) {
	resp, err := tr.getRaw(path)
	if err != nil {
		tr.recordError(name, err.Error())
		return
	}
	resp.Body.Close()
	if resp.StatusCode == status {
		tr.recordSuccess(name)
	} else {
		tr.recordError(name, fmt.Sprintf("Expected HTTP %d, got %d", status, resp.StatusCode))
	}
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) printDayDetail(day service.DayInfo) {
	fmt.Printf("    Year %d, Sunday cycle %s, weekday cycle %s\n", day.LiturgicalYear, day.SundayCycle, day.WeekdayCycle)
	for _, c := range day.Celebrations {
		if c == day.Observance {
			continue
		}
		fmt.Printf("      also: %s (%s)\n", c.Description, c.Class)
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

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	verbose := flag.Bool("v", false, "Verbose output (show day details)")
	flag.Parse()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *verbose)
	runner.Run()

	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
