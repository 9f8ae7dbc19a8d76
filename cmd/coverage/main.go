// Command coverage builds every liturgical year in a range and checks it:
// anchors in their windows, one record per date, known ranks and seasons,
// a deterministic rebuild from any date of the year, and date arithmetic
// that round-trips. With -url it also asks a running server for every date
// and compares the answer with the local computation.
//
// Usage:
//
//	go run ./cmd/coverage -start 1583 -end 4099
//	go run ./cmd/coverage -start 2024 -end 2027 -url http://localhost:8080 -o coverage.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"slices"
	"sort"
	"time"

	"github.com/rharbaugh/calendarium/internal/calendar"
)

// Analysis summarizes a coverage run.
type Analysis struct {
	Years     int                `json:"years"`
	Days      int                `json:"days"`
	APIDays   int                `json:"api_days,omitempty"`
	ByCheck   map[string]int     `json:"by_check"`
	Problems  []calendar.Problem `json:"problems"`
	StartYear int                `json:"start_year"`
	EndYear   int                `json:"end_year"`
}

func (a *Analysis) add(p calendar.Problem) {
	a.Problems = append(a.Problems, p)
	a.ByCheck[p.Check]++
}

func main() {
	startYear := flag.Int("start", 1900, "First liturgical year")
	endYear := flag.Int("end", 2200, "Last liturgical year")
	baseURL := flag.String("url", "", "Base URL of a running API to compare against")
	verbose := flag.Bool("v", false, "Verbose output (show each problem)")
	outputFile := flag.String("o", "", "Output results to JSON file")
	flag.Parse()

	if *startYear < 2 || *endYear > 9999 || *startYear > *endYear {
		fmt.Fprintf(os.Stderr, "Error: invalid year range %d-%d\n", *startYear, *endYear)
		os.Exit(2)
	}

	fmt.Println("================================================================")
	fmt.Println("Liturgical Calendar - Coverage Check")
	fmt.Println("================================================================")
	fmt.Printf("Liturgical years: %d to %d\n", *startYear, *endYear)
	if *baseURL != "" {
		fmt.Printf("Base URL:         %s\n", *baseURL)
	}
	fmt.Println()

	analysis := &Analysis{
		ByCheck:   make(map[string]int),
		StartYear: *startYear,
		EndYear:   *endYear,
	}

	var client *http.Client
	if *baseURL != "" {
		client = &http.Client{Timeout: 5 * time.Second}
		resp, err := client.Get(*baseURL + "/health")
		if err != nil {
			fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
			fmt.Println("Make sure the API server is running.")
			os.Exit(1)
		}
		resp.Body.Close()
	}

	for n := *startYear; n <= *endYear; n++ {
		year := checkYear(analysis, n)
		if client != nil {
			checkAPI(analysis, client, *baseURL, year)
		}
	}

	printSummary(analysis)
	if *verbose {
		for _, p := range analysis.Problems {
			fmt.Println("  " + p.Error())
		}
	}

	if *outputFile != "" {
		if err := saveResults(*outputFile, analysis); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nResults saved to %s\n", *outputFile)
	}

	if len(analysis.Problems) > 0 {
		os.Exit(1)
	}
}

// checkYear builds liturgical year n and records every violation.
func checkYear(a *Analysis, n int) *calendar.Year {
	year := calendar.ProperOfSeasons(calendar.Date{Year: n, Month: time.January, Day: 1})
	a.Years++
	a.Days += year.Len()

	for _, p := range calendar.CheckYear(year) {
		a.add(p)
	}

	// Any date of the year must rebuild the same year.
	for _, from := range []calendar.Date{year.Start(), year.Last()} {
		if !slices.Equal(calendar.ProperOfSeasons(from).Days(), year.Days()) {
			d := from
			a.add(calendar.Problem{Year: n, Date: &d, Check: "idempotent", Msg: "rebuild differs"})
		}
	}

	for _, k := range []int{1, 7, 100, 366, 1000} {
		start := year.Start()
		if got := calendar.AddDays(calendar.SubtractDays(start, k), k); got != start {
			a.add(calendar.Problem{Year: n, Date: &start, Check: "arithmetic",
				Msg: fmt.Sprintf("AddDays(SubtractDays(d, %d), %d) = %s", k, k, got)})
		}
	}

	return year
}

// apiDay is the subset of the day response compared here.
type apiDay struct {
	Success bool `json:"success"`
	Data    struct {
		Observance calendar.LiturgicalDay `json:"observance"`
	} `json:"data"`
}

// checkAPI compares the server's observance for every date of year.
func checkAPI(a *Analysis, client *http.Client, baseURL string, year *calendar.Year) {
	for _, want := range year.Range(year.Start(), year.Last()) {
		d := want.Date
		a.APIDays++

		resp, err := client.Get(fmt.Sprintf("%s/api/v1/calendar/date/%s", baseURL, d))
		if err != nil {
			a.add(calendar.Problem{Year: year.Number(), Date: &d, Check: "api", Msg: err.Error()})
			continue
		}
		var body apiDay
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()

		switch {
		case err != nil:
			a.add(calendar.Problem{Year: year.Number(), Date: &d, Check: "api", Msg: "decode: " + err.Error()})
		case !body.Success:
			a.add(calendar.Problem{Year: year.Number(), Date: &d, Check: "api", Msg: fmt.Sprintf("HTTP %d", resp.StatusCode)})
		case body.Data.Observance.Date != d:
			a.add(calendar.Problem{Year: year.Number(), Date: &d, Check: "api",
				Msg: fmt.Sprintf("observance dated %s", body.Data.Observance.Date)})
		case body.Data.Observance.Class.Precedence() > want.Class.Precedence():
			// The server may carry overlay feasts that outrank the seasonal day.
			a.add(calendar.Problem{Year: year.Number(), Date: &d, Check: "api",
				Msg: fmt.Sprintf("server observes %q (%s), local %q (%s)",
					body.Data.Observance.Description, body.Data.Observance.Class, want.Description, want.Class)})
		}
	}
}

func printSummary(a *Analysis) {
	fmt.Println("================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("================================================================")
	fmt.Printf("Years checked:    %d\n", a.Years)
	fmt.Printf("Days checked:     %d\n", a.Days)
	if a.APIDays > 0 {
		fmt.Printf("API days checked: %d\n", a.APIDays)
	}
	fmt.Printf("Problems:         %d\n", len(a.Problems))

	if len(a.ByCheck) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Problems by check:")
	checks := make([]string, 0, len(a.ByCheck))
	for c := range a.ByCheck {
		checks = append(checks, c)
	}
	sort.Strings(checks)
	for _, c := range checks {
		fmt.Printf("  %-12s %d\n", c+":", a.ByCheck[c])
	}
}

func saveResults(filename string, a *Analysis) error {
	output := struct {
		GeneratedAt string    `json:"generated_at"`
		Analysis    *Analysis `json:"analysis"`
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Analysis:    a,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}
