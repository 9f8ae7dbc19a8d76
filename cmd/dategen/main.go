// Command dategen prints the key dates of liturgical years: a table and
// season day counts for one year, or CSV rows for a range of years.
//
// Usage:
//
//	go run ./cmd/dategen -year 2026
//	go run ./cmd/dategen -year 2026 -dates > 2026.csv
//	go run ./cmd/dategen -from 2000 -to 2100 -csv > anchors.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rharbaugh/calendarium/internal/calendar"
	"github.com/rharbaugh/calendarium/internal/render"
)

func main() {
	year := flag.Int("year", time.Now().Year(), "Liturgical year (the civil year it ends in)")
	from := flag.Int("from", 0, "First year of a CSV range")
	to := flag.Int("to", 0, "Last year of a CSV range")
	asCSV := flag.Bool("csv", false, "Print anchors as CSV")
	dates := flag.Bool("dates", false, "Print every date of -year as CSV")
	flag.Parse()

	if err := run(os.Stdout, *year, *from, *to, *asCSV, *dates); err != nil {
		fmt.Fprintln(os.Stderr, "dategen:", err)
		os.Exit(1)
	}
}

func run(w io.Writer, year, from, to int, asCSV, dates bool) error {
	if from == 0 && to == 0 {
		from, to = year, year
	}
	if from < 2 || to > 9999 || from > to {
		return fmt.Errorf("invalid year range %d-%d", from, to)
	}

	if dates {
		return writeDates(w, calendar.ProperOfSeasons(calendar.Date{Year: year, Month: time.January, Day: 1}))
	}

	var anchors []calendar.Anchors
	for n := from; n <= to; n++ {
		anchors = append(anchors, calendar.AnchorsFor(n-1))
	}
	if asCSV || len(anchors) > 1 {
		return render.WriteAnchorsCSV(w, anchors)
	}

	p := render.NewPrinter(w)
	fmt.Fprintf(w, "=== Liturgical Year %d ===\n\n", year)
	if err := p.Anchors(anchors[0]); err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Days by season:")
	return p.Seasons(calendar.ProperOfSeasons(calendar.Date{Year: year, Month: time.January, Day: 1}))
}

// writeDates prints one CSV row per date: the expected season, rank and name.
func writeDates(w io.Writer, year *calendar.Year) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "weekday", "season", "class", "description"}); err != nil {
		return err
	}
	for _, day := range year.Days() {
		if err := cw.Write([]string{
			day.Date.String(),
			calendar.DayName(day.Date),
			string(day.Season),
			string(day.Class),
			day.Description,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
