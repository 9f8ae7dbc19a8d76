// Command import stores the feast overlay and a range of computed liturgical
// years in the SQLite database.
//
// Usage:
//
//	go run ./cmd/import -feasts data/feasts.csv -db data/calendarium.db -from 2020 -to 2035
//
// This tool:
// 1. Loads and validates the feast file (CSV, YAML or TOML)
// 2. Creates/opens the SQLite database and runs migrations
// 3. Replaces the stored overlay with the file's feasts
// 4. Builds each liturgical year in the range, applies the overlay and saves it
// 5. Reads the years and their dates back and checks the stored records
//
// Years are replaced on every run, so the import is idempotent.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rharbaugh/calendarium/internal/calendar"
	"github.com/rharbaugh/calendarium/internal/database"
	"github.com/rharbaugh/calendarium/internal/feast"
	"github.com/rharbaugh/calendarium/internal/logger"
)

func main() {
	feastsPath := flag.String("feasts", "data/feasts.csv", "Path to feast overlay file")
	dbPath := flag.String("db", "data/calendarium.db", "Path to SQLite database")
	from := flag.Int("from", time.Now().Year(), "First liturgical year (the civil year it ends in)")
	to := flag.Int("to", time.Now().Year()+5, "Last liturgical year")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	log := logger.New(os.Stdout, level, "text")

	if err := run(*feastsPath, *dbPath, *from, *to, log); err != nil {
		log.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("import complete")
}

// ImportStats tracks import statistics.
type ImportStats struct {
	Feasts       int
	Years        int
	Records      int
	FeastRecords int
	Skipped      int
}

func run(feastsPath, dbPath string, from, to int, log *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	if from < 2 || to > 9999 || from > to {
		return fmt.Errorf("invalid year range %d-%d", from, to)
	}

	// =========================================================================
	// Step 1: Load the feast overlay
	// =========================================================================
	log.Info("reading feast file", slog.String("path", feastsPath))

	feasts, err := feast.LoadFile(feastsPath)
	switch {
	case errors.Is(err, feast.ErrFileMissing):
		log.Warn("feast file not found, importing the seasonal calendar only")
	case err != nil:
		return fmt.Errorf("load feasts: %w", err)
	}
	log.Info("parsed feast file", slog.Int("feasts", len(feasts)))

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	log.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 3: Store the overlay
	// =========================================================================
	if err := db.ReplaceFeasts(ctx, feasts, feastsPath); err != nil {
		return fmt.Errorf("store feasts: %w", err)
	}

	// =========================================================================
	// Step 4: Build and save each year
	// =========================================================================
	stats := ImportStats{Feasts: len(feasts)}
	for n := from; n <= to; n++ {
		year := calendar.ProperOfSeasons(calendar.Date{Year: n, Month: time.January, Day: 1})
		result := feast.Apply(year, feasts)

		written, err := db.SaveYear(ctx, year)
		if err != nil {
			return fmt.Errorf("save liturgical year %d: %w", n, err)
		}

		stats.Years++
		stats.Records += written
		stats.FeastRecords += result.Applied
		stats.Skipped += len(result.Skipped)

		log.Debug("liturgical year imported",
			slog.Int("liturgical_year", n),
			slog.Int("records", written),
			slog.Int("feasts_applied", result.Applied),
		)
	}

	// =========================================================================
	// Step 5: Verify import
	// =========================================================================
	summaries, err := db.ListYears(ctx)
	if err != nil {
		return fmt.Errorf("list years: %w", err)
	}
	for _, s := range summaries {
		if s.LiturgicalYear < from || s.LiturgicalYear > to {
			continue
		}
		stored, err := db.LoadYear(ctx, s.LiturgicalYear)
		if err != nil {
			return fmt.Errorf("reload liturgical year %d: %w", s.LiturgicalYear, err)
		}
		if stored.Len() != s.Records {
			return fmt.Errorf("liturgical year %d: reloaded %d records, stored %d", s.LiturgicalYear, stored.Len(), s.Records)
		}

		// The year opens on the First Sunday of Advent, ahead of any feast.
		opening, err := db.GetDaysByDate(ctx, stored.Start())
		if err != nil {
			return fmt.Errorf("liturgical year %d: read %s: %w", s.LiturgicalYear, stored.Start(), err)
		}
		if first := opening[0]; first.Source != database.SourceProper || first.Day.Class != calendar.ClassSunday {
			return fmt.Errorf("liturgical year %d: %s opens with %q (%s)", s.LiturgicalYear, stored.Start(), first.Day.Description, first.Source)
		}
	}

	first := calendar.ProperOfSeasons(calendar.Date{Year: from, Month: time.January, Day: 1}).Start()
	last := calendar.ProperOfSeasons(calendar.Date{Year: to, Month: time.January, Day: 1}).Last()
	days, err := db.GetDaysByDateRange(ctx, first, last)
	if err != nil {
		return fmt.Errorf("read %s to %s: %w", first, last, err)
	}
	if len(days) != stats.Records {
		return fmt.Errorf("%s to %s: read %d records, wrote %d", first, last, len(days), stats.Records)
	}

	elapsed := time.Since(startTime)
	log.Info("import verified",
		slog.Int("years", stats.Years),
		slog.Int("records", stats.Records),
		slog.Duration("elapsed", elapsed),
	)

	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Feasts stored:         %d\n", stats.Feasts)
	fmt.Printf("Liturgical years:      %d (%d-%d)\n", stats.Years, from, to)
	fmt.Printf("Day records:           %d\n", stats.Records)
	fmt.Printf("Feast records:         %d\n", stats.FeastRecords)
	fmt.Printf("Feasts outside a year: %d\n", stats.Skipped)
	fmt.Printf("Time elapsed:          %v\n", elapsed.Round(time.Millisecond))

	return nil
}
