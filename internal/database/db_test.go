package database

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/rharbaugh/calendarium/internal/calendar"
	"github.com/rharbaugh/calendarium/internal/feast"
)

// testDB creates a temporary in-memory database for testing.
func testDB(t *testing.T) *DB {
	t.Helper()

	cfg := Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}

	// Quiet logger for tests
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	db, err := Open(cfg, logger)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if _, err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func date(year int, month time.Month, day int) calendar.Date {
	return calendar.Date{Year: year, Month: month, Day: day}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "calendarium.db")
	db, err := Open(DefaultConfig(path), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("database directory not created: %v", err)
	}
	if err := db.Health(context.Background()); err != nil {
		t.Errorf("Health: %v", err)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := testDB(t)

	n, err := db.Migrate(context.Background())
	if err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	if n != 0 {
		t.Errorf("second Migrate applied %d migrations, want 0", n)
	}
}

func TestSaveYear_RoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	year := calendar.ProperOfSeasons(date(2026, time.January, 1))
	feast.Apply(year, []feast.Feast{{
		Month:       time.December,
		Day:         25,
		Class:       calendar.ClassSolemnity,
		Season:      calendar.SeasonChristmas,
		Subject:     calendar.SubjectLord,
		Description: "Custom Feast",
	}})

	n, err := db.SaveYear(ctx, year)
	if err != nil {
		t.Fatalf("SaveYear: %v", err)
	}
	if n != year.Len() {
		t.Errorf("SaveYear wrote %d rows, want %d", n, year.Len())
	}

	loaded, err := db.LoadYear(ctx, 2026)
	if err != nil {
		t.Fatalf("LoadYear: %v", err)
	}
	if diff := cmp.Diff(year.Days(), loaded.Days()); diff != "" {
		t.Errorf("stored year differs (-want +got):\n%s", diff)
	}

	// Saving again replaces rather than duplicates.
	if _, err := db.SaveYear(ctx, year); err != nil {
		t.Fatalf("second SaveYear: %v", err)
	}
	count, err := db.CountDays(ctx)
	if err != nil {
		t.Fatalf("CountDays: %v", err)
	}
	if count != year.Len() {
		t.Errorf("CountDays = %d, want %d", count, year.Len())
	}
}

func TestGetDaysByDate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	year := calendar.ProperOfSeasons(date(2026, time.January, 1))
	feast.Apply(year, []feast.Feast{{
		Month: time.December, Day: 25,
		Class: calendar.ClassMemorial, Season: calendar.SeasonChristmas,
		Subject: calendar.SubjectNone, Description: "Overlay",
	}})
	if _, err := db.SaveYear(ctx, year); err != nil {
		t.Fatalf("SaveYear: %v", err)
	}

	days, err := db.GetDaysByDate(ctx, date(2025, time.December, 25))
	if err != nil {
		t.Fatalf("GetDaysByDate: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("got %d records, want 2", len(days))
	}
	if days[0].Source != SourceProper || days[1].Source != SourceFeast {
		t.Errorf("sources = %s, %s; want proper, feast", days[0].Source, days[1].Source)
	}
	if days[0].Day.Description != "The Nativity of the Lord (Christmas)" {
		t.Errorf("first record = %q", days[0].Day.Description)
	}

	_, err = db.GetDaysByDate(ctx, date(2030, time.January, 1))
	if !IsNotFound(err) {
		t.Errorf("missing date error = %v, want ErrNotFound", err)
	}

	week, err := db.GetDaysByDateRange(ctx, date(2026, time.March, 29), date(2026, time.April, 4))
	if err != nil {
		t.Fatalf("GetDaysByDateRange: %v", err)
	}
	if len(week) != 7 {
		t.Errorf("Holy Week has %d records, want 7", len(week))
	}

	years, err := db.ListYears(ctx)
	if err != nil {
		t.Fatalf("ListYears: %v", err)
	}
	if len(years) != 1 || years[0].LiturgicalYear != 2026 || years[0].FeastRecords != 1 {
		t.Errorf("ListYears = %+v", years)
	}
	if years[0].FirstDate != "2025-11-30" || years[0].LastDate != "2026-11-28" {
		t.Errorf("span = %s..%s", years[0].FirstDate, years[0].LastDate)
	}
}

func TestLoadYear_NotFound(t *testing.T) {
	db := testDB(t)
	if _, err := db.LoadYear(context.Background(), 1999); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadYear error = %v, want ErrNotFound", err)
	}
}

func TestFeasts(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	joseph := feast.Feast{
		Month: time.March, Day: 19,
		Class: calendar.ClassSolemnity, Season: calendar.SeasonLent,
		Subject: calendar.SubjectNone, Description: "Saint Joseph",
	}
	annunciation := feast.Feast{
		Month: time.March, Day: 25,
		Class: calendar.ClassSolemnity, Season: calendar.SeasonLent,
		Subject: calendar.SubjectLord, Description: "The Annunciation of the Lord",
	}

	id, err := db.CreateFeast(ctx, joseph, "")
	if err != nil {
		t.Fatalf("CreateFeast: %v", err)
	}
	if _, err := db.CreateFeast(ctx, joseph, ""); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate CreateFeast error = %v, want ErrDuplicate", err)
	}

	got, err := db.GetFeast(ctx, id)
	if err != nil {
		t.Fatalf("GetFeast: %v", err)
	}
	if diff := cmp.Diff(joseph, got.Feast); diff != "" {
		t.Errorf("stored feast differs (-want +got):\n%s", diff)
	}
	if got.SourcePath != nil {
		t.Errorf("SourcePath = %q, want nil", *got.SourcePath)
	}

	if err := db.ReplaceFeasts(ctx, []feast.Feast{annunciation, joseph}, "feasts.csv"); err != nil {
		t.Fatalf("ReplaceFeasts: %v", err)
	}
	list, err := db.ListFeasts(ctx)
	if err != nil {
		t.Fatalf("ListFeasts: %v", err)
	}
	if len(list) != 2 || list[0].Feast.Description != annunciation.Description {
		t.Fatalf("ListFeasts = %+v", list)
	}
	if list[1].SourcePath == nil || *list[1].SourcePath != "feasts.csv" {
		t.Errorf("SourcePath not stored")
	}

	// A failed replace leaves the previous overlay in place.
	if err := db.ReplaceFeasts(ctx, []feast.Feast{joseph, joseph}, "dup.csv"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("ReplaceFeasts with duplicates error = %v, want ErrDuplicate", err)
	}
	list, _ = db.ListFeasts(ctx)
	if len(list) != 2 {
		t.Errorf("overlay after failed replace has %d feasts, want 2", len(list))
	}

	if _, err := db.GetFeast(ctx, 9999); !IsNotFound(err) {
		t.Errorf("GetFeast(9999) error = %v, want ErrNotFound", err)
	}
}
