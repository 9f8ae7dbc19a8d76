package feast

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rharbaugh/calendarium/internal/calendar"
)

func date(year int, month time.Month, day int) calendar.Date {
	return calendar.Date{Year: year, Month: month, Day: day}
}

func TestFeast_Validate(t *testing.T) {
	valid := Feast{
		Month:       time.March,
		Day:         19,
		Class:       calendar.ClassSolemnity,
		Season:      calendar.SeasonLent,
		Description: "Saint Joseph, Spouse of the Blessed Virgin Mary",
	}

	tests := []struct {
		name    string
		mutate  func(f *Feast)
		wantErr bool
	}{
		{"valid", func(f *Feast) {}, false},
		{"leap day", func(f *Feast) { f.Month, f.Day = time.February, 29 }, false},
		{"month zero", func(f *Feast) { f.Month = 0 }, true},
		{"month 13", func(f *Feast) { f.Month = 13 }, true},
		{"day zero", func(f *Feast) { f.Day = 0 }, true},
		{"day 32", func(f *Feast) { f.Day = 32 }, true},
		{"april 31", func(f *Feast) { f.Month, f.Day = time.April, 31 }, true},
		{"february 30", func(f *Feast) { f.Month, f.Day = time.February, 30 }, true},
		{"unknown class", func(f *Feast) { f.Class = "optional" }, true},
		{"unknown season", func(f *Feast) { f.Season = "summer" }, true},
		{"empty description", func(f *Feast) { f.Description = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			err := f.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFeast) {
					t.Errorf("Validate() error = %v, want ErrInvalidFeast", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
			if f.Subject != calendar.SubjectNone {
				t.Errorf("Subject = %q, want none", f.Subject)
			}
		})
	}
}

func TestFeast_Occurrence(t *testing.T) {
	year := calendar.ProperOfSeasons(date(2026, time.March, 1)) // Advent 2025 - Advent 2026

	tests := []struct {
		name   string
		month  time.Month
		day    int
		want   calendar.Date
		wantOK bool
	}{
		{"december belongs to the opening year", time.December, 8, date(2025, time.December, 8), true},
		{"january belongs to the closing year", time.January, 6, date(2026, time.January, 6), true},
		{"first day of the year", time.November, 30, date(2025, time.November, 30), true},
		{"last day of the year", time.November, 28, date(2026, time.November, 28), true},
		{"falls on the next advent", time.November, 29, calendar.Date{}, false},
		{"leap day in a common year", time.February, 29, calendar.Date{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Feast{Month: tt.month, Day: tt.day}
			got, ok := f.Occurrence(year)
			if ok != tt.wantOK {
				t.Fatalf("Occurrence() ok = %v, want %v (got %s)", ok, tt.wantOK, got)
			}
			if ok && got != tt.want {
				t.Errorf("Occurrence() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFeast_OccurrenceLeapYear(t *testing.T) {
	year := calendar.ProperOfSeasons(date(2024, time.January, 1)) // Advent 2023 - Advent 2024
	got, ok := Feast{Month: time.February, Day: 29}.Occurrence(year)
	if !ok || got != date(2024, time.February, 29) {
		t.Errorf("Occurrence() = %s, %v; want 2024-02-29, true", got, ok)
	}
}

func TestApply(t *testing.T) {
	feasts, err := ParseCSV(strings.NewReader(strings.Join([]string{
		"12,25,SOLEMNITY,CHRISTMAS,LORD,Custom Feast",
		`3,19,SOLEMNITY,LENT,NONE,"Saint Joseph, Spouse of the Blessed Virgin Mary"`,
		"11,29,MEMORIAL,ADVENT,NONE,Outside the year",
	}, "\n")))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}

	year := calendar.ProperOfSeasons(date(2026, time.January, 1))
	before := year.Len()

	result := Apply(year, feasts)
	if result.Applied != 2 {
		t.Errorf("Applied = %d, want 2", result.Applied)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Description != "Outside the year" {
		t.Errorf("Skipped = %+v, want the November 29 feast", result.Skipped)
	}
	if year.Len() != before+2 {
		t.Errorf("Len() = %d, want %d", year.Len(), before+2)
	}

	christmas := year.Lookup(date(2025, time.December, 25))
	if len(christmas) != 2 {
		t.Fatalf("December 25 has %d records, want 2", len(christmas))
	}
	if christmas[1].Description != "Custom Feast" || christmas[1].Subject != calendar.SubjectLord {
		t.Errorf("overlay record = %+v", christmas[1])
	}
	winner, err := year.Observance(date(2025, time.December, 25))
	if err != nil {
		t.Fatalf("Observance: %v", err)
	}
	if winner.Description != "The Nativity of the Lord (Christmas)" {
		t.Errorf("tie should keep the seasonal record, got %q", winner.Description)
	}

	joseph, err := year.Observance(date(2026, time.March, 19))
	if err != nil {
		t.Fatalf("Observance: %v", err)
	}
	if joseph.Description != "Saint Joseph, Spouse of the Blessed Virgin Mary" {
		t.Errorf("March 19 = %q, want Saint Joseph", joseph.Description)
	}
}
