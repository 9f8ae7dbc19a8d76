package calendar

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestTruncateDescription(t *testing.T) {
	short := "Saint Joseph, Spouse of the Blessed Virgin Mary"
	if got := TruncateDescription(short); got != short {
		t.Errorf("short description changed: %q", got)
	}

	long := strings.Repeat("é", 300)
	got := TruncateDescription(long)
	if n := utf8.RuneCountInString(got); n != MaxDescriptionLen {
		t.Errorf("truncated length = %d characters, want %d", n, MaxDescriptionLen)
	}
	if !utf8.ValidString(got) {
		t.Error("truncation split a character")
	}
}

func TestYear_AddAndLookup(t *testing.T) {
	y := NewYear(d(2025, time.November, 30), d(2026, time.November, 29))
	christmas := d(2025, time.December, 25)

	y.Add(NewLiturgicalDay(christmas, ClassSolemnity, SeasonChristmas, "The Nativity of the Lord (Christmas)"))
	y.Add(LiturgicalDay{Date: christmas, Class: ClassMemorial, Season: SeasonChristmas, Description: "Local Memorial"})
	y.Add(NewLiturgicalDay(christmas.Next(), ClassFeast, SeasonChristmas, strings.Repeat("x", 400)))

	if y.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", y.Len())
	}

	got := y.Lookup(christmas)
	if len(got) != 2 {
		t.Fatalf("Lookup(christmas) returned %d records, want 2", len(got))
	}
	if got[1].Subject != SubjectNone {
		t.Errorf("empty subject should default to none, got %q", got[1].Subject)
	}
	if n := len(y.Lookup(christmas.Next())[0].Description); n != MaxDescriptionLen {
		t.Errorf("Add kept %d characters, want %d", n, MaxDescriptionLen)
	}

	days := y.Days()
	days[0].Description = "mutated"
	if y.Days()[0].Description == "mutated" {
		t.Error("Days() should return a copy")
	}
}

func TestYear_Observance(t *testing.T) {
	date := d(2026, time.March, 19)

	tests := []struct {
		name string
		days []LiturgicalDay
		want string
	}{
		{
			name: "higher class wins",
			days: []LiturgicalDay{
				NewLiturgicalDay(date, ClassSeasonalWeekday, SeasonLent, "Thursday of the 4th week of Lent"),
				NewLiturgicalDay(date, ClassSolemnity, SeasonLent, "Saint Joseph"),
			},
			want: "Saint Joseph",
		},
		{
			name: "tie keeps insertion order",
			days: []LiturgicalDay{
				NewLiturgicalDay(date, ClassSolemnity, SeasonLent, "first"),
				NewLiturgicalDay(date, ClassSolemnity, SeasonLent, "second"),
			},
			want: "first",
		},
		{
			name: "lower class loses",
			days: []LiturgicalDay{
				NewLiturgicalDay(date, ClassSunday, SeasonLent, "4th Sunday of Lent"),
				NewLiturgicalDay(date, ClassMemorial, SeasonLent, "memorial"),
			},
			want: "4th Sunday of Lent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y := NewYear(d(2025, time.November, 30), d(2026, time.November, 29))
			for _, day := range tt.days {
				y.Add(day)
			}
			got, err := y.Observance(date)
			if err != nil {
				t.Fatalf("Observance() error: %v", err)
			}
			if got.Description != tt.want {
				t.Errorf("Observance() = %q, want %q", got.Description, tt.want)
			}
		})
	}
}

func TestYear_ObservanceNotFound(t *testing.T) {
	y := NewYear(d(2025, time.November, 30), d(2026, time.November, 29))
	_, err := y.Observance(d(2026, time.January, 1))
	if !errors.Is(err, ErrDateNotFound) {
		t.Errorf("Observance() error = %v, want ErrDateNotFound", err)
	}
}

func TestYear_SpanAndFree(t *testing.T) {
	y := ProperOfSeasons(d(2026, time.January, 1))

	if !y.Contains(d(2025, time.November, 30)) {
		t.Error("year should contain its First Sunday of Advent")
	}
	if y.Contains(d(2026, time.November, 29)) {
		t.Error("year should not contain the next First Sunday of Advent")
	}
	if y.Last() != d(2026, time.November, 28) {
		t.Errorf("Last() = %s, want 2026-11-28", y.Last())
	}
	if y.Number() != 2026 {
		t.Errorf("Number() = %d, want 2026", y.Number())
	}
	if y.SundayCycle() != CycleA || y.WeekdayCycle() != CycleII {
		t.Errorf("cycles = %s/%s, want A/II", y.SundayCycle(), y.WeekdayCycle())
	}

	week := y.Range(d(2025, time.December, 22), d(2025, time.December, 28))
	if len(week) != 7 {
		t.Errorf("Range() returned %d days, want 7", len(week))
	}

	y.Free()
	if y.Len() != 0 {
		t.Errorf("Len() after Free = %d, want 0", y.Len())
	}
}

func TestYear_SeasonDays(t *testing.T) {
	y := ProperOfSeasons(d(2026, time.January, 1))
	y.Add(NewLiturgicalDay(d(2026, time.March, 19), ClassSolemnity, SeasonOrdinaryTime, "Overlay"))

	want := map[Season]int{
		SeasonAdvent:       25,
		SeasonChristmas:    18,
		SeasonLent:         43,
		SeasonTriduum:      3,
		SeasonEaster:       50,
		SeasonOrdinaryTime: 225,
	}
	got := y.SeasonDays()
	total := 0
	for season, n := range want {
		if got[season] != n {
			t.Errorf("SeasonDays()[%s] = %d, want %d", season, got[season], n)
		}
		total += got[season]
	}
	if total != DaysBetween(y.Start(), y.End()) {
		t.Errorf("season days sum to %d, want %d", total, DaysBetween(y.Start(), y.End()))
	}
}
