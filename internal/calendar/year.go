package calendar

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// MaxDescriptionLen is the longest description a LiturgicalDay keeps, in
// characters. Longer text is truncated.
const MaxDescriptionLen = 255

// ErrDateNotFound is returned when a date has no record in a Year.
var ErrDateNotFound = errors.New("date not in liturgical year")

// LiturgicalDay is one celebration on one civil date.
type LiturgicalDay struct {
	Date        Date     `json:"date"`
	Class       DayClass `json:"class"`
	Season      Season   `json:"season"`
	Subject     Subject  `json:"subject"`
	Description string   `json:"description"`
}

// NewLiturgicalDay builds a day with no particular subject, truncating the
// description to MaxDescriptionLen characters.
func NewLiturgicalDay(date Date, class DayClass, season Season, description string) LiturgicalDay {
	return LiturgicalDay{
		Date:        date,
		Class:       class,
		Season:      season,
		Subject:     SubjectNone,
		Description: TruncateDescription(description),
	}
}

// TruncateDescription cuts s to MaxDescriptionLen characters.
func TruncateDescription(s string) string {
	if utf8.RuneCountInString(s) <= MaxDescriptionLen {
		return s
	}
	n := 0
	for i := range s {
		if n == MaxDescriptionLen {
			return s[:i]
		}
		n++
	}
	return s
}

func (d LiturgicalDay) String() string {
	return fmt.Sprintf("%s %s (%s, %s)", d.Date, d.Description, d.Class, d.Season)
}

// Year is the ordered, append-only record of one liturgical year, from the
// First Sunday of Advent up to (not including) the next one. The season
// builder contributes exactly one record per date; overlays may add more.
type Year struct {
	start Date
	end   Date
	days  []LiturgicalDay
}

// NewYear returns an empty year spanning [start, end).
func NewYear(start, end Date) *Year {
	return &Year{
		start: start,
		end:   end,
		days:  make([]LiturgicalDay, 0, DaysBetween(start, end)+16),
	}
}

// Start returns the First Sunday of Advent that opens the year.
func (y *Year) Start() Date { return y.start }

// End returns the First Sunday of Advent of the following year.
func (y *Year) End() Date { return y.end }

// Last returns the final day of the year, the Saturday before End.
func (y *Year) Last() Date { return y.end.Prev() }

// Number returns the civil year in which the liturgical year ends.
func (y *Year) Number() int { return y.start.Year + 1 }

// Contains reports whether d falls inside the year's span.
func (y *Year) Contains(d Date) bool {
	return !d.Before(y.start) && d.Before(y.end)
}

// Add appends a record. The description is truncated like NewLiturgicalDay.
func (y *Year) Add(day LiturgicalDay) {
	day.Description = TruncateDescription(day.Description)
	if day.Subject == "" {
		day.Subject = SubjectNone
	}
	y.days = append(y.days, day)
}

// Len returns the number of records.
func (y *Year) Len() int { return len(y.days) }

// Days returns a copy of all records in insertion order.
func (y *Year) Days() []LiturgicalDay {
	out := make([]LiturgicalDay, len(y.days))
	copy(out, y.days)
	return out
}

// Lookup returns every record for d in insertion order.
func (y *Year) Lookup(d Date) []LiturgicalDay {
	var out []LiturgicalDay
	for _, day := range y.days {
		if day.Date == d {
			out = append(out, day)
		}
	}
	return out
}

// Observance returns the celebration that wins on d: the record with the
// highest-precedence class, the earliest-added one on a tie.
func (y *Year) Observance(d Date) (LiturgicalDay, error) {
	var (
		best  LiturgicalDay
		found bool
	)
	for _, day := range y.days {
		if day.Date != d {
			continue
		}
		if !found || day.Class.Outranks(best.Class) {
			best, found = day, true
		}
	}
	if !found {
		return LiturgicalDay{}, fmt.Errorf("%w: %s", ErrDateNotFound, d)
	}
	return best, nil
}

// Range returns the winning observance for every date in [from, to] that
// lies within the year.
func (y *Year) Range(from, to Date) []LiturgicalDay {
	var out []LiturgicalDay
	for d := from; !d.After(to); d = d.Next() {
		if day, err := y.Observance(d); err == nil {
			out = append(out, day)
		}
	}
	return out
}

// SeasonDays counts the dates of each season, taking the season of the
// first record on every date.
func (y *Year) SeasonDays() map[Season]int {
	counts := make(map[Season]int, len(Seasons))
	seen := make(map[Date]bool, len(y.days))
	for _, day := range y.days {
		if seen[day.Date] {
			continue
		}
		seen[day.Date] = true
		counts[day.Season]++
	}
	return counts
}

// Free releases the year's storage. The Year is empty afterwards.
func (y *Year) Free() {
	y.days = nil
}
