// Package feast loads fixed-date celebrations from CSV, YAML or TOML files
// and merges them into a liturgical year.
package feast

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/rharbaugh/calendarium/internal/calendar"
)

// ErrInvalidFeast is wrapped by every validation failure.
var ErrInvalidFeast = errors.New("invalid feast")

// Feast is a celebration observed every year on the same month and day.
type Feast struct {
	Month       time.Month        `json:"month" yaml:"month" toml:"month"`
	Day         int               `json:"day" yaml:"day" toml:"day"`
	Class       calendar.DayClass `json:"class" yaml:"class" toml:"class"`
	Season      calendar.Season   `json:"season" yaml:"season" toml:"season"`
	Subject     calendar.Subject  `json:"subject" yaml:"subject" toml:"subject"`
	Description string            `json:"description" yaml:"description" toml:"description"`
}

// Validate checks that the feast names a real month and day (February 29
// included) and known rank, season and subject tokens.
func (f *Feast) Validate() error {
	if f.Month < time.January || f.Month > time.December {
		return fmt.Errorf("%w: month %d out of range 1-12", ErrInvalidFeast, int(f.Month))
	}
	if f.Day < 1 || f.Day > 31 {
		return fmt.Errorf("%w: day %d out of range 1-31", ErrInvalidFeast, f.Day)
	}
	// 2000 is a leap year, so February 29 passes.
	if f.Day > calendar.DaysInMonth(f.Month, 2000) {
		return fmt.Errorf("%w: %s has no day %d", ErrInvalidFeast, f.Month, f.Day)
	}
	if !f.Class.IsValid() {
		return fmt.Errorf("%w: unknown class %q", ErrInvalidFeast, f.Class)
	}
	if !f.Season.IsValid() {
		return fmt.Errorf("%w: unknown season %q", ErrInvalidFeast, f.Season)
	}
	if f.Subject == "" {
		f.Subject = calendar.SubjectNone
	}
	if _, err := calendar.ParseSubject(string(f.Subject)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFeast, err)
	}
	if f.Description == "" {
		return fmt.Errorf("%w: empty description", ErrInvalidFeast)
	}
	return nil
}

// Occurrence returns the date f falls on inside the span of year. A feast
// has no occurrence when its date lies in the few days of late November or
// early December outside the span, or on February 29 of a common year.
func (f Feast) Occurrence(year *calendar.Year) (calendar.Date, bool) {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:       rrule.YEARLY,
		Dtstart:    year.Start().Time(),
		Bymonth:    []int{int(f.Month)},
		Bymonthday: []int{f.Day},
	})
	if err != nil {
		return calendar.Date{}, false
	}

	occurrences := rule.Between(year.Start().Time(), year.Last().Time(), true)
	if len(occurrences) == 0 {
		return calendar.Date{}, false
	}
	return calendar.FromTime(occurrences[0]), true
}

// LiturgicalDay returns the record f contributes on date.
func (f Feast) LiturgicalDay(date calendar.Date) calendar.LiturgicalDay {
	day := calendar.NewLiturgicalDay(date, f.Class, f.Season, f.Description)
	day.Subject = f.Subject
	return day
}

// ApplyResult reports what Apply merged.
type ApplyResult struct {
	Applied int
	Skipped []Feast
}

// Apply appends one record per feast to year, in the order given. The
// builder's record for the same date stays first, so a tie in rank keeps
// the seasonal celebration.
func Apply(year *calendar.Year, feasts []Feast) ApplyResult {
	var result ApplyResult
	for _, f := range feasts {
		date, ok := f.Occurrence(year)
		if !ok {
			result.Skipped = append(result.Skipped, f)
			continue
		}
		year.Add(f.LiturgicalDay(date))
		result.Applied++
	}
	return result
}
