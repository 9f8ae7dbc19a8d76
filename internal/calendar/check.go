package calendar

import (
	"fmt"
	"time"
)

// Problem is one failed consistency check of a built year.
type Problem struct {
	Year  int    `json:"liturgical_year"`
	Date  *Date  `json:"date,omitempty"`
	Check string `json:"check"`
	Msg   string `json:"message"`
}

func (p Problem) Error() string {
	if p.Date != nil {
		return fmt.Sprintf("%d %s [%s]: %s", p.Year, *p.Date, p.Check, p.Msg)
	}
	return fmt.Sprintf("%d [%s]: %s", p.Year, p.Check, p.Msg)
}

// CheckYear verifies a year produced by ProperOfSeasons: the anchors lie in
// their canonical windows and every date of the span has exactly one record,
// in date order, with a known rank and season.
func CheckYear(y *Year) []Problem {
	var problems []Problem
	n := y.Number()
	report := func(d *Date, check, format string, args ...any) {
		problems = append(problems, Problem{Year: n, Date: d, Check: check, Msg: fmt.Sprintf(format, args...)})
	}

	easter := CalculateEaster(n)
	lo, hi := Date{Year: n, Month: time.March, Day: 22}, Date{Year: n, Month: time.April, Day: 25}
	if !easter.InRange(lo, hi) || easter.Weekday() != time.Sunday {
		report(&easter, "easter", "Easter must be a Sunday between March 22 and April 25")
	}

	for _, advent := range []Date{y.Start(), y.End()} {
		lo, hi := Date{Year: advent.Year, Month: time.November, Day: 27}, Date{Year: advent.Year, Month: time.December, Day: 3}
		if !advent.InRange(lo, hi) || advent.Weekday() != time.Sunday {
			report(&advent, "advent", "First Sunday of Advent must be a Sunday between November 27 and December 3")
		}
	}

	if got := DaysBetween(y.Start(), y.End()); got != 364 && got != 371 {
		report(nil, "length", "year spans %d days, want 364 or 371", got)
	}

	days := y.Days()
	if len(days) != DaysBetween(y.Start(), y.End()) {
		report(nil, "count", "%d records for %d days", len(days), DaysBetween(y.Start(), y.End()))
	}

	want := y.Start()
	for _, day := range days {
		d := day.Date
		if d != want {
			report(&d, "contiguous", "expected a record for %s", want)
			want = d
		}
		want = want.Next()

		if !day.Class.IsValid() {
			report(&d, "class", "unknown class %q", day.Class)
		}
		if !day.Season.IsValid() {
			report(&d, "season", "unknown season %q", day.Season)
		}
		if day.Description == "" {
			report(&d, "description", "empty description")
		}
		if d.Weekday() == time.Sunday && day.Class.Precedence() > ClassFeast.Precedence() {
			report(&d, "sunday", "Sunday ranked %s", day.Class)
		}
	}
	if want != y.End() && len(days) > 0 {
		report(nil, "contiguous", "records stop before %s", y.Last())
	}

	return problems
}
