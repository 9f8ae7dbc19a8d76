package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a civil date cannot exist in the
// proleptic Gregorian calendar.
var ErrInvalidDate = errors.New("invalid date")

// dateLayout is the canonical text form of a Date.
const dateLayout = "2006-01-02"

// Date is a civil date in the proleptic Gregorian calendar. The zero value
// is not a valid date; construct dates with NewDate, ParseDate or FromTime.
//
// Date is comparable, so == and map keys work as expected.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

var daysPerMonth = [...]int{
	time.January:   31,
	time.February:  28,
	time.March:     31,
	time.April:     30,
	time.May:       31,
	time.June:      30,
	time.July:      31,
	time.August:    31,
	time.September: 30,
	time.October:   31,
	time.November:  30,
	time.December:  31,
}

// IsLeapYear reports whether year has a February 29.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(month time.Month, year int) int {
	if month == time.February && IsLeapYear(year) {
		return 29
	}
	return daysPerMonth[month]
}

// NewDate validates and returns a Date.
func NewDate(year int, month time.Month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if !d.Valid() {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, int(month), day)
	}
	return d, nil
}

// FromTime returns the civil date of t in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a date in YYYY-MM-DD or MM-DD-YYYY form.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{dateLayout, "01-02-2006", "1-2-2006"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return FromTime(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q (expected YYYY-MM-DD or MM-DD-YYYY)", ErrInvalidDate, s)
}

// Valid reports whether d names a real day.
func (d Date) Valid() bool {
	if d.Year < 1 || d.Month < time.January || d.Month > time.December {
		return false
	}
	return d.Day >= 1 && d.Day <= DaysInMonth(d.Month, d.Year)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Next returns the following day.
func (d Date) Next() Date {
	d.Day++
	if d.Day > DaysInMonth(d.Month, d.Year) {
		d.Day = 1
		d.Month++
		if d.Month > time.December {
			d.Month = time.January
			d.Year++
		}
	}
	return d
}

// Prev returns the preceding day.
func (d Date) Prev() Date {
	d.Day--
	if d.Day < 1 {
		d.Month--
		if d.Month < time.January {
			d.Month = time.December
			d.Year--
		}
		d.Day = DaysInMonth(d.Month, d.Year)
	}
	return d
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool { return CompareDates(d, o) < 0 }

// After reports whether d is later than o.
func (d Date) After(o Date) bool { return CompareDates(d, o) > 0 }

// InRange reports whether d lies in [from, to].
func (d Date) InRange(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// AddDays returns the date n days after d. A negative n moves backward.
func AddDays(d Date, n int) Date {
	if n < 0 {
		return SubtractDays(d, -n)
	}
	for ; n > 0; n-- {
		d = d.Next()
	}
	return d
}

// SubtractDays returns the date n days before d. A negative n moves forward.
func SubtractDays(d Date, n int) Date {
	if n < 0 {
		return AddDays(d, -n)
	}
	for ; n > 0; n-- {
		d = d.Prev()
	}
	return d
}

// CompareDates returns a negative number when a is before b, zero when they
// are the same day, and a positive number when a is after b.
func CompareDates(a, b Date) int {
	if a.Year != b.Year {
		return a.Year - b.Year
	}
	if a.Month != b.Month {
		return int(a.Month) - int(b.Month)
	}
	return a.Day - b.Day
}

// DaysBetween returns the number of days from a to b.
func DaysBetween(a, b Date) int {
	return int(b.Time().Sub(a.Time()).Hours() / 24)
}
