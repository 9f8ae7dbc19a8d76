// Package ics renders liturgical years as iCalendar feeds.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/rharbaugh/calendarium/internal/calendar"
)

const productID = "-//calendarium//Liturgical Calendar//EN"

// Options controls what Export includes.
type Options struct {
	Name         string    // X-WR-CALNAME; defaults to "Liturgical Year <n>"
	Domain       string    // UID suffix; defaults to "calendarium"
	ObservedOnly bool      // one event per date, the winning observance
	Stamp        time.Time // DTSTAMP for every event; zero means now
}

// Export builds a calendar with one all-day event per record of year.
func Export(year *calendar.Year, opts Options) *ical.Calendar {
	if opts.Name == "" {
		opts.Name = fmt.Sprintf("Liturgical Year %d", year.Number())
	}
	if opts.Domain == "" {
		opts.Domain = "calendarium"
	}
	if opts.Stamp.IsZero() {
		opts.Stamp = time.Now().UTC()
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(opts.Name)

	position := make(map[calendar.Date]int)
	for _, day := range events(year, opts.ObservedOnly) {
		n := position[day.Date]
		position[day.Date] = n + 1

		ev := cal.AddEvent(fmt.Sprintf("%s-%d@%s", day.Date.Time().Format("20060102"), n, opts.Domain))
		ev.SetDtStampTime(opts.Stamp)
		ev.SetAllDayStartAt(day.Date.Time())
		ev.SetAllDayEndAt(day.Date.Next().Time())
		ev.SetSummary(day.Description)
		ev.SetDescription(fmt.Sprintf("%s in %s", day.Class, day.Season))
		ev.AddProperty(ical.ComponentPropertyCategories, categories(day))
	}

	return cal
}

// Write serializes Export(year, opts) to w.
func Write(w io.Writer, year *calendar.Year, opts Options) error {
	_, err := io.WriteString(w, Export(year, opts).Serialize())
	return err
}

func events(year *calendar.Year, observedOnly bool) []calendar.LiturgicalDay {
	if !observedOnly {
		return year.Days()
	}
	return year.Range(year.Start(), year.Last())
}

func categories(day calendar.LiturgicalDay) string {
	parts := []string{day.Class.String(), day.Season.String()}
	if day.Subject != calendar.SubjectNone && day.Subject != "" {
		parts = append(parts, day.Subject.String())
	}
	return strings.Join(parts, ",")
}
