package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/rharbaugh/calendarium/internal/calendar"
)

func buildYear(t *testing.T) *calendar.Year {
	t.Helper()
	year := calendar.ProperOfSeasons(calendar.Date{Year: 2026, Month: time.January, Day: 1})
	year.Add(calendar.LiturgicalDay{
		Date:        calendar.Date{Year: 2025, Month: time.December, Day: 25},
		Class:       calendar.ClassSolemnity,
		Season:      calendar.SeasonChristmas,
		Subject:     calendar.SubjectLord,
		Description: "Custom Feast",
	})
	return year
}

func TestWrite_RoundTrip(t *testing.T) {
	year := buildYear(t)

	var buf bytes.Buffer
	stamp := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	if err := Write(&buf, year, Options{Stamp: stamp}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "X-WR-CALNAME:Liturgical Year 2026") {
		t.Error("calendar name missing")
	}

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ParseCalendar: %v", err)
	}

	events := cal.Events()
	if len(events) != year.Len() {
		t.Fatalf("got %d events, want %d", len(events), year.Len())
	}

	uids := make(map[string]bool)
	var christmas []string
	for _, ev := range events {
		uid := ev.GetProperty(ical.ComponentPropertyUniqueId).Value
		if uids[uid] {
			t.Fatalf("duplicate UID %s", uid)
		}
		uids[uid] = true
		if strings.HasPrefix(uid, "20251225-") {
			christmas = append(christmas, ev.GetProperty(ical.ComponentPropertySummary).Value)
		}
	}
	if len(christmas) != 2 {
		t.Errorf("December 25 has %d events, want 2", len(christmas))
	}
}

func TestExport_ObservedOnly(t *testing.T) {
	year := buildYear(t)
	cal := Export(year, Options{ObservedOnly: true, Name: "Observances"})

	want := calendar.DaysBetween(year.Start(), year.End())
	if got := len(cal.Events()); got != want {
		t.Errorf("got %d events, want one per date (%d)", got, want)
	}

	for _, ev := range cal.Events() {
		uid := ev.GetProperty(ical.ComponentPropertyUniqueId).Value
		if uid != "20251225-0@calendarium" {
			continue
		}
		summary := ev.GetProperty(ical.ComponentPropertySummary).Value
		if summary != "The Nativity of the Lord (Christmas)" {
			t.Errorf("December 25 summary = %q", summary)
		}
		start := ev.GetProperty(ical.ComponentPropertyDtStart).Value
		if start != "20251225" {
			t.Errorf("DTSTART = %q, want all-day 20251225", start)
		}
	}
}

func TestCategories(t *testing.T) {
	day := calendar.LiturgicalDay{
		Class:   calendar.ClassSolemnity,
		Season:  calendar.SeasonAdvent,
		Subject: calendar.SubjectBVM,
	}
	if got := categories(day); got != "Solemnity,Advent,Blessed Virgin Mary" {
		t.Errorf("categories() = %q", got)
	}
	day.Subject = calendar.SubjectNone
	if got := categories(day); got != "Solemnity,Advent" {
		t.Errorf("categories() = %q", got)
	}
}
