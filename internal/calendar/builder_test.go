package calendar

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestProperOfSeasons_2026(t *testing.T) {
	y := ProperOfSeasons(d(2026, time.January, 15))

	tests := []struct {
		date   Date
		desc   string
		class  DayClass
		season Season
	}{
		{d(2025, time.November, 30), "1st Sunday of Advent", ClassSunday, SeasonAdvent},
		{d(2025, time.December, 1), "Monday of the 1st week of Advent", ClassSeasonalWeekday, SeasonAdvent},
		{d(2025, time.December, 17), "December 17th", ClassSeasonalWeekday, SeasonAdvent},
		{d(2025, time.December, 21), "4th Sunday of Advent", ClassSunday, SeasonAdvent},
		{d(2025, time.December, 22), "December 22nd", ClassSeasonalWeekday, SeasonAdvent},
		{d(2025, time.December, 25), "The Nativity of the Lord (Christmas)", ClassSolemnity, SeasonChristmas},
		{d(2025, time.December, 26), "Saint Stephen, First Martyr", ClassFeast, SeasonChristmas},
		{d(2025, time.December, 28), "The Holy Family of Jesus, Mary, and Joseph", ClassFeast, SeasonChristmas},
		{d(2025, time.December, 29), "Fifth Day within the Octave of the Nativity of the Lord", ClassSeasonalWeekday, SeasonChristmas},
		{d(2026, time.January, 1), "Mary, the Holy Mother of God", ClassSolemnity, SeasonChristmas},
		{d(2026, time.January, 2), "Christmas Weekday", ClassSeasonalWeekday, SeasonChristmas},
		{d(2026, time.January, 4), "The Epiphany of the Lord", ClassSolemnity, SeasonChristmas},
		{d(2026, time.January, 5), "Monday between Epiphany and Baptism of the Lord", ClassSeasonalWeekday, SeasonChristmas},
		{d(2026, time.January, 11), "The Baptism of the Lord", ClassFeast, SeasonChristmas},
		{d(2026, time.January, 12), "Monday of the 1st week of Ordinary Time", ClassFerialWeekday, SeasonOrdinaryTime},
		{d(2026, time.January, 18), "2nd Sunday of Ordinary Time", ClassSunday, SeasonOrdinaryTime},
		{d(2026, time.February, 17), "Tuesday of the 6th week of Ordinary Time", ClassFerialWeekday, SeasonOrdinaryTime},
		{d(2026, time.February, 18), "Ash Wednesday", ClassSolemnity, SeasonLent},
		{d(2026, time.February, 19), "Thursday after Ash Wednesday", ClassSeasonalWeekday, SeasonLent},
		{d(2026, time.February, 22), "1st Sunday of Lent", ClassSunday, SeasonLent},
		{d(2026, time.March, 28), "Saturday of the 5th week of Lent", ClassSeasonalWeekday, SeasonLent},
		{d(2026, time.March, 29), "Palm Sunday of the Passion of the Lord", ClassSunday, SeasonLent},
		{d(2026, time.March, 31), "Tuesday of Holy Week", ClassSeasonalWeekday, SeasonLent},
		{d(2026, time.April, 2), "Holy Thursday", ClassSolemnity, SeasonTriduum},
		{d(2026, time.April, 3), "Friday of the Passion of the Lord", ClassSolemnity, SeasonTriduum},
		{d(2026, time.April, 4), "Holy Saturday", ClassSolemnity, SeasonTriduum},
		{d(2026, time.April, 5), "Easter Sunday of the Resurrection of the Lord", ClassSolemnity, SeasonEaster},
		{d(2026, time.April, 6), "Monday within the Octave of Easter", ClassSolemnity, SeasonEaster},
		{d(2026, time.April, 12), "Second Sunday of Easter (Sunday of Divine Mercy)", ClassSolemnity, SeasonEaster},
		{d(2026, time.April, 13), "Monday of the 2nd week of Easter", ClassSeasonalWeekday, SeasonEaster},
		{d(2026, time.April, 19), "3rd Sunday of Easter", ClassSunday, SeasonEaster},
		{d(2026, time.May, 17), "The Ascension of the Lord", ClassSolemnity, SeasonEaster},
		{d(2026, time.May, 23), "Saturday of the 7th week of Easter", ClassSeasonalWeekday, SeasonEaster},
		{d(2026, time.May, 24), "Pentecost Sunday", ClassSolemnity, SeasonEaster},
		{d(2026, time.May, 25), "Monday of the 8th week of Ordinary Time", ClassFerialWeekday, SeasonOrdinaryTime},
		{d(2026, time.May, 31), "The Most Holy Trinity", ClassSolemnity, SeasonOrdinaryTime},
		{d(2026, time.June, 7), "The Most Holy Body and Blood of Christ", ClassSolemnity, SeasonOrdinaryTime},
		{d(2026, time.June, 14), "11th Sunday of Ordinary Time", ClassSunday, SeasonOrdinaryTime},
		{d(2026, time.November, 15), "33rd Sunday of Ordinary Time", ClassSunday, SeasonOrdinaryTime},
		{d(2026, time.November, 22), "Our Lord Jesus Christ, King of the Universe", ClassSolemnity, SeasonOrdinaryTime},
		{d(2026, time.November, 28), "Saturday of the 34th week of Ordinary Time", ClassFerialWeekday, SeasonOrdinaryTime},
	}

	for _, tt := range tests {
		t.Run(tt.date.String(), func(t *testing.T) {
			got := y.Lookup(tt.date)
			if len(got) != 1 {
				t.Fatalf("Lookup(%s) returned %d records, want 1", tt.date, len(got))
			}
			day := got[0]
			if day.Description != tt.desc {
				t.Errorf("Description = %q, want %q", day.Description, tt.desc)
			}
			if day.Class != tt.class {
				t.Errorf("Class = %s, want %s", day.Class, tt.class)
			}
			if day.Season != tt.season {
				t.Errorf("Season = %s, want %s", day.Season, tt.season)
			}
		})
	}
}

func TestProperOfSeasons_ChristmasOnSunday(t *testing.T) {
	// Christmas 2022 was a Sunday.
	y := ProperOfSeasons(d(2022, time.December, 25))

	day, err := y.Observance(d(2022, time.December, 30))
	if err != nil {
		t.Fatalf("Observance: %v", err)
	}
	if day.Description != "The Holy Family of Jesus, Mary, and Joseph" {
		t.Errorf("December 30 = %q, want Holy Family", day.Description)
	}

	day, err = y.Observance(d(2022, time.December, 26))
	if err != nil {
		t.Fatalf("Observance: %v", err)
	}
	if day.Description != "Saint Stephen, First Martyr" {
		t.Errorf("December 26 = %q, want Saint Stephen", day.Description)
	}
}

func TestProperOfSeasons_AdventOnDecember3(t *testing.T) {
	// Advent 2023 began on December 3, the latest possible date.
	y := ProperOfSeasons(d(2023, time.December, 2))
	if y.Start() != d(2022, time.November, 27) {
		t.Errorf("December 2 belongs to the year starting %s, want 2022-11-27", y.Start())
	}

	y = ProperOfSeasons(d(2023, time.December, 3))
	if y.Start() != d(2023, time.December, 3) {
		t.Errorf("Start() = %s, want 2023-12-03", y.Start())
	}
	first, _ := y.Observance(d(2023, time.December, 3))
	if first.Description != "1st Sunday of Advent" {
		t.Errorf("December 3 = %q, want 1st Sunday of Advent", first.Description)
	}
	fourth, _ := y.Observance(d(2023, time.December, 24))
	if fourth.Description != "4th Sunday of Advent" {
		t.Errorf("December 24 = %q, want 4th Sunday of Advent", fourth.Description)
	}
}

func TestProperOfSeasons_Contiguous(t *testing.T) {
	for year := 1900; year <= 2200; year++ {
		y := ProperOfSeasons(d(year, time.June, 1))
		days := y.Days()

		if want := DaysBetween(y.Start(), y.End()); len(days) != want {
			t.Fatalf("%d: %d records, want %d", year, len(days), want)
		}
		if days[0].Date != y.Start() {
			t.Fatalf("%d: first record %s, want %s", year, days[0].Date, y.Start())
		}
		for i := 1; i < len(days); i++ {
			if days[i].Date != days[i-1].Date.Next() {
				t.Fatalf("%d: %s follows %s", year, days[i].Date, days[i-1].Date)
			}
		}
		if last := days[len(days)-1].Date; last != y.Last() {
			t.Fatalf("%d: last record %s, want %s", year, last, y.Last())
		}

		for _, day := range days {
			if day.Description == "" || !day.Class.IsValid() || !day.Season.IsValid() {
				t.Fatalf("%d: incomplete record %+v", year, day)
			}
			if day.Date.Weekday() == time.Sunday && day.Class.Precedence() > ClassFeast.Precedence() {
				t.Fatalf("%d: Sunday %s ranked %s", year, day.Date, day.Class)
			}
		}

		ctk, _ := y.Observance(CalculateChristTheKing(year))
		if ctk.Description != "Our Lord Jesus Christ, King of the Universe" {
			t.Fatalf("%d: Christ the King = %q", year, ctk.Description)
		}
	}
}

func TestProperOfSeasons_Idempotent(t *testing.T) {
	a := ProperOfSeasons(d(2026, time.March, 1))
	b := ProperOfSeasons(d(2026, time.March, 1))
	c := ProperOfSeasons(d(2025, time.December, 31))

	if diff := cmp.Diff(a.Days(), b.Days()); diff != "" {
		t.Errorf("same date built different years (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(a.Days(), c.Days()); diff != "" {
		t.Errorf("dates in the same liturgical year built different years (-a +c):\n%s", diff)
	}
}
