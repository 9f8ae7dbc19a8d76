package calendar

import (
	"fmt"
	"time"
)

// ProperOfSeasons builds the liturgical year that contains today: one
// record per date from the First Sunday of Advent to the Saturday before
// the next one. Dates before this year's Advent belong to the year that
// began with last year's Advent.
//
// The result depends only on today's liturgical year, so any two dates in
// the same year produce equal results.
func ProperOfSeasons(today Date) *Year {
	adventYear := today.Year
	if today.Before(CalculateAdvent(adventYear)) {
		adventYear--
	}

	b := &seasonBuilder{
		anchors: AnchorsFor(adventYear),
	}
	b.year = NewYear(b.anchors.Advent, b.anchors.NextAdvent)

	b.buildAdvent()
	b.buildChristmas()
	b.buildOrdinaryTimeBeforeLent()
	b.buildLent()
	b.buildEaster()
	b.buildOrdinaryTimeAfterPentecost()

	return b.year
}

type seasonBuilder struct {
	anchors Anchors
	year    *Year
}

func (b *seasonBuilder) add(d Date, class DayClass, season Season, description string) {
	b.year.Add(NewLiturgicalDay(d, class, season, description))
}

func weekdayOfWeek(d Date, week int, season string) string {
	return fmt.Sprintf("%s of the %s week of %s", DayName(d), Ordinal(week), season)
}

// ============================================================================
// 1. ADVENT - First Sunday of Advent through December 24
// ============================================================================

func (b *seasonBuilder) buildAdvent() {
	christmasEve := SubtractDays(b.anchors.Christmas, 1)

	week := 0
	for d := b.anchors.Advent; !d.After(christmasEve); d = d.Next() {
		if d.Weekday() == time.Sunday {
			week++
		}

		switch {
		case d.Weekday() == time.Sunday:
			b.add(d, ClassSunday, SeasonAdvent, fmt.Sprintf("%s Sunday of Advent", Ordinal(week)))
		case d.Month == time.December && d.Day >= 17:
			b.add(d, ClassSeasonalWeekday, SeasonAdvent, fmt.Sprintf("December %s", Ordinal(d.Day)))
		default:
			b.add(d, ClassSeasonalWeekday, SeasonAdvent, weekdayOfWeek(d, week, "Advent"))
		}
	}
}

// ============================================================================
// 2. CHRISTMAS - Nativity through the Baptism of the Lord
// ============================================================================

// christmasOctave names the fixed days after Christmas.
var christmasOctave = map[int]struct {
	class DayClass
	name  string
}{
	26: {ClassFeast, "Saint Stephen, First Martyr"},
	27: {ClassFeast, "Saint John, Apostle and Evangelist"},
	28: {ClassFeast, "The Holy Innocents, Martyrs"},
	29: {ClassSeasonalWeekday, "Fifth Day within the Octave of the Nativity of the Lord"},
	30: {ClassSeasonalWeekday, "Sixth Day within the Octave of the Nativity of the Lord"},
	31: {ClassSeasonalWeekday, "Seventh Day within the Octave of the Nativity of the Lord"},
}

func (b *seasonBuilder) buildChristmas() {
	christmas := b.anchors.Christmas
	epiphany := b.anchors.Epiphany
	baptism := b.anchors.Baptism

	b.add(christmas, ClassSolemnity, SeasonChristmas, "The Nativity of the Lord (Christmas)")

	// Holy Family is the Sunday within the octave, or December 30 when
	// Christmas itself is a Sunday.
	holyFamily := Date{Year: christmas.Year, Month: time.December, Day: 30}
	if christmas.Weekday() != time.Sunday {
		holyFamily = AddDays(christmas, 7-int(christmas.Weekday()))
	}

	for d := christmas.Next(); d.Before(epiphany); d = d.Next() {
		switch {
		case d == holyFamily:
			b.add(d, ClassFeast, SeasonChristmas, "The Holy Family of Jesus, Mary, and Joseph")
		case d.Month == time.January && d.Day == 1:
			b.add(d, ClassSolemnity, SeasonChristmas, "Mary, the Holy Mother of God")
		case d.Month == time.December:
			fixed := christmasOctave[d.Day]
			b.add(d, fixed.class, SeasonChristmas, fixed.name)
		default:
			b.add(d, ClassSeasonalWeekday, SeasonChristmas, "Christmas Weekday")
		}
	}

	b.add(epiphany, ClassSolemnity, SeasonChristmas, "The Epiphany of the Lord")
	for d := epiphany.Next(); d.Before(baptism); d = d.Next() {
		b.add(d, ClassSeasonalWeekday, SeasonChristmas,
			fmt.Sprintf("%s between Epiphany and Baptism of the Lord", DayName(d)))
	}
	b.add(baptism, ClassFeast, SeasonChristmas, "The Baptism of the Lord")
}

// ============================================================================
// 3. ORDINARY TIME - after the Baptism of the Lord until Ash Wednesday
// ============================================================================

func (b *seasonBuilder) buildOrdinaryTimeBeforeLent() {
	// The week that opens with the Baptism is the 1st week.
	week := 1
	for d := b.anchors.Baptism.Next(); d.Before(b.anchors.AshWednesday); d = d.Next() {
		if d.Weekday() == time.Sunday {
			week++
			b.add(d, ClassSunday, SeasonOrdinaryTime,
				fmt.Sprintf("%s Sunday of Ordinary Time", Ordinal(week)))
			continue
		}
		b.add(d, ClassFerialWeekday, SeasonOrdinaryTime, weekdayOfWeek(d, week, "Ordinary Time"))
	}
}

// ============================================================================
// 4. LENT - Ash Wednesday until the Saturday before Palm Sunday
// ============================================================================

func (b *seasonBuilder) buildLent() {
	ash := b.anchors.AshWednesday
	b.add(ash, ClassSolemnity, SeasonLent, "Ash Wednesday")

	week := 0
	for d := ash.Next(); d.Before(b.anchors.PalmSunday); d = d.Next() {
		switch {
		case d.Weekday() == time.Sunday:
			week++
			b.add(d, ClassSunday, SeasonLent, fmt.Sprintf("%s Sunday of Lent", Ordinal(week)))
		case week == 0:
			b.add(d, ClassSeasonalWeekday, SeasonLent, fmt.Sprintf("%s after Ash Wednesday", DayName(d)))
		default:
			b.add(d, ClassSeasonalWeekday, SeasonLent, weekdayOfWeek(d, week, "Lent"))
		}
	}
}

// ============================================================================
// 5. HOLY WEEK, TRIDUUM AND EASTER - Palm Sunday through Pentecost
// ============================================================================

var octaveNames = []string{
	"Monday within the Octave of Easter",
	"Tuesday within the Octave of Easter",
	"Wednesday within the Octave of Easter",
	"Thursday within the Octave of Easter",
	"Friday within the Octave of Easter",
	"Saturday within the Octave of Easter",
	"Second Sunday of Easter (Sunday of Divine Mercy)",
}

func (b *seasonBuilder) buildEaster() {
	palm := b.anchors.PalmSunday
	easter := b.anchors.Easter

	b.add(palm, ClassSunday, SeasonLent, "Palm Sunday of the Passion of the Lord")
	d := palm.Next()
	for _, name := range []string{"Monday of Holy Week", "Tuesday of Holy Week", "Wednesday of Holy Week"} {
		b.add(d, ClassSeasonalWeekday, SeasonLent, name)
		d = d.Next()
	}
	for _, name := range []string{"Holy Thursday", "Friday of the Passion of the Lord", "Holy Saturday"} {
		b.add(d, ClassSolemnity, SeasonTriduum, name)
		d = d.Next()
	}

	b.add(easter, ClassSolemnity, SeasonEaster, "Easter Sunday of the Resurrection of the Lord")
	d = easter.Next()
	for _, name := range octaveNames {
		b.add(d, ClassSolemnity, SeasonEaster, name)
		d = d.Next()
	}

	week := 2
	for ; d.Before(b.anchors.Pentecost); d = d.Next() {
		switch {
		case d == b.anchors.Ascension:
			week++
			b.add(d, ClassSolemnity, SeasonEaster, "The Ascension of the Lord")
		case d.Weekday() == time.Sunday:
			week++
			b.add(d, ClassSunday, SeasonEaster, fmt.Sprintf("%s Sunday of Easter", Ordinal(week)))
		default:
			b.add(d, ClassSeasonalWeekday, SeasonEaster, weekdayOfWeek(d, week, "Easter"))
		}
	}

	b.add(b.anchors.Pentecost, ClassSolemnity, SeasonEaster, "Pentecost Sunday")
}

// ============================================================================
// 6. ORDINARY TIME - after Pentecost until Advent
// ============================================================================

// lastOrdinaryWeek is the week of Christ the King.
const lastOrdinaryWeek = 34

// buildOrdinaryTimeAfterPentecost numbers the weeks backward from Christ
// the King, so it walks from the last day toward Pentecost and reverses.
func (b *seasonBuilder) buildOrdinaryTimeAfterPentecost() {
	first := b.anchors.Pentecost.Next()
	last := b.year.Last()

	days := make([]LiturgicalDay, 0, DaysBetween(first, last)+1)
	week := lastOrdinaryWeek
	for d := last; !d.Before(first); d = d.Prev() {
		if d.Weekday() != time.Sunday {
			days = append(days, NewLiturgicalDay(d, ClassFerialWeekday, SeasonOrdinaryTime,
				weekdayOfWeek(d, week, "Ordinary Time")))
			continue
		}

		switch d {
		case b.anchors.ChristTheKing:
			days = append(days, NewLiturgicalDay(d, ClassSolemnity, SeasonOrdinaryTime,
				"Our Lord Jesus Christ, King of the Universe"))
		case b.anchors.CorpusChristi:
			days = append(days, NewLiturgicalDay(d, ClassSolemnity, SeasonOrdinaryTime,
				"The Most Holy Body and Blood of Christ"))
		case b.anchors.Trinity:
			days = append(days, NewLiturgicalDay(d, ClassSolemnity, SeasonOrdinaryTime,
				"The Most Holy Trinity"))
		default:
			days = append(days, NewLiturgicalDay(d, ClassSunday, SeasonOrdinaryTime,
				fmt.Sprintf("%s Sunday of Ordinary Time", Ordinal(week))))
		}
		week--
	}

	for i := len(days) - 1; i >= 0; i-- {
		b.year.Add(days[i])
	}
}
