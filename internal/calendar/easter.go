// Package calendar computes the Roman Catholic liturgical calendar: the
// Computus, the season anchors derived from it, and the proper of seasons
// for a whole liturgical year.
package calendar

import "time"

// CalculateEaster calculates the date of Easter Sunday for a given year
// using the anonymous Gregorian algorithm (Meeus/Jones/Butcher).
//
// The result always falls between March 22 and April 25. Years before the
// Gregorian reform are computed proleptically.
func CalculateEaster(year int) Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return Date{Year: year, Month: time.Month(month), Day: day}
}

// adventOffset maps the weekday of December 1 to the distance from it to
// the First Sunday of Advent.
var adventOffset = [...]int{
	time.Sunday:    0,
	time.Monday:    -1,
	time.Tuesday:   -2,
	time.Wednesday: -3,
	time.Thursday:  -4,
	time.Friday:    2,
	time.Saturday:  1,
}

// CalculateAdvent calculates the First Sunday of Advent for a given year:
// the fourth Sunday before Christmas, always between November 27 and
// December 3.
func CalculateAdvent(year int) Date {
	dec1 := Date{Year: year, Month: time.December, Day: 1}
	return AddDays(dec1, adventOffset[dec1.Weekday()])
}

// CalculateEpiphany returns the Sunday between January 2 and January 8.
func CalculateEpiphany(year int) Date {
	return *FindSundayBetween(year, 1, 2, 1, 8)
}

// CalculateBaptism returns the Baptism of the Lord, the Sunday after Epiphany.
func CalculateBaptism(year int) Date {
	return AddDays(CalculateEpiphany(year), 7)
}

// CalculateAshWednesday calculates Ash Wednesday for a given year.
// Ash Wednesday is 46 days before Easter (40 days of Lent + 6 Sundays).
func CalculateAshWednesday(year int) Date {
	return SubtractDays(CalculateEaster(year), 46)
}

// CalculatePalmSunday returns the Sunday before Easter.
func CalculatePalmSunday(year int) Date {
	return SubtractDays(CalculateEaster(year), 7)
}

// CalculateAscension calculates the Ascension for a given year as observed
// on the Seventh Sunday of Easter, 42 days after Easter.
func CalculateAscension(year int) Date {
	return AddDays(CalculateEaster(year), 42)
}

// CalculatePentecost calculates Pentecost Sunday for a given year.
// Pentecost is 49 days after Easter (7 weeks).
func CalculatePentecost(year int) Date {
	return AddDays(CalculateEaster(year), 49)
}

// CalculateTrinitySunday returns the Sunday after Pentecost.
func CalculateTrinitySunday(year int) Date {
	return AddDays(CalculatePentecost(year), 7)
}

// CalculateCorpusChristi returns the Sunday after Trinity Sunday.
func CalculateCorpusChristi(year int) Date {
	return AddDays(CalculateTrinitySunday(year), 7)
}

// CalculateChristTheKing returns the last Sunday before Advent of year.
func CalculateChristTheKing(year int) Date {
	return SubtractDays(CalculateAdvent(year), 7)
}

// Anchors holds the movable dates of one liturgical year.
type Anchors struct {
	Advent         Date `json:"advent"`
	Christmas      Date `json:"christmas"`
	Epiphany       Date `json:"epiphany"`
	Baptism        Date `json:"baptism"`
	AshWednesday   Date `json:"ash_wednesday"`
	PalmSunday     Date `json:"palm_sunday"`
	Easter         Date `json:"easter"`
	Ascension      Date `json:"ascension"`
	Pentecost      Date `json:"pentecost"`
	Trinity        Date `json:"trinity"`
	CorpusChristi  Date `json:"corpus_christi"`
	ChristTheKing  Date `json:"christ_the_king"`
	NextAdvent     Date `json:"next_advent"`
	LiturgicalYear int  `json:"liturgical_year"`
}

// AnchorsFor returns the anchors of the liturgical year that begins with
// Advent of adventYear.
func AnchorsFor(adventYear int) Anchors {
	year := adventYear + 1
	return Anchors{
		Advent:         CalculateAdvent(adventYear),
		Christmas:      Date{Year: adventYear, Month: time.December, Day: 25},
		Epiphany:       CalculateEpiphany(year),
		Baptism:        CalculateBaptism(year),
		AshWednesday:   CalculateAshWednesday(year),
		PalmSunday:     CalculatePalmSunday(year),
		Easter:         CalculateEaster(year),
		Ascension:      CalculateAscension(year),
		Pentecost:      CalculatePentecost(year),
		Trinity:        CalculateTrinitySunday(year),
		CorpusChristi:  CalculateCorpusChristi(year),
		ChristTheKing:  CalculateChristTheKing(year),
		NextAdvent:     CalculateAdvent(year),
		LiturgicalYear: year,
	}
}
