package calendar

import (
	"fmt"
	"strings"
	"time"
)

// DayClass is the liturgical rank of a day.
type DayClass string

const (
	ClassSolemnity       DayClass = "solemnity"
	ClassSunday          DayClass = "sunday"
	ClassFeast           DayClass = "feast"
	ClassMemorial        DayClass = "memorial"
	ClassSeasonalWeekday DayClass = "seasonal_weekday"
	ClassFerialWeekday   DayClass = "ferial_weekday"
)

// DayClasses lists every rank from highest to lowest precedence.
var DayClasses = []DayClass{
	ClassSolemnity,
	ClassSunday,
	ClassFeast,
	ClassMemorial,
	ClassSeasonalWeekday,
	ClassFerialWeekday,
}

// Precedence returns the rank ordinal of c; lower outranks higher.
// Unknown classes sort after every known one.
func (c DayClass) Precedence() int {
	switch c {
	case ClassSolemnity:
		return 1
	case ClassSunday:
		return 2
	case ClassFeast:
		return 3
	case ClassMemorial:
		return 4
	case ClassSeasonalWeekday:
		return 5
	case ClassFerialWeekday:
		return 6
	default:
		return 99
	}
}

// Outranks reports whether c takes precedence over o.
func (c DayClass) Outranks(o DayClass) bool {
	return c.Precedence() < o.Precedence()
}

// IsValid checks if the class is a known rank.
func (c DayClass) IsValid() bool {
	return c.Precedence() != 99
}

func (c DayClass) String() string {
	switch c {
	case ClassSolemnity:
		return "Solemnity"
	case ClassSunday:
		return "Sunday"
	case ClassFeast:
		return "Feast"
	case ClassMemorial:
		return "Memorial"
	case ClassSeasonalWeekday:
		return "Seasonal Weekday"
	case ClassFerialWeekday:
		return "Ferial"
	default:
		return string(c)
	}
}

// ParseDayClass parses a rank token case-insensitively. Underscores and
// spaces are interchangeable and FERIAL is accepted for the ferial weekday.
func ParseDayClass(s string) (DayClass, error) {
	switch normalizeToken(s) {
	case "solemnity":
		return ClassSolemnity, nil
	case "sunday":
		return ClassSunday, nil
	case "feast":
		return ClassFeast, nil
	case "memorial":
		return ClassMemorial, nil
	case "seasonal_weekday":
		return ClassSeasonalWeekday, nil
	case "ferial_weekday", "ferial":
		return ClassFerialWeekday, nil
	}
	return "", fmt.Errorf("unknown day class %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *DayClass) UnmarshalText(text []byte) error {
	parsed, err := ParseDayClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Season is a liturgical season.
type Season string

const (
	SeasonAdvent       Season = "advent"
	SeasonChristmas    Season = "christmas"
	SeasonOrdinaryTime Season = "ordinary_time"
	SeasonLent         Season = "lent"
	SeasonTriduum      Season = "triduum"
	SeasonEaster       Season = "easter"
)

// Seasons lists the seasons in the order they occur.
var Seasons = []Season{
	SeasonAdvent,
	SeasonChristmas,
	SeasonOrdinaryTime,
	SeasonLent,
	SeasonTriduum,
	SeasonEaster,
}

// IsValid checks if the season is known.
func (s Season) IsValid() bool {
	for _, v := range Seasons {
		if s == v {
			return true
		}
	}
	return false
}

func (s Season) String() string {
	switch s {
	case SeasonAdvent:
		return "Advent"
	case SeasonChristmas:
		return "Christmas"
	case SeasonOrdinaryTime:
		return "Ordinary Time"
	case SeasonLent:
		return "Lent"
	case SeasonTriduum:
		return "Sacred Triduum"
	case SeasonEaster:
		return "Easter"
	default:
		return string(s)
	}
}

// ParseSeason parses a season token case-insensitively.
func ParseSeason(s string) (Season, error) {
	switch normalizeToken(s) {
	case "advent":
		return SeasonAdvent, nil
	case "christmas":
		return SeasonChristmas, nil
	case "ordinary_time", "ordinary":
		return SeasonOrdinaryTime, nil
	case "lent":
		return SeasonLent, nil
	case "triduum", "sacred_triduum":
		return SeasonTriduum, nil
	case "easter":
		return SeasonEaster, nil
	}
	return "", fmt.Errorf("unknown season %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Season) UnmarshalText(text []byte) error {
	parsed, err := ParseSeason(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Subject is the person a celebration is directed to.
type Subject string

const (
	SubjectNone Subject = "none"
	SubjectLord Subject = "lord"
	SubjectBVM  Subject = "bvm"
)

func (s Subject) String() string {
	switch s {
	case SubjectLord:
		return "Lord"
	case SubjectBVM:
		return "Blessed Virgin Mary"
	case SubjectNone, "":
		return "None"
	default:
		return string(s)
	}
}

// ParseSubject parses a subject token case-insensitively. An empty token
// means SubjectNone.
func ParseSubject(s string) (Subject, error) {
	switch normalizeToken(s) {
	case "none", "":
		return SubjectNone, nil
	case "lord":
		return SubjectLord, nil
	case "bvm", "blessed_virgin_mary", "mary":
		return SubjectBVM, nil
	}
	return "", fmt.Errorf("unknown subject %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Subject) UnmarshalText(text []byte) error {
	parsed, err := ParseSubject(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func normalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}), "_")
}

// DayName returns the day of week name (Sunday, Monday, etc.)
func DayName(date Date) string {
	return date.Weekday().String()
}

// Ordinal returns the ordinal form of a number (1st, 2nd, 3rd, 4th, 11th, 21st, etc.)
func Ordinal(n int) string {
	return fmt.Sprintf("%d%s", n, OrdinalSuffix(n))
}

// OrdinalSuffix returns the English suffix for n.
func OrdinalSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	switch n % 100 {
	case 11, 12, 13:
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// FindSundayBetween finds the Sunday within a date range.
// Returns nil if no Sunday exists in the range.
func FindSundayBetween(year int, startMonth, startDay, endMonth, endDay int) *Date {
	start := Date{Year: year, Month: time.Month(startMonth), Day: startDay}
	end := Date{Year: year, Month: time.Month(endMonth), Day: endDay}

	for current := start; !current.After(end); current = current.Next() {
		if current.Weekday() == time.Sunday {
			return &current
		}
	}

	return nil
}
