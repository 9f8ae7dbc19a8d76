package calendar

import (
	"testing"
	"time"
)

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		1:   "1st",
		2:   "2nd",
		3:   "3rd",
		4:   "4th",
		11:  "11th",
		12:  "12th",
		13:  "13th",
		21:  "21st",
		22:  "22nd",
		23:  "23rd",
		31:  "31st",
		34:  "34th",
		111: "111th",
		101: "101st",
	}

	for n, want := range tests {
		if got := Ordinal(n); got != want {
			t.Errorf("Ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestParseDayClass(t *testing.T) {
	tests := []struct {
		in   string
		want DayClass
	}{
		{"SOLEMNITY", ClassSolemnity},
		{"sunday", ClassSunday},
		{" Feast ", ClassFeast},
		{"MEMORIAL", ClassMemorial},
		{"SEASONAL_WEEKDAY", ClassSeasonalWeekday},
		{"Seasonal Weekday", ClassSeasonalWeekday},
		{"FERIAL_WEEKDAY", ClassFerialWeekday},
		{"ferial weekday", ClassFerialWeekday},
		{"FERIAL", ClassFerialWeekday},
	}

	for _, tt := range tests {
		got, err := ParseDayClass(tt.in)
		if err != nil {
			t.Errorf("ParseDayClass(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDayClass(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseDayClass("OPTIONAL_MEMORIAL"); err == nil {
		t.Error("ParseDayClass(OPTIONAL_MEMORIAL) should fail")
	}
}

func TestParseSeasonAndSubject(t *testing.T) {
	seasons := map[string]Season{
		"ADVENT":        SeasonAdvent,
		"christmas":     SeasonChristmas,
		"ORDINARY_TIME": SeasonOrdinaryTime,
		"Ordinary Time": SeasonOrdinaryTime,
		"LENT":          SeasonLent,
		"TRIDUUM":       SeasonTriduum,
		"Easter":        SeasonEaster,
	}
	for in, want := range seasons {
		got, err := ParseSeason(in)
		if err != nil || got != want {
			t.Errorf("ParseSeason(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseSeason("EPIPHANYTIDE"); err == nil {
		t.Error("ParseSeason(EPIPHANYTIDE) should fail")
	}

	subjects := map[string]Subject{
		"LORD": SubjectLord,
		"bvm":  SubjectBVM,
		"NONE": SubjectNone,
	}
	for in, want := range subjects {
		got, err := ParseSubject(in)
		if err != nil || got != want {
			t.Errorf("ParseSubject(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseSubject("SAINT"); err == nil {
		t.Error("ParseSubject(SAINT) should fail")
	}
}

func TestDayClassPrecedence(t *testing.T) {
	for i := 1; i < len(DayClasses); i++ {
		higher, lower := DayClasses[i-1], DayClasses[i]
		if !higher.Outranks(lower) {
			t.Errorf("%s should outrank %s", higher, lower)
		}
		if lower.Outranks(higher) {
			t.Errorf("%s should not outrank %s", lower, higher)
		}
	}
	if DayClass("bogus").IsValid() {
		t.Error("unknown class should not be valid")
	}
}

func TestDisplayNames(t *testing.T) {
	if got := ClassFerialWeekday.String(); got != "Ferial" {
		t.Errorf("ClassFerialWeekday.String() = %q, want Ferial", got)
	}
	if got := ClassSeasonalWeekday.String(); got != "Seasonal Weekday" {
		t.Errorf("ClassSeasonalWeekday.String() = %q", got)
	}
	if got := SeasonTriduum.String(); got != "Sacred Triduum" {
		t.Errorf("SeasonTriduum.String() = %q", got)
	}
	if got := SeasonOrdinaryTime.String(); got != "Ordinary Time" {
		t.Errorf("SeasonOrdinaryTime.String() = %q", got)
	}
}

func TestFindSundayBetween(t *testing.T) {
	got := FindSundayBetween(2026, 1, 2, 1, 8)
	if got == nil || *got != d(2026, time.January, 4) {
		t.Errorf("FindSundayBetween(2026, Jan 2-8) = %v, want 2026-01-04", got)
	}
	if got := FindSundayBetween(2026, 1, 5, 1, 9); got != nil {
		t.Errorf("FindSundayBetween(2026, Jan 5-9) = %s, want nil", got)
	}
}

func TestLiturgicalYearAndCycles(t *testing.T) {
	tests := []struct {
		date    Date
		year    int
		sunday  SundayCycle
		weekday WeekdayCycle
	}{
		{d(2025, time.November, 29), 2024, CycleC, CycleI},
		{d(2025, time.November, 30), 2025, CycleA, CycleII},
		{d(2026, time.June, 1), 2025, CycleA, CycleII},
		{d(2026, time.November, 29), 2026, CycleB, CycleI},
		{d(2027, time.December, 25), 2027, CycleC, CycleII},
	}

	for _, tt := range tests {
		if got := GetLiturgicalYear(tt.date); got != tt.year {
			t.Errorf("GetLiturgicalYear(%s) = %d, want %d", tt.date, got, tt.year)
		}
		if got := GetSundayCycle(tt.date); got != tt.sunday {
			t.Errorf("GetSundayCycle(%s) = %s, want %s", tt.date, got, tt.sunday)
		}
		if got := GetWeekdayCycle(tt.date); got != tt.weekday {
			t.Errorf("GetWeekdayCycle(%s) = %s, want %s", tt.date, got, tt.weekday)
		}
	}
}
