package calendar

// SundayCycle is the three-year cycle of Sunday readings.
type SundayCycle string

const (
	CycleA SundayCycle = "A"
	CycleB SundayCycle = "B"
	CycleC SundayCycle = "C"
)

// WeekdayCycle is the two-year cycle of weekday readings in Ordinary Time.
type WeekdayCycle string

const (
	CycleI  WeekdayCycle = "I"
	CycleII WeekdayCycle = "II"
)

// GetLiturgicalYear returns the starting year of the liturgical year
// that contains the given date.
//
// The liturgical year is identified by the year in which its Advent begins.
// For example, the liturgical year "2024" runs from Advent 2024 through
// the Saturday before Advent 2025.
func GetLiturgicalYear(date Date) int {
	if date.Before(CalculateAdvent(date.Year)) {
		return date.Year - 1
	}
	return date.Year
}

// GetSundayCycle determines the Sunday cycle for a date.
//
// Cycles are counted by the civil year in which the liturgical year ends:
// years divisible by three use Year C, so the year that began with
// Advent 2025 is Year A and the one that began with Advent 2026 is Year B.
func GetSundayCycle(date Date) SundayCycle {
	return sundayCycleOf(GetLiturgicalYear(date) + 1)
}

// GetWeekdayCycle determines the weekday cycle for a date: Year I when the
// liturgical year ends in an odd civil year, Year II when it ends in an even one.
func GetWeekdayCycle(date Date) WeekdayCycle {
	return weekdayCycleOf(GetLiturgicalYear(date) + 1)
}

func sundayCycleOf(endYear int) SundayCycle {
	switch ((endYear % 3) + 3) % 3 {
	case 1:
		return CycleA
	case 2:
		return CycleB
	default:
		return CycleC
	}
}

func weekdayCycleOf(endYear int) WeekdayCycle {
	if endYear%2 != 0 {
		return CycleI
	}
	return CycleII
}

// SundayCycle returns the Sunday cycle of the year.
func (y *Year) SundayCycle() SundayCycle { return sundayCycleOf(y.Number()) }

// WeekdayCycle returns the weekday cycle of the year.
func (y *Year) WeekdayCycle() WeekdayCycle { return weekdayCycleOf(y.Number()) }
