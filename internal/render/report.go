package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rharbaugh/calendarium/internal/calendar"
)

// AnchorsHeader is the header row of WriteAnchorsCSV.
var AnchorsHeader = []string{
	"liturgical_year", "sunday_cycle", "weekday_cycle",
	"advent", "epiphany", "baptism", "ash_wednesday", "palm_sunday", "easter",
	"ascension", "pentecost", "trinity", "corpus_christi", "christ_the_king",
	"next_advent", "days",
}

// WriteAnchorsCSV writes one row per liturgical year.
func WriteAnchorsCSV(w io.Writer, anchors []calendar.Anchors) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(AnchorsHeader); err != nil {
		return err
	}
	for _, a := range anchors {
		jan1 := calendar.Date{Year: a.LiturgicalYear, Month: 1, Day: 1}
		record := []string{
			strconv.Itoa(a.LiturgicalYear),
			string(calendar.GetSundayCycle(jan1)),
			string(calendar.GetWeekdayCycle(jan1)),
			a.Advent.String(),
			a.Epiphany.String(),
			a.Baptism.String(),
			a.AshWednesday.String(),
			a.PalmSunday.String(),
			a.Easter.String(),
			a.Ascension.String(),
			a.Pentecost.String(),
			a.Trinity.String(),
			a.CorpusChristi.String(),
			a.ChristTheKing.String(),
			a.NextAdvent.String(),
			strconv.Itoa(calendar.DaysBetween(a.Advent, a.NextAdvent)),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Seasons prints how many days each season of year spans.
func (p *Printer) Seasons(year *calendar.Year) error {
	counts := year.SeasonDays()

	t := table.New().Headers("Season", "Days")
	total := 0
	for _, s := range calendar.Seasons {
		t.Row(s.String(), strconv.Itoa(counts[s]))
		total += counts[s]
	}
	t.Row("Total", strconv.Itoa(total))

	if p.color {
		t = t.Border(lipgloss.RoundedBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				s := lipgloss.NewStyle().Padding(0, 1)
				if row == table.HeaderRow {
					return s.Bold(true)
				}
				if row >= 0 && row < len(calendar.Seasons) {
					if c, ok := seasonColors[calendar.Seasons[row]]; ok && col == 0 {
						return s.Foreground(c)
					}
				}
				return s
			})
	} else {
		t = t.Border(lipgloss.ASCIIBorder())
	}

	_, err := fmt.Fprintln(p.w, t.Render())
	return err
}
