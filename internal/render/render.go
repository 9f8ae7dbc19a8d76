// Package render prints liturgical days for the console.
package render

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/rharbaugh/calendarium/internal/calendar"
)

// Season colours.
var seasonColors = map[calendar.Season]lipgloss.Color{
	calendar.SeasonAdvent:       lipgloss.Color("#7B5EA7"), // violet
	calendar.SeasonChristmas:    lipgloss.Color("#F5D76E"), // gold
	calendar.SeasonOrdinaryTime: lipgloss.Color("#3FA34D"), // green
	calendar.SeasonLent:         lipgloss.Color("#8E44AD"), // purple
	calendar.SeasonTriduum:      lipgloss.Color("#C0392B"), // red
	calendar.SeasonEaster:       lipgloss.Color("#ECEFF1"), // white
}

var (
	styleDate = lipgloss.NewStyle().Bold(true)
	styleRank = lipgloss.NewStyle().Faint(true)
)

// FormatLine renders day as
// "Thursday, December 25, 2025 - The Nativity of the Lord (Christmas) - Solemnity in Christmas".
func FormatLine(day calendar.LiturgicalDay) string {
	return fmt.Sprintf("%s - %s - %s", formatDate(day.Date), day.Description, formatRank(day))
}

func formatDate(d calendar.Date) string {
	return fmt.Sprintf("%s, %s %d, %d", calendar.DayName(d), d.Month, d.Day, d.Year)
}

func formatRank(day calendar.LiturgicalDay) string {
	return fmt.Sprintf("%s in %s", day.Class, day.Season)
}

// Printer writes formatted days to an output stream.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter returns a Printer for w. Colour is enabled only when w is a
// terminal and NO_COLOR is unset.
func NewPrinter(w io.Writer) *Printer {
	color := false
	if f, ok := w.(*os.File); ok && os.Getenv("NO_COLOR") == "" {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &Printer{w: w, color: color}
}

// Plain returns a Printer that never colours its output.
func Plain(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Day prints one line for day.
func (p *Printer) Day(day calendar.LiturgicalDay) error {
	_, err := fmt.Fprintln(p.w, p.line(day))
	return err
}

// Days prints one line per record.
func (p *Printer) Days(days []calendar.LiturgicalDay) error {
	for _, day := range days {
		if err := p.Day(day); err != nil {
			return err
		}
	}
	return nil
}

// Year prints every record of year, overlay records included, in order.
func (p *Printer) Year(year *calendar.Year) error {
	return p.Days(year.Days())
}

func (p *Printer) line(day calendar.LiturgicalDay) string {
	if !p.color {
		return FormatLine(day)
	}

	desc := lipgloss.NewStyle()
	if c, ok := seasonColors[day.Season]; ok {
		desc = desc.Foreground(c)
	}
	if day.Class.Precedence() <= calendar.ClassSunday.Precedence() {
		desc = desc.Bold(true)
	}
	return fmt.Sprintf("%s - %s - %s",
		styleDate.Render(formatDate(day.Date)),
		desc.Render(day.Description),
		styleRank.Render(formatRank(day)),
	)
}

// Anchors prints the key dates of a liturgical year as a table.
func (p *Printer) Anchors(a calendar.Anchors) error {
	rows := [][]string{
		{"First Sunday of Advent", a.Advent.String(), calendar.DayName(a.Advent)},
		{"Christmas", a.Christmas.String(), calendar.DayName(a.Christmas)},
		{"Epiphany", a.Epiphany.String(), calendar.DayName(a.Epiphany)},
		{"Baptism of the Lord", a.Baptism.String(), calendar.DayName(a.Baptism)},
		{"Ash Wednesday", a.AshWednesday.String(), calendar.DayName(a.AshWednesday)},
		{"Palm Sunday", a.PalmSunday.String(), calendar.DayName(a.PalmSunday)},
		{"Easter Sunday", a.Easter.String(), calendar.DayName(a.Easter)},
		{"Ascension", a.Ascension.String(), calendar.DayName(a.Ascension)},
		{"Pentecost", a.Pentecost.String(), calendar.DayName(a.Pentecost)},
		{"Trinity Sunday", a.Trinity.String(), calendar.DayName(a.Trinity)},
		{"Corpus Christi", a.CorpusChristi.String(), calendar.DayName(a.CorpusChristi)},
		{"Christ the King", a.ChristTheKing.String(), calendar.DayName(a.ChristTheKing)},
		{"Next Advent", a.NextAdvent.String(), calendar.DayName(a.NextAdvent)},
		{"Length (days)", strconv.Itoa(calendar.DaysBetween(a.Advent, a.NextAdvent)), ""},
	}

	t := table.New().
		Headers(fmt.Sprintf("Liturgical Year %d", a.LiturgicalYear), "Date", "Weekday").
		Rows(rows...)
	if p.color {
		t = t.Border(lipgloss.RoundedBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				s := lipgloss.NewStyle().Padding(0, 1)
				if row == table.HeaderRow {
					return s.Bold(true)
				}
				return s
			})
	} else {
		t = t.Border(lipgloss.ASCIIBorder())
	}

	_, err := fmt.Fprintln(p.w, t.Render())
	return err
}
