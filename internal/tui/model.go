// Package tui is an interactive browser over one liturgical year.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rharbaugh/calendarium/internal/calendar"
)

// detailHeight is the number of lines reserved below the table.
const detailHeight = 8

var (
	colorMuted  = lipgloss.Color("#8C8C8C")
	colorAccent = lipgloss.Color("#F5D76E")

	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleDetail = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
	styleHelp = lipgloss.NewStyle().Foreground(colorMuted)
)

// Model is the bubbletea model of the browser. One table row per date.
type Model struct {
	year  *calendar.Year
	today calendar.Date
	dates []calendar.Date
	table table.Model
	keys  KeyMap
	width int
}

// NewModel builds the browser for year with the cursor on today, or on the
// first day when today lies outside the year.
func NewModel(year *calendar.Year, today calendar.Date) Model {
	var (
		dates []calendar.Date
		rows  []table.Row
	)
	for d := year.Start(); d.Before(year.End()); d = d.Next() {
		observance, err := year.Observance(d)
		if err != nil {
			continue
		}
		extra := ""
		if n := len(year.Lookup(d)); n > 1 {
			extra = fmt.Sprintf("+%d", n-1)
		}
		dates = append(dates, d)
		rows = append(rows, table.Row{
			d.String(),
			calendar.DayName(d)[:3],
			observance.Description,
			observance.Class.String(),
			observance.Season.String(),
			extra,
		})
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "Day", Width: 3},
			{Title: "Observance", Width: 48},
			{Title: "Rank", Width: 16},
			{Title: "Season", Width: 14},
			{Title: "", Width: 3},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorMuted).
		BorderBottom(true).
		Bold(true)
	t.SetStyles(styles)

	m := Model{
		year:  year,
		today: today,
		dates: dates,
		table: t,
		keys:  DefaultKeyMap(),
	}
	m.jumpTo(today)
	return m
}

// Selected returns the date under the cursor.
func (m Model) Selected() calendar.Date {
	if len(m.dates) == 0 {
		return m.today
	}
	return m.dates[m.table.Cursor()]
}

func (m *Model) jumpTo(d calendar.Date) {
	for i, date := range m.dates {
		if date == d {
			m.table.SetCursor(i)
			return
		}
	}
}

// sunday moves to the nearest Sunday in direction step (+1 or -1).
func (m *Model) sunday(step int) {
	for i := m.table.Cursor() + step; i >= 0 && i < len(m.dates); i += step {
		if m.dates[i].Weekday() == time.Sunday {
			m.table.SetCursor(i)
			return
		}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if h := msg.Height - detailHeight - 3; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Today):
			m.jumpTo(m.today)
			return m, nil
		case key.Matches(msg, m.keys.NextSunday):
			m.sunday(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevSunday):
			m.sunday(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	title := fmt.Sprintf("Liturgical Year %d (Sunday cycle %s, weekday cycle %s)",
		m.year.Number(), m.year.SundayCycle(), m.year.WeekdayCycle())
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(styleDetail.Render(m.detail()))
	b.WriteString("\n")
	b.WriteString(styleHelp.Render(m.keys.help()))
	return b.String()
}

// detail lists every record on the selected date, the winner first.
func (m Model) detail() string {
	d := m.Selected()
	records := m.year.Lookup(d)
	if len(records) == 0 {
		return d.String()
	}
	observance, _ := m.year.Observance(d)

	lines := []string{fmt.Sprintf("%s, %s %d, %d", calendar.DayName(d), d.Month, d.Day, d.Year)}
	lines = append(lines, describe(observance, true))
	for _, r := range records {
		if r == observance {
			continue
		}
		lines = append(lines, describe(r, false))
	}
	return strings.Join(lines, "\n")
}

func describe(day calendar.LiturgicalDay, observed bool) string {
	mark := "  "
	if observed {
		mark = "* "
	}
	s := fmt.Sprintf("%s%s (%s in %s)", mark, day.Description, day.Class, day.Season)
	if day.Subject != calendar.SubjectNone && day.Subject != "" {
		s += " [" + day.Subject.String() + "]"
	}
	return s
}

// Run starts the browser in the alternate screen and blocks until it exits.
func Run(year *calendar.Year, today calendar.Date, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(NewModel(year, today), opts...).Run()
	return err
}
