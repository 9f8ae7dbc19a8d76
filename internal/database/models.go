package database

import (
	"time"

	"github.com/rharbaugh/calendarium/internal/calendar"
	"github.com/rharbaugh/calendarium/internal/feast"
)

// Source records where a stored day came from.
type Source string

const (
	SourceProper Source = "proper" // computed by the season builder
	SourceFeast  Source = "feast"  // merged from the feast overlay
)

// DayRecord is a stored liturgical day.
type DayRecord struct {
	ID             int64                  `json:"id"`
	LiturgicalYear int                    `json:"liturgical_year"` // civil year in which the liturgical year ends
	Position       int                    `json:"position"`        // insertion order within the year
	Source         Source                 `json:"source"`
	Day            calendar.LiturgicalDay `json:"day"`
	CreatedAt      *time.Time             `json:"created_at,omitempty"`
}

// FeastRecord is a stored overlay entry.
type FeastRecord struct {
	ID         int64       `json:"id"`
	Feast      feast.Feast `json:"feast"`
	SourcePath *string     `json:"source_path,omitempty"`
	CreatedAt  *time.Time  `json:"created_at,omitempty"`
}

// YearSummary describes one stored liturgical year.
type YearSummary struct {
	LiturgicalYear int    `json:"liturgical_year"`
	FirstDate      string `json:"first_date"`
	LastDate       string `json:"last_date"`
	Records        int    `json:"records"`
	FeastRecords   int    `json:"feast_records"`
}
