package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rharbaugh/calendarium/internal/calendar"
	"github.com/rharbaugh/calendarium/internal/feast"
)

// =============================================================================
// Helper Functions
// =============================================================================

// execer is satisfied by both *DB and *Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// parseTimestamp parses a timestamp from SQLite TEXT format.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return &t
		}
	}
	return nil
}

func scanDay(rows *sql.Rows) (DayRecord, error) {
	var (
		rec       DayRecord
		date      string
		weekday   int
		createdAt sql.NullString
	)
	err := rows.Scan(
		&rec.ID,
		&rec.LiturgicalYear,
		&date,
		&weekday,
		&rec.Day.Class,
		&rec.Day.Season,
		&rec.Day.Subject,
		&rec.Day.Description,
		&rec.Source,
		&rec.Position,
		&createdAt,
	)
	if err != nil {
		return DayRecord{}, fmt.Errorf("scan liturgical day: %w", err)
	}

	rec.Day.Date, err = calendar.ParseDate(date)
	if err != nil {
		return DayRecord{}, fmt.Errorf("stored date %q: %w", date, err)
	}
	rec.CreatedAt = parseTimestamp(createdAt)
	return rec, nil
}

const selectDays = `
	SELECT id, liturgical_year, date, weekday, class, season, subject,
	       description, source, position, created_at
	FROM liturgical_days
`

func (db *DB) queryDays(ctx context.Context, query string, args ...any) ([]DayRecord, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query liturgical days: %w", err)
	}
	defer rows.Close()

	var out []DayRecord
	for rows.Next() {
		rec, err := scanDay(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate liturgical days: %w", err)
	}
	return out, nil
}

// =============================================================================
// Liturgical Day Queries
// =============================================================================

// SaveYear replaces the stored copy of a liturgical year. Records the year
// holds beyond the builder's one-per-date are stored as feast records.
// Returns the number of rows written.
func (db *DB) SaveYear(ctx context.Context, year *calendar.Year) (int, error) {
	days := year.Days()
	number := year.Number()

	err := db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM liturgical_days WHERE liturgical_year = ?", number,
		); err != nil {
			return fmt.Errorf("clear liturgical year %d: %w", number, err)
		}

		seen := make(map[calendar.Date]bool, len(days))
		for i, day := range days {
			source := SourceFeast
			if !seen[day.Date] {
				source = SourceProper
				seen[day.Date] = true
			}
			if err := insertDay(ctx, tx, number, i, source, day); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	db.logger.Debug("liturgical year saved",
		"liturgical_year", number,
		"records", len(days),
	)
	return len(days), nil
}

func insertDay(ctx context.Context, ex execer, year, position int, source Source, day calendar.LiturgicalDay) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO liturgical_days
			(liturgical_year, date, weekday, class, season, subject, description, source, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		year,
		day.Date.String(),
		int(day.Date.Weekday()),
		string(day.Class),
		string(day.Season),
		string(day.Subject),
		day.Description,
		string(source),
		position,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s position %d", ErrDuplicate, day.Date, position)
		}
		return fmt.Errorf("insert liturgical day %s: %w", day.Date, err)
	}
	return nil
}

// GetDaysByDate returns every stored record for date in insertion order.
// Returns ErrNotFound if none is stored.
func (db *DB) GetDaysByDate(ctx context.Context, date calendar.Date) ([]DayRecord, error) {
	days, err := db.queryDays(ctx, selectDays+`
		WHERE date = ?
		ORDER BY liturgical_year, position`, date.String())
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, ErrNotFound
	}
	return days, nil
}

// GetDaysByDateRange returns stored records for dates in [start, end].
func (db *DB) GetDaysByDateRange(ctx context.Context, start, end calendar.Date) ([]DayRecord, error) {
	return db.queryDays(ctx, selectDays+`
		WHERE date BETWEEN ? AND ?
		ORDER BY date, position`, start.String(), end.String())
}

// LoadYear rebuilds a stored liturgical year. Returns ErrNotFound if the
// year has not been saved.
func (db *DB) LoadYear(ctx context.Context, number int) (*calendar.Year, error) {
	days, err := db.queryDays(ctx, selectDays+`
		WHERE liturgical_year = ?
		ORDER BY position`, number)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, ErrNotFound
	}

	year := calendar.NewYear(calendar.CalculateAdvent(number-1), calendar.CalculateAdvent(number))
	for _, rec := range days {
		year.Add(rec.Day)
	}
	return year, nil
}

// ListYears summarizes every stored liturgical year.
func (db *DB) ListYears(ctx context.Context) ([]YearSummary, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT liturgical_year, MIN(date), MAX(date), COUNT(*),
		       SUM(CASE WHEN source = 'feast' THEN 1 ELSE 0 END)
		FROM liturgical_days
		GROUP BY liturgical_year
		ORDER BY liturgical_year`)
	if err != nil {
		return nil, fmt.Errorf("list years: %w", err)
	}
	defer rows.Close()

	var out []YearSummary
	for rows.Next() {
		var s YearSummary
		if err := rows.Scan(&s.LiturgicalYear, &s.FirstDate, &s.LastDate, &s.Records, &s.FeastRecords); err != nil {
			return nil, fmt.Errorf("scan year summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountDays returns the number of stored day records.
func (db *DB) CountDays(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM liturgical_days").Scan(&n); err != nil {
		return 0, fmt.Errorf("count liturgical days: %w", err)
	}
	return n, nil
}

// =============================================================================
// Feast Queries
// =============================================================================

// CreateFeast stores one overlay entry. Returns ErrDuplicate when the same
// month, day and description are already stored.
func (db *DB) CreateFeast(ctx context.Context, f feast.Feast, sourcePath string) (int64, error) {
	return insertFeast(ctx, db, f, sourcePath)
}

func insertFeast(ctx context.Context, ex execer, f feast.Feast, sourcePath string) (int64, error) {
	var path sql.NullString
	if sourcePath != "" {
		path = sql.NullString{String: sourcePath, Valid: true}
	}

	res, err := ex.ExecContext(ctx, `
		INSERT INTO feasts (month, day, class, season, subject, description, source_path)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		int(f.Month), f.Day, string(f.Class), string(f.Season), string(f.Subject), f.Description, path,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s %d %q", ErrDuplicate, f.Month, f.Day, f.Description)
		}
		return 0, fmt.Errorf("insert feast: %w", err)
	}
	return res.LastInsertId()
}

// ReplaceFeasts swaps the stored overlay for feasts in one transaction.
func (db *DB) ReplaceFeasts(ctx context.Context, feasts []feast.Feast, sourcePath string) error {
	return db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM feasts"); err != nil {
			return fmt.Errorf("clear feasts: %w", err)
		}
		for _, f := range feasts {
			if _, err := insertFeast(ctx, tx, f, sourcePath); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListFeasts returns the stored overlay in insertion order.
func (db *DB) ListFeasts(ctx context.Context) ([]FeastRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, month, day, class, season, subject, description, source_path, created_at
		FROM feasts
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query feasts: %w", err)
	}
	defer rows.Close()

	var out []FeastRecord
	for rows.Next() {
		var (
			rec        FeastRecord
			month      int
			sourcePath sql.NullString
			createdAt  sql.NullString
		)
		if err := rows.Scan(
			&rec.ID, &month, &rec.Feast.Day,
			&rec.Feast.Class, &rec.Feast.Season, &rec.Feast.Subject, &rec.Feast.Description,
			&sourcePath, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan feast: %w", err)
		}
		rec.Feast.Month = time.Month(month)
		if sourcePath.Valid {
			rec.SourcePath = &sourcePath.String
		}
		rec.CreatedAt = parseTimestamp(createdAt)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feasts: %w", err)
	}
	return out, nil
}

// GetFeast returns one stored feast by id.
func (db *DB) GetFeast(ctx context.Context, id int64) (*FeastRecord, error) {
	var (
		rec        FeastRecord
		month      int
		sourcePath sql.NullString
		createdAt  sql.NullString
	)
	err := db.QueryRowContext(ctx, `
		SELECT id, month, day, class, season, subject, description, source_path, created_at
		FROM feasts WHERE id = ?`, id,
	).Scan(
		&rec.ID, &month, &rec.Feast.Day,
		&rec.Feast.Class, &rec.Feast.Season, &rec.Feast.Subject, &rec.Feast.Description,
		&sourcePath, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query feast %d: %w", id, err)
	}
	rec.Feast.Month = time.Month(month)
	if sourcePath.Valid {
		rec.SourcePath = &sourcePath.String
	}
	rec.CreatedAt = parseTimestamp(createdAt)
	return &rec, nil
}
