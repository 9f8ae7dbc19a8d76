package database

// migrationsSQL contains all database migrations, applied in version order.
var migrationsSQL = map[int]string{
	1: migrationV1LiturgicalDays,
	2: migrationV2Feasts,
}

// migrationV1LiturgicalDays stores computed years.
//
// A liturgical year is saved and replaced as a unit, keyed by the civil year
// in which it ends. position keeps the insertion order of records sharing a
// date, which decides ties between equal ranks.
const migrationV1LiturgicalDays = `
CREATE TABLE IF NOT EXISTS liturgical_days (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    liturgical_year INTEGER NOT NULL,
    date            TEXT    NOT NULL,
    weekday         INTEGER NOT NULL CHECK (weekday BETWEEN 0 AND 6),
    class           TEXT    NOT NULL CHECK (class IN (
                        'solemnity', 'sunday', 'feast', 'memorial',
                        'seasonal_weekday', 'ferial_weekday')),
    season          TEXT    NOT NULL CHECK (season IN (
                        'advent', 'christmas', 'ordinary_time',
                        'lent', 'triduum', 'easter')),
    subject         TEXT    NOT NULL DEFAULT 'none' CHECK (subject IN ('none', 'lord', 'bvm')),
    description     TEXT    NOT NULL CHECK (length(description) <= 255),
    source          TEXT    NOT NULL DEFAULT 'proper' CHECK (source IN ('proper', 'feast')),
    position        INTEGER NOT NULL,
    created_at      TEXT    NOT NULL DEFAULT (datetime('now')),
    UNIQUE (liturgical_year, position)
);

CREATE INDEX IF NOT EXISTS idx_liturgical_days_date ON liturgical_days(date);
CREATE INDEX IF NOT EXISTS idx_liturgical_days_year ON liturgical_days(liturgical_year);
`

// migrationV2Feasts stores the fixed-date overlay last imported.
const migrationV2Feasts = `
CREATE TABLE IF NOT EXISTS feasts (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    month       INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
    day         INTEGER NOT NULL CHECK (day BETWEEN 1 AND 31),
    class       TEXT    NOT NULL,
    season      TEXT    NOT NULL,
    subject     TEXT    NOT NULL DEFAULT 'none',
    description TEXT    NOT NULL CHECK (length(description) <= 255),
    source_path TEXT,
    created_at  TEXT    NOT NULL DEFAULT (datetime('now')),
    UNIQUE (month, day, description)
);

CREATE INDEX IF NOT EXISTS idx_feasts_month_day ON feasts(month, day);
`
