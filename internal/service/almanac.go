// Package service keeps computed liturgical years with the feast overlay
// applied, shared by the HTTP server and the command-line tools.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rharbaugh/calendarium/internal/calendar"
	"github.com/rharbaugh/calendarium/internal/database"
	"github.com/rharbaugh/calendarium/internal/feast"
)

// Options configures an Almanac.
type Options struct {
	FeastsPath string         // overlay file; empty for none
	Location   *time.Location // zone that defines "today"; UTC when nil
	DB         *database.DB   // optional; built years are saved here
	Logger     *slog.Logger
	Now        func() time.Time // wall clock; time.Now when nil
}

// DayInfo is everything known about one date.
type DayInfo struct {
	Date           calendar.Date            `json:"date"`
	Weekday        string                   `json:"weekday"`
	Observance     calendar.LiturgicalDay   `json:"observance"`
	Celebrations   []calendar.LiturgicalDay `json:"celebrations"`
	LiturgicalYear int                      `json:"liturgical_year"`
	SundayCycle    calendar.SundayCycle     `json:"sunday_cycle"`
	WeekdayCycle   calendar.WeekdayCycle    `json:"weekday_cycle"`
}

// Almanac builds liturgical years on demand and caches them. It is safe
// for concurrent use. Years it returns are shared and must not be modified.
type Almanac struct {
	opts   Options
	logger *slog.Logger
	now    func() time.Time

	storeMu sync.Mutex // orders overlay writes to the database and memory

	mu         sync.RWMutex
	feasts     []feast.Feast
	generation int                    // bumped on every overlay change
	years      map[int]*calendar.Year // keyed by Year.Number

	cron    *cron.Cron
	watcher *feast.Watcher
	wg      sync.WaitGroup
}

// New creates an Almanac with an empty overlay. Call LoadFeasts to read
// Options.FeastsPath.
func New(opts Options) *Almanac {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Almanac{
		opts:   opts,
		logger: logger,
		now:    opts.Now,
		years:  make(map[int]*calendar.Year),
	}
}

// =============================================================================
// Feast Overlay
// =============================================================================

// LoadFeasts reads the overlay file. A missing file is logged and leaves
// the overlay empty; a malformed one is returned as an error and the
// current overlay is kept.
func (a *Almanac) LoadFeasts(ctx context.Context) error {
	if a.opts.FeastsPath == "" {
		return nil
	}

	feasts, err := feast.LoadFile(a.opts.FeastsPath)
	if errors.Is(err, feast.ErrFileMissing) {
		a.logger.WarnContext(ctx, "feast file not found, using the seasonal calendar only",
			slog.String("path", a.opts.FeastsPath),
		)
		return a.SetFeasts(ctx, nil)
	}
	if err != nil {
		return err
	}

	a.logger.InfoContext(ctx, "feasts loaded",
		slog.String("path", a.opts.FeastsPath),
		slog.Int("count", len(feasts)),
	)
	return a.SetFeasts(ctx, feasts)
}

// SetFeasts replaces the overlay and drops every cached year. With a
// database the overlay is stored first; if that fails the current overlay
// is kept and the error returned.
func (a *Almanac) SetFeasts(ctx context.Context, feasts []feast.Feast) error {
	a.storeMu.Lock()
	defer a.storeMu.Unlock()

	if a.opts.DB != nil {
		if err := a.opts.DB.ReplaceFeasts(ctx, feasts, a.opts.FeastsPath); err != nil {
			return fmt.Errorf("store feasts: %w", err)
		}
	}
	a.swapFeasts(append([]feast.Feast(nil), feasts...))
	return nil
}

// AddFeast appends f to the overlay and returns its stored id, or 0
// without a database. A feast already stored for the same date and
// description is rejected with database.ErrDuplicate.
func (a *Almanac) AddFeast(ctx context.Context, f feast.Feast) (int64, error) {
	a.storeMu.Lock()
	defer a.storeMu.Unlock()

	var id int64
	if a.opts.DB != nil {
		var err error
		if id, err = a.opts.DB.CreateFeast(ctx, f, ""); err != nil {
			return 0, err
		}
	}
	a.swapFeasts(append(a.Feasts(), f))
	return id, nil
}

func (a *Almanac) swapFeasts(feasts []feast.Feast) {
	a.mu.Lock()
	a.feasts = feasts
	a.generation++
	a.years = make(map[int]*calendar.Year)
	a.mu.Unlock()
}

// Feasts returns a copy of the current overlay.
func (a *Almanac) Feasts() []feast.Feast {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]feast.Feast(nil), a.feasts...)
}

// =============================================================================
// Years and Days
// =============================================================================

// Today returns the current civil date in the configured zone.
func (a *Almanac) Today() calendar.Date {
	return calendar.FromTime(a.now().In(a.opts.Location))
}

// Year returns the liturgical year containing date with the overlay applied.
func (a *Almanac) Year(ctx context.Context, date calendar.Date) *calendar.Year {
	number := calendar.GetLiturgicalYear(date) + 1

	a.mu.RLock()
	year, ok := a.years[number]
	feasts, generation := a.feasts, a.generation
	a.mu.RUnlock()
	if ok {
		return year
	}

	year = calendar.ProperOfSeasons(date)
	result := feast.Apply(year, feasts)
	for _, f := range result.Skipped {
		a.logger.DebugContext(ctx, "feast outside liturgical year",
			slog.Int("liturgical_year", number),
			slog.String("feast", f.Description),
		)
	}

	a.mu.Lock()
	if cached, exists := a.years[number]; exists {
		a.mu.Unlock()
		return cached
	}
	// Built against an overlay that has since been replaced.
	if a.generation != generation {
		a.mu.Unlock()
		return year
	}
	a.years[number] = year
	a.mu.Unlock()

	if a.opts.DB != nil {
		if _, err := a.opts.DB.SaveYear(ctx, year); err != nil {
			a.logger.ErrorContext(ctx, "save liturgical year",
				slog.Int("liturgical_year", number),
				slog.Any("error", err),
			)
		}
	}

	a.logger.DebugContext(ctx, "liturgical year built",
		slog.Int("liturgical_year", number),
		slog.Int("feasts_applied", result.Applied),
	)
	return year
}

// YearOf returns the liturgical year that contains January 1 of civil year n.
func (a *Almanac) YearOf(ctx context.Context, n int) *calendar.Year {
	return a.Year(ctx, calendar.Date{Year: n, Month: time.January, Day: 1})
}

// Day describes date.
func (a *Almanac) Day(ctx context.Context, date calendar.Date) (*DayInfo, error) {
	year := a.Year(ctx, date)

	observance, err := year.Observance(date)
	if err != nil {
		return nil, err
	}
	return &DayInfo{
		Date:           date,
		Weekday:        calendar.DayName(date),
		Observance:     observance,
		Celebrations:   year.Lookup(date),
		LiturgicalYear: year.Number(),
		SundayCycle:    year.SundayCycle(),
		WeekdayCycle:   year.WeekdayCycle(),
	}, nil
}

// Range describes every date in [from, to], crossing liturgical years as needed.
func (a *Almanac) Range(ctx context.Context, from, to calendar.Date) ([]DayInfo, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("range end %s is before start %s", to, from)
	}

	var out []DayInfo
	for d := from; !d.After(to); d = d.Next() {
		info, err := a.Day(ctx, d)
		if err != nil {
			return nil, err
		}
		out = append(out, *info)
	}
	return out, nil
}

// Refresh builds the current year and drops cached years that have ended.
func (a *Almanac) Refresh(ctx context.Context) {
	today := a.Today()
	current := calendar.GetLiturgicalYear(today) + 1

	a.mu.Lock()
	for number := range a.years {
		if number < current {
			delete(a.years, number)
		}
	}
	a.mu.Unlock()

	year := a.Year(ctx, today)
	a.logger.InfoContext(ctx, "liturgical year refreshed",
		slog.Int("liturgical_year", year.Number()),
		slog.String("today", today.String()),
	)
}

// =============================================================================
// Background Work
// =============================================================================

// StartScheduler runs Refresh on the cron schedule spec. An empty spec
// disables the scheduler.
func (a *Almanac) StartScheduler(spec string) error {
	if spec == "" {
		a.logger.Info("refresh schedule disabled")
		return nil
	}

	c := cron.New(cron.WithLocation(a.opts.Location))
	if _, err := c.AddFunc(spec, func() { a.Refresh(context.Background()) }); err != nil {
		return fmt.Errorf("schedule refresh %q: %w", spec, err)
	}
	c.Start()
	a.cron = c

	a.logger.Info("refresh scheduled", slog.String("schedule", spec))
	return nil
}

// WatchFeasts reloads the overlay whenever the feast file changes. A bad
// edit is logged and the previous overlay stays in place.
func (a *Almanac) WatchFeasts() error {
	if a.opts.FeastsPath == "" {
		return errors.New("no feast file configured")
	}

	w, err := feast.NewWatcher(a.opts.FeastsPath)
	if err != nil {
		return fmt.Errorf("create feast watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("watch %s: %w", a.opts.FeastsPath, err)
	}
	a.watcher = w

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		for reload := range w.Reloads {
			ctx := context.Background()
			switch {
			case errors.Is(reload.Err, feast.ErrFileMissing):
				a.logger.Warn("feast file removed, clearing overlay", slog.String("path", w.Path))
				if err := a.SetFeasts(ctx, nil); err != nil {
					a.logger.Error("clear feasts", slog.Any("error", err))
				}
			case reload.Err != nil:
				a.logger.Error("feast file rejected, keeping previous overlay", slog.Any("error", reload.Err))
			default:
				if err := a.SetFeasts(ctx, reload.Feasts); err != nil {
					a.logger.Error("feast file rejected, keeping previous overlay", slog.Any("error", err))
					continue
				}
				a.logger.Info("feasts reloaded", slog.Int("count", len(reload.Feasts)))
			}
		}
	}()
	return nil
}

// Close stops the scheduler and the watcher.
func (a *Almanac) Close() {
	if a.cron != nil {
		<-a.cron.Stop().Done()
	}
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.wg.Wait()
}
