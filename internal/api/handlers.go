package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rharbaugh/calendarium/internal/calendar"
	"github.com/rharbaugh/calendarium/internal/database"
	"github.com/rharbaugh/calendarium/internal/feast"
	"github.com/rharbaugh/calendarium/internal/ics"
	"github.com/rharbaugh/calendarium/internal/logger"
	"github.com/rharbaugh/calendarium/internal/service"
)

// MaxRangeDays is the longest span GetRange serves.
const MaxRangeDays = 90

// maxFeastBody caps PUT /api/v1/feasts bodies.
const maxFeastBody = 1 << 20

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	almanac *service.Almanac
	db      *database.DB // optional
	logger  *slog.Logger
}

// NewHandlers creates a new Handlers instance. db may be nil.
func NewHandlers(almanac *service.Almanac, db *database.DB, log *slog.Logger) *Handlers {
	return &Handlers{almanac: almanac, db: db, logger: log}
}

// log returns the handler logger tagged with the request's ID.
func (h *Handlers) log(r *http.Request) *slog.Logger {
	return logger.FromContext(r.Context(), h.logger)
}

// YearResponse is the body of GET /api/v1/calendar/year/{year}.
type YearResponse struct {
	LiturgicalYear int                      `json:"liturgical_year"`
	Start          calendar.Date            `json:"start"`
	End            calendar.Date            `json:"end"`
	SundayCycle    calendar.SundayCycle     `json:"sunday_cycle"`
	WeekdayCycle   calendar.WeekdayCycle    `json:"weekday_cycle"`
	Days           []calendar.LiturgicalDay `json:"days"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.db != nil {
		if err := h.db.Health(ctx); err != nil {
			h.log(r).WarnContext(ctx, "health check failed", slog.Any("error", err))
			WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", CodeUnhealthy)
			return
		}
	}

	today := h.almanac.Today()
	WriteSuccess(w, map[string]any{
		"status":          "healthy",
		"today":           today,
		"liturgical_year": calendar.GetLiturgicalYear(today) + 1,
	})
}

// GetToday handles GET /api/v1/calendar/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	h.writeDay(w, r, h.almanac.Today())
}

// GetDate handles GET /api/v1/calendar/date/{date}
func (h *Handlers) GetDate(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "date")
	date, err := calendar.ParseDate(raw)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date: %s. Use YYYY-MM-DD", raw))
		return
	}
	h.writeDay(w, r, date)
}

func (h *Handlers) writeDay(w http.ResponseWriter, r *http.Request, date calendar.Date) {
	ctx := r.Context()
	info, err := h.almanac.Day(ctx, date)
	if errors.Is(err, calendar.ErrDateNotFound) {
		WriteNotFound(w, fmt.Sprintf("No liturgical day for %s", date))
		return
	}
	if err != nil {
		h.log(r).ErrorContext(ctx, "describe day", slog.String("date", date.String()), slog.Any("error", err))
		WriteInternalError(w, "Failed to compute the liturgical day")
		return
	}
	WriteSuccess(w, info)
}

// GetRange handles GET /api/v1/calendar/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) GetRange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}
	start, err := calendar.ParseDate(startStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid start date: %s. Use YYYY-MM-DD", startStr))
		return
	}
	end, err := calendar.ParseDate(endStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid end date: %s. Use YYYY-MM-DD", endStr))
		return
	}
	if start.After(end) {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return
	}
	if calendar.DaysBetween(start, end) > MaxRangeDays {
		WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", MaxRangeDays))
		return
	}

	days, err := h.almanac.Range(ctx, start, end)
	if err != nil {
		h.log(r).ErrorContext(ctx, "describe range", slog.Any("error", err))
		WriteInternalError(w, "Failed to compute the liturgical days")
		return
	}

	WriteSuccess(w, map[string]any{
		"start": start,
		"end":   end,
		"days":  days,
	})
}

// yearParam reads {year} and writes a 400 when it is not a usable year.
func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "year")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 2 || n > 9999 {
		WriteBadRequest(w, fmt.Sprintf("Invalid year: %s", raw))
		return 0, false
	}
	return n, true
}

// GetYear handles GET /api/v1/calendar/year/{year}. The year is the liturgical
// year containing January 1 of {year}. With observed=true only the winning
// celebration of each date is listed.
func (h *Handlers) GetYear(w http.ResponseWriter, r *http.Request) {
	n, ok := yearParam(w, r)
	if !ok {
		return
	}
	year := h.almanac.YearOf(r.Context(), n)

	days := year.Days()
	if r.URL.Query().Get("observed") == "true" {
		days = year.Range(year.Start(), year.Last())
	}

	WriteSuccess(w, YearResponse{
		LiturgicalYear: year.Number(),
		Start:          year.Start(),
		End:            year.Last(),
		SundayCycle:    year.SundayCycle(),
		WeekdayCycle:   year.WeekdayCycle(),
		Days:           days,
	})
}

// GetAnchors handles GET /api/v1/calendar/year/{year}/anchors
func (h *Handlers) GetAnchors(w http.ResponseWriter, r *http.Request) {
	n, ok := yearParam(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, calendar.AnchorsFor(n-1))
}

// GetICS handles GET /api/v1/calendar/year/{year}/ics
func (h *Handlers) GetICS(w http.ResponseWriter, r *http.Request) {
	n, ok := yearParam(w, r)
	if !ok {
		return
	}
	year := h.almanac.YearOf(r.Context(), n)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"liturgical-year-%d.ics\"", n))
	opts := ics.Options{ObservedOnly: r.URL.Query().Get("observed") == "true"}
	if err := ics.Write(w, year, opts); err != nil {
		h.log(r).ErrorContext(r.Context(), "write ics", slog.Any("error", err))
	}
}

// ListFeasts handles GET /api/v1/feasts. With a database the stored
// overlay is listed with ids; otherwise the in-memory overlay.
func (h *Handlers) ListFeasts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records := []database.FeastRecord{}
	if h.db != nil {
		stored, err := h.db.ListFeasts(ctx)
		if err != nil {
			h.log(r).ErrorContext(ctx, "list feasts", slog.Any("error", err))
			WriteInternalError(w, "Failed to list feasts")
			return
		}
		records = append(records, stored...)
	} else {
		for _, f := range h.almanac.Feasts() {
			records = append(records, database.FeastRecord{Feast: f})
		}
	}

	WriteSuccess(w, map[string]any{
		"count":  len(records),
		"feasts": records,
	})
}

// GetFeast handles GET /api/v1/feasts/{id}
func (h *Handlers) GetFeast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		WriteBadRequest(w, fmt.Sprintf("Invalid feast id: %s", raw))
		return
	}
	if h.db == nil {
		WriteNotFound(w, "Feasts are not stored")
		return
	}

	rec, err := h.db.GetFeast(ctx, id)
	if database.IsNotFound(err) {
		WriteNotFound(w, fmt.Sprintf("No feast with id %d", id))
		return
	}
	if err != nil {
		h.log(r).ErrorContext(ctx, "get feast", slog.Int64("id", id), slog.Any("error", err))
		WriteInternalError(w, "Failed to load feast")
		return
	}
	WriteSuccess(w, rec)
}

// CreateFeast handles POST /api/v1/feasts. The body is one feast as JSON;
// it joins the overlay until the feast file next changes on disk.
func (h *Handlers) CreateFeast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var f feast.Feast
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFeastBody)).Decode(&f); err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid feast: %v", err), CodeInvalidFeast)
		return
	}
	if err := f.Validate(); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidFeast)
		return
	}
	f.Description = calendar.TruncateDescription(f.Description)

	id, err := h.almanac.AddFeast(ctx, f)
	if errors.Is(err, database.ErrDuplicate) {
		WriteError(w, http.StatusConflict, err.Error(), CodeDuplicateFeast)
		return
	}
	if err != nil {
		h.log(r).ErrorContext(ctx, "add feast", slog.Any("error", err))
		WriteInternalError(w, "Failed to store feast")
		return
	}
	h.log(r).InfoContext(ctx, "feast added via API", slog.Int64("id", id), slog.String("description", f.Description))

	WriteJSON(w, http.StatusCreated, Response{Success: true, Data: database.FeastRecord{ID: id, Feast: f}})
}

// ReplaceFeasts handles PUT /api/v1/feasts. The body is a feast CSV file;
// it replaces the overlay until the feast file next changes on disk.
func (h *Handlers) ReplaceFeasts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	feasts, err := feast.ParseCSV(http.MaxBytesReader(w, r.Body, maxFeastBody))
	if err != nil {
		var perr *feast.ParseError
		if errors.As(err, &perr) {
			WriteError(w, http.StatusBadRequest, perr.Error(), CodeInvalidFeast)
			return
		}
		WriteBadRequest(w, fmt.Sprintf("Failed to read feast file: %v", err))
		return
	}

	if err := h.almanac.SetFeasts(ctx, feasts); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidFeast)
			return
		}
		h.log(r).ErrorContext(ctx, "replace feasts", slog.Any("error", err))
		WriteInternalError(w, "Failed to store feasts")
		return
	}
	h.log(r).InfoContext(ctx, "feasts replaced via API", slog.Int("count", len(feasts)))

	WriteSuccess(w, map[string]any{
		"count": len(feasts),
	})
}
