package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/amlich/internal/calendar"
	"github.com/zapponejosh/amlich/internal/config"
	"github.com/zapponejosh/amlich/internal/database"
	"github.com/zapponejosh/amlich/internal/logger"
	"github.com/zapponejosh/amlich/internal/observance"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db          *database.DB
	conv        *calendar.Converter
	observances *observance.Service
	cfg         *config.Config
	logger      *slog.Logger
	metrics     *Metrics
	now         func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, conv *calendar.Converter, cfg *config.Config, log *slog.Logger, metrics *Metrics) *Handlers {
	return &Handlers{
		db:          db,
		conv:        conv,
		observances: observance.NewService(db, conv),
		cfg:         cfg,
		logger:      log,
		metrics:     metrics,
		now:         time.Now,
	}
}

// =============================================================================
// Views
// =============================================================================

// DayView is one day seen from both calendars.
type DayView struct {
	Gregorian   string                `json:"gregorian"` // YYYY-MM-DD
	Lunar       string                `json:"lunar"`     // DD/MM/YYYY AL
	LunarDay    int                   `json:"lunar_day"`
	LunarMonth  int                   `json:"lunar_month"`
	LunarYear   int                   `json:"lunar_year"`
	Leap        bool                  `json:"leap"`
	JDN         int                   `json:"jdn"`
	Weekday     string                `json:"weekday"`
	Observances []database.Observance `json:"observances"`
}

// MonthDayView is one cell of a month view.
type MonthDayView struct {
	Gregorian  string `json:"gregorian"`
	Day        int    `json:"day"`
	LunarDay   int    `json:"lunar_day"`
	LunarMonth int    `json:"lunar_month"`
	Leap       bool   `json:"leap"`
	Weekday    int    `json:"weekday"` // 0=Sunday through 6=Saturday
}

// MonthView is a civil month with the lunar date of each day.
type MonthView struct {
	Title    string         `json:"title"`
	Year     int            `json:"year"`
	Month    int            `json:"month"`
	Previous string         `json:"previous"` // YYYY-MM
	Next     string         `json:"next"`     // YYYY-MM
	Days     []MonthDayView `json:"days"`
}

// LunarMonthView is one month of a lunar year.
type LunarMonthView struct {
	Month int    `json:"month"`
	Leap  bool   `json:"leap"`
	Start string `json:"start"` // YYYY-MM-DD of day 1
	Days  int    `json:"days"`
}

// YearView lists the months of a lunar year.
type YearView struct {
	Year      int              `json:"year"`
	LeapMonth int              `json:"leap_month"` // 0 when the year has none
	Months    []LunarMonthView `json:"months"`
}

func monthKey(m calendar.GregorianMonth) string {
	return fmt.Sprintf("%04d-%02d", m.Year(), m.Month())
}

// =============================================================================
// Health
// =============================================================================

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Health(r.Context()); err != nil {
		logger.FromContext(r.Context(), h.logger).Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]any{
		"status":   "healthy",
		"timezone": h.conv.TimeZone(),
	})
}

// =============================================================================
// Days
// =============================================================================

// GetToday handles GET /api/v1/days/today
//
// "Today" is taken in the converter's time zone, not the server's.
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	zone := time.FixedZone("", int(h.conv.TimeZone()*3600))
	day := calendar.GregorianFromTime(h.now().In(zone))
	h.writeDay(w, r, day, "gregorian")
}

// GetDay handles GET /api/v1/days/{date}
func (h *Handlers) GetDay(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")

	day, err := calendar.ParseGregorian(dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	h.writeDay(w, r, day, "gregorian")
}

// GetLunarDay handles GET /api/v1/lunar/{year}/{month}/{day}?leap=true
func (h *Handlers) GetLunarDay(w http.ResponseWriter, r *http.Request) {
	year, errY := strconv.Atoi(chi.URLParam(r, "year"))
	month, errM := strconv.Atoi(chi.URLParam(r, "month"))
	dayNum, errD := strconv.Atoi(chi.URLParam(r, "day"))
	if err := errors.Join(errY, errM, errD); err != nil {
		WriteBadRequest(w, "Year, month and day must be integers")
		return
	}

	leap := false
	if v := r.URL.Query().Get("leap"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid leap flag: %s", v))
			return
		}
		leap = b
	}

	lunar, err := calendar.NewLunarDay(dayNum, month, year, leap)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	day, err := h.conv.ToGregorian(lunar)
	if err != nil {
		var leapErr *calendar.LeapMonthError
		if errors.As(err, &leapErr) {
			WriteError(w, http.StatusUnprocessableEntity, err.Error(), "LEAP_MONTH_MISMATCH")
			return
		}
		WriteBadRequest(w, err.Error())
		return
	}

	h.writeDay(w, r, day, "lunar")
}

func (h *Handlers) writeDay(w http.ResponseWriter, r *http.Request, day calendar.GregorianDay, from string) {
	log := logger.FromContext(r.Context(), h.logger)

	view, err := h.dayView(r, day)
	if err != nil {
		log.Error("failed to build day view",
			slog.String("date", day.ISO()),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to convert date")
		return
	}

	h.metrics.Conversions.WithLabelValues(from).Inc()
	WriteSuccess(w, view)
}

func (h *Handlers) dayView(r *http.Request, day calendar.GregorianDay) (*DayView, error) {
	lunar, err := h.conv.ToLunar(day)
	if err != nil {
		return nil, err
	}

	observances, err := h.observances.ForDate(r.Context(), day)
	if err != nil {
		return nil, err
	}

	return &DayView{
		Gregorian:   day.ISO(),
		Lunar:       lunar.String(),
		LunarDay:    lunar.Day(),
		LunarMonth:  lunar.Month(),
		LunarYear:   lunar.Year(),
		Leap:        lunar.Leap(),
		JDN:         day.JulianDays(),
		Weekday:     day.DayOfWeek().String(),
		Observances: observances,
	}, nil
}

// =============================================================================
// Months and years
// =============================================================================

// GetMonth handles GET /api/v1/months/{year}/{month}
func (h *Handlers) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, errY := strconv.Atoi(chi.URLParam(r, "year"))
	monthNum, errM := strconv.Atoi(chi.URLParam(r, "month"))
	if errY != nil || errM != nil {
		WriteBadRequest(w, "Year and month must be integers")
		return
	}

	month, err := calendar.NewGregorianMonth(year, monthNum)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	bound := month.Bound()
	view := MonthView{
		Title:    month.Title(),
		Year:     month.Year(),
		Month:    month.Month(),
		Previous: monthKey(month.Previous()),
		Next:     monthKey(month.Next()),
		Days:     make([]MonthDayView, 0, bound.Len()),
	}
	for day := range bound.Days() {
		lunar := h.conv.LunarFromJulianDays(day.JulianDays())
		view.Days = append(view.Days, MonthDayView{
			Gregorian:  day.ISO(),
			Day:        day.Day(),
			LunarDay:   lunar.Day(),
			LunarMonth: lunar.Month(),
			Leap:       lunar.Leap(),
			Weekday:    int(day.DayOfWeek()),
		})
	}

	WriteSuccess(w, view)
}

// GetYear handles GET /api/v1/years/{year}
func (h *Handlers) GetYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 || year > 9999 {
		WriteBadRequest(w, "Year must be an integer between 1 and 9999")
		return
	}

	months, err := h.conv.LunarYear(year)
	if err != nil {
		logger.FromContext(r.Context(), h.logger).Error("failed to build lunar year",
			slog.Int("year", year),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to compute lunar year")
		return
	}

	view := YearView{
		Year:   year,
		Months: make([]LunarMonthView, 0, len(months)),
	}
	if leap, ok := h.conv.LeapMonth(year); ok {
		view.LeapMonth = leap
	}
	for _, m := range months {
		view.Months = append(view.Months, LunarMonthView{
			Month: m.Month,
			Leap:  m.Leap,
			Start: calendar.GregorianFromJulianDays(m.Start).ISO(),
			Days:  m.Days,
		})
	}

	WriteSuccess(w, view)
}

// =============================================================================
// Observances
// =============================================================================

// ListObservances handles GET /api/v1/observances
func (h *Handlers) ListObservances(w http.ResponseWriter, r *http.Request) {
	observances, err := h.db.ListObservances(r.Context())
	if err != nil {
		logger.FromContext(r.Context(), h.logger).Error("failed to list observances", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve observances")
		return
	}

	WriteSuccess(w, observances)
}

// CreateObservance handles POST /api/v1/observances
func (h *Handlers) CreateObservance(w http.ResponseWriter, r *http.Request) {
	var o database.Observance
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	o.ID = 0

	if err := o.Validate(); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	if err := h.db.CreateObservance(r.Context(), &o); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			WriteConflict(w, fmt.Sprintf("Observance %q already exists", o.Name))
			return
		}
		logger.FromContext(r.Context(), h.logger).Error("failed to create observance", slog.Any("error", err))
		WriteInternalError(w, "Failed to create observance")
		return
	}

	WriteCreated(w, o)
}

// DeleteObservance handles DELETE /api/v1/observances/{id}
func (h *Handlers) DeleteObservance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid observance ID")
		return
	}

	if err := h.db.DeleteObservance(r.Context(), id); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, fmt.Sprintf("Observance %d not found", id))
			return
		}
		logger.FromContext(r.Context(), h.logger).Error("failed to delete observance",
			slog.Int64("id", id),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to delete observance")
		return
	}

	WriteSuccess(w, map[string]any{"deleted": id})
}
