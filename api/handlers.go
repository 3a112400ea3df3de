/*
handlers.go - HTTP API handlers for the holiday engine

PURPOSE:
  Exposes the holiday engine via REST. Handles HTTP request/response,
  JSON serialization, and delegates to the engine.

ENDPOINTS:
  Holidays:
    GET  /api/holidays?from=&to=     Table for a date span
    GET  /api/holidays/year/{year}   Table for one calendar year

  Dates:
    GET  /api/dates/{date}           Is this date a holiday, and which

  Rules:
    GET  /api/rules                  The catalog's amendment rows

  Snapshots:
    GET  /api/snapshots              List persisted snapshots
    POST /api/snapshots              Compute a span and persist it
    GET  /api/snapshots/{id}         One snapshot with its entries

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: malformed dates, invalid/out-of-domain spans
  - 404: unknown snapshot
  - 409: snapshot id already taken
  - 500: internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/koyomi/holiday-engine/jholiday"
	"github.com/koyomi/holiday-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Catalog *jholiday.Catalog
	Store   *sqlite.Store
}

// NewHandler creates a new handler backed by the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Catalog: jholiday.NewCatalog(),
		Store:   store,
	}
}

// SeedRuleAudit writes the catalog's amendment rows to the store so the
// legal history is queryable with plain SQL. Called once at startup.
func (h *Handler) SeedRuleAudit(ctx context.Context) error {
	return h.Store.SaveRuleVersions(ctx, h.Catalog.Rules())
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns the holiday table for a span.
// GET /api/holidays?from=2019-01-01&to=2020-12-31
// Missing bounds default to the Act's effective date and 2150-12-31.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	from, ok := parseDateParam(w, r.URL.Query().Get("from"))
	if !ok {
		return
	}
	to, ok := parseDateParam(w, r.URL.Query().Get("to"))
	if !ok {
		return
	}
	h.respondTable(w, from, to)
}

// ListHolidaysByYear returns the holiday table for one calendar year.
// GET /api/holidays/year/2021
func (h *Handler) ListHolidaysByYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year", err)
		return
	}
	h.respondTable(w,
		jholiday.NewDate(year, time.January, 1),
		jholiday.NewDate(year, time.December, 31),
	)
}

func (h *Handler) respondTable(w http.ResponseWriter, from, to jholiday.Date) {
	jh, err := jholiday.New(from, to)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid span", err)
		return
	}
	table, err := jh.BuildTable()
	if err != nil {
		status := http.StatusInternalServerError
		if jholiday.IsClientError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "failed to build table", err)
		return
	}

	span := jh.Span()
	writeJSON(w, http.StatusOK, TableResponse{
		MinDate:  span.Min.String(),
		MaxDate:  span.Max.String(),
		Count:    len(table),
		Holidays: toHolidayDTOs(table.Sorted()),
	})
}

// CheckDate answers whether one date is a holiday.
// GET /api/dates/2020-07-24
func (h *Handler) CheckDate(w http.ResponseWriter, r *http.Request) {
	d, ok := parseDateParam(w, chi.URLParam(r, "date"))
	if !ok {
		return
	}
	if d.IsZero() {
		writeError(w, http.StatusBadRequest, "date is required", nil)
		return
	}

	// Resolve the single day through the facade so derived holidays are
	// included; the window logic makes a one-day span correct.
	jh, err := jholiday.New(d, d)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err)
		return
	}
	table, err := jh.BuildTable()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve date", err)
		return
	}

	name, holiday := table[d]
	writeJSON(w, http.StatusOK, DateCheckResponse{
		Date:    d.String(),
		Holiday: holiday,
		Name:    name,
	})
}

// =============================================================================
// RULE AUDIT HANDLER
// =============================================================================

// ListRules returns every rule version in amendment order.
// GET /api/rules
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	rules := h.Catalog.Rules()
	dtos := make([]RuleDTO, 0, len(rules))
	for _, rule := range rules {
		dto := RuleDTO{
			Identity:      rule.Identity,
			Name:          rule.Name,
			Kind:          rule.Kind.String(),
			EffectiveFrom: rule.From.String(),
		}
		if !rule.Until.IsZero() {
			dto.EffectiveUntil = rule.Until.String()
		}
		switch rule.Kind {
		case jholiday.KindFixed:
			dto.Month, dto.Day = int(rule.Month), rule.Day
		case jholiday.KindNthWeekday:
			dto.Month = int(rule.Month)
			dto.Weekday = rule.Weekday.String()
			dto.Ordinal = rule.Ordinal
		case jholiday.KindEquinox:
			dto.Season = rule.Season.String()
		}
		dtos = append(dtos, dto)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// SNAPSHOT HANDLERS
// =============================================================================

// CreateSnapshot computes a span and persists the result.
// POST /api/snapshots
func (h *Handler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var req CreateSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	from, ok := parseDateParam(w, req.MinDate)
	if !ok {
		return
	}
	to, ok := parseDateParam(w, req.MaxDate)
	if !ok {
		return
	}

	jh, err := jholiday.New(from, to)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid span", err)
		return
	}
	table, err := jh.BuildTable()
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to build table", err)
		return
	}

	id := req.ID
	if id == "" {
		id = fmt.Sprintf("snap-%s-%s", jh.Span().Min, jh.Span().Max)
	}
	if err := h.Store.SaveSnapshot(r.Context(), id, jh.Span(), table); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			writeError(w, http.StatusConflict, "snapshot id already exists", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to save snapshot", err)
		return
	}

	rec, err := h.Store.GetSnapshot(r.Context(), id)
	if err != nil || rec == nil {
		writeError(w, http.StatusInternalServerError, "failed to load saved snapshot", err)
		return
	}
	writeJSON(w, http.StatusCreated, toSnapshotDTO(*rec))
}

// ListSnapshots returns all persisted snapshots, newest first.
// GET /api/snapshots
func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListSnapshots(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list snapshots", err)
		return
	}
	dtos := make([]SnapshotDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, toSnapshotDTO(rec))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSnapshot returns one snapshot with its holiday entries.
// GET /api/snapshots/{id}
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.Store.GetSnapshot(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load snapshot", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "snapshot not found", nil)
		return
	}
	holidays, err := h.Store.LoadHolidays(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load snapshot holidays", err)
		return
	}
	writeJSON(w, http.StatusOK, SnapshotDetailResponse{
		Snapshot: toSnapshotDTO(*rec),
		Holidays: toHolidayDTOs(holidays),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

// parseDateParam parses a "2006-01-02" parameter. An empty value maps
// to the zero Date (the facade's "use the default bound"). On failure
// it writes a 400 and returns ok=false.
func parseDateParam(w http.ResponseWriter, value string) (jholiday.Date, bool) {
	if value == "" {
		return jholiday.Date{}, true
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("malformed date %q, want YYYY-MM-DD", value), err)
		return jholiday.Date{}, false
	}
	return jholiday.DateOf(t), true
}

func toHolidayDTOs(holidays []jholiday.Holiday) []HolidayDTO {
	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, h := range holidays {
		dtos = append(dtos, HolidayDTO{Date: h.Date.String(), Name: h.Name})
	}
	return dtos
}

func toSnapshotDTO(rec sqlite.SnapshotRecord) SnapshotDTO {
	return SnapshotDTO{
		ID:           rec.ID,
		MinDate:      rec.MinDate.String(),
		MaxDate:      rec.MaxDate.String(),
		HolidayCount: rec.HolidayCount,
		CreatedAt:    rec.CreatedAt.Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
