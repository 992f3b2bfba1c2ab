/*
handlers.go - HTTP API handlers for the salary engine

PURPOSE:
  Exposes the accrual engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic. Reads resolve fresh
  through the engine; the ticker's cached frame is only used for the
  tray endpoint where staleness of one second is acceptable.

ENDPOINTS:
  State:
    GET    /api/snapshot             Current earnings snapshot
    GET    /api/screen               Screen state (kind + valid actions)
    GET    /api/tray                 Cached tray title

  Settings:
    GET    /api/settings             Stored settings
    PUT    /api/settings             Onboard / update settings

  Actions:
    POST   /api/actions/start-work
    POST   /api/actions/early-leave
    POST   /api/actions/vacation
    POST   /api/actions/today-work
    POST   /api/actions/acknowledge
    POST   /api/actions/still-working

  Audit:
    GET    /api/actions/log          Recent accepted actions

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: No settings / screen does not permit the action
  - 409: Not onboarded yet
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/wagewatch/salary-engine/engine"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine  *engine.Engine
	Actions *engine.Actions
	Store   engine.StateStore
	Log     engine.ActionLog
	Holder  *engine.SnapshotHolder

	// TrayMode picks what the cached tray endpoint renders.
	TrayMode engine.DisplayMode
}

// NewHandler creates a new handler wired to one store.
func NewHandler(eng *engine.Engine, actions *engine.Actions, store engine.StateStore, log engine.ActionLog, holder *engine.SnapshotHolder) *Handler {
	return &Handler{
		Engine:   eng,
		Actions:  actions,
		Store:    store,
		Log:      log,
		Holder:   holder,
		TrayMode: engine.DisplayDaily,
	}
}

// =============================================================================
// STATE HANDLERS
// =============================================================================

// GetSnapshot resolves and returns the current earnings snapshot.
// GET /api/snapshot
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, _, settings, ok := h.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSnapshotDTO(snap, settings.PayDay))
}

// GetScreen resolves and returns the current screen state.
// GET /api/screen
func (h *Handler) GetScreen(w http.ResponseWriter, r *http.Request) {
	_, screen, settings, ok := h.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toScreenDTO(screen, settings.PayDay))
}

// GetTray returns the cached tray title from the last tick.
// GET /api/tray
func (h *Handler) GetTray(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.Holder.Latest()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"visible": false})
		return
	}
	title, visible := engine.TrayTitle(snap, h.TrayMode)
	writeJSON(w, http.StatusOK, map[string]any{"visible": visible, "title": title})
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// GetSettings returns the stored settings.
// GET /api/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Store.LoadSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	if settings == nil {
		writeErrorCode(w, http.StatusConflict, "not_onboarded", "Settings not configured yet")
		return
	}
	writeJSON(w, http.StatusOK, toSettingsDTO(*settings))
}

// PutSettings validates and stores the settings. This is the onboarding
// endpoint; once it succeeds the ticker starts producing snapshots.
// PUT /api/settings
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	var req PutSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}

	workDays, err := parseWeekdays(req.WorkDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid work days", err)
		return
	}

	settings := engine.Settings{
		SalaryType:   engine.SalaryType(req.SalaryType),
		SalaryAmount: decimal.NewFromFloat(req.SalaryAmount),
		PayDay:       req.PayDay,
		WorkDays:     workDays,
		WorkStart:    req.WorkStart,
		WorkEnd:      req.WorkEnd,
	}
	if err := settings.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid settings", err)
		return
	}

	if err := h.Store.SaveSettings(r.Context(), settings); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings", err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsDTO(settings))
}

// =============================================================================
// ACTION HANDLERS
// =============================================================================

// PostAction dispatches a user action by its URL name. The screen state
// is re-resolved first and the action must be in its valid set; stale
// UI clicks (e.g. acting on yesterday's screen) get a 404 instead of a
// silent misapply.
// POST /api/actions/{action}
func (h *Handler) PostAction(w http.ResponseWriter, r *http.Request) {
	name := engine.Action(chi.URLParam(r, "action"))

	_, screen, _, ok := h.resolve(w, r)
	if !ok {
		return
	}
	if !screen.Allows(name) {
		writeErrorCode(w, http.StatusNotFound, "action_not_available",
			"Action not available on the current screen")
		return
	}

	ctx := r.Context()
	applied := true
	var err error
	switch name {
	case engine.ActionStartWork:
		err = h.Actions.StartWork(ctx)
	case engine.ActionEarlyLeave:
		applied, err = h.Actions.EarlyLeave(ctx)
	case engine.ActionVacation:
		err = h.Actions.Vacation(ctx)
	case engine.ActionTodayWork:
		if screen.Kind == engine.ScreenVacation {
			err = h.Actions.TodayWorkFromVacation(ctx)
		} else {
			err = h.Actions.TodayWorkFromDayOff(ctx)
		}
	case engine.ActionAcknowledge:
		err = h.Actions.Acknowledge(ctx)
	case engine.ActionStillWorking:
		err = h.Actions.StillWorking(ctx)
	default:
		writeErrorCode(w, http.StatusNotFound, "unknown_action", "Unknown action")
		return
	}
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	// Return the post-action screen so the UI can render without waiting
	// for the next tick.
	_, screen, settings, ok := h.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ActionResultDTO{
		Applied: applied,
		Screen:  toScreenDTO(screen, settings.PayDay),
	})
}

// GetActionLog returns recent accepted actions, newest first.
// GET /api/actions/log
func (h *Handler) GetActionLog(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > 500 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	entries, err := h.Log.ListActions(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list actions", err)
		return
	}

	dtos := make([]ActionEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toActionEntryDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Healthz is the liveness probe.
// GET /api/healthz
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

// resolve runs one resolution and loads the settings it was based on.
// On failure it writes the error response and returns ok=false.
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (engine.Snapshot, engine.ScreenState, engine.Settings, bool) {
	ctx := r.Context()

	settings, err := h.Store.LoadSettings(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return engine.Snapshot{}, engine.ScreenState{}, engine.Settings{}, false
	}
	if settings == nil {
		writeErrorCode(w, http.StatusConflict, "not_onboarded", "Settings not configured yet")
		return engine.Snapshot{}, engine.ScreenState{}, engine.Settings{}, false
	}

	snap, screen, err := h.Engine.Resolve(ctx)
	if err != nil {
		h.writeEngineError(w, err)
		return engine.Snapshot{}, engine.ScreenState{}, engine.Settings{}, false
	}
	return snap, screen, *settings, true
}

func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case engine.IsNotOnboarded(err):
		writeErrorCode(w, http.StatusConflict, "not_onboarded", "Settings not configured yet")
	case engine.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid configuration", err)
	default:
		writeError(w, http.StatusInternalServerError, "Resolution failed", err)
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

func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}
