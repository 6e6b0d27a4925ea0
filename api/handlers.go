/*
handlers.go - HTTP API handlers for the earnings display

PURPOSE:
  Exposes the live earnings reading and its settings over HTTP. This is the
  host adapter: it reads and replaces the configuration, asks the monitor
  for readings and flips visibility. All arithmetic stays in earnings/.

ENDPOINTS:
  GET    /                       Current reading as plain text
  GET    /healthz                Liveness
  GET    /api/earnings           Current reading
  GET    /api/rate               How the rate was derived
  GET    /api/settings           Active settings
  PUT    /api/settings           Replace settings (absent fields -> defaults)
  POST   /api/display/toggle     Show/hide the reading, pausing ticks
  GET    /api/stream             WebSocket, one reading per tick (stream.go)

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed JSON, negative salary, invalid field values
  - 500: Internal errors
  Malformed start/end times are NOT errors: the salary is zeroed and the
  response carries warnings.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - host/monitor.go: Monitor
*/
package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/warp/pay-per-second/factory"
	"github.com/warp/pay-per-second/generic"
	"github.com/warp/pay-per-second/host"
)

// maxSettingsBytes caps PUT /api/settings bodies.
const maxSettingsBytes = 1 << 20

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Monitor  *host.Monitor
	Settings *factory.SettingsFactory
	Hub      *Hub

	log zerolog.Logger
}

// NewHandler creates a new handler.
func NewHandler(monitor *host.Monitor, settings *factory.SettingsFactory, hub *Hub, log zerolog.Logger) *Handler {
	return &Handler{
		Monitor:  monitor,
		Settings: settings,
		Hub:      hub,
		log:      log.With().Str("component", "api").Logger(),
	}
}

// =============================================================================
// READINGS
// =============================================================================

// GetEarnings handles GET /api/earnings
func (h *Handler) GetEarnings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toReadingDTO(h.Monitor.Current()))
}

// GetText handles GET / for status-line scripts.
func (h *Handler) GetText(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, h.Monitor.Current().Text+"\n")
}

// GetRate handles GET /api/rate
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toRateDTO(h.Monitor.Breakdown()))
}

// ToggleDisplay handles POST /api/display/toggle
func (h *Handler) ToggleDisplay(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ToggleResponse{Visible: h.Monitor.Toggle()})
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// =============================================================================
// SETTINGS
// =============================================================================

// GetSettings handles GET /api/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SettingsResponse{
		Settings: h.Settings.ToJSON(h.Monitor.Config()),
	})
}

// UpdateSettings handles PUT /api/settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSettingsBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	res, err := h.Settings.ParseSettings(body)
	if err != nil {
		if generic.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Invalid settings", err)
			return
		}
		h.log.Error().Err(err).Msg("Settings update failed")
		writeError(w, http.StatusInternalServerError, "Failed to apply settings", err)
		return
	}

	for _, warning := range res.Warnings {
		h.log.Warn().Str("warning", warning).Msg("Settings downgraded")
	}

	b := h.Monitor.Apply(res.Config)
	rate := toRateDTO(b)

	writeJSON(w, http.StatusOK, SettingsResponse{
		Settings: h.Settings.ToJSON(res.Config),
		Warnings: res.Warnings,
		Rate:     &rate,
	})
}

// =============================================================================
// HELPERS
// =============================================================================

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
