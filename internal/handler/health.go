package handler

import (
	"log/slog"
	"net/http"

	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/lib/logger/sl"
)

// Health pings the database and redis. Any failure turns the response into a 503.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	overall := http.StatusOK

	if err := h.repository.Ping(r.Context()); err != nil {
		checks["database"] = "unavailable"
		overall = http.StatusServiceUnavailable
		slog.WarnContext(r.Context(), "health check failed: database ping", sl.Err(err))
	} else {
		checks["database"] = "ok"
	}

	if err := h.status.Ping(r.Context()); err != nil {
		checks["redis"] = "unavailable"
		overall = http.StatusServiceUnavailable
		slog.WarnContext(r.Context(), "health check failed: redis ping", sl.Err(err))
	} else {
		checks["redis"] = "ok"
	}

	h.writeJSON(w, r, overall, checks)
}
