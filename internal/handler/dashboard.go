package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/status"
)

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.GetAllEmployees(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	on, err := h.status.SystemStatus(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "dashboard fetched", domain.NewDashboard(employees, on))
}

// ToggleSystemStatus switches the system on for "on" and off for anything else.
func (h *Handler) ToggleSystemStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		State string `json:"state"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	on := status.Parse(req.State)
	if err := h.status.SetSystemStatus(r.Context(), on); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "system status updated", map[string]bool{"systemStatus": on})
}
