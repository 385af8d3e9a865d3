package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/export"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/lib/logger/sl"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/roster"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.GetAllEmployees(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employees fetched", employees)
}

// ReplaceEmployees stores the posted array as the whole collection.
func (h *Handler) ReplaceEmployees(w http.ResponseWriter, r *http.Request) {
	var employees []domain.Employee

	if err := h.readJSON(r, &employees); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if employees == nil {
		employees = []domain.Employee{}
	}

	seen := make(map[int64]struct{}, len(employees))
	for _, e := range employees {
		if err := h.validate.Struct(e); err != nil {
			h.badRequest(w, r, err)
			return
		}
		if _, ok := seen[e.ID]; ok {
			h.errorResponse(w, r, fmt.Sprintf("duplicate employee id %d", e.ID))
			return
		}
		seen[e.ID] = struct{}{}
	}

	if err := h.repository.ReplaceEmployees(r.Context(), employees); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "employees replaced",
		slog.Int("count", len(employees)),
		slog.String("by", subject(r)),
	)

	// the collection is already stored, a lost notification only costs an email
	if h.notifier != nil {
		if err := h.notifier.RosterReplaced(r.Context(), employees); err != nil {
			slog.WarnContext(r.Context(), "failed to publish roster notification", sl.Err(err))
		}
	}

	h.successResponse(w, r, "employees saved", map[string]int{"count": len(employees)})
}

// DeleteEmployee succeeds whether or not the id existed.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid employee id")
		return
	}

	found, err := h.repository.DeleteEmployee(r.Context(), id)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !found {
		slog.DebugContext(r.Context(), "employee not found, delete skipped", slog.Int64("id", id))
	}

	h.successResponse(w, r, "employee deleted", map[string]bool{"deleted": found})
}

type employeeView struct {
	roster.Page
	Criteria  viewCriteria      `json:"criteria"`
	DayLabels map[string]string `json:"dayLabels"`
}

type viewCriteria struct {
	Search     string `json:"search"`
	Department string `json:"department"`
	Day        string `json:"day"`
	PageSize   int    `json:"pageSize"`
}

// ViewEmployees filters and paginates the stored collection.
func (h *Handler) ViewEmployees(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	day, err := domain.ParseDayFlag(query.Get("day"))
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	page, err := intParam(query.Get("page"), 1)
	if err != nil {
		h.errorResponse(w, r, "invalid page")
		return
	}
	size, err := intParam(query.Get("size"), roster.DefaultPageSize)
	if err != nil {
		h.errorResponse(w, r, "invalid page size")
		return
	}
	if size < 1 {
		size = roster.DefaultPageSize
	}

	employees, err := h.repository.GetAllEmployees(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	criteria := roster.Criteria{
		Search:     query.Get("search"),
		Department: query.Get("department"),
		Day:        day,
	}

	h.successResponse(w, r, "employees fetched", employeeView{
		Page: roster.Paginate(roster.Filter(employees, criteria), size, page),
		Criteria: viewCriteria{
			Search:     criteria.Search,
			Department: criteria.Department,
			Day:        day.String(),
			PageSize:   size,
		},
		DayLabels: domain.DayLabels(),
	})
}

func (h *Handler) ExportEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.GetAllEmployees(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteEmployees(&buf, employees); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="employees.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logInternalServerError(r, err)
	}
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
