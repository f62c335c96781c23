package report

import (
	"errors"
	"net/http"

	"github.com/pixeltruth/mis-backend/internal/rest"
	"github.com/pixeltruth/mis-backend/pkg/department"
	"github.com/pixeltruth/mis-backend/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) ListAuditData(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		rest.Refused(w, "date parameter is required")
		return
	}
	departmentName := r.URL.Query().Get("department")

	rows, err := h.service.ListAuditData(r.Context(), departmentName, date)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	rest.OK(w, rows)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		rest.Refused(w, "from and to parameters are required")
		return
	}
	departmentName := r.URL.Query().Get("department")

	summary, err := h.service.Summary(r.Context(), departmentName, from, to)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	rest.OK(w, summary)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrForbidden), errors.Is(err, user.ErrNoUser):
		rest.Error(w, http.StatusForbidden, "not allowed")
	case errors.Is(err, department.ErrDepartmentNotFound):
		rest.Refused(w, "unknown department")
	default:
		log.Errorf("report query failed: %v", err)
		rest.Error(w, http.StatusInternalServerError, "internal error")
	}
}
