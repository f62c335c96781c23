package department

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pixeltruth/mis-backend/internal/rest"
	"github.com/pixeltruth/mis-backend/pkg/user"
	log "github.com/sirupsen/logrus"
)

type DepartmentDTO struct {
	Name            string `json:"name"`
	DailyCapMinutes int    `json:"dailyCapMinutes"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	departments, err := h.service.List(r.Context())
	if err != nil {
		rest.Error(w, http.StatusInternalServerError, "failed to list departments")
		return
	}

	dtos := make([]DepartmentDTO, 0, len(departments))
	for _, d := range departments {
		dtos = append(dtos, DepartmentDTO{Name: d.Name, DailyCapMinutes: d.DailyCapMinutes})
	}
	rest.OK(w, dtos)
}

func (h *Handler) SetDailyCap(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var dto struct {
		DailyCapMinutes int `json:"dailyCapMinutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ok, err := h.service.SetDailyCap(r.Context(), name, dto.DailyCapMinutes)
	switch {
	case errors.Is(err, user.ErrForbidden), errors.Is(err, user.ErrNoUser):
		rest.Error(w, http.StatusForbidden, "not allowed")
		return
	case errors.Is(err, ErrInvalidCap):
		rest.Refused(w, err.Error())
		return
	case err != nil:
		log.Errorf("failed to set daily cap: %v", err)
		rest.Error(w, http.StatusInternalServerError, "failed to set daily cap")
		return
	}
	if !ok {
		rest.Error(w, http.StatusNotFound, "department not found")
		return
	}
	rest.OKMessage(w, "daily cap updated", nil)
}
