package task

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/pixeltruth/mis-backend/internal/rest"
	"github.com/pixeltruth/mis-backend/pkg/user"
	log "github.com/sirupsen/logrus"
)

type TaskDTO struct {
	Id           int    `json:"id,omitempty"`
	Department   string `json:"department,omitempty"`
	AssigneeMail string `json:"assigneeMail,omitempty"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Status       string `json:"status,omitempty"`
	AssignedBy   string `json:"assignedBy,omitempty"`
	DueDate      string `json:"dueDate,omitempty"`
}

type AssignRequest struct {
	TaskDTO
	// AssigneeMails carries every employee the same task goes to.
	AssigneeMails []string `json:"assigneeMails"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	log.Debug("Assigning new task")

	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		rest.Refused(w, "title is required")
		return
	}

	task := Task{
		Department:  req.Department,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.DueDate != "" {
		dueDate, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			rest.Refused(w, "dueDate must be YYYY-MM-DD")
			return
		}
		task.DueDate = dueDate
	}

	created, err := h.service.Assign(r.Context(), task, req.AssigneeMails)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	dtos := make([]TaskDTO, 0, len(created))
	for _, t := range created {
		dtos = append(dtos, toDTO(t))
	}
	rest.Created(w, dtos)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	department := r.URL.Query().Get("department")
	tasks, err := h.service.ListForDepartment(r.Context(), department)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeTasks(w, tasks)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.ListMine(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeTasks(w, tasks)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	taskId, err := strconv.Atoi(mux.Vars(r)["taskId"])
	if err != nil {
		rest.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var dto struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ok, err := h.service.UpdateStatus(r.Context(), taskId, Status(dto.Status))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if !ok {
		rest.Error(w, http.StatusNotFound, "task not found")
		return
	}
	rest.OKMessage(w, "status updated", nil)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	taskId, err := strconv.Atoi(mux.Vars(r)["taskId"])
	if err != nil {
		rest.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}

	ok, err := h.service.Delete(r.Context(), taskId)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if !ok {
		rest.Error(w, http.StatusNotFound, "task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeTasks(w http.ResponseWriter, tasks []Task) {
	dtos := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		dtos = append(dtos, toDTO(t))
	}
	rest.OK(w, dtos)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrForbidden), errors.Is(err, user.ErrNoUser):
		rest.Error(w, http.StatusForbidden, "not allowed")
	case errors.Is(err, ErrNoAssignees), errors.Is(err, ErrInvalidStatus):
		rest.Refused(w, err.Error())
	case errors.Is(err, ErrTaskNotFound):
		rest.Error(w, http.StatusNotFound, "task not found")
	default:
		log.Errorf("task operation failed: %v", err)
		rest.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func toDTO(t Task) TaskDTO {
	dto := TaskDTO{
		Id:           t.Id,
		Department:   t.Department,
		AssigneeMail: t.AssigneeMail,
		Title:        t.Title,
		Description:  t.Description,
		Status:       string(t.Status),
		AssignedBy:   t.AssignedBy,
	}
	if !t.DueDate.IsZero() {
		dto.DueDate = t.DueDate.Format("2006-01-02")
	}
	return dto
}
