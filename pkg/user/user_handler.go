package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pixeltruth/mis-backend/internal/rest"
	log "github.com/sirupsen/logrus"
)

// UserDTO mirrors the field names the MIS frontend has always used.
type UserDTO struct {
	Id         int    `json:"id,omitempty"`
	Name       string `json:"User_Name"`
	Mail       string `json:"User_Mail"`
	Role       string `json:"Role"`
	Department string `json:"Department"`
	Password   string `json:"Password,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new user")

	var dto UserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.Mail == "" || dto.Password == "" || dto.Role == "" || dto.Department == "" {
		rest.Refused(w, "All fields required")
		return
	}

	created, err := h.service.Create(r.Context(), User{
		Name:       dto.Name,
		Mail:       dto.Mail,
		Role:       Role(dto.Role),
		Department: dto.Department,
	}, dto.Password)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	rest.Created(w, toDTO(created))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	dtos := make([]UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, toDTO(u))
	}
	rest.OK(w, dtos)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userId, err := strconv.Atoi(mux.Vars(r)["userId"])
	if err != nil {
		rest.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var dto UserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ok, err := h.service.Update(r.Context(), userId, User{
		Name:       dto.Name,
		Role:       Role(dto.Role),
		Department: dto.Department,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if !ok {
		rest.Error(w, http.StatusNotFound, "user not found")
		return
	}
	rest.OKMessage(w, "user updated", nil)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userId, err := strconv.Atoi(mux.Vars(r)["userId"])
	if err != nil {
		rest.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	ok, err := h.service.Delete(r.Context(), userId)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if !ok {
		rest.Error(w, http.StatusNotFound, "user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) IsMailAvailable(w http.ResponseWriter, r *http.Request) {
	mail := r.URL.Query().Get("mail")
	if mail == "" {
		rest.Refused(w, "mail parameter is required")
		return
	}
	available, err := h.service.IsMailAvailable(r.Context(), mail)
	if err != nil {
		rest.Error(w, http.StatusInternalServerError, "failed to check mail availability")
		return
	}
	rest.OK(w, map[string]bool{"available": available})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrNoUser):
		rest.Error(w, http.StatusForbidden, "not allowed")
	case errors.Is(err, ErrInvalidRole):
		rest.Refused(w, "unknown role")
	case errors.Is(err, ErrMailTaken):
		rest.Refused(w, "mail already registered")
	default:
		log.Errorf("user operation failed: %v", err)
		rest.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func toDTO(u User) UserDTO {
	return UserDTO{
		Id:         u.Id,
		Name:       u.Name,
		Mail:       u.Mail,
		Role:       string(u.Role),
		Department: u.Department,
	}
}
