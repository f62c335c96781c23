package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pixeltruth/mis-backend/pkg/user"
	log "github.com/sirupsen/logrus"
)

type LoginRequest struct {
	Mail       string `json:"User_Mail"`
	Password   string `json:"Password"`
	Role       string `json:"Role"`
	Department string `json:"Department"`
}

// loginResponse keeps the top-level shape the MIS frontend consumes.
type loginResponse struct {
	Success     bool          `json:"success"`
	Message     string        `json:"message,omitempty"`
	RedirectUrl string        `json:"redirectUrl,omitempty"`
	Token       string        `json:"token,omitempty"`
	User        *user.UserDTO `json:"user,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		writeLoginResponse(w, loginResponse{Success: false, Message: "invalid request body"})
		return
	}

	if req.Mail == "" || req.Password == "" || req.Role == "" || req.Department == "" {
		writeLoginResponse(w, loginResponse{Success: false, Message: "All fields required"})
		return
	}

	result, err := h.service.Login(r.Context(), req.Mail, req.Password, user.Role(req.Role), req.Department)
	if errors.Is(err, user.ErrInvalidCredentials) {
		writeLoginResponse(w, loginResponse{Success: false, Message: "Invalid credentials"})
		return
	} else if err != nil {
		log.Errorf("login failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		writeLoginResponse(w, loginResponse{Success: false, Message: "Database error"})
		return
	}

	userDTO := user.UserDTO{
		Name:       result.User.Name,
		Mail:       result.User.Mail,
		Role:       string(result.User.Role),
		Department: result.User.Department,
	}
	writeLoginResponse(w, loginResponse{
		Success:     true,
		RedirectUrl: result.RedirectUrl,
		Token:       result.Token,
		User:        &userDTO,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Session-Token")
	if token == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := h.service.Logout(r.Context(), token); err != nil {
		log.Errorf("logout failed: %v", err)
		http.Error(w, "failed to log out", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeLoginResponse(w http.ResponseWriter, resp loginResponse) {
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Errorf("failed to encode login response: %v", err)
	}
}
