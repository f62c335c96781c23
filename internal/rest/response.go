package rest

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Envelope is the response body shape used by every MIS endpoint. Business
// refusals (bad input, exhausted time budget) are reported with Success=false
// on an HTTP 200; transport-level statuses are reserved for storage and
// encoding failures.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

func OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func OKMessage(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

// Refused reports a business-level rejection. The transport status stays 200:
// the request was handled, the answer is "no".
func Refused(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Envelope{Success: false, Message: message})
}

func Error(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, Envelope{Success: false, Message: message})
}
