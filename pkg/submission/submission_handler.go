package submission

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pixeltruth/mis-backend/pkg/user"
	log "github.com/sirupsen/logrus"
)

// auditDataResponse is the wire shape for the audit-data endpoint. Budget
// rejections and validation failures are ordinary 200 responses carrying
// success=false; only storage failures use a transport-level status.
type auditDataResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message,omitempty"`
	RemainingHours   *int   `json:"remaining_hours,omitempty"`
	RemainingMinutes *int   `json:"remaining_minutes,omitempty"`
}

type Handler struct {
	ledger *Ledger
}

func NewHandler(ledger *Ledger) *Handler {
	return &Handler{ledger}
}

// SubmitAuditData records one audit-data submission against the caller's
// daily time budget.
func (h *Handler) SubmitAuditData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		writeAuditResponse(w, auditDataResponse{Success: false, Message: "invalid request body"})
		return
	}

	// The submission is always recorded under the authenticated identity,
	// whatever the body claims.
	if current, err := user.CurrentUser(r.Context()); err == nil {
		raw["User_Mail"] = current.Mail
		if _, ok := raw["Department"]; !ok {
			raw["Department"] = current.Department
		}
	}

	result, err := h.ledger.CheckAndCommit(r.Context(), raw)
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		writeAuditResponse(w, auditDataResponse{Success: false, Message: validationErr.Reason})
		return
	} else if err != nil {
		log.Errorf("audit-data submission failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		writeAuditResponse(w, auditDataResponse{Success: false, Message: "Database error"})
		return
	}

	if !result.Accepted {
		writeAuditResponse(w, auditDataResponse{Success: false, Message: result.Message})
		return
	}

	writeAuditResponse(w, auditDataResponse{
		Success:          true,
		Message:          result.Message,
		RemainingHours:   &result.RemainingHours,
		RemainingMinutes: &result.RemainingMinutes,
	})
}

func writeAuditResponse(w http.ResponseWriter, resp auditDataResponse) {
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Errorf("failed to encode audit-data response: %v", err)
	}
}
