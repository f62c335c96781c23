package submission

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postAuditData(t *testing.T, handler *Handler, body map[string]any) (*httptest.ResponseRecorder, auditDataResponse) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/audit-data", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.SubmitAuditData(w, req.WithContext(ctx))

	var resp auditDataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestHandler_SubmitAuditData(t *testing.T) {
	t.Run("accepts a submission and returns the remaining budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		handler := NewHandler(ledger)

		w, resp := postAuditData(t, handler, map[string]any{
			"Date":                  "2026-08-31",
			"Website_Audit_hours":   7,
			"Website_Audit_minutes": 30,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
		require.NotNil(t, resp.RemainingHours)
		require.NotNil(t, resp.RemainingMinutes)
		assert.Equal(t, 0, *resp.RemainingHours)
		assert.Equal(t, 50, *resp.RemainingMinutes)
	})

	t.Run("stamps the submission with the authenticated user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		handler := NewHandler(ledger)

		_, resp := postAuditData(t, handler, map[string]any{
			"User_Mail":           "someone.else@pixeltruth.com",
			"Date":                "2026-08-31",
			"Website_Audit_hours": 1,
		})

		assert.True(t, resp.Success)
		rows := repoStub.Rows(seoTable)
		require.Len(t, rows, 1)
		assert.Equal(t, "test.user@pixeltruth.com", rows[0]["User_Mail"])
	})

	t.Run("returns 200 with success=false when the budget is exceeded", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		handler := NewHandler(ledger)

		_, first := postAuditData(t, handler, map[string]any{
			"Date":                  "2026-08-31",
			"Website_Audit_hours":   7,
			"Website_Audit_minutes": 30,
		})
		require.True(t, first.Success)

		w, resp := postAuditData(t, handler, map[string]any{
			"Date":          "2026-08-31",
			"Meeting_hours": 1,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, "Daily time budget exceeded: you have already used 7h 30m of your 8h 20m budget", resp.Message)
		assert.Len(t, repoStub.Rows(seoTable), 1)
	})

	t.Run("returns 200 with success=false for invalid input", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		handler := NewHandler(ledger)

		w, resp := postAuditData(t, handler, map[string]any{
			"Department":    "Sales",
			"Date":          "2026-08-31",
			"Meeting_hours": 1,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, "unknown department: Sales", resp.Message)
	})

	t.Run("returns 500 when storage fails", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		handler := NewHandler(ledger)
		repoStub.WriteFail = ErrStubFailure

		w, resp := postAuditData(t, handler, map[string]any{
			"Date":          "2026-08-31",
			"Meeting_hours": 1,
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, "Database error", resp.Message)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		handler := NewHandler(ledger)

		req := httptest.NewRequest(http.MethodPost, "/api/audit-data", bytes.NewBufferString("not json"))
		w := httptest.NewRecorder()

		handler.SubmitAuditData(w, req.WithContext(ctx))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
