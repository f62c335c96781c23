package submission

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/pixeltruth/mis-backend/internal/event_bus"
	"github.com/pixeltruth/mis-backend/pkg/department"
	"github.com/pixeltruth/mis-backend/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.WithValue(context.Background(), user.UserKey, user.User{
	Id:         10,
	Name:       "Test User 1",
	Mail:       "test.user@pixeltruth.com",
	Role:       user.RoleEmployee,
	Department: "SEO",
})

const seoTable = "mis_seo_audit_data"

var repoStub = NewStubSubmissionRepo()
var departmentService = department.NewDepartmentService(department.NewStubDepartmentRepo(
	department.Department{Id: 1, Name: "SEO", AuditTable: seoTable, DailyCapMinutes: 500},
	department.Department{Id: 2, Name: "Content", AuditTable: "mis_content_audit_data"},
))
var bus = event_bus.NewEventBus()

var ledger *Ledger

func setup(t *testing.T) func() {
	ledger = NewLedger(repoStub, departmentService, bus, 500, false)
	return func() {
		t.Log("Teardown after test")
		repoStub.Reset()
	}
}

func submissionOf(minutes int) map[string]any {
	h, m := SplitMinutes(minutes)
	return map[string]any{
		"User_Mail":             "test.user@pixeltruth.com",
		"Department":            "SEO",
		"Date":                  "2026-08-31",
		"Brand":                 "Acme",
		"Website_Audit_hours":   h,
		"Website_Audit_minutes": m,
	}
}

func TestLedger_CheckAndCommit(t *testing.T) {
	t.Run("accepts a submission that fits the remaining budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := ledger.CheckAndCommit(ctx, submissionOf(450))
		require.NoError(t, err)

		result, err := ledger.CheckAndCommit(ctx, submissionOf(40))

		require.NoError(t, err)
		assert.True(t, result.Accepted)
		assert.Equal(t, 0, result.RemainingHours)
		assert.Equal(t, 10, result.RemainingMinutes)
		assert.Len(t, repoStub.Rows(seoTable), 2)
	})

	t.Run("rejects a submission that would exceed the cap and stores nothing", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := ledger.CheckAndCommit(ctx, submissionOf(450))
		require.NoError(t, err)

		result, err := ledger.CheckAndCommit(ctx, submissionOf(60))

		require.NoError(t, err)
		assert.False(t, result.Accepted)
		assert.Equal(t, "Daily time budget exceeded: you have already used 7h 30m of your 8h 20m budget", result.Message)
		assert.Len(t, repoStub.Rows(seoTable), 1)
	})

	t.Run("accepts a submission that lands exactly on the cap", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := ledger.CheckAndCommit(ctx, submissionOf(450))
		require.NoError(t, err)

		result, err := ledger.CheckAndCommit(ctx, submissionOf(50))

		require.NoError(t, err)
		assert.True(t, result.Accepted)
		assert.Equal(t, 0, result.RemainingHours)
		assert.Equal(t, 0, result.RemainingMinutes)
	})

	t.Run("sums repeated numeric fields before checking the budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		raw := map[string]any{
			"User_Mail":           "test.user@pixeltruth.com",
			"Department":          "SEO",
			"Date":                "2026-08-31",
			"Website_Audit_hours": []any{"1", "2"},
		}

		result, err := ledger.CheckAndCommit(ctx, raw)

		require.NoError(t, err)
		assert.True(t, result.Accepted)
		rows := repoStub.Rows(seoTable)
		require.Len(t, rows, 1)
		assert.Equal(t, 3, rows[0]["Website_Audit_hours"])
		assert.Equal(t, 5, result.RemainingHours)
		assert.Equal(t, 20, result.RemainingMinutes)
	})

	t.Run("rejects a submission without User_Mail before touching storage", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		repoStub.ReadFail = ErrStubFailure

		raw := submissionOf(30)
		delete(raw, "User_Mail")

		_, err := ledger.CheckAndCommit(ctx, raw)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Empty(t, repoStub.Rows(seoTable))
	})

	t.Run("rejects an unknown department as invalid input", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		raw := submissionOf(30)
		raw["Department"] = "Sales"

		_, err := ledger.CheckAndCommit(ctx, raw)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "unknown department: Sales", validationErr.Reason)
	})

	t.Run("aborts without writing when the budget read fails", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		repoStub.ReadFail = ErrStubFailure

		_, err := ledger.CheckAndCommit(ctx, submissionOf(30))

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrStubFailure)
		assert.Empty(t, repoStub.Rows(seoTable))
	})

	t.Run("propagates storage errors from the insert", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		repoStub.WriteFail = ErrStubFailure

		_, err := ledger.CheckAndCommit(ctx, submissionOf(30))

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrStubFailure)
	})

	t.Run("falls back to the default cap when the department has none", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		raw := submissionOf(480)
		raw["Department"] = "Content"

		result, err := ledger.CheckAndCommit(ctx, raw)

		require.NoError(t, err)
		assert.True(t, result.Accepted)
		assert.Equal(t, 0, result.RemainingHours)
		assert.Equal(t, 20, result.RemainingMinutes)
	})

	t.Run("counts every _hours and _minutes field toward the budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		raw := map[string]any{
			"User_Mail":                "test.user@pixeltruth.com",
			"Department":               "SEO",
			"Date":                     "2026-08-31",
			"Keyword_Research_hours":   "4",
			"Keyword_Research_minutes": "30",
			"Meeting_hours":            2,
			"Backlinks_Count":          1000,
		}

		result, err := ledger.CheckAndCommit(ctx, raw)

		require.NoError(t, err)
		assert.True(t, result.Accepted)
		// 390 tracked minutes out of 500, counts excluded
		assert.Equal(t, 1, result.RemainingHours)
		assert.Equal(t, 50, result.RemainingMinutes)
	})

	t.Run("negative durations do not free up budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := ledger.CheckAndCommit(ctx, submissionOf(450))
		require.NoError(t, err)

		raw := map[string]any{
			"User_Mail":           "test.user@pixeltruth.com",
			"Department":          "SEO",
			"Date":                "2026-08-31",
			"Website_Audit_hours": -5,
			"Meeting_minutes":     60,
		}

		result, err := ledger.CheckAndCommit(ctx, raw)

		require.NoError(t, err)
		assert.False(t, result.Accepted)
		assert.Len(t, repoStub.Rows(seoTable), 1)
	})

	t.Run("publishes an event for each accepted submission", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		var received []event_bus.SubmissionAccepted
		unsubscribe := bus.Subscribe(event_bus.SubmissionAcceptedEvent, func(e event_bus.Event) error {
			received = append(received, e.Data.(event_bus.SubmissionAccepted))
			return nil
		})
		defer unsubscribe()

		_, err := ledger.CheckAndCommit(ctx, submissionOf(90))
		require.NoError(t, err)

		require.Len(t, received, 1)
		assert.Equal(t, "test.user@pixeltruth.com", received[0].UserMail)
		assert.Equal(t, "SEO", received[0].Department)
		assert.Equal(t, 90, received[0].Minutes)
	})

	t.Run("never exceeds the cap over a serial sequence of submissions", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		for i := 0; i < 20; i++ {
			_, err := ledger.CheckAndCommit(ctx, submissionOf(45))
			require.NoError(t, err)
		}

		total := 0
		for _, row := range repoStub.Rows(seoTable) {
			total += TrackedMinutes(row)
		}
		assert.LessOrEqual(t, total, 500)
	})
}

func TestLedger_SerializedCommits(t *testing.T) {
	t.Run("concurrent submissions for one key respect the cap", func(t *testing.T) {
		repo := NewStubSubmissionRepo()
		serialized := NewLedger(repo, departmentService, bus, 500, true)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := serialized.CheckAndCommit(ctx, submissionOf(120))
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		total := 0
		for _, row := range repo.Rows(seoTable) {
			total += TrackedMinutes(row)
		}
		assert.LessOrEqual(t, total, 500)
	})

	t.Run("different keys do not block each other", func(t *testing.T) {
		repo := NewStubSubmissionRepo()
		serialized := NewLedger(repo, departmentService, bus, 500, true)

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				raw := submissionOf(60)
				raw["User_Mail"] = fmt.Sprintf("user%d@pixeltruth.com", n)
				_, err := serialized.CheckAndCommit(ctx, raw)
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		assert.Len(t, repo.Rows(seoTable), 5)
	})
}
