package submission

import (
	"context"
	"fmt"

	"github.com/pixeltruth/mis-backend/internal/event_bus"
	"github.com/pixeltruth/mis-backend/internal/utils"
	"github.com/pixeltruth/mis-backend/pkg/department"
	log "github.com/sirupsen/logrus"
)

// ValidationError rejects a submission before any storage access.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Result is the outcome of a budget check. A rejected submission is an
// ordinary outcome, not an error: Accepted is false and Message explains why.
type Result struct {
	Accepted         bool
	Message          string
	RemainingHours   int
	RemainingMinutes int
}

// Ledger enforces the daily time budget: for a given (user, department, date)
// key the tracked minutes of all persisted submissions never exceed the
// department's daily cap, as long as submissions are applied serially.
//
// The read-sum-check-insert sequence is not transactional. Two concurrent
// submissions for the same key can both observe the same prior total and both
// commit past the cap; enabling serializeCommits closes that window within a
// single process by holding a per-key mutex across the sequence.
type Ledger struct {
	repo             Repo
	departments      department.Service
	bus              *event_bus.EventBus
	defaultCap       int
	serializeCommits bool
	keys             *utils.KeyedMutex
}

func NewLedger(repo Repo, departments department.Service, bus *event_bus.EventBus, defaultCapMinutes int, serializeCommits bool) *Ledger {
	return &Ledger{
		repo:             repo,
		departments:      departments,
		bus:              bus,
		defaultCap:       defaultCapMinutes,
		serializeCommits: serializeCommits,
		keys:             utils.NewKeyedMutex(),
	}
}

// CheckAndCommit normalizes the raw submission, sums the minutes already
// recorded for its (user, department, date) key, and either persists the
// submission or rejects it when the combined total would exceed the daily cap.
// The cap check happens strictly before the insert; a read failure aborts the
// whole operation with nothing written.
func (l *Ledger) CheckAndCommit(ctx context.Context, raw map[string]any) (Result, error) {
	normalized := Normalize(raw)

	userMail := stringField(normalized, "User_Mail")
	deptName := stringField(normalized, "Department")
	date := stringField(normalized, "Date")
	if userMail == "" || deptName == "" || date == "" {
		return Result{}, &ValidationError{Reason: "User_Mail, Department and Date are required"}
	}

	dept, err := l.departments.Get(ctx, deptName)
	if err == department.ErrDepartmentNotFound {
		return Result{}, &ValidationError{Reason: fmt.Sprintf("unknown department: %s", deptName)}
	} else if err != nil {
		return Result{}, fmt.Errorf("failed to resolve department: %w", err)
	}
	capMinutes := dept.DailyCapMinutes
	if capMinutes <= 0 {
		capMinutes = l.defaultCap
	}

	if l.serializeCommits {
		unlock := l.keys.Lock(userMail + "|" + deptName + "|" + date)
		defer unlock()
	}

	existingRows, err := l.repo.FindByKey(ctx, dept.AuditTable, userMail, date)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read existing submissions: %w", err)
	}

	existingMinutes := 0
	for _, row := range existingRows {
		existingMinutes += TrackedMinutes(row)
	}
	newMinutes := TrackedMinutes(normalized)

	if existingMinutes+newMinutes > capMinutes {
		log.Debugf("submission rejected for %s/%s on %s: %d + %d > %d",
			userMail, deptName, date, existingMinutes, newMinutes, capMinutes)
		return Result{
			Accepted: false,
			Message: fmt.Sprintf("Daily time budget exceeded: you have already used %s of your %s budget",
				FormatMinutes(existingMinutes), FormatMinutes(capMinutes)),
		}, nil
	}

	if err := l.repo.Insert(ctx, dept.AuditTable, normalized); err != nil {
		return Result{}, fmt.Errorf("failed to store submission: %w", err)
	}

	if err := l.bus.Publish(event_bus.NewEvent(ctx, event_bus.SubmissionAcceptedEvent, event_bus.SubmissionAccepted{
		UserMail:   userMail,
		Department: deptName,
		Date:       date,
		Minutes:    newMinutes,
	})); err != nil {
		log.Warnf("failed to publish submission event: %v", err)
	}

	remainingHours, remainingMinutes := SplitMinutes(capMinutes - (existingMinutes + newMinutes))
	return Result{
		Accepted:         true,
		Message:          "Submission recorded",
		RemainingHours:   remainingHours,
		RemainingMinutes: remainingMinutes,
	}, nil
}

func stringField(fields map[string]any, name string) string {
	v, ok := fields[name]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
