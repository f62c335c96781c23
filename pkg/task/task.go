package task

import "time"

type Status string

const (
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusAssigned, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Task struct {
	Id           int
	Department   string
	AssigneeMail string
	Title        string
	Description  string
	Status       Status
	// AssignedBy is the mail of the team lead / HR / director who created
	// the task.
	AssignedBy string
	// DueDate is optional; the zero time means no due date.
	DueDate   time.Time
	CreatedAt time.Time
}
