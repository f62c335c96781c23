package event_bus

// SubmissionAccepted is published after an audit-data submission passes the
// daily budget check and is persisted.
type SubmissionAccepted struct {
	UserMail   string
	Department string
	Date       string
	// Minutes is the tracked-minute total of the accepted submission.
	Minutes int
}

// TaskAssigned is published for every assignee of a task assignment.
type TaskAssigned struct {
	TaskId       int
	Department   string
	AssigneeMail string
	Title        string
}
