package app

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pixeltruth/mis-backend/internal/config"
	"github.com/pixeltruth/mis-backend/internal/event_bus"
	"github.com/pixeltruth/mis-backend/internal/utils"
	"github.com/pixeltruth/mis-backend/pkg/auth"
	"github.com/pixeltruth/mis-backend/pkg/department"
	"github.com/pixeltruth/mis-backend/pkg/report"
	"github.com/pixeltruth/mis-backend/pkg/submission"
	"github.com/pixeltruth/mis-backend/pkg/task"
	"github.com/pixeltruth/mis-backend/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	AuthService auth.Service
	AuthHandler *auth.Handler

	DepartmentService department.Service
	DepartmentHandler *department.Handler

	SubmissionRepo    submission.Repo
	Ledger            *submission.Ledger
	SubmissionHandler *submission.Handler

	TaskService task.Service
	TaskHandler *task.Handler

	ReportService report.Service
	ReportHandler *report.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	sessionTtl := time.Duration(cfg.Auth.SessionTtlHours) * time.Hour
	deps.AuthService = auth.NewAuthService(auth.NewSessionRepo(db), deps.UserService, cfg.Frontend.BaseUrl, sessionTtl, deps.Clock)
	deps.AuthHandler = auth.NewHandler(deps.AuthService)

	deps.DepartmentService = department.NewDepartmentService(department.NewDepartmentRepo(db))
	deps.DepartmentHandler = department.NewHandler(deps.DepartmentService)

	deps.SubmissionRepo = submission.NewSubmissionRepo(db)
	deps.Ledger = submission.NewLedger(deps.SubmissionRepo, deps.DepartmentService, deps.EventBus,
		cfg.Ledger.DailyCapMinutes, cfg.Ledger.SerializeCommits)
	deps.SubmissionHandler = submission.NewHandler(deps.Ledger)

	deps.TaskService = task.NewTaskService(task.NewTaskRepo(db), deps.EventBus)
	deps.TaskHandler = task.NewHandler(deps.TaskService)

	deps.ReportService = report.NewReportService(report.NewReportRepo(db), deps.DepartmentService)
	deps.ReportHandler = report.NewHandler(deps.ReportService)

	subscribeAuditLog(deps.EventBus)

	return deps
}

// subscribeAuditLog records accepted submissions and task assignments in the
// application log for traceability.
func subscribeAuditLog(bus *event_bus.EventBus) {
	bus.Subscribe(event_bus.SubmissionAcceptedEvent, func(e event_bus.Event) error {
		if data, ok := e.Data.(event_bus.SubmissionAccepted); ok {
			log.Infof("audit data recorded: %s logged %dm for %s on %s",
				data.UserMail, data.Minutes, data.Department, data.Date)
		}
		return nil
	})
	bus.Subscribe(event_bus.TaskAssignedEvent, func(e event_bus.Event) error {
		if data, ok := e.Data.(event_bus.TaskAssigned); ok {
			log.Infof("task %d (%s) assigned to %s in %s",
				data.TaskId, data.Title, data.AssigneeMail, data.Department)
		}
		return nil
	})
}
