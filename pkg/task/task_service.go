package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/pixeltruth/mis-backend/internal/event_bus"
	"github.com/pixeltruth/mis-backend/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNoAssignees   = errors.New("at least one assignee is required")
	ErrInvalidStatus = errors.New("invalid task status")
)

type Service interface {
	// Assign creates one task row per assignee mail from the same payload.
	Assign(ctx context.Context, task Task, assigneeMails []string) ([]Task, error)
	// ListForDepartment returns the department's tasks for team leads and
	// above; employees get their own tasks regardless of the department asked.
	ListForDepartment(ctx context.Context, department string) ([]Task, error)
	ListMine(ctx context.Context) ([]Task, error)
	UpdateStatus(ctx context.Context, taskId int, status Status) (bool, error)
	Delete(ctx context.Context, taskId int) (bool, error)
}

type ServiceImpl struct {
	repo Repo
	bus  *event_bus.EventBus
}

func NewTaskService(repo Repo, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus}
}

func (s *ServiceImpl) Assign(ctx context.Context, task Task, assigneeMails []string) ([]Task, error) {
	current, err := user.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if !current.Role.CanAssignTasks() {
		return nil, user.ErrForbidden
	}
	if len(assigneeMails) == 0 {
		return nil, ErrNoAssignees
	}

	// Team leads assign within their own department only; HR and directors
	// may target any department but default to their own.
	if current.Role == user.RoleTeamLead || task.Department == "" {
		task.Department = current.Department
	}
	task.AssignedBy = current.Mail
	task.Status = StatusAssigned

	created := make([]Task, 0, len(assigneeMails))
	for _, mail := range assigneeMails {
		t := task
		t.AssigneeMail = mail
		id, err := s.repo.CreateTask(ctx, t)
		if err != nil {
			return created, fmt.Errorf("failed to assign task to %s: %w", mail, err)
		}
		t.Id = id
		created = append(created, t)

		if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.TaskAssignedEvent, event_bus.TaskAssigned{
			TaskId:       id,
			Department:   t.Department,
			AssigneeMail: mail,
			Title:        t.Title,
		})); err != nil {
			log.Warnf("failed to publish task event: %v", err)
		}
	}
	log.Infof("%s assigned task %q to %d user(s) in %s", current.Mail, task.Title, len(created), task.Department)
	return created, nil
}

func (s *ServiceImpl) ListForDepartment(ctx context.Context, department string) ([]Task, error) {
	current, err := user.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	switch current.Role {
	case user.RoleEmployee:
		return s.repo.ListByAssignee(ctx, current.Mail)
	case user.RoleTeamLead, user.RoleHR:
		return s.repo.ListByDepartment(ctx, current.Department)
	default: // director
		if department == "" {
			department = current.Department
		}
		return s.repo.ListByDepartment(ctx, department)
	}
}

func (s *ServiceImpl) ListMine(ctx context.Context) ([]Task, error) {
	mail, err := user.CurrentMail(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListByAssignee(ctx, mail)
}

func (s *ServiceImpl) UpdateStatus(ctx context.Context, taskId int, status Status) (bool, error) {
	current, err := user.CurrentUser(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if !status.IsValid() {
		return false, ErrInvalidStatus
	}

	task, err := s.repo.GetTask(ctx, taskId)
	if err != nil {
		return false, err
	}
	// Employees may only move their own tasks.
	if !current.Role.CanAssignTasks() && task.AssigneeMail != current.Mail {
		return false, user.ErrForbidden
	}

	return s.repo.UpdateStatus(ctx, taskId, status)
}

func (s *ServiceImpl) Delete(ctx context.Context, taskId int) (bool, error) {
	current, err := user.CurrentUser(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if !current.Role.CanAssignTasks() {
		return false, user.ErrForbidden
	}
	return s.repo.DeleteTask(ctx, taskId)
}
