package department

import (
	"context"
	"errors"
	"fmt"

	"github.com/pixeltruth/mis-backend/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidCap = errors.New("daily cap must be a positive number of minutes")

type Service interface {
	Get(ctx context.Context, name string) (Department, error)
	List(ctx context.Context) ([]Department, error)
	SetDailyCap(ctx context.Context, name string, dailyCapMinutes int) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewDepartmentService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Get(ctx context.Context, name string) (Department, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *ServiceImpl) List(ctx context.Context) ([]Department, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) SetDailyCap(ctx context.Context, name string, dailyCapMinutes int) (bool, error) {
	current, err := user.CurrentUser(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if !current.Role.CanManageUsers() {
		return false, user.ErrForbidden
	}
	if dailyCapMinutes <= 0 {
		return false, ErrInvalidCap
	}

	updated, err := s.repo.UpdateDailyCap(ctx, name, dailyCapMinutes)
	if err != nil {
		return false, err
	}
	if updated {
		log.Infof("daily cap for department %s set to %d minutes by %s", name, dailyCapMinutes, current.Mail)
	}
	return updated, nil
}
