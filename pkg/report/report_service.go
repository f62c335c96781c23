package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/pixeltruth/mis-backend/pkg/department"
	"github.com/pixeltruth/mis-backend/pkg/submission"
	"github.com/pixeltruth/mis-backend/pkg/user"
)

type Service interface {
	// ListAuditData returns the submissions visible to the caller for one
	// date: employees see their own rows, team leads their department,
	// HR and directors any department.
	ListAuditData(ctx context.Context, departmentName, date string) ([]map[string]any, error)
	// Summary aggregates tracked minutes per (user, date) over a date range,
	// with the same role scoping.
	Summary(ctx context.Context, departmentName, from, to string) (Summary, error)
}

type ServiceImpl struct {
	repo        Repo
	departments department.Service
}

func NewReportService(repo Repo, departments department.Service) *ServiceImpl {
	return &ServiceImpl{repo: repo, departments: departments}
}

// scope resolves which partition the caller may read and whether the rows are
// restricted to their own mail.
func (s *ServiceImpl) scope(ctx context.Context, requestedDepartment string) (dept department.Department, onlyMail string, err error) {
	current, err := user.CurrentUser(ctx)
	if err != nil {
		return department.Department{}, "", fmt.Errorf("failed to get current user: %w", err)
	}

	departmentName := current.Department
	switch current.Role {
	case user.RoleEmployee:
		if requestedDepartment != "" && requestedDepartment != current.Department {
			return department.Department{}, "", user.ErrForbidden
		}
		onlyMail = current.Mail
	case user.RoleTeamLead:
		if requestedDepartment != "" && requestedDepartment != current.Department {
			return department.Department{}, "", user.ErrForbidden
		}
	case user.RoleHR, user.RoleDirector:
		if requestedDepartment != "" {
			departmentName = requestedDepartment
		}
	default:
		return department.Department{}, "", user.ErrForbidden
	}

	dept, err = s.departments.Get(ctx, departmentName)
	if err != nil {
		return department.Department{}, "", err
	}
	return dept, onlyMail, nil
}

func (s *ServiceImpl) ListAuditData(ctx context.Context, departmentName, date string) ([]map[string]any, error) {
	dept, onlyMail, err := s.scope(ctx, departmentName)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByDate(ctx, dept.AuditTable, date, onlyMail)
}

func (s *ServiceImpl) Summary(ctx context.Context, departmentName, from, to string) (Summary, error) {
	dept, onlyMail, err := s.scope(ctx, departmentName)
	if err != nil {
		return Summary{}, err
	}

	rows, err := s.repo.FindByDateRange(ctx, dept.AuditTable, from, to, onlyMail)
	if err != nil {
		return Summary{}, err
	}

	type key struct{ mail, date string }
	totals := map[key]int{}
	for _, row := range rows {
		mail, _ := row["User_Mail"].(string)
		date, _ := row["Date"].(string)
		totals[key{mail, date}] += submission.TrackedMinutes(row)
	}

	summary := Summary{Department: dept.Name, From: from, To: to, Totals: make([]DailyTotal, 0, len(totals))}
	for k, minutes := range totals {
		hours, rem := submission.SplitMinutes(minutes)
		summary.Totals = append(summary.Totals, DailyTotal{
			UserMail: k.mail,
			Date:     k.date,
			Minutes:  minutes,
			Hours:    hours,
			Rem:      rem,
		})
	}
	sort.Slice(summary.Totals, func(i, j int) bool {
		if summary.Totals[i].Date != summary.Totals[j].Date {
			return summary.Totals[i].Date < summary.Totals[j].Date
		}
		return summary.Totals[i].UserMail < summary.Totals[j].UserMail
	})
	return summary, nil
}
