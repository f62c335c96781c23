package department

import (
	"context"
	"sort"
)

type StubDepartmentRepo struct {
	data map[string]Department
}

func NewStubDepartmentRepo(departments ...Department) *StubDepartmentRepo {
	s := &StubDepartmentRepo{data: map[string]Department{}}
	for _, d := range departments {
		s.data[d.Name] = d
	}
	return s
}

func (s *StubDepartmentRepo) GetByName(ctx context.Context, name string) (Department, error) {
	d, ok := s.data[name]
	if !ok {
		return Department{}, ErrDepartmentNotFound
	}
	return d, nil
}

func (s *StubDepartmentRepo) List(ctx context.Context) ([]Department, error) {
	departments := make([]Department, 0, len(s.data))
	for _, d := range s.data {
		departments = append(departments, d)
	}
	sort.Slice(departments, func(i, j int) bool { return departments[i].Name < departments[j].Name })
	return departments, nil
}

func (s *StubDepartmentRepo) UpdateDailyCap(ctx context.Context, name string, dailyCapMinutes int) (bool, error) {
	d, ok := s.data[name]
	if !ok {
		return false, nil
	}
	d.DailyCapMinutes = dailyCapMinutes
	s.data[name] = d
	return true, nil
}
