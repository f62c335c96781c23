package task

import (
	"context"
	"sort"
)

type StubTaskRepo struct {
	nextId int
	data   map[int]Task
}

func NewStubTaskRepo() *StubTaskRepo {
	return &StubTaskRepo{data: map[int]Task{}}
}

func (s *StubTaskRepo) CreateTask(ctx context.Context, task Task) (int, error) {
	s.nextId++
	task.Id = s.nextId
	s.data[task.Id] = task
	return task.Id, nil
}

func (s *StubTaskRepo) GetTask(ctx context.Context, id int) (Task, error) {
	task, ok := s.data[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return task, nil
}

func (s *StubTaskRepo) ListByDepartment(ctx context.Context, department string) ([]Task, error) {
	return s.collect(func(t Task) bool { return t.Department == department }), nil
}

func (s *StubTaskRepo) ListByAssignee(ctx context.Context, assigneeMail string) ([]Task, error) {
	return s.collect(func(t Task) bool { return t.AssigneeMail == assigneeMail }), nil
}

func (s *StubTaskRepo) collect(match func(Task) bool) []Task {
	tasks := make([]Task, 0, len(s.data))
	for _, t := range s.data {
		if match(t) {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Id < tasks[j].Id })
	return tasks
}

func (s *StubTaskRepo) UpdateStatus(ctx context.Context, id int, status Status) (bool, error) {
	task, ok := s.data[id]
	if !ok {
		return false, nil
	}
	task.Status = status
	s.data[id] = task
	return true, nil
}

func (s *StubTaskRepo) DeleteTask(ctx context.Context, id int) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubTaskRepo) Reset() {
	s.data = map[int]Task{}
	s.nextId = 0
}
