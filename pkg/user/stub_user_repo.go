package user

import (
	"context"
	"sort"
)

type StubUserRepo struct {
	nextId int
	data   map[int]User
}

func NewStubUserRepo() *StubUserRepo {
	return &StubUserRepo{nextId: 0, data: map[int]User{}}
}

func (s *StubUserRepo) CreateUser(ctx context.Context, user User) (int, error) {
	s.nextId++
	user.Id = s.nextId
	s.data[user.Id] = user
	return user.Id, nil
}

func (s *StubUserRepo) GetUser(ctx context.Context, id int) (User, error) {
	u, ok := s.data[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *StubUserRepo) GetUserByMail(ctx context.Context, mail string) (User, error) {
	for _, u := range s.data {
		if u.Mail == mail {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepo) GetAllUsers(ctx context.Context) ([]User, error) {
	return s.collect(func(User) bool { return true }), nil
}

func (s *StubUserRepo) GetUsersByDepartment(ctx context.Context, department string) ([]User, error) {
	return s.collect(func(u User) bool { return u.Department == department }), nil
}

func (s *StubUserRepo) collect(match func(User) bool) []User {
	users := make([]User, 0, len(s.data))
	for _, u := range s.data {
		if match(u) {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users
}

func (s *StubUserRepo) UpdateUser(ctx context.Context, userId int, user User) (bool, error) {
	existing, ok := s.data[userId]
	if !ok {
		return false, nil
	}
	existing.Name = user.Name
	existing.Role = user.Role
	existing.Department = user.Department
	s.data[userId] = existing
	return true, nil
}

func (s *StubUserRepo) DeleteUser(ctx context.Context, id int) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubUserRepo) IsMailAvailable(ctx context.Context, mail string) (bool, error) {
	for _, u := range s.data {
		if u.Mail == mail {
			return false, nil
		}
	}
	return true, nil
}

func (s *StubUserRepo) Reset() {
	s.data = map[int]User{}
	s.nextId = 0
}
