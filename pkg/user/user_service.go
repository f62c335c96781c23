package user

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrForbidden          = errors.New("operation not allowed for this role")
	ErrMailTaken          = errors.New("mail already registered")
)

type Service interface {
	// Authenticate verifies mail, password, role and department together, the
	// way the login form submits them. Any mismatch yields ErrInvalidCredentials.
	Authenticate(ctx context.Context, mail, password string, role Role, department string) (User, error)
	Create(ctx context.Context, u User, password string) (User, error)
	GetById(ctx context.Context, id int) (User, error)
	GetByMail(ctx context.Context, mail string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, userId int, u User) (bool, error)
	Delete(ctx context.Context, userId int) (bool, error)
	IsMailAvailable(ctx context.Context, mail string) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Authenticate(ctx context.Context, mail, password string, role Role, department string) (User, error) {
	u, err := s.repo.GetUserByMail(ctx, mail)
	if errors.Is(err, ErrUserNotFound) {
		return User{}, ErrInvalidCredentials
	} else if err != nil {
		return User{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	// The login form also asserts role and department; a stale or tampered
	// selection is treated the same as a wrong password.
	if u.Role != role || u.Department != department {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *ServiceImpl) Create(ctx context.Context, u User, password string) (User, error) {
	if err := s.requireManager(ctx); err != nil {
		return User{}, err
	}
	if !u.Role.IsValid() {
		return User{}, ErrInvalidRole
	}
	available, err := s.repo.IsMailAvailable(ctx, u.Mail)
	if err != nil {
		return User{}, err
	}
	if !available {
		return User{}, ErrMailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)

	id, err := s.repo.CreateUser(ctx, u)
	if err != nil {
		return User{}, err
	}
	u.Id = id
	log.Infof("created user %s (%s, %s)", u.Mail, u.Role, u.Department)
	return u, nil
}

func (s *ServiceImpl) GetById(ctx context.Context, id int) (User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *ServiceImpl) GetByMail(ctx context.Context, mail string) (User, error) {
	return s.repo.GetUserByMail(ctx, mail)
}

// List returns the accounts visible to the caller: directors see every
// department, HR sees their own.
func (s *ServiceImpl) List(ctx context.Context) ([]User, error) {
	current, err := CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if !current.Role.CanManageUsers() {
		return nil, ErrForbidden
	}
	if current.Role == RoleDirector {
		return s.repo.GetAllUsers(ctx)
	}
	return s.repo.GetUsersByDepartment(ctx, current.Department)
}

func (s *ServiceImpl) Update(ctx context.Context, userId int, u User) (bool, error) {
	if err := s.requireManager(ctx); err != nil {
		return false, err
	}
	if !u.Role.IsValid() {
		return false, ErrInvalidRole
	}
	updated, err := s.repo.UpdateUser(ctx, userId, u)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("user %d not updated, probably because it does not exist", userId)
	}
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, userId int) (bool, error) {
	if err := s.requireManager(ctx); err != nil {
		return false, err
	}
	return s.repo.DeleteUser(ctx, userId)
}

func (s *ServiceImpl) IsMailAvailable(ctx context.Context, mail string) (bool, error) {
	return s.repo.IsMailAvailable(ctx, mail)
}

func (s *ServiceImpl) requireManager(ctx context.Context) error {
	current, err := CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if !current.Role.CanManageUsers() {
		return ErrForbidden
	}
	return nil
}
