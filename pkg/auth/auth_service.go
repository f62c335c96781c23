package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pixeltruth/mis-backend/internal/utils"
	"github.com/pixeltruth/mis-backend/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrSessionExpired = errors.New("session expired")

// LoginResult is what a successful login hands back to the frontend: the
// session token plus the dashboard the role/department combination lands on.
type LoginResult struct {
	Token       string
	RedirectUrl string
	User        user.User
}

type Service interface {
	Login(ctx context.Context, mail, password string, role user.Role, department string) (LoginResult, error)
	Logout(ctx context.Context, token string) error
	// UserForToken resolves a session token to its user, rejecting expired
	// sessions. Used by the session middleware.
	UserForToken(ctx context.Context, token string) (user.User, error)
}

type ServiceImpl struct {
	sessions    SessionRepo
	users       user.Service
	frontendUrl string
	sessionTtl  time.Duration
	clock       utils.Clock
}

func NewAuthService(sessions SessionRepo, users user.Service, frontendUrl string, sessionTtl time.Duration, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		sessions:    sessions,
		users:       users,
		frontendUrl: frontendUrl,
		sessionTtl:  sessionTtl,
		clock:       clock,
	}
}

func (s *ServiceImpl) Login(ctx context.Context, mail, password string, role user.Role, department string) (LoginResult, error) {
	u, err := s.users.Authenticate(ctx, mail, password, role, department)
	if err != nil {
		return LoginResult{}, err
	}

	now := s.clock.Now()
	session := Session{
		Token:     uuid.NewString(),
		UserId:    u.Id,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTtl),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return LoginResult{}, fmt.Errorf("failed to store session: %w", err)
	}

	log.Infof("user %s logged in (%s, %s)", u.Mail, u.Role, u.Department)
	return LoginResult{
		Token:       session.Token,
		RedirectUrl: s.redirectUrl(u),
		User:        u,
	}, nil
}

// redirectUrl keeps the dashboard layout the frontend has always expected:
// HR and team leads get their own dashboards, everyone else lands on the
// department one.
func (s *ServiceImpl) redirectUrl(u user.User) string {
	switch u.Role {
	case user.RoleHR:
		return fmt.Sprintf("%s/HR/%s/HR_dashboard.html", s.frontendUrl, u.Department)
	case user.RoleTeamLead:
		return fmt.Sprintf("%s/TL/%s/TL_dashboard.html", s.frontendUrl, u.Department)
	default:
		return fmt.Sprintf("%s/%s/dashboard.html", s.frontendUrl, u.Department)
	}
}

func (s *ServiceImpl) Logout(ctx context.Context, token string) error {
	deleted, err := s.sessions.DeleteSession(ctx, token)
	if err != nil {
		return err
	}
	if !deleted {
		log.Debugf("logout for unknown session token")
	}
	return nil
}

func (s *ServiceImpl) UserForToken(ctx context.Context, token string) (user.User, error) {
	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		return user.User{}, err
	}
	if session.IsExpired(s.clock.Now()) {
		// Expired sessions are removed lazily on first use.
		if _, err := s.sessions.DeleteSession(ctx, token); err != nil {
			log.Warnf("failed to delete expired session: %v", err)
		}
		return user.User{}, ErrSessionExpired
	}

	return s.users.GetById(ctx, session.UserId)
}
