package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepo interface {
	CreateSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, token string) (Session, error)
	DeleteSession(ctx context.Context, token string) (bool, error)
}

type SessionRepoImpl struct {
	db *pgxpool.Pool
}

func NewSessionRepo(db *pgxpool.Pool) *SessionRepoImpl {
	return &SessionRepoImpl{db: db}
}

func (r *SessionRepoImpl) CreateSession(ctx context.Context, session Session) error {
	query := `INSERT INTO mis_sessions (token, user_id, created_at, expires_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.Exec(ctx, query, session.Token, session.UserId, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		log.Errorf("failed to create session: %v", err)
		return err
	}
	return nil
}

func (r *SessionRepoImpl) GetSession(ctx context.Context, token string) (Session, error) {
	query := `SELECT token, user_id, created_at, expires_at FROM mis_sessions WHERE token = $1`
	var session Session
	err := r.db.QueryRow(ctx, query, token).Scan(
		&session.Token,
		&session.UserId,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, ErrSessionNotFound
	} else if err != nil {
		log.Errorf("failed to get session: %v", err)
		return Session{}, err
	}
	return session, nil
}

func (r *SessionRepoImpl) DeleteSession(ctx context.Context, token string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM mis_sessions WHERE token = $1", token)
	if err != nil {
		log.Errorf("failed to delete session: %v", err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
