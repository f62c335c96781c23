package auth

import "context"

type StubSessionRepo struct {
	data map[string]Session
}

func NewStubSessionRepo() *StubSessionRepo {
	return &StubSessionRepo{data: map[string]Session{}}
}

func (s *StubSessionRepo) CreateSession(ctx context.Context, session Session) error {
	s.data[session.Token] = session
	return nil
}

func (s *StubSessionRepo) GetSession(ctx context.Context, token string) (Session, error) {
	session, ok := s.data[token]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (s *StubSessionRepo) DeleteSession(ctx context.Context, token string) (bool, error) {
	if _, ok := s.data[token]; !ok {
		return false, nil
	}
	delete(s.data, token)
	return true, nil
}

func (s *StubSessionRepo) Reset() {
	s.data = map[string]Session{}
}
