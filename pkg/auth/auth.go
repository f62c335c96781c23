package auth

import "time"

// Session is one logged-in browser session. The token travels in the
// X-Session-Token header.
type Session struct {
	Token     string
	UserId    int
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
