package auth

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/readerapp/reader/pkg/models"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Session identifies the signed-in reader. Screen controllers receive it
// explicitly instead of reaching for a global auth client.
type Session struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
}

// NewSession builds a session for the given user. A nil user yields nil.
func NewSession(user *models.User) *Session {
	if user == nil {
		return nil
	}
	return &Session{UserID: user.ID, Email: user.Email}
}

// DisplayName returns the local part of the session's email, or "N/A".
func (s *Session) DisplayName() string {
	if s == nil {
		return models.DisplayNameFromEmail("")
	}
	return models.DisplayNameFromEmail(s.Email)
}

// WithSession returns a copy of ctx carrying the session.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext returns the session stored by WithSession, or nil.
func SessionFromContext(ctx context.Context) *Session {
	session, _ := ctx.Value(sessionContextKey).(*Session)
	return session
}

// SessionFromEcho returns the session set by the Authenticate middleware.
func SessionFromEcho(c echo.Context) (*Session, bool) {
	session, ok := c.Get("session").(*Session)
	return session, ok && session != nil
}
