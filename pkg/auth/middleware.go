package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/readerapp/reader/pkg/errcodes"
	"github.com/readerapp/reader/pkg/models"
)

// Middleware provides authentication middleware.
type Middleware struct {
	authService *Service
}

// NewMiddleware creates a new auth middleware.
func NewMiddleware(authService *Service) *Middleware {
	return &Middleware{
		authService: authService,
	}
}

// Authenticate extracts and validates the JWT from the cookie. If valid, it
// verifies the user is still active and stores the user and session on the
// echo context and the request context. Otherwise it returns 401.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := m.userFromCookie(c)
		if err != nil {
			return err
		}
		setUser(c, user)
		return next(c)
	}
}

func (m *Middleware) userFromCookie(c echo.Context) (*models.User, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, errcodes.Unauthorized("Authentication required")
	}

	claims, err := m.authService.ValidateToken(cookie.Value)
	if err != nil {
		return nil, errcodes.Unauthorized("Invalid or expired token")
	}

	user, err := m.authService.GetUserByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return nil, errcodes.Unauthorized("User not found or inactive")
	}

	return user, nil
}

func setUser(c echo.Context, user *models.User) {
	session := NewSession(user)
	c.Set("user", user)
	c.Set("session", session)
	c.SetRequest(c.Request().WithContext(WithSession(c.Request().Context(), session)))
}

// SignIn switches the request over to user: it issues a fresh session cookie
// and replaces the user and session on the echo and request contexts.
func (m *Middleware) SignIn(c echo.Context, user *models.User) error {
	if err := setSessionCookie(c, m.authService, user); err != nil {
		return err
	}
	setUser(c, user)
	return nil
}
