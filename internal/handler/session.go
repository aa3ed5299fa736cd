package handler

import (
	"github.com/labstack/echo/v4"

	"portfolio/internal/auth"
	"portfolio/internal/errors"
	"portfolio/internal/logging"
	"portfolio/internal/model"
	"portfolio/internal/service"
)

const (
	contextKeyUser    = "user"
	contextKeySession = "session"
)

// SessionMiddleware resolves the session cookie on every request.
type SessionMiddleware struct {
	authService service.AuthService
	cookies     auth.CookieOptions
	log         logging.Logger
}

// NewSessionMiddleware creates the session middleware.
func NewSessionMiddleware(authService service.AuthService, cookies auth.CookieOptions, log logging.Logger) *SessionMiddleware {
	return &SessionMiddleware{authService: authService, cookies: cookies, log: log}
}

// LoadSession attaches the user and session to the context when the cookie
// names a live session. A renewed session gets a fresh cookie; a dead one has
// its cookie removed. Requests without a session pass through anonymously.
func (m *SessionMiddleware) LoadSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := auth.SessionTokenFromRequest(c)
		if token == "" {
			return next(c)
		}

		result, err := m.authService.Authenticate(c.Request().Context(), token)
		if err != nil {
			return fail(c, m.log, err)
		}
		if result == nil {
			auth.DeleteSessionCookie(c, m.cookies)
			return next(c)
		}
		if result.Fresh {
			auth.SetSessionCookie(c, token, result.Session.ExpiresAt, m.cookies)
		}

		c.Set(contextKeyUser, result.User)
		c.Set(contextKeySession, result.Session)
		return next(c)
	}
}

// RequireUser rejects requests that carry no valid session.
func (m *SessionMiddleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if currentUser(c) == nil {
			return fail(c, m.log, errors.ErrUnauthorized)
		}
		return next(c)
	}
}

func currentUser(c echo.Context) *model.User {
	user, _ := c.Get(contextKeyUser).(*model.User)
	return user
}

func currentSession(c echo.Context) *model.Session {
	session, _ := c.Get(contextKeySession).(*model.Session)
	return session
}
