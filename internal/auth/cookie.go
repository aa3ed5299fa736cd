package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the raw session token.
const SessionCookieName = "auth-session"

// CookieOptions controls attributes that differ between deployments.
type CookieOptions struct {
	Secure bool
}

// SetSessionCookie writes the session token cookie, expiring with the session.
func SetSessionCookie(c echo.Context, token string, expiresAt time.Time, opts CookieOptions) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// DeleteSessionCookie tells the browser to drop the session cookie.
func DeleteSessionCookie(c echo.Context, opts CookieOptions) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionTokenFromRequest returns the token from the session cookie, or "".
func SessionTokenFromRequest(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
