package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/auth"
	"portfolio/internal/errors"
	"portfolio/internal/logging"
	"portfolio/internal/model"
	"portfolio/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	cookies     auth.CookieOptions
	log         logging.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookies auth.CookieOptions, log logging.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies, log: log}
}

// CredentialsRequest is the body of register and login.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,min=6,max=255"`
}

// UserResponse wraps the signed-in user.
type UserResponse struct {
	User *model.User `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates the account and signs it in by setting the session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Registration data"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req CredentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return fail(c, h.log, err)
	}

	auth.SetSessionCookie(c, result.Token, result.Session.ExpiresAt, h.cookies)
	return c.JSON(http.StatusCreated, UserResponse{User: result.User})
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), c.RealIP(), req.Username, req.Password)
	if err != nil {
		return fail(c, h.log, err)
	}

	auth.SetSessionCookie(c, result.Token, result.Session.ExpiresAt, h.cookies)
	return c.JSON(http.StatusOK, UserResponse{User: result.User})
}

// Logout godoc
// @Summary Log out
// @Description Invalidates the current session and clears the cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session := currentSession(c)
	if session == nil {
		return fail(c, h.log, errors.ErrUnauthorized)
	}

	if err := h.authService.Logout(c.Request().Context(), session.ID); err != nil {
		return fail(c, h.log, err)
	}
	auth.DeleteSessionCookie(c, h.cookies)
	return c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, UserResponse{User: currentUser(c)})
}
