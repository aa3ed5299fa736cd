package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/logging"
	"portfolio/internal/service"
)

// UserHandler serves public user profiles.
type UserHandler struct {
	svc service.UserService
	log logging.Logger
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, log logging.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// GetProfile godoc
// @Summary Public profile
// @Description A user's public profile and project list.
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} service.PublicProfile
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{username} [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	profile, err := h.svc.PublicProfile(c.Request().Context(), c.Param("username"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, profile)
}
