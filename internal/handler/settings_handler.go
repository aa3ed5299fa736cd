package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"portfolio/internal/auth"
	"portfolio/internal/logging"
	"portfolio/internal/model"
	"portfolio/internal/service"
)

// SettingsHandler serves the signed-in user's settings.
type SettingsHandler struct {
	settings service.SettingsService
	cookies  auth.CookieOptions
	log      logging.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(settings service.SettingsService, cookies auth.CookieOptions, log logging.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, cookies: cookies, log: log}
}

// SettingsResponse is the settings page payload.
type SettingsResponse struct {
	User        *model.User         `json:"user"`
	Preferences service.Preferences `json:"preferences"`
}

// ProfileRequest updates the profile. A blank email keeps the current one.
type ProfileRequest struct {
	Username  string  `json:"username" validate:"required,username"`
	Email     string  `json:"email" validate:"omitempty,email,max=255"`
	FirstName *string `json:"first_name" validate:"omitnil,max=255"`
	LastName  *string `json:"last_name" validate:"omitnil,max=255"`
	Bio       *string `json:"bio" validate:"omitnil,max=2000"`
	Website   *string `json:"website" validate:"omitnil,omitempty,url,max=500"`
	Location  *string `json:"location" validate:"omitnil,max=255"`
}

// PasswordRequest changes the password.
type PasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,strongpassword,nefield=CurrentPassword"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// PreferencesRequest saves display and notification preferences.
type PreferencesRequest struct {
	EmailNotifications bool `json:"email_notifications"`
	DarkMode           bool `json:"dark_mode"`
}

// Get godoc
// @Summary Load settings
// @Tags settings
// @Produce json
// @Success 200 {object} SettingsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /settings [get]
func (h *SettingsHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	userID := currentUser(c).ID

	user, err := h.settings.Profile(ctx, userID)
	if err != nil {
		return fail(c, h.log, err)
	}
	prefs, err := h.settings.GetPreferences(ctx, userID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, SettingsResponse{User: user, Preferences: prefs})
}

// UpdateProfile godoc
// @Summary Update profile
// @Tags settings
// @Accept json
// @Produce json
// @Param request body ProfileRequest true "Profile"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /settings/profile [put]
func (h *SettingsHandler) UpdateProfile(c echo.Context) error {
	var req ProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := validate(c, &req); err != nil {
		return err
	}

	user, err := h.settings.UpdateProfile(c.Request().Context(), currentUser(c).ID, service.ProfileInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Website:   req.Website,
		Location:  req.Location,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, UserResponse{User: user})
}

// UpdatePassword godoc
// @Summary Change password
// @Tags settings
// @Accept json
// @Produce json
// @Param request body PasswordRequest true "Passwords"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /settings/password [put]
func (h *SettingsHandler) UpdatePassword(c echo.Context) error {
	var req PasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.settings.UpdatePassword(c.Request().Context(), currentUser(c).ID, req.CurrentPassword, req.NewPassword); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password updated successfully!"})
}

// ClearSessions godoc
// @Summary Log out everywhere
// @Description Invalidates every session of the user, including this one.
// @Tags settings
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /settings/sessions [delete]
func (h *SettingsHandler) ClearSessions(c echo.Context) error {
	if err := h.settings.ClearSessions(c.Request().Context(), currentUser(c).ID); err != nil {
		return fail(c, h.log, err)
	}
	auth.DeleteSessionCookie(c, h.cookies)
	return c.JSON(http.StatusOK, MessageResponse{Message: "All sessions cleared"})
}

// GetPreferences godoc
// @Summary Load preferences
// @Tags settings
// @Produce json
// @Success 200 {object} service.Preferences
// @Failure 401 {object} errors.ErrorResponse
// @Router /settings/preferences [get]
func (h *SettingsHandler) GetPreferences(c echo.Context) error {
	prefs, err := h.settings.GetPreferences(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, prefs)
}

// SavePreferences godoc
// @Summary Save preferences
// @Tags settings
// @Accept json
// @Produce json
// @Param request body PreferencesRequest true "Preferences"
// @Success 200 {object} service.Preferences
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /settings/preferences [put]
func (h *SettingsHandler) SavePreferences(c echo.Context) error {
	var req PreferencesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	prefs := service.Preferences{EmailNotifications: req.EmailNotifications, DarkMode: req.DarkMode}
	if err := h.settings.SavePreferences(c.Request().Context(), currentUser(c).ID, prefs); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, prefs)
}

// DeleteAccount godoc
// @Summary Delete account
// @Description Removes the user together with their sessions and projects.
// @Tags settings
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /settings/account [delete]
func (h *SettingsHandler) DeleteAccount(c echo.Context) error {
	if err := h.settings.DeleteAccount(c.Request().Context(), currentUser(c).ID); err != nil {
		return fail(c, h.log, err)
	}
	auth.DeleteSessionCookie(c, h.cookies)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Account deleted"})
}
