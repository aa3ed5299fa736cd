package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/logging"
	"portfolio/internal/service"
)

// ContactHandler accepts messages from the contact form.
type ContactHandler struct {
	contact service.ContactService
	log     logging.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contact service.ContactService, log logging.Logger) *ContactHandler {
	return &ContactHandler{contact: contact, log: log}
}

// ContactRequest is a contact form submission.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// Submit godoc
// @Summary Send a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Message"
// @Success 202 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req ContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	err := h.contact.Submit(c.Request().Context(), c.RealIP(), service.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusAccepted, MessageResponse{Message: "Thanks for reaching out!"})
}
