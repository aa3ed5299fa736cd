package service

import (
	"context"

	"portfolio/internal/errors"
	"portfolio/internal/logging"
)

// ContactMessage is a visitor's message from the contact form.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactService accepts contact form submissions.
type ContactService interface {
	Submit(ctx context.Context, remoteIP string, msg ContactMessage) error
}

type contactService struct {
	limiter Limiter
	log     logging.Logger
}

// NewContactService creates a contact service limited per remote address.
func NewContactService(limiter Limiter, log logging.Logger) ContactService {
	return &contactService{limiter: limiter, log: log}
}

// Submit records the message. Delivery is a log entry; there is no mail
// transport.
func (s *contactService) Submit(ctx context.Context, remoteIP string, msg ContactMessage) error {
	if !s.limiter.Allow(ctx, remoteIP) {
		s.log.Warn(ctx, "contact form throttled", "remote_ip", remoteIP)
		return errors.ErrTooManyAttempts
	}
	s.log.Info(ctx, "contact message received",
		"remote_ip", remoteIP,
		"name", msg.Name,
		"email", msg.Email,
		"subject", msg.Subject,
		"length", len(msg.Message),
	)
	return nil
}
