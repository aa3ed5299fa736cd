package auth

import (
	"context"
	"fmt"
	"time"

	"portfolio/internal/model"
	"portfolio/internal/repository"
)

const (
	// SessionLifetime is how long a session stays valid after creation or renewal.
	SessionLifetime = 30 * 24 * time.Hour
	// SessionRenewWindow is the remaining lifetime below which a session is extended.
	SessionRenewWindow = 15 * 24 * time.Hour
)

// SessionValidationResult is a live session together with its owner.
// Fresh is set when the expiry was pushed forward during validation, so the
// caller can re-issue the cookie.
type SessionValidationResult struct {
	Session *model.Session
	User    *model.User
	Fresh   bool
}

// SessionStore issues, validates and revokes database-backed sessions.
type SessionStore struct {
	sessions repository.SessionRepository
	now      func() time.Time
}

// NewSessionStore creates a session store over the given repository.
func NewSessionStore(sessions repository.SessionRepository) *SessionStore {
	return &SessionStore{
		sessions: sessions,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateSession persists a session for token, expiring SessionLifetime from now.
func (s *SessionStore) CreateSession(ctx context.Context, token, userID string) (*model.Session, error) {
	session := &model.Session{
		ID:        SessionIDFromToken(token),
		UserID:    userID,
		ExpiresAt: s.now().Add(SessionLifetime),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// Issue generates a token and creates its session. The token is returned to
// the caller for the cookie and is never stored.
func (s *SessionStore) Issue(ctx context.Context, userID string) (string, *model.Session, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return "", nil, err
	}
	session, err := s.CreateSession(ctx, token, userID)
	if err != nil {
		return "", nil, err
	}
	return token, session, nil
}

// ValidateSessionToken resolves token to a session and user. It returns nil
// when the token is unknown or the session has expired; expired rows are
// deleted on the way out.
func (s *SessionStore) ValidateSessionToken(ctx context.Context, token string) (*SessionValidationResult, error) {
	if token == "" {
		return nil, nil
	}
	id := SessionIDFromToken(token)

	session, err := s.sessions.FindWithUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil || session.User == nil {
		return nil, nil
	}

	now := s.now()
	if session.IsExpired(now) {
		if err := s.sessions.Delete(ctx, id); err != nil {
			return nil, fmt.Errorf("delete expired session: %w", err)
		}
		return nil, nil
	}

	result := &SessionValidationResult{Session: session, User: session.User}
	if !now.Before(session.ExpiresAt.Add(-SessionRenewWindow)) {
		expiresAt := now.Add(SessionLifetime)
		if err := s.sessions.UpdateExpiry(ctx, id, expiresAt); err != nil {
			return nil, fmt.Errorf("renew session: %w", err)
		}
		session.ExpiresAt = expiresAt
		result.Fresh = true
	}
	return result, nil
}

// InvalidateSession deletes a single session. Unknown ids are not an error.
func (s *SessionStore) InvalidateSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}

// InvalidateUserSessions deletes every session belonging to userID.
func (s *SessionStore) InvalidateUserSessions(ctx context.Context, userID string) error {
	if err := s.sessions.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("invalidate user sessions: %w", err)
	}
	return nil
}

// PruneExpired removes sessions that have already expired and reports how many.
func (s *SessionStore) PruneExpired(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return n, nil
}
