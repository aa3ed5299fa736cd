package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"portfolio/internal/auth"
	"portfolio/internal/errors"
	"portfolio/internal/logging"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

// SessionManager is the part of the session store used by services.
type SessionManager interface {
	Issue(ctx context.Context, userID string) (string, *model.Session, error)
	ValidateSessionToken(ctx context.Context, token string) (*auth.SessionValidationResult, error)
	InvalidateSession(ctx context.Context, sessionID string) error
	InvalidateUserSessions(ctx context.Context, userID string) error
}

// Limiter throttles repeated attempts per key.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
	Reset(ctx context.Context, key string)
}

// LoginResult is a signed-in user and the raw token for the session cookie.
type LoginResult struct {
	User    *model.User
	Session *model.Session
	Token   string
}

// AuthService handles registration, login and session lookups.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*LoginResult, error)
	Login(ctx context.Context, remoteIP, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, token string) (*auth.SessionValidationResult, error)
}

type authService struct {
	users    repository.UserRepository
	sessions SessionManager
	hasher   auth.PasswordHasher
	limiter  Limiter
	log      logging.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	sessions SessionManager,
	hasher auth.PasswordHasher,
	limiter Limiter,
	log logging.Logger,
) AuthService {
	return &authService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		limiter:  limiter,
		log:      log,
	}
}

// Register creates a user with a hashed password and signs them in.
func (s *authService) Register(ctx context.Context, username, password string) (*LoginResult, error) {
	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	id, err := auth.GenerateUserID()
	if err != nil {
		return nil, fmt.Errorf("generate user id: %w", err)
	}

	user := &model.User{ID: id, Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info(ctx, "user registered", "user_id", user.ID)

	return s.startSession(ctx, user)
}

// Login verifies credentials and opens a new session. Unknown usernames and
// wrong passwords are indistinguishable to the caller. Attempts are counted
// per username and client address, so failures from one address cannot lock
// the account out for everyone else.
func (s *authService) Login(ctx context.Context, remoteIP, username, password string) (*LoginResult, error) {
	key := loginThrottleKey(remoteIP, username)
	if !s.limiter.Allow(ctx, key) {
		s.log.Warn(ctx, "login throttled", "username", username, "remote_ip", remoteIP)
		return nil, errors.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, errors.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("verify password for user %s: %w", user.ID, err)
	}
	if !ok {
		return nil, errors.ErrInvalidCredentials
	}

	s.limiter.Reset(ctx, key)
	return s.startSession(ctx, user)
}

// Logout invalidates a single session.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.InvalidateSession(ctx, sessionID)
}

// Authenticate resolves a cookie token. A nil result means no valid session.
func (s *authService) Authenticate(ctx context.Context, token string) (*auth.SessionValidationResult, error) {
	return s.sessions.ValidateSessionToken(ctx, token)
}

func loginThrottleKey(remoteIP, username string) string {
	return strings.ToLower(username) + "@" + remoteIP
}

func (s *authService) startSession(ctx context.Context, user *model.User) (*LoginResult, error) {
	token, session, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}
	return &LoginResult{User: user, Session: session, Token: token}, nil
}
