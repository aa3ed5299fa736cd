package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"portfolio/internal/auth"
	"portfolio/internal/errors"
	"portfolio/internal/logging"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

const preferencesKeyPrefix = "prefs:"

// Preferences are per-user display and notification settings.
type Preferences struct {
	EmailNotifications bool `json:"email_notifications"`
	DarkMode           bool `json:"dark_mode"`
}

// DefaultPreferences is returned for users who never saved any.
func DefaultPreferences() Preferences {
	return Preferences{EmailNotifications: true}
}

// KeyValueStore persists small blobs. The cache client satisfies it.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ProfileInput is a profile update. Email is optional: blank keeps the stored
// address. Nil optional fields are left untouched.
type ProfileInput struct {
	Username  string
	Email     string
	FirstName *string
	LastName  *string
	Bio       *string
	Website   *string
	Location  *string
}

// SettingsService manages the signed-in user's own account.
type SettingsService interface {
	Profile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*model.User, error)
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	ClearSessions(ctx context.Context, userID string) error
	GetPreferences(ctx context.Context, userID string) (Preferences, error)
	SavePreferences(ctx context.Context, userID string, prefs Preferences) error
	DeleteAccount(ctx context.Context, userID string) error
}

type settingsService struct {
	users    repository.UserRepository
	sessions SessionManager
	hasher   auth.PasswordHasher
	prefs    KeyValueStore
	log      logging.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(
	users repository.UserRepository,
	sessions SessionManager,
	hasher auth.PasswordHasher,
	prefs KeyValueStore,
	log logging.Logger,
) SettingsService {
	return &settingsService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		prefs:    prefs,
		log:      log,
	}
}

func (s *settingsService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile changes username, email and the descriptive fields.
func (s *settingsService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*model.User, error) {
	current, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	patch := model.UserPatch{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		Website:   in.Website,
		Location:  in.Location,
	}

	usernameChanged := in.Username != "" && in.Username != current.Username
	if usernameChanged {
		other, err := s.users.FindByUsername(ctx, in.Username)
		if err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		}
		if other != nil && other.ID != userID {
			return nil, errors.ErrUsernameTaken
		}
		patch.Username = &in.Username
	}

	if email := strings.TrimSpace(in.Email); email != "" {
		other, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if other != nil && other.ID != userID {
			return nil, errors.ErrEmailTaken
		}
		patch.Email = &email
	}

	updated, err := s.users.Update(ctx, userID, patch)
	if err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			if usernameChanged {
				return nil, errors.ErrUsernameTaken
			}
			return nil, errors.ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if updated == nil {
		return nil, errors.ErrUserNotFound
	}
	s.log.Info(ctx, "profile updated", "user_id", userID)
	return updated, nil
}

// UpdatePassword replaces the password after checking the current one.
// Existing sessions stay valid.
func (s *settingsService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(user.PasswordHash, currentPassword)
	if err != nil {
		return fmt.Errorf("verify password for user %s: %w", userID, err)
	}
	if !ok {
		return errors.ErrIncorrectPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	updated, err := s.users.Update(ctx, userID, model.UserPatch{PasswordHash: &hash})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if updated == nil {
		return errors.ErrUserNotFound
	}
	s.log.Info(ctx, "password changed", "user_id", userID)
	return nil
}

// ClearSessions signs the user out everywhere, including the current session.
func (s *settingsService) ClearSessions(ctx context.Context, userID string) error {
	if err := s.sessions.InvalidateUserSessions(ctx, userID); err != nil {
		return err
	}
	s.log.Info(ctx, "all sessions cleared", "user_id", userID)
	return nil
}

func (s *settingsService) GetPreferences(ctx context.Context, userID string) (Preferences, error) {
	raw, err := s.prefs.Get(ctx, preferencesKeyPrefix+userID)
	if err != nil {
		return Preferences{}, fmt.Errorf("load preferences: %w", err)
	}
	if raw == nil {
		return DefaultPreferences(), nil
	}
	var prefs Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		s.log.Warn(ctx, "discarding unreadable preferences", "user_id", userID, "error", err)
		return DefaultPreferences(), nil
	}
	return prefs, nil
}

func (s *settingsService) SavePreferences(ctx context.Context, userID string, prefs Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := s.prefs.Set(ctx, preferencesKeyPrefix+userID, raw, 0); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	s.log.Info(ctx, "preferences saved", "user_id", userID,
		"email_notifications", prefs.EmailNotifications, "dark_mode", prefs.DarkMode)
	return nil
}

// DeleteAccount removes the user. Sessions, projects and technologies go
// with it through the foreign keys.
func (s *settingsService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if err := s.prefs.Delete(ctx, preferencesKeyPrefix+userID); err != nil {
		s.log.Warn(ctx, "failed to drop preferences", "user_id", userID, "error", err)
	}
	s.log.Info(ctx, "account deleted", "user_id", userID)
	return nil
}
