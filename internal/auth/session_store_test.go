package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/db/dbtest"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

type sessionFixture struct {
	store    *SessionStore
	sessions repository.SessionRepository
	users    repository.UserRepository
	clock    time.Time
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	gormDB := dbtest.New(t)
	f := &sessionFixture{
		sessions: repository.NewSessionRepository(gormDB),
		users:    repository.NewUserRepository(gormDB),
		clock:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.store = NewSessionStore(f.sessions)
	f.store.now = func() time.Time { return f.clock }
	return f
}

func (f *sessionFixture) seedUser(t *testing.T, id, username string) *model.User {
	t.Helper()
	user := &model.User{ID: id, Username: username, PasswordHash: "hash"}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func TestSessionStore_IssueAndValidate(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	f.seedUser(t, "u1", "alice")

	token, session, err := f.store.Issue(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, SessionIDFromToken(token), session.ID)
	assert.Equal(t, f.clock.Add(SessionLifetime), session.ExpiresAt)

	result, err := f.store.ValidateSessionToken(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "alice", result.User.Username)
	assert.Equal(t, session.ID, result.Session.ID)
	assert.False(t, result.Fresh)
}

func TestSessionStore_ValidateUnknownToken(t *testing.T) {
	f := newSessionFixture(t)

	result, err := f.store.ValidateSessionToken(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, result)

	result, err = f.store.ValidateSessionToken(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestSessionStore_ExpiredSessionIsDeleted(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	f.seedUser(t, "u1", "alice")

	token, session, err := f.store.Issue(ctx, "u1")
	require.NoError(t, err)

	f.clock = f.clock.Add(SessionLifetime)
	result, err := f.store.ValidateSessionToken(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, result, "a session at its expiry instant is no longer valid")

	row, err := f.sessions.FindWithUser(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestSessionStore_RenewsInsideWindow(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	f.seedUser(t, "u1", "alice")

	token, session, err := f.store.Issue(ctx, "u1")
	require.NoError(t, err)
	original := session.ExpiresAt

	// Outside the renewal window: untouched.
	f.clock = f.clock.Add(14 * 24 * time.Hour)
	result, err := f.store.ValidateSessionToken(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Fresh)
	assert.True(t, result.Session.ExpiresAt.Equal(original))

	// Sixteen days in, fourteen remain: renewed to a full lifetime.
	f.clock = f.clock.Add(2 * 24 * time.Hour)
	result, err = f.store.ValidateSessionToken(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Fresh)
	assert.True(t, result.Session.ExpiresAt.Equal(f.clock.Add(SessionLifetime)))

	row, err := f.sessions.FindWithUser(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, row.ExpiresAt.Equal(f.clock.Add(SessionLifetime)), "renewal is persisted")
}

func TestSessionStore_Invalidate(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	f.seedUser(t, "u1", "alice")
	f.seedUser(t, "u2", "bob")

	t1, s1, err := f.store.Issue(ctx, "u1")
	require.NoError(t, err)
	t2, _, err := f.store.Issue(ctx, "u1")
	require.NoError(t, err)
	t3, _, err := f.store.Issue(ctx, "u2")
	require.NoError(t, err)

	require.NoError(t, f.store.InvalidateSession(ctx, s1.ID))
	result, err := f.store.ValidateSessionToken(ctx, t1)
	require.NoError(t, err)
	assert.Nil(t, result)

	require.NoError(t, f.store.InvalidateUserSessions(ctx, "u1"))
	result, err = f.store.ValidateSessionToken(ctx, t2)
	require.NoError(t, err)
	assert.Nil(t, result)

	result, err = f.store.ValidateSessionToken(ctx, t3)
	require.NoError(t, err)
	assert.NotNil(t, result, "other users keep their sessions")

	assert.NoError(t, f.store.InvalidateSession(ctx, "missing"))
}

func TestSessionStore_PruneExpired(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	f.seedUser(t, "u1", "alice")

	_, _, err := f.store.Issue(ctx, "u1")
	require.NoError(t, err)
	f.clock = f.clock.Add(10 * 24 * time.Hour)
	live, _, err := f.store.Issue(ctx, "u1")
	require.NoError(t, err)

	f.clock = f.clock.Add(25 * 24 * time.Hour)
	n, err := f.store.PruneExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	result, err := f.store.ValidateSessionToken(ctx, live)
	require.NoError(t, err)
	assert.NotNil(t, result)
}
