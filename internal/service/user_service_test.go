package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portfolio/internal/errors"
	"portfolio/internal/model"
)

func TestUserService_PublicProfile(t *testing.T) {
	email := "joshua@example.com"
	users := new(MockUserRepository)
	projects := new(MockProjectRepository)

	users.On("FindByUsername", mock.Anything, "joshua").
		Return(&model.User{ID: "u1", Username: "joshua", Email: &email}, nil)
	users.On("FindByUsername", mock.Anything, "ghost").Return(nil, nil)
	projects.On("ListByUserID", mock.Anything, "u1").Return([]model.Project{{ID: "p1"}}, nil)

	svc := NewUserService(users, projects)

	profile, err := svc.PublicProfile(context.Background(), "joshua")
	require.NoError(t, err)
	assert.Equal(t, "joshua", profile.User.Username)
	assert.Nil(t, profile.User.Email, "email is not part of the public profile")
	assert.Len(t, profile.Projects, 1)

	_, err = svc.PublicProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, errors.ErrUserNotFound)

	users.AssertExpectations(t)
	projects.AssertExpectations(t)
}
