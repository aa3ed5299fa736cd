package service

import (
	"context"
	"fmt"

	"portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

// PublicProfile is what visitors see for a portfolio owner.
type PublicProfile struct {
	User     *model.User     `json:"user"`
	Projects []model.Project `json:"projects"`
}

// UserService exposes read-only views of users.
type UserService interface {
	PublicProfile(ctx context.Context, username string) (*PublicProfile, error)
}

type userService struct {
	users    repository.UserRepository
	projects repository.ProjectRepository
}

// NewUserService builds a UserService over the user and project repositories.
func NewUserService(users repository.UserRepository, projects repository.ProjectRepository) UserService {
	return &userService{users: users, projects: projects}
}

func (s *userService) PublicProfile(ctx context.Context, username string) (*PublicProfile, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	projects, err := s.projects.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	if projects == nil {
		projects = []model.Project{}
	}

	// Email is private.
	public := *user
	public.Email = nil
	return &PublicProfile{User: &public, Projects: projects}, nil
}
