package service

import (
	"context"
	"fmt"

	"portfolio/internal/errors"
	"portfolio/internal/logging"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

// ProjectInput holds the fields of a new project.
type ProjectInput struct {
	Title           string
	Description     string
	LongDescription string
	ImageURL        string
	DemoURL         string
	CodeURL         string
	Status          model.ProjectStatus
	Featured        bool
	SortOrder       int
}

// TechnologyInput holds the fields of a new technology.
type TechnologyInput struct {
	Name     string
	Category string
	Color    string
}

// ProjectService handles portfolio projects and their technologies.
// Every mutation requires the caller to own the project.
type ProjectService interface {
	ListForUser(ctx context.Context, userID string) ([]model.Project, error)
	Featured(ctx context.Context) ([]model.ProjectWithTechnologies, error)
	Get(ctx context.Context, projectID string) (*model.ProjectWithTechnologies, error)
	Create(ctx context.Context, userID string, in ProjectInput, technologies []TechnologyInput) (*model.ProjectWithTechnologies, error)
	Update(ctx context.Context, userID, projectID string, patch model.ProjectPatch) (*model.Project, error)
	Delete(ctx context.Context, userID, projectID string) error
	AddTechnology(ctx context.Context, userID, projectID string, in TechnologyInput) (*model.ProjectTechnology, error)
	UpdateTechnology(ctx context.Context, userID, projectID, techID string, patch model.TechnologyPatch) (*model.ProjectTechnology, error)
	RemoveTechnology(ctx context.Context, userID, projectID, techID string) error
}

type projectService struct {
	projects repository.ProjectRepository
	log      logging.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(projects repository.ProjectRepository, log logging.Logger) ProjectService {
	return &projectService{projects: projects, log: log}
}

// ListForUser returns the dashboard list: featured first, then sort order,
// then newest.
func (s *projectService) ListForUser(ctx context.Context, userID string) ([]model.Project, error) {
	projects, err := s.projects.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Featured returns the public showcase with technologies loaded.
func (s *projectService) Featured(ctx context.Context) ([]model.ProjectWithTechnologies, error) {
	projects, err := s.projects.ListFeaturedWithTechnologies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list featured projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) Get(ctx context.Context, projectID string) (*model.ProjectWithTechnologies, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	if project == nil {
		return nil, errors.ErrProjectNotFound
	}
	return project, nil
}

// Create inserts the project and then each technology in order. The inserts
// are not wrapped in a transaction: a failure part way leaves the project
// with the technologies added so far.
func (s *projectService) Create(ctx context.Context, userID string, in ProjectInput, technologies []TechnologyInput) (*model.ProjectWithTechnologies, error) {
	if in.Status != "" && !in.Status.Valid() {
		return nil, errors.ErrInvalidStatus
	}

	project := &model.Project{
		UserID:          userID,
		Title:           in.Title,
		Description:     in.Description,
		LongDescription: in.LongDescription,
		ImageURL:        in.ImageURL,
		DemoURL:         in.DemoURL,
		CodeURL:         in.CodeURL,
		Status:          in.Status,
		Featured:        in.Featured,
		SortOrder:       in.SortOrder,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	for _, t := range technologies {
		tech := &model.ProjectTechnology{
			ProjectID: project.ID,
			Name:      t.Name,
			Category:  t.Category,
			Color:     t.Color,
		}
		if err := s.projects.AddTechnology(ctx, tech); err != nil {
			return nil, fmt.Errorf("add technology %q to project %s: %w", t.Name, project.ID, err)
		}
	}
	s.log.Info(ctx, "project created", "project_id", project.ID, "user_id", userID,
		"technologies", len(technologies))

	return s.Get(ctx, project.ID)
}

func (s *projectService) Update(ctx context.Context, userID, projectID string, patch model.ProjectPatch) (*model.Project, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, errors.ErrInvalidStatus
	}
	if _, err := s.owned(ctx, userID, projectID); err != nil {
		return nil, err
	}

	project, err := s.projects.Update(ctx, projectID, patch)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if project == nil {
		return nil, errors.ErrProjectNotFound
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, userID, projectID string) error {
	if _, err := s.owned(ctx, userID, projectID); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	s.log.Info(ctx, "project deleted", "project_id", projectID, "user_id", userID)
	return nil
}

func (s *projectService) AddTechnology(ctx context.Context, userID, projectID string, in TechnologyInput) (*model.ProjectTechnology, error) {
	if _, err := s.owned(ctx, userID, projectID); err != nil {
		return nil, err
	}
	tech := &model.ProjectTechnology{
		ProjectID: projectID,
		Name:      in.Name,
		Category:  in.Category,
		Color:     in.Color,
	}
	if err := s.projects.AddTechnology(ctx, tech); err != nil {
		return nil, fmt.Errorf("add technology: %w", err)
	}
	return tech, nil
}

func (s *projectService) UpdateTechnology(ctx context.Context, userID, projectID, techID string, patch model.TechnologyPatch) (*model.ProjectTechnology, error) {
	if _, err := s.owned(ctx, userID, projectID); err != nil {
		return nil, err
	}
	tech, err := s.projects.UpdateTechnology(ctx, projectID, techID, patch)
	if err != nil {
		return nil, fmt.Errorf("update technology: %w", err)
	}
	if tech == nil {
		return nil, errors.ErrTechnologyNotFound
	}
	return tech, nil
}

func (s *projectService) RemoveTechnology(ctx context.Context, userID, projectID, techID string) error {
	if _, err := s.owned(ctx, userID, projectID); err != nil {
		return err
	}
	removed, err := s.projects.RemoveTechnology(ctx, projectID, techID)
	if err != nil {
		return fmt.Errorf("remove technology: %w", err)
	}
	if !removed {
		return errors.ErrTechnologyNotFound
	}
	return nil
}

func (s *projectService) owned(ctx context.Context, userID, projectID string) (*model.ProjectWithTechnologies, error) {
	project, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, errors.ErrForbidden
	}
	return project, nil
}
