package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portfolio/internal/model"
)

const (
	// owner dashboard: featured first, then sort order, newest first
	userProjectsOrder = "featured DESC, sort_order ASC, created_at DESC"
	// public showcase
	featuredProjectsOrder = "sort_order ASC, created_at DESC"
)

// ProjectRepository defines project and technology persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id string) (*model.ProjectWithTechnologies, error)
	ListByUserID(ctx context.Context, userID string) ([]model.Project, error)
	ListFeatured(ctx context.Context) ([]model.Project, error)
	ListFeaturedWithTechnologies(ctx context.Context) ([]model.ProjectWithTechnologies, error)
	Update(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error)
	Delete(ctx context.Context, id string) error

	AddTechnology(ctx context.Context, tech *model.ProjectTechnology) error
	FindTechnology(ctx context.Context, projectID, techID string) (*model.ProjectTechnology, error)
	UpdateTechnology(ctx context.Context, projectID, techID string, patch model.TechnologyPatch) (*model.ProjectTechnology, error)
	RemoveTechnology(ctx context.Context, projectID, techID string) (bool, error)
}

type projectRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db, now: utcNow}
}

// Create inserts the project row only; technologies are added separately.
func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

// FindByID returns the project with its technologies, or nil when absent.
func (r *projectRepository) FindByID(ctx context.Context, id string) (*model.ProjectWithTechnologies, error) {
	var project model.Project
	err := r.db.WithContext(ctx).Preload("Technologies").Where("id = ?", id).Take(&project).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	project.Technologies = nonNilTechnologies(project.Technologies)
	return &project, nil
}

// ListByUserID lists every project owned by userID with its technologies.
func (r *projectRepository) ListByUserID(ctx context.Context, userID string) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).
		Preload("Technologies").
		Where("user_id = ?", userID).
		Order(userProjectsOrder).
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return withTechnologyLists(projects), nil
}

// ListFeatured lists featured projects across all users.
func (r *projectRepository) ListFeatured(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).
		Where("featured = ?", true).
		Order(featuredProjectsOrder).
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListFeaturedWithTechnologies is ListFeatured with technologies preloaded.
func (r *projectRepository) ListFeaturedWithTechnologies(ctx context.Context) ([]model.ProjectWithTechnologies, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).
		Preload("Technologies").
		Where("featured = ?", true).
		Order(featuredProjectsOrder).
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return withTechnologyLists(projects), nil
}

// Update applies the non-nil fields of patch and refreshes updated_at.
// It returns the stored row with its technologies, or nil if no project has
// that id.
func (r *projectRepository) Update(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error) {
	changes := mergeAndStamp(patch.Changes(), r.now())
	if err := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", id).Updates(changes).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete removes the project; its technologies are removed by the foreign key.
func (r *projectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Project{}).Error
}

func (r *projectRepository) AddTechnology(ctx context.Context, tech *model.ProjectTechnology) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(tech).Error
}

// FindTechnology returns the technology scoped to projectID, or nil when absent.
func (r *projectRepository) FindTechnology(ctx context.Context, projectID, techID string) (*model.ProjectTechnology, error) {
	var tech model.ProjectTechnology
	err := r.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", techID, projectID).
		Take(&tech).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tech, nil
}

// UpdateTechnology applies patch to the technology. The table carries no
// updated_at column, so nothing is stamped.
func (r *projectRepository) UpdateTechnology(ctx context.Context, projectID, techID string, patch model.TechnologyPatch) (*model.ProjectTechnology, error) {
	changes := patch.Changes()
	if len(changes) > 0 {
		if err := r.db.WithContext(ctx).Model(&model.ProjectTechnology{}).
			Where("id = ? AND project_id = ?", techID, projectID).
			Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return r.FindTechnology(ctx, projectID, techID)
}

// RemoveTechnology deletes the technology and reports whether a row was removed.
func (r *projectRepository) RemoveTechnology(ctx context.Context, projectID, techID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", techID, projectID).
		Delete(&model.ProjectTechnology{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func nonNilTechnologies(techs []model.ProjectTechnology) []model.ProjectTechnology {
	if techs == nil {
		return []model.ProjectTechnology{}
	}
	return techs
}

func withTechnologyLists(projects []model.Project) []model.Project {
	for i := range projects {
		projects[i].Technologies = nonNilTechnologies(projects[i].Technologies)
	}
	return projects
}
