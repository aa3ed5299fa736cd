package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"portfolio/internal/errors"
)

// ProjectStatus represents the lifecycle stage of a project.
type ProjectStatus string

const (
	ProjectStatusPlanning    ProjectStatus = "planning"
	ProjectStatusInProgress  ProjectStatus = "in-progress"
	ProjectStatusCompleted   ProjectStatus = "completed"
	ProjectStatusMaintenance ProjectStatus = "maintenance"
)

// DefaultTechnologyColor is used when a technology has no color.
const DefaultTechnologyColor = "#6366f1"

// Valid reports whether s is one of the known statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusMaintenance:
		return true
	}
	return false
}

// Project is a portfolio entry owned by a user.
type Project struct {
	ID              string        `json:"id" gorm:"type:varchar(255);primaryKey"`
	UserID          string        `json:"user_id" gorm:"type:varchar(255);not null;index"`
	Title           string        `json:"title" gorm:"size:255;not null"`
	Description     string        `json:"description,omitempty" gorm:"type:text"`
	LongDescription string        `json:"long_description,omitempty" gorm:"type:text"`
	ImageURL        string        `json:"image_url,omitempty" gorm:"size:500"`
	DemoURL         string        `json:"demo_url,omitempty" gorm:"size:500"`
	CodeURL         string        `json:"code_url,omitempty" gorm:"size:500"`
	Status          ProjectStatus `json:"status" gorm:"size:20;not null;default:planning;check:chk_project_status,status IN ('planning','in-progress','completed','maintenance')"`
	Featured        bool          `json:"featured" gorm:"not null;default:false;index"`
	SortOrder       int           `json:"sort_order" gorm:"default:0"`
	CreatedAt       time.Time     `json:"created_at" gorm:"not null"`
	UpdatedAt       time.Time     `json:"updated_at" gorm:"not null"`

	// Relations
	User         *User               `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Technologies []ProjectTechnology `json:"technologies" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the table name stable across dialects.
func (Project) TableName() string { return "project" }

// BeforeCreate sets the UUID and default status before inserting.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = ProjectStatusPlanning
	}
	if !p.Status.Valid() {
		return errors.ErrInvalidStatus
	}
	return nil
}

// ProjectWithTechnologies is a project with its full technology list loaded.
type ProjectWithTechnologies = Project

// ProjectPatch carries the fields of a partial project update.
type ProjectPatch struct {
	Title           *string
	Description     *string
	LongDescription *string
	ImageURL        *string
	DemoURL         *string
	CodeURL         *string
	Status          *ProjectStatus
	Featured        *bool
	SortOrder       *int
}

// Changes returns the column set of the patch.
func (p ProjectPatch) Changes() map[string]any {
	changes := make(map[string]any)
	setIf(changes, "title", p.Title)
	setIf(changes, "description", p.Description)
	setIf(changes, "long_description", p.LongDescription)
	setIf(changes, "image_url", p.ImageURL)
	setIf(changes, "demo_url", p.DemoURL)
	setIf(changes, "code_url", p.CodeURL)
	setIf(changes, "status", p.Status)
	setIf(changes, "featured", p.Featured)
	setIf(changes, "sort_order", p.SortOrder)
	return changes
}

// ProjectTechnology is a technology tag attached to a project.
type ProjectTechnology struct {
	ID        string `json:"id" gorm:"type:varchar(255);primaryKey"`
	ProjectID string `json:"project_id" gorm:"type:varchar(255);not null;index"`
	Name      string `json:"name" gorm:"size:255;not null"`
	Category  string `json:"category,omitempty" gorm:"size:100"`
	Color     string `json:"color" gorm:"size:7;default:'#6366f1'"`
}

// TableName keeps the table name stable across dialects.
func (ProjectTechnology) TableName() string { return "project_technology" }

// BeforeCreate sets the UUID and default color before inserting.
func (t *ProjectTechnology) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Color == "" {
		t.Color = DefaultTechnologyColor
	}
	return nil
}

// TechnologyPatch carries the fields of a partial technology update.
type TechnologyPatch struct {
	Name     *string
	Category *string
	Color    *string
}

// Changes returns the column set of the patch.
func (p TechnologyPatch) Changes() map[string]any {
	changes := make(map[string]any)
	setIf(changes, "name", p.Name)
	setIf(changes, "category", p.Category)
	setIf(changes, "color", p.Color)
	return changes
}
