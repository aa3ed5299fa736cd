package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/logging"
	"portfolio/internal/model"
	"portfolio/internal/service"
)

// ProjectHandler serves the showcase, the dashboard and project editing.
type ProjectHandler struct {
	projects service.ProjectService
	log      logging.Logger
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projects service.ProjectService, log logging.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, log: log}
}

// TechnologyRequest describes a technology on create.
type TechnologyRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Category string `json:"category" validate:"omitempty,max=100"`
	Color    string `json:"color" validate:"omitempty,hexcolor,len=7"`
}

// CreateProjectRequest creates a project with its technologies.
type CreateProjectRequest struct {
	Title           string              `json:"title" validate:"required,max=255"`
	Description     string              `json:"description" validate:"omitempty,max=1000"`
	LongDescription string              `json:"long_description" validate:"omitempty,max=10000"`
	ImageURL        string              `json:"image_url" validate:"omitempty,url,max=500"`
	DemoURL         string              `json:"demo_url" validate:"omitempty,url,max=500"`
	CodeURL         string              `json:"code_url" validate:"omitempty,url,max=500"`
	Status          string              `json:"status" validate:"omitempty,oneof=planning in-progress completed maintenance"`
	Featured        bool                `json:"featured"`
	SortOrder       int                 `json:"sort_order"`
	Technologies    []TechnologyRequest `json:"technologies" validate:"omitempty,dive"`
}

// UpdateProjectRequest is a partial update. Absent fields are left unchanged.
type UpdateProjectRequest struct {
	Title           *string `json:"title" validate:"omitnil,min=1,max=255"`
	Description     *string `json:"description" validate:"omitnil,max=1000"`
	LongDescription *string `json:"long_description" validate:"omitnil,max=10000"`
	ImageURL        *string `json:"image_url" validate:"omitnil,omitempty,url,max=500"`
	DemoURL         *string `json:"demo_url" validate:"omitnil,omitempty,url,max=500"`
	CodeURL         *string `json:"code_url" validate:"omitnil,omitempty,url,max=500"`
	Status          *string `json:"status" validate:"omitnil,oneof=planning in-progress completed maintenance"`
	Featured        *bool   `json:"featured"`
	SortOrder       *int    `json:"sort_order"`
}

// UpdateTechnologyRequest is a partial technology update.
type UpdateTechnologyRequest struct {
	Name     *string `json:"name" validate:"omitnil,min=1,max=255"`
	Category *string `json:"category" validate:"omitnil,max=100"`
	Color    *string `json:"color" validate:"omitnil,hexcolor,len=7"`
}

// ProjectListResponse wraps a list of projects.
type ProjectListResponse struct {
	Projects []model.Project `json:"projects"`
}

// Featured godoc
// @Summary Featured projects
// @Description Public showcase: featured projects with their technologies, by sort order then newest.
// @Tags projects
// @Produce json
// @Success 200 {object} ProjectListResponse
// @Router /projects/featured [get]
func (h *ProjectHandler) Featured(c echo.Context) error {
	projects, err := h.projects.Featured(c.Request().Context())
	if err != nil {
		// The showcase degrades to an empty list.
		h.log.Error(c.Request().Context(), "load featured projects", "error", err)
		projects = nil
	}
	return c.JSON(http.StatusOK, ProjectListResponse{Projects: nonNil(projects)})
}

// Get godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} model.Project
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.projects.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, project)
}

// Dashboard godoc
// @Summary List my projects
// @Description Featured first, then by sort order, then newest.
// @Tags projects
// @Produce json
// @Success 200 {object} ProjectListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /dashboard/projects [get]
func (h *ProjectHandler) Dashboard(c echo.Context) error {
	projects, err := h.projects.ListForUser(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, ProjectListResponse{Projects: nonNil(projects)})
}

// Create godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param request body CreateProjectRequest true "Project"
// @Success 201 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req CreateProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	technologies := make([]service.TechnologyInput, 0, len(req.Technologies))
	for _, t := range req.Technologies {
		technologies = append(technologies, service.TechnologyInput{Name: t.Name, Category: t.Category, Color: t.Color})
	}

	project, err := h.projects.Create(c.Request().Context(), currentUser(c).ID, service.ProjectInput{
		Title:           req.Title,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		ImageURL:        req.ImageURL,
		DemoURL:         req.DemoURL,
		CodeURL:         req.CodeURL,
		Status:          model.ProjectStatus(req.Status),
		Featured:        req.Featured,
		SortOrder:       req.SortOrder,
	}, technologies)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, project)
}

// Update godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body UpdateProjectRequest true "Changed fields"
// @Success 200 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [patch]
func (h *ProjectHandler) Update(c echo.Context) error {
	var req UpdateProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := model.ProjectPatch{
		Title:           req.Title,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		ImageURL:        req.ImageURL,
		DemoURL:         req.DemoURL,
		CodeURL:         req.CodeURL,
		Featured:        req.Featured,
		SortOrder:       req.SortOrder,
	}
	if req.Status != nil {
		status := model.ProjectStatus(*req.Status)
		patch.Status = &status
	}

	project, err := h.projects.Update(c.Request().Context(), currentUser(c).ID, c.Param("id"), patch)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, project)
}

// Delete godoc
// @Summary Delete a project
// @Tags projects
// @Param id path string true "Project ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.projects.Delete(c.Request().Context(), currentUser(c).ID, c.Param("id")); err != nil {
		return fail(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddTechnology godoc
// @Summary Add a technology to a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body TechnologyRequest true "Technology"
// @Success 201 {object} model.ProjectTechnology
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/technologies [post]
func (h *ProjectHandler) AddTechnology(c echo.Context) error {
	var req TechnologyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	tech, err := h.projects.AddTechnology(c.Request().Context(), currentUser(c).ID, c.Param("id"),
		service.TechnologyInput{Name: req.Name, Category: req.Category, Color: req.Color})
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, tech)
}

// UpdateTechnology godoc
// @Summary Update a technology
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param techId path string true "Technology ID"
// @Param request body UpdateTechnologyRequest true "Changed fields"
// @Success 200 {object} model.ProjectTechnology
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/technologies/{techId} [patch]
func (h *ProjectHandler) UpdateTechnology(c echo.Context) error {
	var req UpdateTechnologyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	tech, err := h.projects.UpdateTechnology(c.Request().Context(), currentUser(c).ID, c.Param("id"), c.Param("techId"),
		model.TechnologyPatch{Name: req.Name, Category: req.Category, Color: req.Color})
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, tech)
}

// RemoveTechnology godoc
// @Summary Remove a technology
// @Tags projects
// @Param id path string true "Project ID"
// @Param techId path string true "Technology ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/technologies/{techId} [delete]
func (h *ProjectHandler) RemoveTechnology(c echo.Context) error {
	if err := h.projects.RemoveTechnology(c.Request().Context(), currentUser(c).ID, c.Param("id"), c.Param("techId")); err != nil {
		return fail(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func nonNil(projects []model.Project) []model.Project {
	if projects == nil {
		return []model.Project{}
	}
	return projects
}
