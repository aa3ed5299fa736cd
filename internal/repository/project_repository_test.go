package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/model"
)

func TestProjectRepository_ListFeatured(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	seedUser(t, NewUserRepository(gormDB), "u1", "joshua")
	repo := NewProjectRepository(gormDB)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seedProject(t, repo, "u1", "A", true, 2, base)
	seedProject(t, repo, "u1", "B", true, 1, base)
	seedProject(t, repo, "u1", "C", false, 1, base)

	featured, err := repo.ListFeatured(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, titles(featured))
}

func TestProjectRepository_ListFeaturedTieBreaksByNewest(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	seedUser(t, NewUserRepository(gormDB), "u1", "joshua")
	repo := NewProjectRepository(gormDB)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seedProject(t, repo, "u1", "older", true, 1, base)
	seedProject(t, repo, "u1", "newer", true, 1, base.Add(2*time.Hour))
	seedProject(t, repo, "u1", "first", true, 0, base.Add(-time.Hour))

	featured, err := repo.ListFeaturedWithTechnologies(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "newer", "older"}, titles(featured))
}

func TestProjectRepository_ListByUserIDOrdering(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	seedUser(t, users, "u1", "joshua")
	seedUser(t, users, "u2", "other")
	repo := NewProjectRepository(gormDB)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seedProject(t, repo, "u1", "plain-0", false, 0, base)
	seedProject(t, repo, "u1", "featured-5", true, 5, base)
	seedProject(t, repo, "u1", "featured-1-old", true, 1, base)
	seedProject(t, repo, "u1", "featured-1-new", true, 1, base.Add(time.Hour))
	seedProject(t, repo, "u2", "someone-else", true, 0, base)

	projects, err := repo.ListByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"featured-1-new", "featured-1-old", "featured-5", "plain-0"}, titles(projects))
	for _, p := range projects {
		assert.NotNil(t, p.Technologies, p.Title)
	}
}

func TestProjectRepository_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	seedUser(t, NewUserRepository(gormDB), "u1", "joshua")
	repo := NewProjectRepository(gormDB)

	project := &model.Project{UserID: "u1", Title: "Blog Engine"}
	require.NoError(t, repo.Create(ctx, project))
	assert.NotEmpty(t, project.ID)

	stored, err := repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, model.ProjectStatusPlanning, stored.Status)
	assert.False(t, stored.Featured)
	assert.Equal(t, 0, stored.SortOrder)
	assert.NotNil(t, stored.Technologies)
	assert.Empty(t, stored.Technologies)
}

func TestProjectRepository_CreateRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	seedUser(t, NewUserRepository(gormDB), "u1", "joshua")
	repo := NewProjectRepository(gormDB)

	err := repo.Create(ctx, &model.Project{UserID: "u1", Title: "x", Status: "abandoned"})
	assert.Error(t, err)
}

func TestProjectRepository_FindByIDMissing(t *testing.T) {
	repo := NewProjectRepository(newTestDB(t))

	project, err := repo.FindByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, project)
}

func TestProjectRepository_UpdateStamps(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	seedUser(t, NewUserRepository(gormDB), "u1", "joshua")
	repo := NewProjectRepository(gormDB).(*projectRepository)

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := seedProject(t, repo, "u1", "Weather Dashboard", false, 4, created)

	stamp := created.Add(48 * time.Hour)
	repo.now = func() time.Time { return stamp }
	status := model.ProjectStatusMaintenance
	featured := true

	updated, err := repo.Update(ctx, p.ID, model.ProjectPatch{Status: &status, Featured: &featured})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, model.ProjectStatusMaintenance, updated.Status)
	assert.True(t, updated.Featured)
	assert.Equal(t, "Weather Dashboard", updated.Title)
	assert.Equal(t, 4, updated.SortOrder)
	assert.True(t, stamp.Equal(updated.UpdatedAt))
	assert.True(t, created.Equal(updated.CreatedAt))

	assert.NotNil(t, updated.Technologies)

	missing, err := repo.Update(ctx, "missing", model.ProjectPatch{Featured: &featured})
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProjectRepository_Technologies(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	seedUser(t, NewUserRepository(gormDB), "u1", "joshua")
	repo := NewProjectRepository(gormDB)
	p := seedProject(t, repo, "u1", "Portfolio", true, 1, time.Now().UTC())
	other := seedProject(t, repo, "u1", "Other", false, 2, time.Now().UTC())

	svelte := &model.ProjectTechnology{ProjectID: p.ID, Name: "SvelteKit", Category: "frontend", Color: "#ff3e00"}
	sqlite := &model.ProjectTechnology{ProjectID: p.ID, Name: "SQLite", Category: "database"}
	require.NoError(t, repo.AddTechnology(ctx, svelte))
	require.NoError(t, repo.AddTechnology(ctx, sqlite))
	assert.Equal(t, model.DefaultTechnologyColor, sqlite.Color)

	withTech, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, withTech.Technologies, 2)

	name := "Svelte 5"
	updated, err := repo.UpdateTechnology(ctx, p.ID, svelte.ID, model.TechnologyPatch{Name: &name})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Svelte 5", updated.Name)
	assert.Equal(t, "#ff3e00", updated.Color)

	// Scoped by project: the technology is invisible through another project.
	wrongScope, err := repo.UpdateTechnology(ctx, other.ID, svelte.ID, model.TechnologyPatch{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, wrongScope)

	removed, err := repo.RemoveTechnology(ctx, other.ID, sqlite.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = repo.RemoveTechnology(ctx, p.ID, sqlite.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	withTech, err = repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, withTech.Technologies, 1)
}

func TestProjectRepository_DeleteCascadesTechnologies(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	seedUser(t, NewUserRepository(gormDB), "u1", "joshua")
	repo := NewProjectRepository(gormDB)
	p := seedProject(t, repo, "u1", "E-commerce Platform", true, 2, time.Now().UTC())
	keep := seedProject(t, repo, "u1", "Blog Engine", false, 5, time.Now().UTC())

	for _, name := range []string{"Next.js", "React", "PostgreSQL"} {
		require.NoError(t, repo.AddTechnology(ctx, &model.ProjectTechnology{ProjectID: p.ID, Name: name}))
	}
	require.NoError(t, repo.AddTechnology(ctx, &model.ProjectTechnology{ProjectID: keep.ID, Name: "Markdown"}))

	require.NoError(t, repo.Delete(ctx, p.ID))

	var orphaned, remaining int64
	require.NoError(t, gormDB.Model(&model.ProjectTechnology{}).Where("project_id = ?", p.ID).Count(&orphaned).Error)
	require.NoError(t, gormDB.Model(&model.ProjectTechnology{}).Where("project_id = ?", keep.ID).Count(&remaining).Error)
	assert.Zero(t, orphaned)
	assert.Equal(t, int64(1), remaining)

	gone, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
