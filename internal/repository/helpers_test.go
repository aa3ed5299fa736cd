package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"portfolio/internal/db/dbtest"
	"portfolio/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return dbtest.New(t)
}

func strPtr(s string) *string { return &s }

func seedUser(t *testing.T, repo UserRepository, id, username string) *model.User {
	t.Helper()
	user := &model.User{ID: id, Username: username, PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func seedProject(t *testing.T, repo ProjectRepository, userID, title string, featured bool, sortOrder int, createdAt time.Time) *model.Project {
	t.Helper()
	project := &model.Project{
		UserID:    userID,
		Title:     title,
		Featured:  featured,
		SortOrder: sortOrder,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), project))
	return project
}

func titles(projects []model.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Title)
	}
	return out
}
