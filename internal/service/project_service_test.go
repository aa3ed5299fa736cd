package service

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portfolio/internal/errors"
	"portfolio/internal/logging"
	"portfolio/internal/model"
)

func newProjectService(repo *MockProjectRepository) ProjectService {
	return NewProjectService(repo, logging.Discard())
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProjectRepository)

	repo.On("Create", ctx, mock.MatchedBy(func(p *model.Project) bool {
		return p.UserID == "u1" && p.Title == "Portfolio" && p.Featured
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Project).ID = "p1"
	}).Return(nil)
	repo.On("AddTechnology", ctx, mock.MatchedBy(func(tech *model.ProjectTechnology) bool {
		return tech.ProjectID == "p1" && tech.Name == "Go"
	})).Return(nil).Once()
	repo.On("AddTechnology", ctx, mock.MatchedBy(func(tech *model.ProjectTechnology) bool {
		return tech.ProjectID == "p1" && tech.Name == "SQLite"
	})).Return(nil).Once()
	repo.On("FindByID", ctx, "p1").Return(&model.ProjectWithTechnologies{
		ID:           "p1",
		UserID:       "u1",
		Title:        "Portfolio",
		Technologies: []model.ProjectTechnology{{Name: "Go"}, {Name: "SQLite"}},
	}, nil)

	project, err := newProjectService(repo).Create(ctx, "u1",
		ProjectInput{Title: "Portfolio", Featured: true},
		[]TechnologyInput{{Name: "Go"}, {Name: "SQLite"}},
	)
	require.NoError(t, err)
	assert.Len(t, project.Technologies, 2)
	repo.AssertExpectations(t)
}

func TestProjectService_CreateStopsOnTechnologyFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProjectRepository)

	repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Project).ID = "p1"
	}).Return(nil)
	repo.On("AddTechnology", ctx, mock.Anything).Return(stderrors.New("disk full")).Once()

	project, err := newProjectService(repo).Create(ctx, "u1",
		ProjectInput{Title: "Portfolio"},
		[]TechnologyInput{{Name: "Go"}, {Name: "SQLite"}},
	)
	assert.Error(t, err)
	assert.Nil(t, project)
	repo.AssertNumberOfCalls(t, "AddTechnology", 1)
}

func TestProjectService_CreateRejectsUnknownStatus(t *testing.T) {
	repo := new(MockProjectRepository)

	_, err := newProjectService(repo).Create(context.Background(), "u1",
		ProjectInput{Title: "x", Status: "abandoned"}, nil)
	assert.ErrorIs(t, err, errors.ErrInvalidStatus)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectService_Ownership(t *testing.T) {
	owned := &model.ProjectWithTechnologies{ID: "p1", UserID: "u1"}
	title := "Renamed"

	tests := []struct {
		name          string
		userID        string
		setupMock     func(*MockProjectRepository)
		call          func(ProjectService, string) error
		expectedError error
	}{
		{
			name:   "owner updates",
			userID: "u1",
			setupMock: func(m *MockProjectRepository) {
				m.On("FindByID", mock.Anything, "p1").Return(owned, nil)
				m.On("Update", mock.Anything, "p1", model.ProjectPatch{Title: &title}).
					Return(&model.Project{ID: "p1", Title: title}, nil)
			},
			call: func(s ProjectService, userID string) error {
				_, err := s.Update(context.Background(), userID, "p1", model.ProjectPatch{Title: &title})
				return err
			},
		},
		{
			name:   "stranger cannot update",
			userID: "u2",
			setupMock: func(m *MockProjectRepository) {
				m.On("FindByID", mock.Anything, "p1").Return(owned, nil)
			},
			call: func(s ProjectService, userID string) error {
				_, err := s.Update(context.Background(), userID, "p1", model.ProjectPatch{Title: &title})
				return err
			},
			expectedError: errors.ErrForbidden,
		},
		{
			name:   "stranger cannot delete",
			userID: "u2",
			setupMock: func(m *MockProjectRepository) {
				m.On("FindByID", mock.Anything, "p1").Return(owned, nil)
			},
			call: func(s ProjectService, userID string) error {
				return s.Delete(context.Background(), userID, "p1")
			},
			expectedError: errors.ErrForbidden,
		},
		{
			name:   "owner deletes",
			userID: "u1",
			setupMock: func(m *MockProjectRepository) {
				m.On("FindByID", mock.Anything, "p1").Return(owned, nil)
				m.On("Delete", mock.Anything, "p1").Return(nil)
			},
			call: func(s ProjectService, userID string) error {
				return s.Delete(context.Background(), userID, "p1")
			},
		},
		{
			name:   "missing project",
			userID: "u1",
			setupMock: func(m *MockProjectRepository) {
				m.On("FindByID", mock.Anything, "p1").Return(nil, nil)
			},
			call: func(s ProjectService, userID string) error {
				return s.Delete(context.Background(), userID, "p1")
			},
			expectedError: errors.ErrProjectNotFound,
		},
		{
			name:   "missing technology",
			userID: "u1",
			setupMock: func(m *MockProjectRepository) {
				m.On("FindByID", mock.Anything, "p1").Return(owned, nil)
				m.On("RemoveTechnology", mock.Anything, "p1", "t9").Return(false, nil)
			},
			call: func(s ProjectService, userID string) error {
				return s.RemoveTechnology(context.Background(), userID, "p1", "t9")
			},
			expectedError: errors.ErrTechnologyNotFound,
		},
		{
			name:   "stranger cannot add technology",
			userID: "u2",
			setupMock: func(m *MockProjectRepository) {
				m.On("FindByID", mock.Anything, "p1").Return(owned, nil)
			},
			call: func(s ProjectService, userID string) error {
				_, err := s.AddTechnology(context.Background(), userID, "p1", TechnologyInput{Name: "Go"})
				return err
			},
			expectedError: errors.ErrForbidden,
		},
		{
			name:   "owner updates technology",
			userID: "u1",
			setupMock: func(m *MockProjectRepository) {
				m.On("FindByID", mock.Anything, "p1").Return(owned, nil)
				m.On("UpdateTechnology", mock.Anything, "p1", "t1", model.TechnologyPatch{Name: &title}).
					Return(&model.ProjectTechnology{ID: "t1", Name: title}, nil)
			},
			call: func(s ProjectService, userID string) error {
				_, err := s.UpdateTechnology(context.Background(), userID, "p1", "t1", model.TechnologyPatch{Name: &title})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockProjectRepository)
			tt.setupMock(repo)

			err := tt.call(newProjectService(repo), tt.userID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestProjectService_UpdateRejectsUnknownStatus(t *testing.T) {
	repo := new(MockProjectRepository)
	status := model.ProjectStatus("abandoned")

	_, err := newProjectService(repo).Update(context.Background(), "u1", "p1", model.ProjectPatch{Status: &status})
	assert.ErrorIs(t, err, errors.ErrInvalidStatus)
	repo.AssertExpectations(t)
}

func TestProjectService_Get(t *testing.T) {
	repo := new(MockProjectRepository)
	repo.On("FindByID", mock.Anything, "missing").Return(nil, nil)

	_, err := newProjectService(repo).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, errors.ErrProjectNotFound)
}
