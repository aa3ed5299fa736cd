package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"portfolio/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, now: utcNow}
}

// Create inserts user. A taken username or email yields ErrDuplicate and no row.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

// FindByID returns the user or nil when absent.
func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByUsername returns the user or nil when absent.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.first(ctx, "username = ?", username)
}

// FindByEmail returns the user or nil when absent.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) first(ctx context.Context, query string, arg any) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where(query, arg).Limit(1).Take(&user).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies the non-nil fields of patch and refreshes updated_at.
// It returns the stored row, or nil if no user has that id.
func (r *userRepository) Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	changes := mergeAndStamp(patch.Changes(), r.now())
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	return r.FindByID(ctx, id)
}

// Delete removes the user; sessions and projects go with it through foreign keys.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{}).Error
}
