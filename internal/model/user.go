package model

import "time"

// User is a registered portfolio owner.
type User struct {
	ID           string    `json:"id" gorm:"type:varchar(255);primaryKey"`
	Username     string    `json:"username" gorm:"size:255;uniqueIndex;not null"`
	Email        *string   `json:"email,omitempty" gorm:"size:255;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"type:text;not null"` // Never expose in JSON
	FirstName    string    `json:"first_name,omitempty" gorm:"size:255"`
	LastName     string    `json:"last_name,omitempty" gorm:"size:255"`
	Bio          string    `json:"bio,omitempty" gorm:"type:text"`
	Website      string    `json:"website,omitempty" gorm:"size:500"`
	Location     string    `json:"location,omitempty" gorm:"size:255"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"not null"`
}

// TableName keeps the table name stable across dialects.
func (User) TableName() string { return "users" }

// UserPatch carries the fields of a partial user update. Nil fields are left untouched.
type UserPatch struct {
	Username     *string
	Email        *string
	PasswordHash *string
	FirstName    *string
	LastName     *string
	Bio          *string
	Website      *string
	Location     *string
}

// Changes returns the column set of the patch.
func (p UserPatch) Changes() map[string]any {
	changes := make(map[string]any)
	setIf(changes, "username", p.Username)
	setIf(changes, "email", p.Email)
	setIf(changes, "password_hash", p.PasswordHash)
	setIf(changes, "first_name", p.FirstName)
	setIf(changes, "last_name", p.LastName)
	setIf(changes, "bio", p.Bio)
	setIf(changes, "website", p.Website)
	setIf(changes, "location", p.Location)
	return changes
}

func setIf[T any](changes map[string]any, column string, v *T) {
	if v != nil {
		changes[column] = *v
	}
}
