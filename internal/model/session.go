package model

import "time"

// Session is a browser login. ID is the sha256 digest of the bearer token;
// the raw token is never stored.
type Session struct {
	ID        string    `json:"id" gorm:"type:varchar(255);primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:varchar(255);not null;index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the table name stable across dialects.
func (Session) TableName() string { return "session" }

// IsExpired reports whether the session has passed its expiry at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
