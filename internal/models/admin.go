package models

import "time"

// Admin represents the administrator account stored in the database.
// There is exactly one in practice; it is created by the createadmin tool
// and only ever read by the login flow.
type Admin struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"` // Primary key.

	Email    string `gorm:"type:text;not null;uniqueIndex" json:"email"` // Lowercased login email.
	Password string `gorm:"type:text;not null" json:"-"`                 // Bcrypt hash, never serialized.

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"` // Last update timestamp.
}
