package models

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultCategory is assigned when a request omits the category field.
const DefaultCategory = "General"

// Product represents a catalog entry. Name, description and image are
// required; the remaining descriptive fields are optional free text.
type Product struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"` // Primary key.

	Name        string `gorm:"type:text;not null" json:"name"`        // Display name, trimmed.
	Description string `gorm:"type:text;not null" json:"description"` // Long description, trimmed.
	Image       string `gorm:"type:text;not null" json:"image"`       // Path under /uploads.

	Price    float64 `gorm:"not null;default:0" json:"price"`                  // Non-negative, 0 when unparseable.
	Category string  `gorm:"type:text;not null;default:General" json:"category"` // Defaults to General.

	KeyFeatures datatypes.JSONSlice[string] `gorm:"type:json" json:"keyFeatures"` // Ordered feature lines.

	Material      string `gorm:"type:text" json:"material"`
	Compatibility string `gorm:"type:text" json:"compatibility"`
	BestFor       string `gorm:"type:text" json:"bestFor"`
	Warranty      string `gorm:"type:text" json:"warranty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"createdAt"` // Creation timestamp, drives list order.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`       // Last update timestamp.
}
