package db

import (
	"fmt"

	"github.com/home-accessories/backend/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all persisted models.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	if err := conn.AutoMigrate(&models.Admin{}, &models.Product{}); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}
