// Command createadmin bootstraps the administrator account. It is
// idempotent: if an admin with the given email already exists, nothing is
// written.
package main

import (
	"errors"
	"flag"
	"os"
	"strings"

	"github.com/home-accessories/backend/internal/db"
	"github.com/home-accessories/backend/internal/models"
	"github.com/home-accessories/backend/internal/security"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin login email")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password (hashed before storage)")
	flag.Parse()

	normalizedEmail := strings.ToLower(strings.TrimSpace(*email))
	if normalizedEmail == "" || *password == "" {
		log.Fatal("email and password are required (flags or ADMIN_EMAIL/ADMIN_PASSWORD)")
	}

	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		log.Fatal("missing required environment variables: DATABASE_URL")
	}

	conn, errOpen := db.Open(dsn)
	if errOpen != nil {
		log.Fatalf("database error: %v", errOpen)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		log.Fatalf("migrate error: %v", errMigrate)
	}

	var existing models.Admin
	errFind := conn.Where("email = ?", normalizedEmail).First(&existing).Error
	if errFind == nil {
		log.Infof("admin %s already exists", normalizedEmail)
		return
	}
	if !errors.Is(errFind, gorm.ErrRecordNotFound) {
		log.Fatalf("query error: %v", errFind)
	}

	hash, errHash := security.HashPassword(*password)
	if errHash != nil {
		log.Fatalf("hash error: %v", errHash)
	}

	admin := models.Admin{Email: normalizedEmail, Password: hash}
	if errCreate := conn.Create(&admin).Error; errCreate != nil {
		log.Fatalf("create error: %v", errCreate)
	}
	log.Infof("admin %s created", normalizedEmail)
}
