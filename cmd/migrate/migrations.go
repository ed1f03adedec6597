package main

import (
	"gorm.io/gorm"

	"github.com/thesislink/engine/internal/models"
)

// registerModels returns all models that need migration.
func registerModels() []interface{} {
	return []interface{}{
		// Identity
		&models.User{},
		&models.StudentProfile{},
		&models.CompanyProfile{},

		// Marketplace
		&models.Project{},
		&models.Application{},

		// Messaging
		&models.Notification{},
	}
}

// runMigrations executes all database migrations.
func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(registerModels()...); err != nil {
		return err
	}
	return runCustomMigrations(db)
}

// runCustomMigrations handles schema details AutoMigrate can't express.
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		lowercaseEmails,
	}
	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}
	return nil
}

// lowercaseEmails normalizes any emails inserted before the application
// started lowercasing them at registration. The unique index on email then
// guarantees case-insensitive uniqueness.
func lowercaseEmails(db *gorm.DB) error {
	return db.Exec("UPDATE users SET email = LOWER(email) WHERE email <> LOWER(email)").Error
}
