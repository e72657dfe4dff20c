package database

import (
	"fmt"
	"log"

	"github.com/justsurfingit/automate/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres database behind the key/value store and
// migrates it.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the tables the service needs.
func Migrate(db *gorm.DB) error {
	log.Println("Running Migrations...")
	if err := db.AutoMigrate(&models.StorageEntry{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
