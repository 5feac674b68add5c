package models

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	DSN string
}

// InitDB opens the embedded database and ensures the schema exists.
// Idempotent; safe to call on every process start.
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(config.DSN), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, err
	}

	// Auto migrate the database models
	if err := db.AutoMigrate(&PatientRecord{}); err != nil {
		return nil, err
	}

	return db, nil
}
