// Package db wires the gorm connection and schema migration, grounded in
// the teacher's database package but retargeted at sqlite — the
// recommendation core's store is a single small schema, not a
// multi-tenant Postgres deployment.
package db

import (
	"fmt"

	"mediapick/types/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to dsn and migrates the recommendation core's schema.
func Open(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrate(
		&models.TasteProfile{},
		&models.HistoryEntry{},
		&models.PreferenceWeights{},
	); err != nil {
		return nil, fmt.Errorf("migrate database schema: %w", err)
	}

	return database, nil
}
