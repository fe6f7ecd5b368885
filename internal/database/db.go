package database

import (
	"ruzgar-backend/internal/config"
	"ruzgar-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres and runs migrations. No package-level handle:
// the connection is injected where it is needed, so tests can run against
// their own store instances.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.Product{},
		&models.TransactionLog{},
		&models.WarehouseLayout{},
		&models.AuthPassword{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
