package database

import (
	"fmt"

	"github.com/axon-catalog/axon-asset-register/pkg/catalog_api/models"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func Connect(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: "axon_",
		}})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the register schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Tag{},
		&models.Asset{},
		&models.AssetVersion{},
	); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
