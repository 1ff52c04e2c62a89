package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/config"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/model"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsDevelopment() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// Unique violations must surface as gorm.ErrDuplicatedKey so the
		// ingest service can convert a lost filename race into a conflict.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	// The vector column type requires the pgvector extension.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&model.Document{},
		&model.Chunk{},
		&model.Feedback{},
	)
}
