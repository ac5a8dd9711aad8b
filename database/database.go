// Package database wires the relational store behind the repositories.
package database

import (
	"fmt"
	"log"

	"risuwork/config"
	"risuwork/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// Connect opens the database and migrates the schema. Production runs on
// PostgreSQL; the test environment uses an in-memory SQLite database so
// handler tests need no external services.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		TranslateError: true,
	}

	var err error
	if cfg.Env == "test" {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
		DB, err = gorm.Open(sqlite.Open(":memory:"), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// In-memory SQLite is per-connection; keep the pool at one so every
		// query and transaction sees the same database.
		sqlDB, dbErr := DB.DB()
		if dbErr != nil {
			return nil, dbErr
		}
		sqlDB.SetMaxOpenConns(1)
	} else {
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
		)
		gormCfg.Logger = logger.Default.LogMode(logger.Warn)
		DB, err = gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		log.Println("Database connected successfully")
	}

	if err := Migrate(DB); err != nil {
		return nil, err
	}
	return DB, nil
}

// Migrate creates or updates the five persisted tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.IndustryCategory{},
		&models.Company{},
		&models.User{},
		&models.Job{},
		&models.Application{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
