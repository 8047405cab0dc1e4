// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/noodl/inventory/internal/config"
	"github.com/noodl/inventory/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	// Connect to database
	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	if cfg.Driver == "sqlite" {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithField("driver", cfg.Driver).Info("Database connection established successfully")
	return db, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.Product{},
		&models.PurchaseBatch{},
		&models.ThawedBatch{},
		&models.WasteEntry{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Alert scans only look at batches that still hold stock
		"CREATE INDEX IF NOT EXISTS idx_purchase_batches_stock ON purchase_batches(remaining_portions, best_before_date)",
		"CREATE INDEX IF NOT EXISTS idx_thawed_batches_stock ON thawed_batches(remaining_portions, expiry_date)",

		"CREATE INDEX IF NOT EXISTS idx_purchase_batches_purchase_date ON purchase_batches(purchase_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_thawed_batches_thaw_date ON thawed_batches(thaw_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_waste_entries_date ON waste_entries(date_discarded DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).WithField("index", index).Warn("Failed to create index")
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// SeedDemoData fills an empty catalog with a few products so a fresh
// install has something to log purchases against.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	logrus.Info("Seeding demo catalog...")

	products := []models.Product{
		{
			Name:            "Beef Brisket",
			ReceivedState:   models.ReceivedStateFrozen,
			PortionSize:     decimal.NewFromInt(200),
			PortionUnit:     "grams",
			ShelfLifeThawed: 3,
		},
		{
			Name:           "Chicken Thigh",
			ReceivedState:  models.ReceivedStateCold,
			PortionSize:    decimal.NewFromInt(150),
			PortionUnit:    "grams",
			ShelfLifeFresh: 4,
		},
		{
			Name:            "Pork Dumplings",
			ReceivedState:   models.ReceivedStateFrozen,
			PortionSize:     decimal.NewFromInt(6),
			PortionUnit:     "units",
			ShelfLifeThawed: 1,
			TrackByUnit:     true,
		},
		{
			Name:           "Dashi Stock",
			ReceivedState:  models.ReceivedStateCold,
			PortionSize:    decimal.NewFromInt(250),
			PortionUnit:    "milliliters",
			ShelfLifeFresh: 5,
		},
	}

	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	logrus.WithField("products", len(products)).Info("Demo catalog seeded")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
