// Package storage is the persistence layer: a SQLite database accessed
// through GORM, with one repository per aggregate.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/spendwise/spendwise/internal/config"
	"github.com/spendwise/spendwise/internal/logger"
	"github.com/spendwise/spendwise/internal/models"
)

// Open connects to the SQLite database at cfg.Database.Path, creating the
// parent directory when needed, and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	return openAt(cfg.Database.Path)
}

func openAt(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Transaction{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}

	logger.Debug("database ready")
	return db, nil
}
