package models

import (
	"fmt"

	"github.com/vinishch/review-tracker/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&Review{},
		&NotificationRule{},
		&ReviewHistory{},
		&Platform{},
		&Mediator{},
		&StatusLabel{},
		&ViewPreset{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// BackfillVersions assigns a default version to any review missing one so
// optimistic locking has a baseline. Idempotent; safe to run on every start.
func BackfillVersions(db *gorm.DB) (int64, error) {
	res := db.Model(&Review{}).
		Where("version IS NULL OR version = 0").
		Update("version", 1)
	return res.RowsAffected, res.Error
}
