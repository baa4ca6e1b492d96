package main

import (
	"github.com/vinishch/review-tracker/internal/config"
	"github.com/vinishch/review-tracker/internal/models"
	"github.com/vinishch/review-tracker/internal/services"
	"github.com/vinishch/review-tracker/pkg/logger"
)

// bootstrap prepares the database: connect, migrate, backfill, seed.
func bootstrap(cfg *config.Config) {
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Rows written before versioning shipped carry no version; give them
	// one so conditional updates can match them.
	n, err := models.BackfillVersions(models.GetDB())
	if err != nil {
		logger.Warn().Err(err).Msg("Version backfill failed, stale rows stay unversioned")
	} else if n > 0 {
		logger.Infof("Backfilled version on %d reviews", n)
	}

	if err := services.SeedDefaultRules(models.GetDB()); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default notification rules")
	}
}
