package database

import (
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sn-be/ecopilot/models"
)

var DB *gorm.DB

// Connect opens the database described by dsn and runs the migrations.
// An empty dsn falls back to a local sqlite file; anything else is treated
// as a postgres DSN.
func Connect(dsn string) error {
	var dialector gorm.Dialector

	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		dialector = postgres.Open(dsn)
	case strings.HasPrefix(dsn, "file:") || strings.HasSuffix(dsn, ".db"):
		dialector = sqlite.Open(dsn)
	case dsn != "":
		// Assume postgres DSN even without schema prefix
		dialector = postgres.Open(dsn)
	default:
		dsn = "ecopilot.db"
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.BusinessProfile{},
		&models.CarbonFootprint{},
		&models.Dashboard{},
		&models.CompletedAction{},
		&models.CedaEntry{},
	); err != nil {
		return err
	}

	DB = db
	zap.L().Info("database connected and migrated", zap.String("dsn", dsn))
	return nil
}
