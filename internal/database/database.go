package database

import (
	"github.com/J-Liu7/waterlily/internal/config"
	"github.com/J-Liu7/waterlily/internal/logging"
	"github.com/J-Liu7/waterlily/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config, log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logging.NewGormLogger(log),
		// Needed so a unique-index violation surfaces as gorm.ErrDuplicatedKey
		// instead of a driver-specific error.
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	log.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)
	return db
}

func AutoMigrate(db *gorm.DB, log *zap.Logger) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Survey{},
		&models.Question{},
		&models.SurveyResponse{},
		&models.QuestionResponse{},
	)
	if err != nil {
		log.Fatal("failed to auto-migrate", zap.Error(err))
	}
	log.Info("database migrated")
}
