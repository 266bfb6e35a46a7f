// internal/repository/db.go
package repository

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mbamerni/tzbi-vo/internal/model"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens the local sqlite store and migrates the schedule history,
// offline queue and preference tables.
func NewDB(path string, appLogger *slog.Logger) (*gorm.DB, error) {
	var gormLogLevel gormlogger.LogLevel
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	} else {
		gormLogLevel = gormlogger.Warn
	}

	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithSlowThreshold(500 * time.Millisecond),
	)
	finalGormLogger := slogGormLogger.LogMode(gormLogLevel)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: finalGormLogger,
	})
	if err != nil {
		appLogger.Error("Failed to open local database", slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}
	// sqlite allows one writer; a single connection avoids SQLITE_BUSY from
	// debounce timers and the drain ticker writing concurrently.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.ScheduleSnapshot{},
		&model.QueuedMutation{},
		&model.Preference{},
	); err != nil {
		appLogger.Error("Error migrating local database", slog.Any("error", err))
		return nil, err
	}

	appLogger.Info("Local database ready", slog.String("path", path))
	return db, nil
}
