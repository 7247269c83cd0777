package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/craftmarket/api/models"
)

// OpenDatabase connects to postgres and applies the pool limits carried
// over from the previous deployment: 25 pooled connections plus 15
// overflow. database/sql has no pool-acquire timeout knob; waits are
// bounded by the request context instead.
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	gLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  toGormLogLevel(cfg.Log.Level),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{Logger: gLogger})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetMaxOpenConns(40)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	// Ping at boot to expose network or auth problems before the first
	// query does.
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the server-side enum types and any missing
// tables. Existing tables are never migrated.
func EnsureSchema(db *gorm.DB, modelDefs ...interface{}) error {
	if db.Dialector.Name() == "postgres" {
		if err := ensureEnumTypes(db); err != nil {
			return err
		}
	}
	for _, model := range modelDefs {
		if db.Migrator().HasTable(model) {
			continue
		}
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("auto migration failed for %T: %w", model, err)
		}
	}
	return nil
}

func ensureEnumTypes(db *gorm.DB) error {
	categories := models.Categories()
	quoted := make([]string, len(categories))
	for i, c := range categories {
		quoted[i] = "'" + string(c) + "'"
	}
	stmts := []string{
		fmt.Sprintf(
			`DO $$ BEGIN CREATE TYPE category AS ENUM (%s); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
			strings.Join(quoted, ", "),
		),
		fmt.Sprintf(
			`DO $$ BEGIN CREATE TYPE status AS ENUM ('%s', '%s'); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
			models.StatusSold, models.StatusInStock,
		),
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create enum type: %w", err)
		}
	}
	return nil
}

// toGormLogLevel maps the application log level to GORM's logger level.
func toGormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		// GORM 'Info' shows SQL; use with caution
		return logger.Info
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		// suppress per-statement logs, keep warnings and slow SQL
		return logger.Warn
	}
}
