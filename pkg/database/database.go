package database

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lightbnb_backend/pkg/config"
)

// Open connects to PostgreSQL and sizes the connection pool.
func Open(cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	pgConfig := postgres.Config{
		DSN:                  cfg.URL,
		PreferSimpleProtocol: true,
	}

	gormConfig := &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Error),
		PrepareStmt: false,
	}

	db, err := gorm.Open(postgres.New(pgConfig), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := ConfigurePool(db, cfg); err != nil {
		return nil, err
	}

	log.Info().
		Int("max_idle_conns", cfg.MaxIdleConns).
		Int("max_open_conns", cfg.MaxOpenConns).
		Msg("Database connected")

	return db, nil
}

// ConfigurePool applies the pool limits from cfg to db.
func ConfigurePool(db *gorm.DB, cfg config.DatabaseConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)

	return nil
}

// MigrateDatabase creates missing tables and updates existing ones.
func MigrateDatabase(db *gorm.DB, log zerolog.Logger, models ...interface{}) error {
	for _, model := range models {
		if !db.Migrator().HasTable(model) {
			if err := db.Migrator().CreateTable(model); err != nil {
				return fmt.Errorf("create table for %T: %w", model, err)
			}
			log.Info().Str("model", fmt.Sprintf("%T", model)).Msg("Created table")
		} else {
			if err := db.Migrator().AutoMigrate(model); err != nil {
				return fmt.Errorf("migrate %T: %w", model, err)
			}
			log.Debug().Str("model", fmt.Sprintf("%T", model)).Msg("Updated table")
		}
	}
	return nil
}
