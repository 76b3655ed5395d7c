package database

import (
	"fmt"

	"github.com/mpolivanov/fasting-tracker-bot/internal/config"
	"github.com/mpolivanov/fasting-tracker-bot/internal/database/migrations"
	"github.com/mpolivanov/fasting-tracker-bot/internal/domain"
	"github.com/mpolivanov/fasting-tracker-bot/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgresDB opens the database, migrates the schema and applies the
// registered migrations on top of it.
func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.FastingEvent{},
		&domain.FastingGoal{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	// Ad-hoc SQL migrations can be dropped into ./migrations next to the
	// binary; the registry is otherwise populated in code.
	if err := migrations.LoadSQLMigrations("migrations"); err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	// Registered migrations run after AutoMigrate so the index migrations
	// find their tables in place.
	if err := migrations.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database connection established and migrations completed")
	return db, nil
}
