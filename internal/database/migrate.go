package database

import (
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate brings the schema up to date. PostgreSQL uses the versioned SQL
// migrations; SQLite (local development and tests) falls back to AutoMigrate
// over the given row models.
func Migrate(db *gorm.DB, models ...any) error {
	if db.Dialector.Name() == "postgres" {
		m, err := NewMigrator(db)
		if err != nil {
			return err
		}
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate up: %w", err)
		}
		version, dirty, _ := m.Version()
		log.Printf("schema migrated: version=%d dirty=%t", version, dirty)
		return nil
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// NewMigrator builds a golang-migrate instance over the embedded migrations
// using the connection pool of db. Only PostgreSQL is supported.
func NewMigrator(db *gorm.DB) (*migrate.Migrate, error) {
	if db.Dialector.Name() != "postgres" {
		return nil, fmt.Errorf("versioned migrations require postgres, got %s", db.Dialector.Name())
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	driver, err := migratepgx.WithInstance(sqlDB, &migratepgx.Config{})
	if err != nil {
		return nil, fmt.Errorf("migrate driver: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migrate source: %w", err)
	}
	return migrate.NewWithInstance("iofs", src, "pgx5", driver)
}
