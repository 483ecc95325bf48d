package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quizforge/internal/config"
	"quizforge/internal/logger"

	"go.uber.org/zap"
)

// DefaultMigrationsDir is where migration files live relative to the
// process working directory.
const DefaultMigrationsDir = "database/migrations"

// RunMigrations executes every *.up.sql file in migrationsDir against
// the database. os.ReadDir returns entries sorted by name, so numbered
// files run in order. Each file must hold a single statement.
func RunMigrations(db *sql.DB, migrationsDir string) error {
	if migrationsDir == "" {
		migrationsDir = DefaultMigrationsDir
	}

	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", file.Name(), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("could not execute migration %s: %w", file.Name(), err)
		}

		logger.Get().Info("Executed migration", zap.String("file", file.Name()))
	}

	logger.Get().Info("Migrations completed")
	return nil
}

// OpenForMigrations opens a plain *sql.DB for the migration runner.
func OpenForMigrations(cfg *config.Config) (*sql.DB, error) {
	driverName, dsn, err := resolveDriver(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not ping database: %w", err)
	}

	return db, nil
}
