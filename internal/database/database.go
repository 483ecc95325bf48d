package database

import (
	"fmt"
	"strings"

	"quizforge/internal/config"
	"quizforge/internal/logger"

	_ "github.com/godror/godror" // Oracle driver (ODPI-C based)
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver (pure Go), registered as "oracle"
	"go.uber.org/zap"
)

// resolveDriver maps the configured driver name to the registered sql
// driver and the DSN it understands. go-ora is the default because it
// needs no Oracle client libraries on the host.
func resolveDriver(cfg *config.Config) (driverName, dsn string, err error) {
	switch strings.ToLower(strings.TrimSpace(cfg.DB.Driver)) {
	case "", "oracle", "go-ora":
		return "oracle", cfg.GetDSN(), nil
	case "godror":
		return "godror", cfg.GodrorDSN(), nil
	default:
		return "", "", fmt.Errorf("unknown database driver %q", cfg.DB.Driver)
	}
}

// Connect opens the Oracle connection described by the configuration.
// sqlx.Connect pings the database before returning.
func Connect(cfg *config.Config) (*sqlx.DB, error) {
	driverName, dsn, err := resolveDriver(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to oracle database: %w", err)
	}

	logger.Get().Info("Connected to Oracle database",
		zap.String("driver", driverName),
		zap.String("host", cfg.DB.Host),
		zap.String("service", cfg.DB.Service))
	return db, nil
}
