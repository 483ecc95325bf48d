package middleware_test

import (
	"os"
	"testing"

	"quizforge/internal/config"
	"quizforge/internal/logger"
)

func TestMain(m *testing.M) {
	// Middleware under test logs through the package logger
	if err := logger.Initialize(config.LoggerConfig{}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}

	exitVal := m.Run()

	_ = logger.Sync()
	os.Exit(exitVal)
}
