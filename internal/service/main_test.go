package service

import (
	"os"
	"testing"

	"quizforge/internal/config"
	"quizforge/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{}); err != nil {
		panic(err)
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}
