package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"quizforge/internal/adapter"
	"quizforge/internal/adapter/provider"
	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/database"
	"quizforge/internal/generation"
	"quizforge/internal/logger"
	"quizforge/internal/repository"
	"quizforge/internal/validation"
	"quizforge/internal/worker"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		// Logger is not up yet, so use fmt for this critical error
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	appLogger.Info("Generation worker starting up...")

	db, err := database.Connect(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Successfully connected to database")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	queue := adapter.NewRedisCacheAdapter(redisClient)
	appLogger.Info("Successfully connected to Redis")

	textProvider := provider.NewFromConfig(context.Background(), cfg.LLM)
	appLogger.Info("Text provider initialized", zap.String("provider", textProvider.Name()))
	generator := generation.NewGenerator(textProvider, cfg.Generation.MaxSourceChars, cfg.Generation.PairsPerQuestion)

	itemContract, err := validation.NewItemContract()
	if err != nil {
		appLogger.Fatal("Failed to compile item contract", zap.Error(err))
	}

	jobRepository := repository.NewSQLXJobRepository(db)
	batchRepository := repository.NewSQLXBatchRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	pool := worker.NewPool(queue, generator, jobRepository, batchRepository, txManager, itemContract, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		appLogger.Info("Shutdown signal received, draining workers...")
		cancel()
	}()

	if err := pool.Run(ctx); err != nil {
		appLogger.Fatal("Worker pool exited with error", zap.Error(err))
	}
	appLogger.Info("Worker pool drained, exiting")
}
