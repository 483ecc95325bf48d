// @title QuizForge API
// @version 1.0
// @description LLM-assisted generation of classroom assessment items from course material.
// @host localhost:8090
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizforge/internal/adapter"
	"quizforge/internal/adapter/provider"
	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/database"
	"quizforge/internal/export"
	"quizforge/internal/generation"
	"quizforge/internal/handler"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"
	"quizforge/internal/quality"
	"quizforge/internal/repository"
	"quizforge/internal/service"
	"quizforge/internal/validation"

	_ "quizforge/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	jobRepository := repository.NewSQLXJobRepository(db)
	batchRepository := repository.NewSQLXBatchRepository(db)
	userRepository := repository.NewSQLXUserRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize Redis client
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize the generation pipeline
	textProvider := provider.NewFromConfig(context.Background(), cfg.LLM)
	appLogger.Info("Text provider initialized", zap.String("provider", textProvider.Name()))
	generator := generation.NewGenerator(textProvider, cfg.Generation.MaxSourceChars, cfg.Generation.PairsPerQuestion)

	itemContract, err := validation.NewItemContract()
	if err != nil {
		appLogger.Fatal("Failed to compile item contract", zap.Error(err))
	}

	// Initialize services
	generationService := service.NewGenerationService(generator, jobRepository, batchRepository, txManager, cacheAdapter, itemContract, cfg)
	authService, err := service.NewAuthService(userRepository, cfg.Auth)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	appLogger.Info("Services initialized")

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	generationHandler := handler.NewGenerationHandler(generationService, quality.NewAuditor(), export.NewPronoteSafetyNet())

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.CorrelationID())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Correlation-ID", MaxAge: 300}))
	app.Use(recover.New())

	// Swagger handler
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	protect := middleware.Protected(authService)
	limit := middleware.RateLimiter(cacheAdapter, cfg.RateLimit.PerMinute)
	validate := middleware.NewValidationMiddleware()

	v1 := app.Group("/v1")
	v1.Post("/auth/token", authHandler.IssueToken)

	v1.Post("/generate", protect, limit, generationHandler.Generate)
	v1.Post("/generate/async", protect, limit, generationHandler.EnqueueGeneration)
	v1.Get("/jobs/:id", protect, limit, validate.ValidateResourceParam("id", "job_id"), generationHandler.GetJob)
	v1.Get("/batches/:id", protect, limit, validate.ValidateResourceParam("id", "batch_id"), generationHandler.GetBatch)
	v1.Get("/batches/:id/quality", protect, limit, validate.ValidateResourceParam("id", "batch_id"), generationHandler.GetBatchQuality)
	v1.Get("/batches/:id/export/pronote", protect, limit, validate.ValidateResourceParam("id", "batch_id"), generationHandler.GetBatchExportPreview)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
