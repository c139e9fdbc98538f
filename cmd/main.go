package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"college-chatbot/internal/ai"
	"college-chatbot/internal/config"
	"college-chatbot/internal/database"
	"college-chatbot/internal/logger"
	"college-chatbot/internal/telemetry"
	"college-chatbot/middleware"
	"college-chatbot/routes"
	"college-chatbot/services"

	"github.com/gin-gonic/gin"
)

const serviceName = "college-chatbot"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.InitLogger(cfg)

	shutdownTracer, err := telemetry.InitTracer(telemetry.TracerConfig{
		ServiceName: serviceName,
		Endpoint:    cfg.OTelEndpoint,
		Environment: cfg.GinMode,
		SampleRatio: cfg.OTelSampleRatio,
	})
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer shutdownTracer(context.Background())

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		logger.Warn("metrics disabled", "error", err)
	}

	mongoClient, err := config.ConnectMongoDB(cfg)
	if err != nil {
		logger.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Warn("mongo disconnect failed", "error", err)
		}
	}()
	db := mongoClient.Database(cfg.DBName)

	rdb, err := config.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	gemini, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiRPM)
	if err != nil {
		logger.Error("failed to create Gemini client", "error", err)
		os.Exit(1)
	}
	defer gemini.Close()

	documentRepo := database.NewDocumentRepository(db)
	queryLogRepo := database.NewQueryLogRepository(db)
	userRepo := database.NewUserRepository(db)
	studentQueryRepo := database.NewStudentQueryRepository(db)

	answerService := services.NewAnswerService(
		services.NewRetrievalSelector(documentRepo),
		services.NewPromptAssembler(cfg.MaxContextChars),
		gemini,
		queryLogRepo,
		metrics,
	)
	documentService := services.NewDocumentService(documentRepo, services.NewTextExtractor(), metrics)
	analyticsService := services.NewAnalyticsService(queryLogRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL(), cfg.BcryptCost)
	studentQueryService := services.NewStudentQueryService(studentQueryRepo)

	if cfg.SeedUsers {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := authService.SeedDefaultUsers(ctx); err != nil {
			logger.Error("failed to seed default users", "error", err)
		}
		cancel()
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.TracingMiddleware(serviceName))
	router.Use(middleware.EnrichTrace())
	router.Use(middleware.CORSMiddlewareWithOrigins(cfg.CORSOrigins))

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)
	roleMiddleware := middleware.NewRoleMiddleware()

	var askLimiters []gin.HandlerFunc
	if rdb != nil {
		askLimiters = append(askLimiters, middleware.RateLimitMiddleware(rdb, cfg.RateLimitReqs, cfg.RateLimitWindow))
	}

	routes.SetupHealthRoutes(router)
	routes.SetupAuthRoutes(router, authService)
	routes.SetupAskRoutes(router, answerService, authMiddleware, askLimiters...)
	routes.SetupDocumentRoutes(router, documentService, authMiddleware, roleMiddleware, cfg.MaxFileSize)
	routes.SetupAnalyticsRoutes(router, analyticsService, authMiddleware, roleMiddleware)
	routes.SetupStudentQueryRoutes(router, studentQueryService, authMiddleware, roleMiddleware)
	routes.SetupNotFound(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "model", cfg.GeminiModel)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
