package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/collabsphere/collabsphere-ai/pkg/validator"

	"github.com/collabsphere/collabsphere-ai/internal/adapter/handler"
	"github.com/collabsphere/collabsphere-ai/internal/adapter/repository"
	"github.com/collabsphere/collabsphere-ai/internal/infrastructure/cache"
	"github.com/collabsphere/collabsphere-ai/internal/infrastructure/database"
	"github.com/collabsphere/collabsphere-ai/internal/infrastructure/external/livekit"
	"github.com/collabsphere/collabsphere-ai/internal/infrastructure/storage"
	agentUsecase "github.com/collabsphere/collabsphere-ai/internal/usecase/agent"
	conversationUsecase "github.com/collabsphere/collabsphere-ai/internal/usecase/conversation"
	"github.com/collabsphere/collabsphere-ai/internal/usecase/insight"
	meetingUsecase "github.com/collabsphere/collabsphere-ai/internal/usecase/meeting"
	planUsecase "github.com/collabsphere/collabsphere-ai/internal/usecase/plan"
	taskUsecase "github.com/collabsphere/collabsphere-ai/internal/usecase/task"
	userUsecase "github.com/collabsphere/collabsphere-ai/internal/usecase/user"
	pkgai "github.com/collabsphere/collabsphere-ai/pkg/ai"
	"github.com/collabsphere/collabsphere-ai/pkg/config"
	"github.com/collabsphere/collabsphere-ai/pkg/jwt"
)

// @title           CollabSphereAI API
// @version         1.0
// @description     API for AI-assisted video meetings: transcripts, insight summaries, generated task boards, and AI speech output

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	agentRepo := repository.NewAgentRepository(db)
	planRepo := repository.NewPlanRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize AI clients
	log.Println("🤖 Initializing AI components...")
	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	sentimentClient := pkgai.NewSentimentClient(&cfg.HuggingFace)
	ttsClient := pkgai.NewTTSClient(&cfg.HuggingFace)

	// Initialize optional audio cache
	var audioStore *storage.MinIOClient
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		audioStore, err = storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Printf("⚠️  Object storage unavailable, audio travels inline: %v", err)
			audioStore = nil
		}
	}

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)

	// Initialize LiveKit client
	log.Println("🎥 Initializing LiveKit client...")
	livekitClient := livekit.NewClient(
		cfg.LiveKit.URL,
		cfg.LiveKit.APIKey,
		cfg.LiveKit.APISecret,
		cfg.LiveKit.UseMock,
	)
	if cfg.LiveKit.UseMock {
		log.Println("⚠️  LiveKit running in MOCK mode (no real server needed)")
	} else {
		log.Printf("✅ LiveKit connected to: %s", cfg.LiveKit.URL)
	}

	// Initialize usecase services
	log.Println("✨ Initializing services...")
	transcriptCache := cache.NewTranscriptCache(redisClient, cfg.Redis.TranscriptTTL)
	conversationService := conversationUsecase.NewService(conversationRepo, transcriptCache, logger)
	insightService := insight.NewService(groqClient, sentimentClient, logger)
	meetingService := meetingUsecase.NewService(
		meetingRepo,
		participantRepo,
		conversationService,
		insightService,
		livekitClient,
		cfg.LiveKit.URL,
		logger,
	)
	planService := planUsecase.NewService(groqClient, planRepo, logger)
	taskService := taskUsecase.NewService(taskRepo, planRepo)
	agentService := agentUsecase.NewService(agentRepo)
	userService := userUsecase.NewService(userRepo, logger)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	speechHandler := handler.NewSpeech(ttsClient, audioStore, logger)
	meetingHandler := handler.NewMeetingHandler(meetingService, speechHandler, logger)
	conversationHandler := handler.NewConversationHandler(conversationService, logger)
	planHandler := handler.NewPlanHandler(planService, planRepo, conversationService, logger)
	taskHandler := handler.NewTaskHandler(taskService, logger)
	agentHandler := handler.NewAgentHandler(agentService, logger)
	userHandler := handler.NewUserHandler(userService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, jwtManager, meetingRepo, participantRepo, meetingHandler, conversationHandler, planHandler, taskHandler, agentHandler, userHandler, speechHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
