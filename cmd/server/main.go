package main

import (
	"context"
	"log"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lumenhq/lumen-backend/internal/agent"
	"github.com/lumenhq/lumen-backend/internal/agent/agents"
	"github.com/lumenhq/lumen-backend/internal/config"
	"github.com/lumenhq/lumen-backend/internal/handler"
	"github.com/lumenhq/lumen-backend/internal/jobs"
	"github.com/lumenhq/lumen-backend/internal/llm"
	"github.com/lumenhq/lumen-backend/internal/middleware"
	"github.com/lumenhq/lumen-backend/internal/model"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/internal/service"
	"github.com/lumenhq/lumen-backend/pkg/database"
	applogger "github.com/lumenhq/lumen-backend/pkg/logger"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg, err := applogger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logg.Sync()

	db := database.Connect()
	if err := migrate(db); err != nil {
		logg.Fatal("migration failed", "error", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logg.Fatal("invalid REDIS_URL", "error", err)
		}
		redisClient = redis.NewClient(opt)
	} else {
		logg.Warn("REDIS_URL not set, rate limiting disabled")
	}

	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))

	ctx := context.Background()
	llmClient, err := llm.NewClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		logg.Fatal("failed to init LLM client", "error", err)
	}
	defer llmClient.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	moodRepo := repository.NewMoodRepository(db)
	chatRepo := repository.NewChatRepository(db)
	memoryRepo := repository.NewMemoryRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	reflectionRepo := repository.NewReflectionRepository(db)
	insightRepo := repository.NewInsightRepository(db)

	// Services
	coordinator := jobs.NewCoordinator(logg)
	aggregator := service.NewAggregator(journalRepo, chatRepo)
	searchSvc := service.NewSearchService(meiliClient, logg)
	scoringSvc := service.NewScoringService(aggregator, llmClient, scoreRepo, userRepo, logg)
	reflectionSvc := service.NewReflectionService(reflectionRepo, journalRepo, chatRepo, moodRepo, memoryRepo, llmClient, coordinator, logg)
	journalSvc := service.NewJournalService(journalRepo, moodRepo, searchSvc, logg)
	chatSvc := service.NewChatService(chatRepo)
	categorySvc := service.NewCategoryService(userRepo, insightRepo, memoryRepo)

	// Handlers
	scoreHandler := handler.NewScoreHandler(scoringSvc, redisClient, cfg.RateLimitScore, cfg.ScoreLookbackDays)
	reflectionHandler := handler.NewReflectionHandler(reflectionSvc, redisClient, cfg.RateLimitReflection)
	journalHandler := handler.NewJournalHandler(journalSvc)
	chatHandler := handler.NewChatHandler(chatSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	authMiddleware := middleware.NewAuthMiddleware()

	api := router.Group("/api")
	api.Use(authMiddleware.RequireAuth())
	{
		api.POST("/personality-reflection", reflectionHandler.Create)
		api.GET("/personality-reflection", reflectionHandler.GetLatest)
		api.GET("/personality-reflection/:id", reflectionHandler.GetByID)

		api.POST("/category-scores/:categoryId/generate", scoreHandler.Generate)
		api.GET("/category-scores/:categoryId", scoreHandler.History)
		api.GET("/category-scores/:categoryId/weekly-summary", scoreHandler.WeeklySummary)

		api.GET("/category-insights/:categoryId", categoryHandler.ListInsights)

		api.GET("/categories", categoryHandler.ListCategories)
		api.GET("/categories/selected", categoryHandler.ListSelected)
		api.POST("/categories/select", categoryHandler.SelectCategories)

		api.POST("/journal", journalHandler.CreateEntry)
		api.GET("/journal", journalHandler.ListEntries)
		api.GET("/journal/search", journalHandler.SearchEntries)

		api.POST("/moods", journalHandler.CreateMood)
		api.GET("/moods", journalHandler.ListMoods)

		api.POST("/conversations", chatHandler.CreateConversation)
		api.GET("/conversations", chatHandler.ListConversations)
		api.POST("/conversations/:id/messages", chatHandler.CreateMessage)
		api.GET("/conversations/:id/messages", chatHandler.ListMessages)

		api.GET("/memory-facts", categoryHandler.ListMemoryFacts)
	}

	// Background agents
	scheduler := agent.NewScheduler(logg)
	scheduler.RegisterAgent(agents.NewDailyScoreAgent(scoringSvc, userRepo, coordinator, cfg.DailyScoreSchedule, cfg.ScoreLookbackDays, logg))
	scheduler.RegisterAgent(agents.NewReflectionReaper(reflectionRepo, cfg.ReaperSchedule, cfg.ReflectionStaleAfter, logg))
	scheduler.Start()
	defer scheduler.Stop()

	logg.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
	if err := router.Run(":" + cfg.Port); err != nil {
		logg.Fatal("server exited with error", "error", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.UserCategory{},
		&model.JournalEntry{},
		&model.MoodEntry{},
		&model.Conversation{},
		&model.ChatMessage{},
		&model.MemoryFact{},
		&model.CategoryScore{},
		&model.PersonalityReflection{},
		&model.CategoryInsight{},
	)
}
