package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gemveil-backend/internal/config"
	"gemveil-backend/internal/database"
	"gemveil-backend/internal/handlers"
	"gemveil-backend/internal/middleware"
	"gemveil-backend/internal/openai"
	"gemveil-backend/internal/services"
	"gemveil-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Run migrations before serving anything.
	migrator, err := database.NewMigrator(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("failed to initialize migrator", zap.Error(err))
	}
	if err := migrator.Run(); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	migrator.Close()

	dbClient, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to initialize database client", zap.Error(err))
	}
	defer dbClient.Close()

	aiClient := openai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.AITimeout)

	var store storage.Store
	switch cfg.StorageDriver {
	case config.StorageDriverSupabase:
		store, err = storage.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
	default:
		store, err = storage.NewCloudinaryStore(cfg.CloudinaryURL)
	}
	if err != nil {
		logger.Fatal("failed to initialize media store", zap.Error(err))
	}

	generationService := services.NewGenerationService(
		dbClient, aiClient, aiClient, store, logger, cfg.AITimeout, cfg.StorageFolder,
	)

	authHandler := handlers.NewAuthHandler(dbClient, cfg.JWTSecret, cfg.TokenTTL, logger)
	campaignsHandler := handlers.NewCampaignsHandler(dbClient, store, cfg.StorageFolder, logger)
	generateHandler := handlers.NewGenerateHandler(generationService, logger)

	router := gin.Default()

	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api/v1")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	protected.POST("/campaigns", campaignsHandler.CreateCampaign)
	protected.GET("/campaigns", campaignsHandler.ListCampaigns)
	protected.GET("/campaigns/:campaign_id", campaignsHandler.GetCampaign)
	protected.DELETE("/campaigns/:campaign_id", campaignsHandler.DeleteCampaign)

	protected.POST("/campaigns/:campaign_id/generate", generateHandler.Generate)
	protected.POST("/products/:product_id/regenerate", generateHandler.Regenerate)
	protected.POST("/generations/:generation_id/promo-image", generateHandler.PromoImage)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
