package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"instructly_go_backend/cmd/api/config"
	"instructly_go_backend/internal/api"
	"instructly_go_backend/internal/auth"
	"instructly_go_backend/internal/database"
	"instructly_go_backend/internal/metrics"
	"instructly_go_backend/internal/middleware"
	"instructly_go_backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/option"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	ctx := context.Background()
	cfg := config.NewConfig()

	database.InitDB()

	// Select the classification backend once at startup. Mock mode (or a
	// missing API key) runs the synthetic keyword classifier instead of
	// calling the model provider.
	var backend services.ClassificationBackend
	genaiAPIKey := os.Getenv("GOOGLE_AI_STUDIO_API_KEY")
	if cfg.MockMode || genaiAPIKey == "" {
		log.Println("Classification running in degraded mode with the synthetic backend")
		backend = services.NewSyntheticBackend()
	} else {
		genaiClient, err := genai.NewClient(ctx, option.WithAPIKey(genaiAPIKey))
		if err != nil {
			log.Fatalf("Failed to create GenAI client: %v", err)
		}
		defer genaiClient.Close()
		provider := services.NewGenAIProvider(genaiClient, cfg.ProviderTimeout)
		backend = services.NewLiveBackend(provider)
	}

	// Initialize internal services
	topicCache := services.NewInMemoryTopicCache(cfg.CacheTTL, cfg.CacheMaxEntries)
	usageStore := services.NewUsageStoreDB(database.DB)
	modelRouter := services.NewModelRouter(services.StandardTier, services.AdvancedTier)

	classificationService := services.NewClassificationService(
		backend,
		topicCache,
		usageStore,
		modelRouter,
	)
	usageService := services.NewUsageService(usageStore, cfg.MonthlyCostLimit)
	userService := services.NewUserService(database.DB)
	rateLimiter := middleware.NewPerUserRateLimiter(cfg.RateLimitPerMinute)

	r := gin.Default()
	r.Use(metrics.HTTPMetrics())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000" // Default to your local frontend
	}

	// CORS middleware configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(allowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r, classificationService, usageService, userService, rateLimiter)
	auth.SetupRoutes(r, userService)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
