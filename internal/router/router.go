package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stemsi/gradehist-backend/internal/config"
	"github.com/stemsi/gradehist-backend/internal/handler"
	"github.com/stemsi/gradehist-backend/internal/middleware"
	"github.com/stemsi/gradehist-backend/internal/response"
)

// templateCacheSeconds is the Cache-Control max-age for the static CSV
// template. The header never changes between releases.
const templateCacheSeconds = 86400

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Gradesheet *handler.GradesheetHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for the parse endpoint (PDF extraction is the expensive
	// path).
	parseLimiter := middleware.NewRateLimiter(cfg.ParseRatePerMinute, time.Minute)

	// ─── Gradesheet Group ──────────────────────────────────────────────
	gradesheets := router.Group("/api/v1/gradesheets")
	{
		gradesheets.POST("/parse", parseLimiter.Middleware(), handlers.Gradesheet.Parse)
		gradesheets.POST("/export", handlers.Gradesheet.Export)
		gradesheets.POST("/export/json", handlers.Gradesheet.ExportJSON)
		gradesheets.GET("/template", middleware.CacheControl(templateCacheSeconds), handlers.Gradesheet.Template)
	}

	return router
}
