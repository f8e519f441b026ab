package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	v1 "github.com/issuetrack-api/api/v1"
	"github.com/issuetrack-api/logger"
	"github.com/issuetrack-api/middleware"
)

// Options controls engine wide behavior
type Options struct {
	CORSOrigins []string
}

// NewRouter builds the gin engine with the global middleware chain, the
// health and metrics endpoints and the v1 API under /api/v1.
func NewRouter(deps v1.Dependencies, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(logger.Middleware())
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	SetupRoutes(router, deps)
	return router
}

// SetupRoutes registers the public endpoints and the versioned API
func SetupRoutes(router *gin.Engine, deps v1.Dependencies) {
	// Public routes
	router.GET("/health", v1.HealthCheck)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := router.Group("/api/v1")
	v1.RegisterRoutes(api, deps)
}
