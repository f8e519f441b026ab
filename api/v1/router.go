package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/issuetrack-api/metrics"
	"github.com/issuetrack-api/middleware"
	"github.com/issuetrack-api/services"
)

// Dependencies are the collaborators the v1 routes need
type Dependencies struct {
	Services     *services.Container
	Metrics      *metrics.Metrics
	SecureCookie bool
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, deps Dependencies) {
	r := reporter{metrics: deps.Metrics}
	requireAuth := middleware.AuthMiddleware(deps.Services.Auth, deps.Metrics)

	// Health check endpoint
	router.GET("/health", HealthCheck)

	NewAuthController(deps.Services.Auth, r, deps.SecureCookie).RegisterRoutes(router, requireAuth)

	authRouter := router.Group("")
	authRouter.Use(requireAuth)
	NewProjectController(deps.Services.Projects, r).RegisterRoutes(authRouter)
	NewIssueController(deps.Services.Issues, deps.Services.Comments, r).RegisterRoutes(authRouter)
	NewCommentController(deps.Services.Comments, r).RegisterRoutes(authRouter)
	NewUserController(deps.Services.Users, r).RegisterRoutes(authRouter)
}
