package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/issuetrack-api/dto"
	"github.com/issuetrack-api/middleware"
	"github.com/issuetrack-api/services"
	"go.uber.org/zap"
)

// AuthController handles registration, login and session endpoints
type AuthController struct {
	reporter
	authService  *services.AuthService
	secureCookie bool
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService, r reporter, secureCookie bool) *AuthController {
	return &AuthController{reporter: r, authService: authService, secureCookie: secureCookie}
}

// RegisterRoutes registers auth routes. requireAuth guards /me.
func (ctl *AuthController) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", ctl.Register)
		authGroup.POST("/login", ctl.Login)
		authGroup.POST("/logout", ctl.Logout)
		authGroup.GET("/me", requireAuth, ctl.GetCurrentUser)
	}
}

// Register handles user registration
func (ctl *AuthController) Register(c *gin.Context) {
	const op = "auth.registered"
	var req dto.RegisterRequest
	if !ctl.bindJSON(c, op, &req) {
		return
	}

	resp, err := ctl.authService.Register(req)
	if err != nil {
		ctl.metrics.RecordAuth("register_rejected")
		ctl.fail(c, op, err)
		return
	}
	ctl.metrics.RecordAuth("registered")
	ctl.setTokenCookie(c, resp)
	ctl.success(c, http.StatusCreated, op, resp, zap.String("user_id", resp.User.ID))
}

// Login handles user authentication
func (ctl *AuthController) Login(c *gin.Context) {
	const op = "auth.login"
	var req dto.LoginRequest
	if !ctl.bindJSON(c, op, &req) {
		return
	}

	resp, err := ctl.authService.Login(req)
	if err != nil {
		ctl.metrics.RecordAuth("login_failed")
		ctl.fail(c, op, err)
		return
	}
	ctl.metrics.RecordAuth("login_ok")

	// Also return token in response body for clients that prefer Bearer auth
	ctl.setTokenCookie(c, resp)
	ctl.success(c, http.StatusOK, op, resp, zap.String("user_id", resp.User.ID))
}

func (ctl *AuthController) setTokenCookie(c *gin.Context, resp *dto.AuthResponse) {
	maxAge := int(time.Until(resp.ExpiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = 86400
	}
	c.SetCookie(middleware.AccessTokenCookie, resp.Token, maxAge, "/", "", ctl.secureCookie, true)
}

// Logout clears the access_token cookie
func (ctl *AuthController) Logout(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", ctl.secureCookie, true)
	ctl.success(c, http.StatusOK, "auth.logout", gin.H{"message": "Logged out successfully"})
}

// GetCurrentUser returns the currently authenticated user's profile
func (ctl *AuthController) GetCurrentUser(c *gin.Context) {
	const op = "auth.me"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}

	user, err := ctl.authService.CurrentUser(principal)
	if err != nil {
		ctl.fail(c, op, err)
		return
	}
	ctl.success(c, http.StatusOK, op, dto.NewUserResponse(user))
}
