package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/issuetrack-api/dto"
	"github.com/issuetrack-api/services"
	"go.uber.org/zap"
)

// UserController handles user account endpoints
type UserController struct {
	reporter
	userService *services.UserService
}

// NewUserController creates a new user controller
func NewUserController(userService *services.UserService, r reporter) *UserController {
	return &UserController{reporter: r, userService: userService}
}

// RegisterRoutes registers user routes. Hard deletes are admin only.
func (ctl *UserController) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", ctl.ListUsers)
		users.GET("/:id", ctl.GetUser)
		users.PUT("/:id", ctl.UpdateUser)
		users.DELETE("/:id", ctl.DeleteUser)
	}
}

func (ctl *UserController) ListUsers(c *gin.Context) {
	const op = "user.list"
	users, err := ctl.userService.ListUsers()
	if err != nil {
		ctl.fail(c, op, err)
		return
	}
	ctl.success(c, http.StatusOK, op, dto.NewUserResponses(users))
}

func (ctl *UserController) GetUser(c *gin.Context) {
	const op = "user.read"
	userID := c.Param("id")

	user, err := ctl.userService.GetUser(userID)
	if err != nil {
		ctl.fail(c, op, err, zap.String("user_id", userID))
		return
	}
	ctl.success(c, http.StatusOK, op, dto.NewUserResponse(user))
}

func (ctl *UserController) UpdateUser(c *gin.Context) {
	const op = "user.updated"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}
	userID := c.Param("id")
	var req dto.UpdateUserRequest
	if !ctl.bindJSON(c, op, &req) {
		return
	}

	user, err := ctl.userService.UpdateUser(principal, userID, req)
	if err != nil {
		ctl.fail(c, op, err, zap.String("user_id", userID))
		return
	}
	ctl.success(c, http.StatusOK, op, dto.NewUserResponse(user), zap.String("user_id", userID))
}

func (ctl *UserController) DeleteUser(c *gin.Context) {
	const op = "user.deleted"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}
	userID := c.Param("id")

	if err := ctl.userService.DeleteUser(principal, userID); err != nil {
		ctl.fail(c, op, err, zap.String("user_id", userID))
		return
	}
	ctl.success(c, http.StatusNoContent, op, nil, zap.String("user_id", userID))
}
