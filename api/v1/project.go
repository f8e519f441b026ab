package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/issuetrack-api/dto"
	"github.com/issuetrack-api/services"
	"go.uber.org/zap"
)

// ProjectController handles project and membership endpoints
type ProjectController struct {
	reporter
	projectService *services.ProjectService
}

// NewProjectController creates a new project controller
func NewProjectController(projectService *services.ProjectService, r reporter) *ProjectController {
	return &ProjectController{reporter: r, projectService: projectService}
}

// RegisterRoutes registers project routes
func (ctl *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects")
	{
		projects.GET("", ctl.ListProjects)
		projects.POST("", ctl.CreateProject)
		projects.GET("/:id", ctl.GetProject)
		projects.PUT("/:id", ctl.UpdateProject)
		projects.DELETE("/:id", ctl.DeleteProject)
		projects.POST("/:id/members", ctl.AddMember)
		projects.DELETE("/:id/members/:userId", ctl.RemoveMember)
	}
}

// ListProjects godoc
// @Summary List projects the caller owns or belongs to
// @Tags projects
// @Produce json
// @Success 200 {array} dto.ProjectResponse
// @Router /projects [get]
func (ctl *ProjectController) ListProjects(c *gin.Context) {
	const op = "project.list"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}

	projects, err := ctl.projectService.ListProjects(principal)
	if err != nil {
		ctl.fail(c, op, err)
		return
	}

	response := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		response = append(response, dto.NewProjectResponse(p, nil))
	}
	ctl.success(c, http.StatusOK, op, response)
}

// GetProject godoc
// @Summary Get a project with its members
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Router /projects/{id} [get]
func (ctl *ProjectController) GetProject(c *gin.Context) {
	const op = "project.read"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}
	projectID := c.Param("id")

	detail, err := ctl.projectService.GetProject(principal, projectID)
	if err != nil {
		ctl.fail(c, op, err, zap.String("project_id", projectID))
		return
	}
	ctl.success(c, http.StatusOK, op, dto.NewProjectResponse(detail.Project, detail.Members))
}

// CreateProject creates a project owned by the caller
func (ctl *ProjectController) CreateProject(c *gin.Context) {
	const op = "project.created"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}
	var req dto.CreateProjectRequest
	if !ctl.bindJSON(c, op, &req) {
		return
	}

	project, err := ctl.projectService.CreateProject(principal, req)
	if err != nil {
		ctl.fail(c, op, err)
		return
	}
	ctl.success(c, http.StatusCreated, op, dto.NewProjectResponse(project, nil), zap.String("project_id", project.ID))
}

// UpdateProject updates name and description
func (ctl *ProjectController) UpdateProject(c *gin.Context) {
	const op = "project.updated"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}
	projectID := c.Param("id")
	var req dto.UpdateProjectRequest
	if !ctl.bindJSON(c, op, &req) {
		return
	}

	project, err := ctl.projectService.UpdateProject(principal, projectID, req)
	if err != nil {
		ctl.fail(c, op, err, zap.String("project_id", projectID))
		return
	}
	ctl.success(c, http.StatusOK, op, dto.NewProjectResponse(project, nil), zap.String("project_id", project.ID))
}

// DeleteProject soft deletes a project
func (ctl *ProjectController) DeleteProject(c *gin.Context) {
	const op = "project.deleted"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}
	projectID := c.Param("id")

	if err := ctl.projectService.DeleteProject(principal, projectID); err != nil {
		ctl.fail(c, op, err, zap.String("project_id", projectID))
		return
	}
	ctl.success(c, http.StatusNoContent, op, nil, zap.String("project_id", projectID))
}

// AddMember adds a user to the project
func (ctl *ProjectController) AddMember(c *gin.Context) {
	const op = "project.member_added"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}
	projectID := c.Param("id")
	var req dto.AddMemberRequest
	if !ctl.bindJSON(c, op, &req) {
		return
	}

	fields := []zap.Field{zap.String("project_id", projectID), zap.String("user_id", req.UserID)}
	detail, err := ctl.projectService.AddMember(principal, projectID, req.UserID)
	if err != nil {
		ctl.fail(c, op, err, fields...)
		return
	}
	ctl.success(c, http.StatusCreated, op, dto.NewProjectResponse(detail.Project, detail.Members), fields...)
}

// RemoveMember removes a user from the project
func (ctl *ProjectController) RemoveMember(c *gin.Context) {
	const op = "project.member_removed"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}
	projectID := c.Param("id")
	userID := c.Param("userId")

	fields := []zap.Field{zap.String("project_id", projectID), zap.String("user_id", userID)}
	if err := ctl.projectService.RemoveMember(principal, projectID, userID); err != nil {
		ctl.fail(c, op, err, fields...)
		return
	}
	ctl.success(c, http.StatusNoContent, op, nil, fields...)
}
