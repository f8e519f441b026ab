package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/issuetrack-api/dto"
	"github.com/issuetrack-api/models"
	"github.com/issuetrack-api/services"
	"go.uber.org/zap"
)

// IssueController handles issue endpoints
type IssueController struct {
	reporter
	issueService   *services.IssueService
	commentService *services.CommentService
}

// NewIssueController creates a new issue controller
func NewIssueController(issueService *services.IssueService, commentService *services.CommentService, r reporter) *IssueController {
	return &IssueController{reporter: r, issueService: issueService, commentService: commentService}
}

// RegisterRoutes registers issue routes
func (ctl *IssueController) RegisterRoutes(router *gin.RouterGroup) {
	issues := router.Group("/issues")
	{
		issues.GET("", ctl.ListIssues)
		issues.POST("", ctl.CreateIssue)
		issues.GET("/:id", ctl.GetIssue)
		issues.PUT("/:id", ctl.UpdateIssue)
		issues.DELETE("/:id", ctl.DeleteIssue)
		issues.GET("/:id/audit", ctl.GetAuditLog)
		issues.GET("/:id/comments", ctl.ListComments)
	}
}

// ListIssues godoc
// @Summary List issues with pagination and filtering
// @Description Only issues of projects the caller owns or belongs to are returned
// @Tags issues
// @Produce json
// @Param project_id query string false "Project ID"
// @Param status query string false "OPEN, IN_PROGRESS or DONE"
// @Param assignee_id query string false "Assignee user ID"
// @Param priority query string false "LOW, MEDIUM, HIGH or CRITICAL"
// @Param search query string false "Search term for title/description"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Param sortBy query string false "Field to sort by (created_at, updated_at, title, priority, status)"
// @Param sortOrder query string false "Sort order (asc or desc)"
// @Success 200 {object} dto.IssueListResponse
// @Router /issues [get]
func (ctl *IssueController) ListIssues(c *gin.Context) {
	const op = "issue.list"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize < 1 {
		pageSize = 20
	}

	filter := dto.IssueFilter{
		ProjectID:  c.Query("project_id"),
		Status:     c.Query("status"),
		AssigneeID: c.Query("assignee_id"),
		Priority:   c.Query("priority"),
		Search:     c.Query("search"),
		SortBy:     c.DefaultQuery("sortBy", "created_at"),
		SortOrder:  c.DefaultQuery("sortOrder", "desc"),
		Page:       page,
		PageSize:   pageSize,
	}

	response, err := ctl.issueService.ListIssues(principal, filter)
	if err != nil {
		ctl.fail(c, op, err)
		return
	}
	ctl.success(c, http.StatusOK, op, response)
}

// GetIssue returns an issue with its comments
func (ctl *IssueController) GetIssue(c *gin.Context) {
	const op = "issue.read"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}
	issueID := c.Param("id")

	detail, err := ctl.issueService.GetIssue(principal, issueID)
	if err != nil {
		ctl.fail(c, op, err, zap.String("issue_id", issueID))
		return
	}
	ctl.success(c, http.StatusOK, op, detail)
}

// CreateIssue creates an issue reported by the caller
func (ctl *IssueController) CreateIssue(c *gin.Context) {
	const op = "issue.created"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}
	var req dto.CreateIssueRequest
	if !ctl.bindJSON(c, op, &req) {
		return
	}

	issue, err := ctl.issueService.CreateIssue(principal, req)
	if err != nil {
		ctl.fail(c, op, err, zap.String("project_id", req.ProjectID))
		return
	}
	ctl.success(c, http.StatusCreated, op, issue,
		zap.String("issue_id", issue.ID),
		zap.String("project_id", issue.ProjectID),
	)
}

// UpdateIssue applies field, status and assignee changes
func (ctl *IssueController) UpdateIssue(c *gin.Context) {
	op := "issue.updated"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}
	issueID := c.Param("id")
	var req dto.UpdateIssueRequest
	if !ctl.bindJSON(c, op, &req) {
		return
	}
	if req.Status != nil {
		op = "issue.status_changed"
	}

	fields := []zap.Field{zap.String("issue_id", issueID)}
	if req.Status != nil {
		fields = append(fields, zap.String("target_status", *req.Status))
	}

	issue, err := ctl.issueService.UpdateIssue(principal, issueID, req)
	if err != nil {
		ctl.fail(c, op, err, fields...)
		return
	}
	ctl.success(c, http.StatusOK, op, issue, append(fields, zap.Int("version", issue.Version))...)
}

// DeleteIssue soft deletes an issue
func (ctl *IssueController) DeleteIssue(c *gin.Context) {
	const op = "issue.deleted"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}
	issueID := c.Param("id")

	if err := ctl.issueService.DeleteIssue(principal, issueID); err != nil {
		ctl.fail(c, op, err, zap.String("issue_id", issueID))
		return
	}
	ctl.success(c, http.StatusNoContent, op, nil, zap.String("issue_id", issueID))
}

// GetAuditLog returns the audit trail of an issue, newest first
func (ctl *IssueController) GetAuditLog(c *gin.Context) {
	const op = "issue.audit_read"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}
	issueID := c.Param("id")

	entries, err := ctl.issueService.AuditLog(principal, issueID)
	if err != nil {
		ctl.fail(c, op, err, zap.String("issue_id", issueID))
		return
	}
	if entries == nil {
		entries = []models.AuditLog{}
	}
	ctl.success(c, http.StatusOK, op, entries)
}

// ListComments returns the comments of an issue
func (ctl *IssueController) ListComments(c *gin.Context) {
	const op = "comment.list"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}
	issueID := c.Param("id")

	comments, err := ctl.commentService.ListComments(principal, issueID)
	if err != nil {
		ctl.fail(c, op, err, zap.String("issue_id", issueID))
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	ctl.success(c, http.StatusOK, op, comments)
}
