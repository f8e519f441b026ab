package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/issuetrack-api/dto"
	"github.com/issuetrack-api/services"
	"go.uber.org/zap"
)

// CommentController handles comment endpoints
type CommentController struct {
	reporter
	commentService *services.CommentService
}

// NewCommentController creates a new comment controller
func NewCommentController(commentService *services.CommentService, r reporter) *CommentController {
	return &CommentController{reporter: r, commentService: commentService}
}

// RegisterRoutes registers comment routes
func (ctl *CommentController) RegisterRoutes(router *gin.RouterGroup) {
	comments := router.Group("/comments")
	{
		comments.POST("", ctl.CreateComment)
		comments.GET("/:id", ctl.GetComment)
		comments.PUT("/:id", ctl.UpdateComment)
		comments.DELETE("/:id", ctl.DeleteComment)
	}
}

func (ctl *CommentController) CreateComment(c *gin.Context) {
	const op = "comment.created"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if !ctl.bindJSON(c, op, &req) {
		return
	}

	comment, err := ctl.commentService.CreateComment(principal, req)
	if err != nil {
		ctl.fail(c, op, err, zap.String("issue_id", req.IssueID))
		return
	}
	ctl.success(c, http.StatusCreated, op, comment,
		zap.String("comment_id", comment.ID),
		zap.String("issue_id", comment.IssueID),
	)
}

func (ctl *CommentController) GetComment(c *gin.Context) {
	const op = "comment.read"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}
	commentID := c.Param("id")

	comment, err := ctl.commentService.GetComment(principal, commentID)
	if err != nil {
		ctl.fail(c, op, err, zap.String("comment_id", commentID))
		return
	}
	ctl.success(c, http.StatusOK, op, comment)
}

func (ctl *CommentController) UpdateComment(c *gin.Context) {
	const op = "comment.updated"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}
	commentID := c.Param("id")
	var req dto.UpdateCommentRequest
	if !ctl.bindJSON(c, op, &req) {
		return
	}

	comment, err := ctl.commentService.UpdateComment(principal, commentID, req)
	if err != nil {
		ctl.fail(c, op, err, zap.String("comment_id", commentID))
		return
	}
	ctl.success(c, http.StatusOK, op, comment, zap.String("comment_id", commentID))
}

func (ctl *CommentController) DeleteComment(c *gin.Context) {
	const op = "comment.deleted"
	principal, ok := ctl.principal(c, op)
	if !ok {
		return
	}
	commentID := c.Param("id")

	if err := ctl.commentService.DeleteComment(principal, commentID); err != nil {
		ctl.fail(c, op, err, zap.String("comment_id", commentID))
		return
	}
	ctl.success(c, http.StatusNoContent, op, nil, zap.String("comment_id", commentID))
}
