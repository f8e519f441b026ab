package dto

import "github.com/issuetrack-api/models"

// CreateIssueRequest represents the payload for creating an issue
type CreateIssueRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	ProjectID   string  `json:"project_id" binding:"required"`
	AssigneeID  *string `json:"assignee_id"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
}

// UpdateIssueRequest carries the fields to change. AssigneeID tells an
// absent key apart from an explicit null. Version, when sent, must match the
// stored version.
type UpdateIssueRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Priority    *string        `json:"priority"`
	Status      *string        `json:"status"`
	AssigneeID  OptionalString `json:"assignee_id"`
	Version     *int           `json:"version"`
}

// IssueFilter represents filter criteria for issue listings
type IssueFilter struct {
	ProjectIDs []string
	ProjectID  string
	Status     string
	AssigneeID string
	Priority   string
	Search     string
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

// IssueListResponse represents a paginated issue list
type IssueListResponse struct {
	Issues     []models.Issue `json:"issues"`
	TotalCount int64          `json:"totalCount"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

// IssueDetailResponse is an issue with its visible comments
type IssueDetailResponse struct {
	models.Issue
	Comments []models.Comment `json:"comments"`
}
