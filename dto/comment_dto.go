package dto

// CreateCommentRequest represents the payload for commenting on an issue
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
	IssueID string `json:"issue_id" binding:"required"`
}

// UpdateCommentRequest represents the payload for editing a comment
type UpdateCommentRequest struct {
	Content *string `json:"content"`
}
