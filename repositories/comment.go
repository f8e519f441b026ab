package repositories

import (
	"github.com/issuetrack-api/models"
	"gorm.io/gorm"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// FindByID retrieves a non-deleted comment by its ID
func (r *CommentRepository) FindByID(id string) (models.Comment, error) {
	var comment models.Comment
	result := r.db.First(&comment, "id = ?", id)
	return comment, result.Error
}

// FindByIssueID retrieves the non-deleted comments of an issue, oldest first
func (r *CommentRepository) FindByIssueID(issueID string) ([]models.Comment, error) {
	var comments []models.Comment
	result := r.db.Where("issue_id = ?", issueID).Order("created_at ASC, id ASC").Find(&comments)
	return comments, result.Error
}

// Create inserts a new comment
func (r *CommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// UpdateContent replaces the text of a comment
func (r *CommentRepository) UpdateContent(id, content string) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", id).Update("content", content).Error
}

// Delete soft deletes a comment
func (r *CommentRepository) Delete(id string) (bool, error) {
	result := r.db.Delete(&models.Comment{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
