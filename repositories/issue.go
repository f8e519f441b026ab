package repositories

import (
	"strings"
	"time"

	"github.com/issuetrack-api/dto"
	"github.com/issuetrack-api/models"
	"gorm.io/gorm"
)

// IssueRepository handles database operations for issues
type IssueRepository struct {
	db *gorm.DB
}

// NewIssueRepository creates a new issue repository instance
func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *IssueRepository) WithTx(tx *gorm.DB) *IssueRepository {
	return &IssueRepository{db: tx}
}

// FindByID retrieves a non-deleted issue by its ID
func (r *IssueRepository) FindByID(id string) (models.Issue, error) {
	var issue models.Issue
	result := r.db.First(&issue, "id = ?", id)
	return issue, result.Error
}

// Create inserts a new issue
func (r *IssueRepository) Create(issue *models.Issue) error {
	return r.db.Create(issue).Error
}

// UpdateIfVersion applies changes only if the stored version still equals
// version, bumping it by one. It reports false when another writer got there
// first.
func (r *IssueRepository) UpdateIfVersion(id string, version int, changes map[string]interface{}) (bool, error) {
	values := make(map[string]interface{}, len(changes)+2)
	for k, v := range changes {
		values[k] = v
	}
	values["version"] = gorm.Expr("version + 1")
	values["updated_at"] = time.Now().UTC()

	result := r.db.Model(&models.Issue{}).
		Where("id = ? AND version = ?", id, version).
		Updates(values)
	return result.RowsAffected == 1, result.Error
}

// DeleteIfVersion soft deletes an issue guarded by its version
func (r *IssueRepository) DeleteIfVersion(id string, version int) (bool, error) {
	now := time.Now().UTC()
	result := r.db.Model(&models.Issue{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]interface{}{
			"deleted_at": now,
			"updated_at": now,
			"version":    gorm.Expr("version + 1"),
		})
	return result.RowsAffected == 1, result.Error
}

// FindWithPagination retrieves issues with pagination, filtering and sorting.
// Only issues inside filter.ProjectIDs are visible.
func (r *IssueRepository) FindWithPagination(filter dto.IssueFilter) ([]models.Issue, int64, error) {
	var issues []models.Issue
	var totalCount int64

	db := r.db.Model(&models.Issue{}).Where("project_id IN ?", filter.ProjectIDs)

	if filter.ProjectID != "" {
		db = db.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.AssigneeID != "" {
		db = db.Where("assignee_id = ?", filter.AssigneeID)
	}
	if filter.Priority != "" {
		db = db.Where("priority = ?", filter.Priority)
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		db = db.Where(`(LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(description) LIKE LOWER(?) ESCAPE '\')`, pattern, pattern)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	orderString := filter.SortBy + " " + filter.SortOrder + ", id " + filter.SortOrder
	if err := db.Order(orderString).Limit(filter.PageSize).Offset(offset).Find(&issues).Error; err != nil {
		return nil, 0, err
	}

	return issues, totalCount, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
