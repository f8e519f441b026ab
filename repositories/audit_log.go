package repositories

import (
	"github.com/issuetrack-api/models"
	"gorm.io/gorm"
)

// AuditRepository appends and reads audit entries. It has no update or
// delete operations.
type AuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository instance
func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *AuditRepository) WithTx(tx *gorm.DB) *AuditRepository {
	return &AuditRepository{db: tx}
}

// Create appends an entry
func (r *AuditRepository) Create(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}

// FindByIssueID lists entries newest first; equal timestamps fall back to
// insertion order, newest first.
func (r *AuditRepository) FindByIssueID(issueID string) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	result := r.db.Where("issue_id = ?", issueID).Order("audit_logs.timestamp DESC, audit_logs.id DESC").Find(&entries)
	return entries, result.Error
}
