package services

import (
	"time"

	"github.com/issuetrack-api/models"
	"github.com/issuetrack-api/repositories"
	"gorm.io/gorm"
)

// AuditTrail appends audit entries inside the caller's transaction
type AuditTrail struct {
	auditRepo *repositories.AuditRepository
	now       func() time.Time
}

// NewAuditTrail creates an audit trail writer
func NewAuditTrail(auditRepo *repositories.AuditRepository) *AuditTrail {
	return &AuditTrail{auditRepo: auditRepo, now: time.Now}
}

// Record appends one entry using tx, so it commits or rolls back together
// with the mutation it documents.
func (a *AuditTrail) Record(tx *gorm.DB, issueID, actorID string, action models.AuditAction, oldValue, newValue *string) error {
	entry := models.AuditLog{
		IssueID:   issueID,
		UserID:    actorID,
		Action:    action,
		OldValue:  oldValue,
		NewValue:  newValue,
		Timestamp: a.now().UTC(),
	}
	return a.auditRepo.WithTx(tx).Create(&entry)
}

// List returns the entries of an issue newest first
func (a *AuditTrail) List(issueID string) ([]models.AuditLog, error) {
	return a.auditRepo.FindByIssueID(issueID)
}
