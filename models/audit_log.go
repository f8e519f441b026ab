package models

import "time"

// AuditAction tags an audit entry
type AuditAction string

const (
	AuditCreated      AuditAction = "created"
	AuditStatusChange AuditAction = "status_change"
	AuditAssigned     AuditAction = "assigned"
	AuditDeleted      AuditAction = "deleted"
)

// AuditLog is an append-only record of one state change on an issue.
// The autoincrement ID breaks timestamp ties in insertion order.
type AuditLog struct {
	ID        uint        `json:"id" gorm:"primaryKey;autoIncrement"`
	IssueID   string      `json:"issueId" gorm:"type:varchar(36);not null;index"`
	UserID    string      `json:"userId" gorm:"type:varchar(36);not null"`
	Action    AuditAction `json:"action" gorm:"type:varchar(50);not null"`
	OldValue  *string     `json:"oldValue"`
	NewValue  *string     `json:"newValue"`
	Timestamp time.Time   `json:"timestamp" gorm:"not null;index"`
}

// TableName sets the table name for AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
