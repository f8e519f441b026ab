package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IssueStatus is a state of the issue workflow
type IssueStatus string

const (
	StatusOpen       IssueStatus = "OPEN"
	StatusInProgress IssueStatus = "IN_PROGRESS"
	StatusDone       IssueStatus = "DONE"
)

// Valid reports whether s is a known status
func (s IssueStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Priority of an issue
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Issue is a unit of work inside a project. ProjectID and ReporterID are
// fixed at creation; Version increments on every write and guards against
// lost updates.
type Issue struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	Status      IssueStatus    `json:"status" gorm:"type:varchar(20);not null;default:'OPEN';index"`
	Priority    Priority       `json:"priority" gorm:"type:varchar(20);not null;default:'MEDIUM'"`
	ProjectID   string         `json:"projectId" gorm:"type:varchar(36);not null;index"`
	ReporterID  string         `json:"reporterId" gorm:"type:varchar(36);not null"`
	AssigneeID  *string        `json:"assigneeId" gorm:"type:varchar(36);index"`
	Version     int            `json:"version" gorm:"not null;default:1"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns a UUID when the caller did not
func (i *Issue) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Version == 0 {
		i.Version = 1
	}
	return nil
}

// IsAssignedTo reports whether userID is the current assignee
func (i Issue) IsAssignedTo(userID string) bool {
	return i.AssigneeID != nil && *i.AssigneeID == userID
}
