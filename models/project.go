package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project groups issues. OwnerID never changes after creation.
type Project struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	OwnerID     string         `json:"ownerId" gorm:"type:varchar(36);not null;index"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns a UUID when the caller did not
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProjectMember is one row of the project <-> user membership relation
type ProjectMember struct {
	ProjectID string    `json:"projectId" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"primaryKey;type:varchar(36);index"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// TableName sets the table name for ProjectMember model
func (ProjectMember) TableName() string {
	return "project_members"
}
