package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment on an issue. IssueID and AuthorID never change.
type Comment struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	IssueID   string         `json:"issueId" gorm:"type:varchar(36);not null;index"`
	AuthorID  string         `json:"authorId" gorm:"type:varchar(36);not null"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns a UUID when the caller did not
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
