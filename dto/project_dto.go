package dto

import (
	"time"

	"github.com/issuetrack-api/models"
)

// CreateProjectRequest represents the request payload for creating a new project
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateProjectRequest carries the fields to change; nil means unchanged
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AddMemberRequest names the user to add to a project
type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// ProjectResponse represents the standard response format for a project
type ProjectResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	OwnerID     string         `json:"ownerId"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Members     []UserResponse `json:"members,omitempty"`
}

// NewProjectResponse maps a project and, optionally, its members
func NewProjectResponse(project models.Project, members []models.User) ProjectResponse {
	resp := ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
	if members != nil {
		resp.Members = NewUserResponses(members)
	}
	return resp
}

// ProjectDetail is a project together with its member list
type ProjectDetail struct {
	Project models.Project
	Members []models.User
}
