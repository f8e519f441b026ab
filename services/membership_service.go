package services

import (
	"github.com/issuetrack-api/models"
	"github.com/issuetrack-api/repositories"
)

// MembershipOracle answers whether a user is the owner or a listed member of
// a project. Every call reads current data.
type MembershipOracle struct {
	projectRepo *repositories.ProjectRepository
}

// NewMembershipOracle creates a membership oracle
func NewMembershipOracle(projectRepo *repositories.ProjectRepository) *MembershipOracle {
	return &MembershipOracle{projectRepo: projectRepo}
}

// IsMember is true iff userID owns the project or appears in its members
func (o *MembershipOracle) IsMember(userID string, project models.Project) (bool, error) {
	if userID == "" {
		return false, nil
	}
	if userID == project.OwnerID {
		return true, nil
	}
	return o.projectRepo.IsMember(project.ID, userID)
}
