package services

import (
	"errors"
	"strings"

	"github.com/issuetrack-api/apperror"
	"github.com/issuetrack-api/dto"
	"github.com/issuetrack-api/models"
	"github.com/issuetrack-api/policy"
	"github.com/issuetrack-api/repositories"
	"gorm.io/gorm"
)

// ProjectService handles business logic for projects and their members
type ProjectService struct {
	db          *gorm.DB
	projectRepo *repositories.ProjectRepository
	userRepo    *repositories.UserRepository
	policy      *policy.Policy
}

// NewProjectService creates a new project service instance
func NewProjectService(db *gorm.DB, projectRepo *repositories.ProjectRepository, userRepo *repositories.UserRepository, p *policy.Policy) *ProjectService {
	return &ProjectService{
		db:          db,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		policy:      p,
	}
}

func (s *ProjectService) load(projectID string) (models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return models.Project{}, lookupError(err, "Project not found")
	}
	return project, nil
}

// ListProjects returns the projects the principal owns or belongs to
func (s *ProjectService) ListProjects(principal models.Principal) ([]models.Project, error) {
	projects, err := s.projectRepo.FindForUser(principal.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return projects, nil
}

// GetProject retrieves a project with its members
func (s *ProjectService) GetProject(principal models.Principal, projectID string) (dto.ProjectDetail, error) {
	project, err := s.load(projectID)
	if err != nil {
		return dto.ProjectDetail{}, err
	}
	if err := s.policy.CanReadProject(principal, project); err != nil {
		return dto.ProjectDetail{}, policyError(err)
	}

	members, err := s.projectRepo.Members(project.ID)
	if err != nil {
		return dto.ProjectDetail{}, apperror.Internal(err)
	}
	return dto.ProjectDetail{Project: project, Members: members}, nil
}

// CreateProject creates a project owned by the principal, who also becomes
// its first member.
func (s *ProjectService) CreateProject(principal models.Principal, req dto.CreateProjectRequest) (models.Project, error) {
	if err := s.policy.CanCreateProject(principal); err != nil {
		return models.Project{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Project{}, apperror.InvalidInput("Project name is required").WithField("name")
	}

	project := models.Project{
		Name:        name,
		Description: req.Description,
		OwnerID:     principal.UserID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.projectRepo.WithTx(tx)
		if err := repo.Create(&project); err != nil {
			return err
		}
		return repo.AddMember(project.ID, principal.UserID)
	})
	if err != nil {
		return models.Project{}, apperror.Internal(err)
	}
	return project, nil
}

// UpdateProject changes name and/or description. Owner only.
func (s *ProjectService) UpdateProject(principal models.Principal, projectID string, req dto.UpdateProjectRequest) (models.Project, error) {
	project, err := s.load(projectID)
	if err != nil {
		return models.Project{}, err
	}
	if err := s.policy.CanUpdateProject(principal, project); err != nil {
		return models.Project{}, err
	}

	changes := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return models.Project{}, apperror.InvalidInput("Project name cannot be empty").WithField("name")
		}
		changes["name"] = name
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}

	if len(changes) > 0 {
		if err := s.projectRepo.Update(project.ID, changes); err != nil {
			return models.Project{}, apperror.Internal(err)
		}
	}
	return s.load(project.ID)
}

// DeleteProject soft deletes a project. Its issues are not touched.
func (s *ProjectService) DeleteProject(principal models.Principal, projectID string) error {
	project, err := s.load(projectID)
	if err != nil {
		return err
	}
	if err := s.policy.CanDeleteProject(principal, project); err != nil {
		return err
	}

	deleted, err := s.projectRepo.Delete(project.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !deleted {
		return apperror.NotFound("Project not found")
	}
	return nil
}

// AddMember adds an existing user to the project. Adding someone who is
// already a member is a Conflict.
func (s *ProjectService) AddMember(principal models.Principal, projectID, userID string) (dto.ProjectDetail, error) {
	project, err := s.load(projectID)
	if err != nil {
		return dto.ProjectDetail{}, err
	}
	if err := s.policy.CanAddMember(principal, project); err != nil {
		return dto.ProjectDetail{}, err
	}
	if strings.TrimSpace(userID) == "" {
		return dto.ProjectDetail{}, apperror.InvalidInput("user_id is required").WithField("user_id")
	}

	exists, err := s.userRepo.Exists(userID)
	if err != nil {
		return dto.ProjectDetail{}, apperror.Internal(err)
	}
	if !exists {
		return dto.ProjectDetail{}, apperror.NotFound("User not found")
	}

	already, err := s.projectRepo.IsMember(project.ID, userID)
	if err != nil {
		return dto.ProjectDetail{}, apperror.Internal(err)
	}
	if already {
		return dto.ProjectDetail{}, apperror.Conflict("User is already a member").WithField("user_id")
	}

	if err := s.projectRepo.AddMember(project.ID, userID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.ProjectDetail{}, apperror.Conflict("User is already a member").WithField("user_id")
		}
		return dto.ProjectDetail{}, apperror.Internal(err)
	}
	return s.GetProject(principal, project.ID)
}

// RemoveMember removes a user from the project. The owner can never be removed.
func (s *ProjectService) RemoveMember(principal models.Principal, projectID, userID string) error {
	project, err := s.load(projectID)
	if err != nil {
		return err
	}
	if err := s.policy.CanRemoveMember(principal, project, userID); err != nil {
		return err
	}

	removed, err := s.projectRepo.RemoveMember(project.ID, userID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !removed {
		return apperror.NotFound("User is not a member of this project")
	}
	return nil
}
