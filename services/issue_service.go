package services

import (
	"strings"

	"github.com/issuetrack-api/apperror"
	"github.com/issuetrack-api/dto"
	"github.com/issuetrack-api/models"
	"github.com/issuetrack-api/policy"
	"github.com/issuetrack-api/repositories"
	"github.com/issuetrack-api/utils"
	"github.com/issuetrack-api/workflow"
	"gorm.io/gorm"
)

// MsgConcurrentModification is returned when another writer changed the
// issue between our read and our write.
const MsgConcurrentModification = "issue was modified concurrently"

var validIssueSortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"title":      true,
	"priority":   true,
	"status":     true,
}

// IssueService handles business logic for issues and their audit trail
type IssueService struct {
	db          *gorm.DB
	issueRepo   *repositories.IssueRepository
	projectRepo *repositories.ProjectRepository
	userRepo    *repositories.UserRepository
	commentRepo *repositories.CommentRepository
	audit       *AuditTrail
	policy      *policy.Policy
}

// NewIssueService creates a new issue service instance
func NewIssueService(
	db *gorm.DB,
	issueRepo *repositories.IssueRepository,
	projectRepo *repositories.ProjectRepository,
	userRepo *repositories.UserRepository,
	commentRepo *repositories.CommentRepository,
	audit *AuditTrail,
	p *policy.Policy,
) *IssueService {
	return &IssueService{
		db:          db,
		issueRepo:   issueRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		audit:       audit,
		policy:      p,
	}
}

type auditChange struct {
	action   models.AuditAction
	oldValue *string
	newValue *string
}

// loadWithProject fetches a live issue and its live project. An issue whose
// project was soft deleted is treated as missing.
func (s *IssueService) loadWithProject(issueID string) (models.Issue, models.Project, error) {
	issue, err := s.issueRepo.FindByID(issueID)
	if err != nil {
		return models.Issue{}, models.Project{}, lookupError(err, "Issue not found")
	}
	project, err := s.projectRepo.FindByID(issue.ProjectID)
	if err != nil {
		return models.Issue{}, models.Project{}, lookupError(err, "Issue not found")
	}
	return issue, project, nil
}

// ListIssues retrieves issues with pagination, filtering and sorting.
// Only issues of projects the principal owns or belongs to are listed.
func (s *IssueService) ListIssues(principal models.Principal, filter dto.IssueFilter) (dto.IssueListResponse, error) {
	var response dto.IssueListResponse

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
	if filter.SortOrder != "asc" && filter.SortOrder != "desc" {
		filter.SortOrder = "desc"
	}
	if !validIssueSortColumns[filter.SortBy] {
		filter.SortBy = "created_at"
	}
	if filter.Status != "" && !models.IssueStatus(filter.Status).Valid() {
		return response, apperror.InvalidInput("Invalid status filter").WithField("status")
	}
	if filter.Priority != "" && !models.Priority(filter.Priority).Valid() {
		return response, apperror.InvalidInput("Invalid priority filter").WithField("priority")
	}

	if filter.ProjectID != "" {
		project, err := s.projectRepo.FindByID(filter.ProjectID)
		if err != nil {
			return response, lookupError(err, "Project not found")
		}
		if err := s.policy.CanReadIssue(principal, project); err != nil {
			return response, policyError(err)
		}
	}

	projectIDs, err := s.projectRepo.ProjectIDsForUser(principal.UserID)
	if err != nil {
		return response, apperror.Internal(err)
	}

	issues := []models.Issue{}
	var totalCount int64
	if len(projectIDs) > 0 {
		filter.ProjectIDs = projectIDs
		issues, totalCount, err = s.issueRepo.FindWithPagination(filter)
		if err != nil {
			return response, apperror.Internal(err)
		}
	}

	totalPages := int(totalCount) / filter.PageSize
	if int(totalCount)%filter.PageSize > 0 {
		totalPages++
	}

	response = dto.IssueListResponse{
		Issues:     issues,
		TotalCount: totalCount,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}
	return response, nil
}

// GetIssue retrieves an issue with its comments
func (s *IssueService) GetIssue(principal models.Principal, issueID string) (dto.IssueDetailResponse, error) {
	issue, project, err := s.loadWithProject(issueID)
	if err != nil {
		return dto.IssueDetailResponse{}, err
	}
	if err := s.policy.CanReadIssue(principal, project); err != nil {
		return dto.IssueDetailResponse{}, policyError(err)
	}

	comments, err := s.commentRepo.FindByIssueID(issue.ID)
	if err != nil {
		return dto.IssueDetailResponse{}, apperror.Internal(err)
	}
	return dto.IssueDetailResponse{Issue: issue, Comments: comments}, nil
}

// checkAssignee verifies a proposed assignee exists and belongs to the project
func (s *IssueService) checkAssignee(project models.Project, assigneeID string) error {
	exists, err := s.userRepo.Exists(assigneeID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !exists {
		return apperror.NotFound("Assignee not found")
	}
	return policyError(s.policy.CanAssign(project, assigneeID))
}

// CreateIssue creates an issue reported by the principal and records the
// created audit entry in the same transaction.
func (s *IssueService) CreateIssue(principal models.Principal, req dto.CreateIssueRequest) (models.Issue, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.Issue{}, apperror.InvalidInput("Title is required").WithField("title")
	}
	if strings.TrimSpace(req.ProjectID) == "" {
		return models.Issue{}, apperror.InvalidInput("project_id is required").WithField("project_id")
	}

	project, err := s.projectRepo.FindByID(req.ProjectID)
	if err != nil {
		return models.Issue{}, lookupError(err, "Project not found")
	}

	assigneeID := utils.NonEmptyPtr(req.AssigneeID)
	if err := s.policy.CanCreateIssue(principal, project, nil); err != nil {
		return models.Issue{}, policyError(err)
	}
	if assigneeID != nil {
		if err := s.checkAssignee(project, *assigneeID); err != nil {
			return models.Issue{}, err
		}
	}

	priority := models.PriorityMedium
	if req.Priority != "" {
		priority = models.Priority(req.Priority)
		if !priority.Valid() {
			return models.Issue{}, apperror.InvalidInput("Invalid priority").WithField("priority")
		}
	}

	status := models.StatusOpen
	if req.Status != "" {
		status, err = workflow.ParseStatus(req.Status)
		if err != nil {
			return models.Issue{}, err
		}
		if err := workflow.ValidateInitial(status, assigneeID, principal.UserID); err != nil {
			return models.Issue{}, err
		}
	}

	issue := models.Issue{
		Title:       title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		ProjectID:   project.ID,
		ReporterID:  principal.UserID,
		AssigneeID:  assigneeID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.issueRepo.WithTx(tx).Create(&issue); err != nil {
			return err
		}
		return s.audit.Record(tx, issue.ID, principal.UserID, models.AuditCreated, nil, utils.StringPtr(string(issue.Status)))
	})
	if err != nil {
		return models.Issue{}, apperror.Internal(err)
	}
	return issue, nil
}

// UpdateIssue applies field, status and assignee changes. Status moves go
// through the workflow machine using the assignee as stored before this
// request. The write is guarded by the version read at the start, so a
// concurrent writer makes this call fail with Conflict instead of being
// overwritten.
func (s *IssueService) UpdateIssue(principal models.Principal, issueID string, req dto.UpdateIssueRequest) (models.Issue, error) {
	issue, project, err := s.loadWithProject(issueID)
	if err != nil {
		return models.Issue{}, err
	}
	if err := s.policy.CanUpdateIssue(principal, issue, project); err != nil {
		return models.Issue{}, policyError(err)
	}
	if req.Version != nil && *req.Version != issue.Version {
		return models.Issue{}, apperror.Conflict(MsgConcurrentModification).WithField("version")
	}

	changes := map[string]interface{}{}
	var audits []auditChange

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return models.Issue{}, apperror.InvalidInput("Title cannot be empty").WithField("title")
		}
		if title != issue.Title {
			changes["title"] = title
		}
	}
	if req.Description != nil && *req.Description != issue.Description {
		changes["description"] = *req.Description
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		if !priority.Valid() {
			return models.Issue{}, apperror.InvalidInput("Invalid priority").WithField("priority")
		}
		if priority != issue.Priority {
			changes["priority"] = priority
		}
	}

	if req.Status != nil {
		to, err := workflow.ParseStatus(*req.Status)
		if err != nil {
			return models.Issue{}, err
		}
		if err := workflow.Validate(issue, to, principal.UserID); err != nil {
			return models.Issue{}, err
		}
		if to != issue.Status {
			changes["status"] = to
			audits = append(audits, auditChange{
				action:   models.AuditStatusChange,
				oldValue: utils.StringPtr(string(issue.Status)),
				newValue: utils.StringPtr(string(to)),
			})
		}
	}

	if req.AssigneeID.Set {
		newAssignee := utils.NonEmptyPtr(req.AssigneeID.Value)
		if !utils.SameStringPtr(newAssignee, issue.AssigneeID) {
			if newAssignee != nil {
				if err := s.checkAssignee(project, *newAssignee); err != nil {
					return models.Issue{}, err
				}
				changes["assignee_id"] = *newAssignee
			} else {
				changes["assignee_id"] = nil
			}
			audits = append(audits, auditChange{
				action:   models.AuditAssigned,
				oldValue: utils.NonEmptyPtr(issue.AssigneeID),
				newValue: newAssignee,
			})
		}
	}

	if len(changes) == 0 {
		return issue, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		ok, err := s.issueRepo.WithTx(tx).UpdateIfVersion(issue.ID, issue.Version, changes)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.Conflict(MsgConcurrentModification)
		}
		for _, a := range audits {
			if err := s.audit.Record(tx, issue.ID, principal.UserID, a.action, a.oldValue, a.newValue); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Issue{}, apperror.Internal(err)
	}

	updated, err := s.issueRepo.FindByID(issue.ID)
	if err != nil {
		return models.Issue{}, lookupError(err, "Issue not found")
	}
	return updated, nil
}

// DeleteIssue soft deletes an issue. Project owner or reporter only.
func (s *IssueService) DeleteIssue(principal models.Principal, issueID string) error {
	issue, project, err := s.loadWithProject(issueID)
	if err != nil {
		return err
	}
	if err := s.policy.CanDeleteIssue(principal, issue, project); err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		ok, err := s.issueRepo.WithTx(tx).DeleteIfVersion(issue.ID, issue.Version)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.Conflict(MsgConcurrentModification)
		}
		return s.audit.Record(tx, issue.ID, principal.UserID, models.AuditDeleted,
			utils.StringPtr("active"), utils.StringPtr("deleted"))
	})
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// AuditLog lists the audit entries of an issue, newest first
func (s *IssueService) AuditLog(principal models.Principal, issueID string) ([]models.AuditLog, error) {
	_, project, err := s.loadWithProject(issueID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanViewAudit(principal, project); err != nil {
		return nil, policyError(err)
	}

	entries, err := s.audit.List(issueID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return entries, nil
}
