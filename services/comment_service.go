package services

import (
	"strings"

	"github.com/issuetrack-api/apperror"
	"github.com/issuetrack-api/dto"
	"github.com/issuetrack-api/models"
	"github.com/issuetrack-api/policy"
	"github.com/issuetrack-api/repositories"
)

// CommentService handles business logic for issue comments
type CommentService struct {
	commentRepo *repositories.CommentRepository
	issues      *IssueService
	policy      *policy.Policy
}

// NewCommentService creates a new comment service instance
func NewCommentService(commentRepo *repositories.CommentRepository, issues *IssueService, p *policy.Policy) *CommentService {
	return &CommentService{commentRepo: commentRepo, issues: issues, policy: p}
}

func (s *CommentService) load(commentID string) (models.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		return models.Comment{}, lookupError(err, "Comment not found")
	}
	return comment, nil
}

// loadLive loads a comment whose issue and project still exist. A comment
// under a deleted issue or project reads as missing.
func (s *CommentService) loadLive(commentID string) (models.Comment, models.Project, error) {
	comment, err := s.load(commentID)
	if err != nil {
		return models.Comment{}, models.Project{}, err
	}
	_, project, err := s.issues.loadWithProject(comment.IssueID)
	if err != nil {
		if apperror.Is(err, apperror.ReasonNotFound) {
			return models.Comment{}, models.Project{}, apperror.NotFound("Comment not found")
		}
		return models.Comment{}, models.Project{}, err
	}
	return comment, project, nil
}

// ListComments returns the comments of an issue, oldest first
func (s *CommentService) ListComments(principal models.Principal, issueID string) ([]models.Comment, error) {
	issue, project, err := s.issues.loadWithProject(issueID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanReadComment(principal, project); err != nil {
		return nil, policyError(err)
	}

	comments, err := s.commentRepo.FindByIssueID(issue.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return comments, nil
}

// GetComment retrieves a single comment
func (s *CommentService) GetComment(principal models.Principal, commentID string) (models.Comment, error) {
	comment, project, err := s.loadLive(commentID)
	if err != nil {
		return models.Comment{}, err
	}
	if err := s.policy.CanReadComment(principal, project); err != nil {
		return models.Comment{}, policyError(err)
	}
	return comment, nil
}

// CreateComment adds a comment to an issue. Only owners and members of the
// issue's project may comment; being reporter or assignee is not enough.
func (s *CommentService) CreateComment(principal models.Principal, req dto.CreateCommentRequest) (models.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return models.Comment{}, apperror.InvalidInput("Content is required").WithField("content")
	}
	if strings.TrimSpace(req.IssueID) == "" {
		return models.Comment{}, apperror.InvalidInput("issue_id is required").WithField("issue_id")
	}

	issue, project, err := s.issues.loadWithProject(req.IssueID)
	if err != nil {
		return models.Comment{}, err
	}
	if err := s.policy.CanCreateComment(principal, project); err != nil {
		return models.Comment{}, policyError(err)
	}

	comment := models.Comment{
		Content:  content,
		IssueID:  issue.ID,
		AuthorID: principal.UserID,
	}
	if err := s.commentRepo.Create(&comment); err != nil {
		return models.Comment{}, apperror.Internal(err)
	}
	return comment, nil
}

// UpdateComment edits the text of a comment. Author only.
func (s *CommentService) UpdateComment(principal models.Principal, commentID string, req dto.UpdateCommentRequest) (models.Comment, error) {
	comment, _, err := s.loadLive(commentID)
	if err != nil {
		return models.Comment{}, err
	}
	if err := s.policy.CanUpdateComment(principal, comment); err != nil {
		return models.Comment{}, err
	}
	if req.Content == nil {
		return comment, nil
	}

	content := strings.TrimSpace(*req.Content)
	if content == "" {
		return models.Comment{}, apperror.InvalidInput("Content cannot be empty").WithField("content")
	}
	if err := s.commentRepo.UpdateContent(comment.ID, content); err != nil {
		return models.Comment{}, apperror.Internal(err)
	}
	return s.load(comment.ID)
}

// DeleteComment soft deletes a comment. Author only.
func (s *CommentService) DeleteComment(principal models.Principal, commentID string) error {
	comment, _, err := s.loadLive(commentID)
	if err != nil {
		return err
	}
	if err := s.policy.CanDeleteComment(principal, comment); err != nil {
		return err
	}

	deleted, err := s.commentRepo.Delete(comment.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !deleted {
		return apperror.NotFound("Comment not found")
	}
	return nil
}
