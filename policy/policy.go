// Package policy decides whether a principal may perform an action on a
// resource. Every rule returns nil to allow, an *apperror.Error to deny, or
// a plain error when the membership lookup itself failed.
package policy

import (
	"github.com/issuetrack-api/apperror"
	"github.com/issuetrack-api/models"
)

// Membership answers whether a user is the owner or a listed member of a project
type Membership interface {
	IsMember(userID string, project models.Project) (bool, error)
}

// Policy evaluates the per resource/action rules
type Policy struct {
	membership Membership
}

// New creates a policy backed by the given membership oracle
func New(membership Membership) *Policy {
	return &Policy{membership: membership}
}

func (p *Policy) requireMember(userID string, project models.Project, deny *apperror.Error) error {
	ok, err := p.membership.IsMember(userID, project)
	if err != nil {
		return err
	}
	if !ok {
		return deny
	}
	return nil
}

func requireOwner(principal models.Principal, project models.Project, message string) error {
	if principal.UserID != project.OwnerID {
		return apperror.Forbidden(message)
	}
	return nil
}

// CanCreateProject allows any authenticated principal
func (p *Policy) CanCreateProject(principal models.Principal) error {
	if principal.UserID == "" {
		return apperror.Unauthenticated("Authentication required")
	}
	return nil
}

// CanReadProject requires owner or member
func (p *Policy) CanReadProject(principal models.Principal, project models.Project) error {
	return p.requireMember(principal.UserID, project, apperror.Forbidden("Access denied"))
}

// CanUpdateProject is owner only
func (p *Policy) CanUpdateProject(principal models.Principal, project models.Project) error {
	return requireOwner(principal, project, "Only project owner can update project")
}

// CanDeleteProject is owner only
func (p *Policy) CanDeleteProject(principal models.Principal, project models.Project) error {
	return requireOwner(principal, project, "Only project owner can delete project")
}

// CanAddMember is owner only
func (p *Policy) CanAddMember(principal models.Principal, project models.Project) error {
	return requireOwner(principal, project, "Only project owner can add members")
}

// CanRemoveMember is owner only and never removes the owner
func (p *Policy) CanRemoveMember(principal models.Principal, project models.Project, userID string) error {
	if err := requireOwner(principal, project, "Only project owner can remove members"); err != nil {
		return err
	}
	if userID == project.OwnerID {
		return apperror.InvalidInput("Cannot remove project owner").WithField("user_id")
	}
	return nil
}

// CanAssign requires a proposed assignee to be owner or member of the project
func (p *Policy) CanAssign(project models.Project, assigneeID string) error {
	deny := apperror.InvalidInput("Assignee must be a project member").WithField("assignee_id")
	return p.requireMember(assigneeID, project, deny)
}

// CanCreateIssue requires the principal, and a supplied assignee, to be
// owner or member of the project.
func (p *Policy) CanCreateIssue(principal models.Principal, project models.Project, assigneeID *string) error {
	deny := apperror.Forbidden("You must be a project member to create issues")
	if err := p.requireMember(principal.UserID, project, deny); err != nil {
		return err
	}
	if assigneeID != nil {
		return p.CanAssign(project, *assigneeID)
	}
	return nil
}

// CanReadIssue requires owner or member of the issue's project
func (p *Policy) CanReadIssue(principal models.Principal, project models.Project) error {
	return p.requireMember(principal.UserID, project, apperror.Forbidden("Access denied"))
}

// CanUpdateIssue lets the assignee and the reporter through even after they
// left the project; anyone else must be owner or member.
func (p *Policy) CanUpdateIssue(principal models.Principal, issue models.Issue, project models.Project) error {
	if issue.IsAssignedTo(principal.UserID) || issue.ReporterID == principal.UserID {
		return nil
	}
	deny := apperror.Forbidden("You do not have permission to modify this issue")
	return p.requireMember(principal.UserID, project, deny)
}

// CanDeleteIssue is limited to the project owner and the reporter
func (p *Policy) CanDeleteIssue(principal models.Principal, issue models.Issue, project models.Project) error {
	if project.OwnerID == principal.UserID || issue.ReporterID == principal.UserID {
		return nil
	}
	return apperror.Forbidden("Only project owner or issue reporter can delete issues")
}

// CanCreateComment is strictly membership based; reporter or assignee status
// grants nothing here.
func (p *Policy) CanCreateComment(principal models.Principal, project models.Project) error {
	return p.requireMember(principal.UserID, project, apperror.Forbidden("Only project members can comment on issues"))
}

// CanReadComment requires owner or member of the issue's project
func (p *Policy) CanReadComment(principal models.Principal, project models.Project) error {
	return p.requireMember(principal.UserID, project, apperror.Forbidden("Access denied"))
}

// CanUpdateComment is author only
func (p *Policy) CanUpdateComment(principal models.Principal, comment models.Comment) error {
	if comment.AuthorID != principal.UserID {
		return apperror.Forbidden("You can only edit your own comments")
	}
	return nil
}

// CanDeleteComment is author only
func (p *Policy) CanDeleteComment(principal models.Principal, comment models.Comment) error {
	if comment.AuthorID != principal.UserID {
		return apperror.Forbidden("You can only delete your own comments")
	}
	return nil
}

// CanViewAudit requires owner or member of the issue's project
func (p *Policy) CanViewAudit(principal models.Principal, project models.Project) error {
	return p.requireMember(principal.UserID, project, apperror.Forbidden("Access denied"))
}

// CanUpdateUser allows self or admin; changing a role is admin only
func (p *Policy) CanUpdateUser(principal models.Principal, targetID string, changesRole bool) error {
	if principal.UserID != targetID && !principal.IsAdmin() {
		return apperror.Forbidden("Permission denied")
	}
	if changesRole && !principal.IsAdmin() {
		return apperror.Forbidden("Only admins can change roles").WithField("role")
	}
	return nil
}

// CanDeleteUser is admin only
func (p *Policy) CanDeleteUser(principal models.Principal) error {
	if !principal.IsAdmin() {
		return apperror.Forbidden("Admin access required")
	}
	return nil
}
