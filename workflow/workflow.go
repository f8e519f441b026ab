// Package workflow holds the issue status state machine.
//
// OPEN -> IN_PROGRESS -> DONE, with IN_PROGRESS -> OPEN and the DONE ->
// IN_PROGRESS reopen. Moving to the current status is always allowed.
// Reaching DONE additionally requires the actor to be the current assignee.
package workflow

import (
	"fmt"

	"github.com/issuetrack-api/apperror"
	"github.com/issuetrack-api/models"
)

const (
	MsgOnlyAssigneeMayClose  = "only assignee may close"
	MsgUnassignedCannotClose = "only assignee may close: issue is unassigned"
)

var transitions = map[models.IssueStatus][]models.IssueStatus{
	models.StatusOpen:       {models.StatusInProgress},
	models.StatusInProgress: {models.StatusDone, models.StatusOpen},
	models.StatusDone:       {models.StatusInProgress},
}

// CanTransition reports whether from -> to is reachable in one step
func CanTransition(from, to models.IssueStatus) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ParseStatus validates a status coming from a request payload
func ParseStatus(raw string) (models.IssueStatus, error) {
	status := models.IssueStatus(raw)
	if !status.Valid() {
		return "", apperror.InvalidInput(fmt.Sprintf("invalid status %q", raw)).WithField("status")
	}
	return status, nil
}

// Validate checks moving issue to the target status on behalf of actorID.
// A nil result means the move is allowed; a self-transition is always a no-op.
func Validate(issue models.Issue, to models.IssueStatus, actorID string) error {
	from := issue.Status
	if from == to {
		return nil
	}
	if !to.Valid() {
		return apperror.InvalidInput(fmt.Sprintf("invalid status %q", to)).WithField("status")
	}
	if !CanTransition(from, to) {
		return apperror.InvalidTransition(string(from), string(to),
			fmt.Sprintf("Invalid transition from %s to %s", from, to))
	}
	if to == models.StatusDone {
		if issue.AssigneeID == nil {
			return apperror.InvalidTransition(string(from), string(to), MsgUnassignedCannotClose)
		}
		if *issue.AssigneeID != actorID {
			return apperror.InvalidTransition(string(from), string(to), MsgOnlyAssigneeMayClose)
		}
	}
	return nil
}

// ValidateInitial checks the status requested for a brand new issue, which
// starts life as OPEN.
func ValidateInitial(to models.IssueStatus, assigneeID *string, actorID string) error {
	draft := models.Issue{Status: models.StatusOpen, AssigneeID: assigneeID}
	return Validate(draft, to, actorID)
}
