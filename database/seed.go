package database

import (
	"errors"
	"time"

	"github.com/issuetrack-api/logger"
	"github.com/issuetrack-api/models"
	"github.com/issuetrack-api/repositories"
	"github.com/issuetrack-api/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedAdminEmail marks a seeded database; Seed does nothing when it exists
const SeedAdminEmail = "admin@example.com"

// SeedResult describes what Seed created
type SeedResult struct {
	Skipped  bool
	Users    int
	Projects int
	Issues   int
}

type seedIssue struct {
	title    string
	priority models.Priority
	status   models.IssueStatus
	reporter string
	assignee string
}

// Seed inserts demo users, projects, memberships and issues with their
// created audit entries, all in one transaction. Every user gets password.
func Seed(db *gorm.DB, password string) (SeedResult, error) {
	var result SeedResult
	if len(password) < utils.MinPasswordLength {
		return result, errors.New("seed password too short")
	}

	users := repositories.NewUserRepository(db)
	taken, err := users.EmailTaken(SeedAdminEmail, "")
	if err != nil {
		return result, err
	}
	if taken {
		logger.Get().Info("Seed data already present, skipping")
		result.Skipped = true
		return result, nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return result, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		userRepo := repositories.NewUserRepository(tx)
		projectRepo := repositories.NewProjectRepository(tx)
		issueRepo := repositories.NewIssueRepository(tx)
		auditRepo := repositories.NewAuditRepository(tx)

		ids := map[string]string{}
		for _, u := range []struct {
			key   string
			email string
			role  models.Role
		}{
			{"admin", SeedAdminEmail, models.RoleAdmin},
			{"alice", "alice@example.com", models.RoleMember},
			{"bob", "bob@example.com", models.RoleMember},
			{"charlie", "charlie@example.com", models.RoleMember},
		} {
			user := models.User{Email: u.email, Password: hashed, Role: u.role}
			if err := userRepo.Create(&user); err != nil {
				return err
			}
			ids[u.key] = user.ID
			result.Users++
		}

		projects := []struct {
			name        string
			description string
			owner       string
			members     []string
			issues      []seedIssue
		}{
			{
				name:        "Website Redesign",
				description: "Refresh of the public marketing site",
				owner:       "alice",
				members:     []string{"bob"},
				issues: []seedIssue{
					{"Design new landing page", models.PriorityHigh, models.StatusInProgress, "alice", "bob"},
					{"Fix broken footer links", models.PriorityLow, models.StatusOpen, "bob", ""},
				},
			},
			{
				name:        "Mobile App",
				description: "First release of the companion app",
				owner:       "bob",
				members:     []string{"charlie"},
				issues: []seedIssue{
					{"Set up push notifications", models.PriorityCritical, models.StatusOpen, "bob", "charlie"},
				},
			},
		}

		for _, p := range projects {
			project := models.Project{Name: p.name, Description: p.description, OwnerID: ids[p.owner]}
			if err := projectRepo.Create(&project); err != nil {
				return err
			}
			if err := projectRepo.AddMember(project.ID, project.OwnerID); err != nil {
				return err
			}
			for _, m := range p.members {
				if err := projectRepo.AddMember(project.ID, ids[m]); err != nil {
					return err
				}
			}
			result.Projects++

			for _, si := range p.issues {
				issue := models.Issue{
					Title:      si.title,
					Status:     si.status,
					Priority:   si.priority,
					ProjectID:  project.ID,
					ReporterID: ids[si.reporter],
				}
				if si.assignee != "" {
					issue.AssigneeID = utils.StringPtr(ids[si.assignee])
				}
				if err := issueRepo.Create(&issue); err != nil {
					return err
				}
				entry := models.AuditLog{
					IssueID:   issue.ID,
					UserID:    issue.ReporterID,
					Action:    models.AuditCreated,
					NewValue:  utils.StringPtr(string(issue.Status)),
					Timestamp: time.Now().UTC(),
				}
				if err := auditRepo.Create(&entry); err != nil {
					return err
				}
				result.Issues++
			}
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	logger.Get().Info("Seed data created",
		zap.Int("users", result.Users),
		zap.Int("projects", result.Projects),
		zap.Int("issues", result.Issues),
	)
	return result, nil
}
