package services

import (
	"path/filepath"
	"testing"

	"github.com/issuetrack-api/config"
	"github.com/issuetrack-api/database"
	"github.com/issuetrack-api/dto"
	"github.com/issuetrack-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := database.Open(config.DBConfig{
		Driver:     "sqlite",
		SQLitePath: path,
		LogLevel:   logger.Silent,
	})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", ExpirationHours: 1}
}

// fixture is project P owned by alice with bob as member. charlie exists but
// belongs to nothing.
type fixture struct {
	db      *gorm.DB
	c       *Container
	admin   models.Principal
	alice   models.Principal
	bob     models.Principal
	charlie models.Principal
	project models.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	f := &fixture{db: db, c: NewContainer(db, testJWTConfig())}

	f.admin = f.createUser(t, "admin@test.com", models.RoleAdmin)
	f.alice = f.createUser(t, "alice@test.com", models.RoleMember)
	f.bob = f.createUser(t, "bob@test.com", models.RoleMember)
	f.charlie = f.createUser(t, "charlie@test.com", models.RoleMember)

	project, err := f.c.Projects.CreateProject(f.alice, dto.CreateProjectRequest{Name: "P", Description: "main project"})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	f.project = project

	if _, err := f.c.Projects.AddMember(f.alice, project.ID, f.bob.UserID); err != nil {
		t.Fatalf("failed to add bob: %v", err)
	}
	return f
}

func (f *fixture) createUser(t *testing.T, email string, role models.Role) models.Principal {
	t.Helper()
	resp, err := f.c.Auth.Register(dto.RegisterRequest{Email: email, Password: "password123"})
	if err != nil {
		t.Fatalf("failed to register %s: %v", email, err)
	}
	if role != models.RoleMember {
		if err := f.db.Model(&models.User{}).Where("id = ?", resp.User.ID).Update("role", role).Error; err != nil {
			t.Fatalf("failed to set role: %v", err)
		}
	}
	return models.Principal{UserID: resp.User.ID, Email: resp.User.Email, Role: role}
}

func (f *fixture) createIssue(t *testing.T, actor models.Principal, assignee *models.Principal) models.Issue {
	t.Helper()
	req := dto.CreateIssueRequest{Title: "Fix login", Description: "500 on submit", ProjectID: f.project.ID}
	if assignee != nil {
		id := assignee.UserID
		req.AssigneeID = &id
	}
	issue, err := f.c.Issues.CreateIssue(actor, req)
	if err != nil {
		t.Fatalf("failed to create issue: %v", err)
	}
	return issue
}

func strPtr(s string) *string { return &s }

func statusReq(status models.IssueStatus) dto.UpdateIssueRequest {
	s := string(status)
	return dto.UpdateIssueRequest{Status: &s}
}
