package services

import (
	"github.com/issuetrack-api/config"
	"github.com/issuetrack-api/policy"
	"github.com/issuetrack-api/repositories"
	"gorm.io/gorm"
)

// Container wires every service to one database handle
type Container struct {
	Auth     *AuthService
	Projects *ProjectService
	Issues   *IssueService
	Comments *CommentService
	Users    *UserService
}

// NewContainer builds repositories, the membership oracle, the policy and all services
func NewContainer(db *gorm.DB, jwtCfg config.JWTConfig) *Container {
	userRepo := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	issueRepo := repositories.NewIssueRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	auditRepo := repositories.NewAuditRepository(db)

	p := policy.New(NewMembershipOracle(projectRepo))
	audit := NewAuditTrail(auditRepo)
	issues := NewIssueService(db, issueRepo, projectRepo, userRepo, commentRepo, audit, p)

	return &Container{
		Auth:     NewAuthService(userRepo, jwtCfg),
		Projects: NewProjectService(db, projectRepo, userRepo, p),
		Issues:   issues,
		Comments: NewCommentService(commentRepo, issues, p),
		Users:    NewUserService(db, userRepo, projectRepo, p),
	}
}
