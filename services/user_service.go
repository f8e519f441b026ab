package services

import (
	"errors"

	"github.com/issuetrack-api/apperror"
	"github.com/issuetrack-api/dto"
	"github.com/issuetrack-api/models"
	"github.com/issuetrack-api/policy"
	"github.com/issuetrack-api/repositories"
	"github.com/issuetrack-api/utils"
	"gorm.io/gorm"
)

// UserService handles business logic for user accounts
type UserService struct {
	db          *gorm.DB
	userRepo    *repositories.UserRepository
	projectRepo *repositories.ProjectRepository
	policy      *policy.Policy
}

// NewUserService creates a new user service instance
func NewUserService(db *gorm.DB, userRepo *repositories.UserRepository, projectRepo *repositories.ProjectRepository, p *policy.Policy) *UserService {
	return &UserService{db: db, userRepo: userRepo, projectRepo: projectRepo, policy: p}
}

// ListUsers returns every user
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

// GetUser retrieves a user by id
func (s *UserService) GetUser(userID string) (models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return models.User{}, lookupError(err, "User not found")
	}
	return user, nil
}

// UpdateUser changes email, password or role. Self or admin; only an admin
// may change a role.
func (s *UserService) UpdateUser(principal models.Principal, userID string, req dto.UpdateUserRequest) (models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return models.User{}, err
	}

	changesRole := req.Role != nil && models.Role(*req.Role) != user.Role
	if err := s.policy.CanUpdateUser(principal, user.ID, changesRole); err != nil {
		return models.User{}, err
	}

	changes := map[string]interface{}{}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email == "" {
			return models.User{}, apperror.InvalidInput("Email cannot be empty").WithField("email")
		}
		if email != user.Email {
			taken, err := s.userRepo.EmailTaken(email, user.ID)
			if err != nil {
				return models.User{}, apperror.Internal(err)
			}
			if taken {
				return models.User{}, apperror.InvalidInput("Email already exists").WithField("email")
			}
			changes["email"] = email
		}
	}
	if req.Password != nil {
		if len(*req.Password) < utils.MinPasswordLength {
			return models.User{}, apperror.InvalidInput("Password too short").WithField("password")
		}
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return models.User{}, apperror.Internal(err)
		}
		changes["password"] = hashed
	}
	if changesRole {
		role := models.Role(*req.Role)
		if !role.Valid() {
			return models.User{}, apperror.InvalidInput("Invalid role").WithField("role")
		}
		changes["role"] = role
	}

	if len(changes) > 0 {
		if err := s.userRepo.Update(user.ID, changes); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.User{}, apperror.InvalidInput("Email already exists").WithField("email")
			}
			return models.User{}, apperror.Internal(err)
		}
	}
	return s.GetUser(user.ID)
}

// DeleteUser permanently removes a user and their memberships. Admin only.
func (s *UserService) DeleteUser(principal models.Principal, userID string) error {
	if err := s.policy.CanDeleteUser(principal); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.projectRepo.WithTx(tx).RemoveUserMemberships(userID); err != nil {
			return err
		}
		deleted, err := s.userRepo.WithTx(tx).Delete(userID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperror.NotFound("User not found")
		}
		return nil
	})
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}
