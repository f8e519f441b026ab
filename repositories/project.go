package repositories

import (
	"time"

	"github.com/issuetrack-api/models"
	"gorm.io/gorm"
)

// ProjectRepository handles database operations for projects and their members
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *ProjectRepository) WithTx(tx *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: tx}
}

// FindByID retrieves a non-deleted project by its ID
func (r *ProjectRepository) FindByID(id string) (models.Project, error) {
	var project models.Project
	result := r.db.First(&project, "id = ?", id)
	return project, result.Error
}

// FindForUser retrieves non-deleted projects the user owns or belongs to
func (r *ProjectRepository) FindForUser(userID string) ([]models.Project, error) {
	var projects []models.Project
	memberOf := r.db.Model(&models.ProjectMember{}).Select("project_id").Where("user_id = ?", userID)
	result := r.db.
		Where("owner_id = ? OR id IN (?)", userID, memberOf).
		Order("created_at DESC").
		Find(&projects)
	return projects, result.Error
}

// ProjectIDsForUser returns ids of non-deleted projects the user owns or belongs to
func (r *ProjectRepository) ProjectIDsForUser(userID string) ([]string, error) {
	var ids []string
	memberOf := r.db.Model(&models.ProjectMember{}).Select("project_id").Where("user_id = ?", userID)
	result := r.db.Model(&models.Project{}).
		Where("owner_id = ? OR id IN (?)", userID, memberOf).
		Pluck("id", &ids)
	return ids, result.Error
}

// Create inserts a new project
func (r *ProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update applies the given column changes to a project
func (r *ProjectRepository) Update(id string, changes map[string]interface{}) error {
	return r.db.Model(&models.Project{}).Where("id = ?", id).Updates(changes).Error
}

// Delete soft deletes a project. Issues are left untouched.
func (r *ProjectRepository) Delete(id string) (bool, error) {
	result := r.db.Delete(&models.Project{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

// IsMember reports whether the user is listed in the project's members
func (r *ProjectRepository) IsMember(projectID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// AddMember inserts a membership row. A duplicate surfaces as gorm.ErrDuplicatedKey.
func (r *ProjectRepository) AddMember(projectID, userID string) error {
	member := models.ProjectMember{ProjectID: projectID, UserID: userID, JoinedAt: time.Now().UTC()}
	return r.db.Create(&member).Error
}

// RemoveMember deletes a membership row and reports whether one existed
func (r *ProjectRepository) RemoveMember(projectID, userID string) (bool, error) {
	result := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).Delete(&models.ProjectMember{})
	return result.RowsAffected > 0, result.Error
}

// RemoveUserMemberships deletes every membership of a user
func (r *ProjectRepository) RemoveUserMemberships(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.ProjectMember{}).Error
}

// Members lists the users in a project's member set ordered by join time
func (r *ProjectRepository) Members(projectID string) ([]models.User, error) {
	var users []models.User
	result := r.db.Model(&models.User{}).
		Joins("JOIN project_members ON project_members.user_id = users.id").
		Where("project_members.project_id = ?", projectID).
		Order("project_members.joined_at ASC").
		Find(&users)
	return users, result.Error
}
