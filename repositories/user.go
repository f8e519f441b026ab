package repositories

import (
	"github.com/issuetrack-api/models"
	"gorm.io/gorm"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// FindAll retrieves all users ordered by creation
func (r *UserRepository) FindAll() ([]models.User, error) {
	var users []models.User
	result := r.db.Order("created_at ASC").Find(&users)
	return users, result.Error
}

// FindByID retrieves a user by its ID
func (r *UserRepository) FindByID(id string) (models.User, error) {
	var user models.User
	result := r.db.First(&user, "id = ?", id)
	return user, result.Error
}

// FindByEmail retrieves a user by email
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	result := r.db.First(&user, "email = ?", email)
	return user, result.Error
}

// EmailTaken reports whether another user already uses the email
func (r *UserRepository) EmailTaken(email, exceptID string) (bool, error) {
	var count int64
	q := r.db.Model(&models.User{}).Where("email = ?", email)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// Exists checks whether a user row exists
func (r *UserRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Create inserts a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update applies the given column changes to a user
func (r *UserRepository) Update(id string, changes map[string]interface{}) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(changes).Error
}

// Delete permanently removes a user row
func (r *UserRepository) Delete(id string) (bool, error) {
	result := r.db.Delete(&models.User{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
