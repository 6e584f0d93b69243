package repository

import (
	"gorm.io/gorm"

	"github.com/irondev/iron-dev-agent/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByLogin finds a user by username or email
func (r *GormUserRepository) FindByLogin(login string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ? OR email = ?", login, login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update writes the profile columns
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Model(user).
		Select("first_name", "last_name", "email", "preferences", "updated_at").
		Updates(user).Error
}

// UpdatePassword replaces the stored password hash
func (r *GormUserRepository) UpdatePassword(id uint64, passwordHash string) error {
	return r.db.Model(&models.User{ID: id}).Update("password_hash", passwordHash).Error
}
