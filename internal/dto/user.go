package dto

import (
	"time"

	"github.com/irondev/iron-dev-agent/internal/models"
)

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
}

// LoginRequest accepts either a username or an email as the login name.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// Login returns the name the user signs in with.
func (r LoginRequest) Login() string {
	if r.Username != "" {
		return r.Username
	}
	return r.Email
}

type UpdateProfileRequest struct {
	FirstName   *string                `json:"firstName" binding:"omitempty,max=100"`
	LastName    *string                `json:"lastName" binding:"omitempty,max=100"`
	Email       *string                `json:"email" binding:"omitempty,email"`
	Preferences models.UserPreferences `json:"preferences"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64                 `json:"id"`
	Username    string                 `json:"username"`
	Email       string                 `json:"email"`
	FirstName   string                 `json:"firstName"`
	LastName    string                 `json:"lastName"`
	Role        models.UserRole        `json:"role"`
	Preferences models.UserPreferences `json:"preferences"`
	CreatedAt   time.Time              `json:"createdAt"`
	Token       string                 `json:"token,omitempty"`
	ExpiresAt   *time.Time             `json:"expiresAt,omitempty"`
}

// UserSummaryDTO is the short form embedded in collaborator lists
type UserSummaryDTO struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	prefs := user.Preferences.Data()
	if prefs == nil {
		prefs = models.UserPreferences{}
	}
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        user.Role,
		Preferences: prefs,
		CreatedAt:   user.CreatedAt,
	}
}

// ToUserWithTokenDTO attaches a freshly issued bearer token.
func ToUserWithTokenDTO(user models.User, token string, expiresAt time.Time) UserDTO {
	dto := ToUserDTO(user)
	dto.Token = token
	dto.ExpiresAt = &expiresAt
	return dto
}

func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}
