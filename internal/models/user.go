package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// UserPreferences is a free-form settings object owned by the client.
type UserPreferences map[string]any

type User struct {
	ID           uint64                              `gorm:"primarykey" json:"id"`
	Username     string                              `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string                              `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string                              `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string                              `gorm:"type:varchar(100)" json:"firstName"`
	LastName     string                              `gorm:"type:varchar(100)" json:"lastName"`
	Role         UserRole                            `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Preferences  datatypes.JSONType[UserPreferences] `json:"preferences"`
	CreatedAt    time.Time                           `json:"createdAt"`
	UpdatedAt    time.Time                           `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt                      `gorm:"index" json:"-"`

	// Relations
	Collaborations []ProjectCollaborator `gorm:"foreignKey:UserID" json:"-"`
}
