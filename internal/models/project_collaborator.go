package models

import (
	"time"

	"github.com/google/uuid"
)

type CollaboratorRole string

const (
	CollaboratorRoleOwner     CollaboratorRole = "owner"
	CollaboratorRoleAdmin     CollaboratorRole = "admin"
	CollaboratorRoleDeveloper CollaboratorRole = "developer"
	CollaboratorRoleViewer    CollaboratorRole = "viewer"
)

func (r CollaboratorRole) Valid() bool {
	switch r {
	case CollaboratorRoleOwner, CollaboratorRoleAdmin, CollaboratorRoleDeveloper, CollaboratorRoleViewer:
		return true
	}
	return false
}

// CanManage reports whether the role may edit project metadata and membership.
func (r CollaboratorRole) CanManage() bool {
	return r == CollaboratorRoleOwner || r == CollaboratorRoleAdmin
}

type ProjectCollaborator struct {
	ProjectID uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"projectId"`
	UserID    uint64           `gorm:"primarykey" json:"userId"`
	Role      CollaboratorRole `gorm:"type:varchar(20);not null" json:"role"`
	AddedAt   time.Time        `json:"addedAt"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
