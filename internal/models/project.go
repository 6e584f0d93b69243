package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusPlanning    ProjectStatus = "planning"
	ProjectStatusDesign      ProjectStatus = "design"
	ProjectStatusDevelopment ProjectStatus = "development"
	ProjectStatusTesting     ProjectStatus = "testing"
	ProjectStatusDeployment  ProjectStatus = "deployment"
	ProjectStatusMaintenance ProjectStatus = "maintenance"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusDesign, ProjectStatusDevelopment,
		ProjectStatusTesting, ProjectStatusDeployment, ProjectStatusMaintenance:
		return true
	}
	return false
}

type Project struct {
	ID           uuid.UUID                     `gorm:"type:varchar(36);primarykey" json:"id"`
	Name         string                        `gorm:"type:varchar(255);not null" json:"name"`
	Description  string                        `gorm:"type:text" json:"description"`
	Status       ProjectStatus                 `gorm:"type:varchar(20);not null;default:'planning'" json:"status"`
	CurrentStage Stage                         `gorm:"type:varchar(20);not null;default:'requirements'" json:"currentStage"`
	Artifacts    datatypes.JSONType[Artifacts] `json:"artifacts"`
	Tags         datatypes.JSONType[[]string]  `json:"tags"`
	CreatedAt    time.Time                     `json:"createdAt"`
	UpdatedAt    time.Time                     `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt                `gorm:"index" json:"-"`

	// Relations
	Collaborators []ProjectCollaborator `gorm:"foreignKey:ProjectID" json:"collaborators,omitempty"`
}

// BeforeCreate assigns a UUID so every dialect (including SQLite) gets one.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Owner returns the owning collaborator, if the collaborators are loaded.
func (p *Project) Owner() (ProjectCollaborator, bool) {
	for _, c := range p.Collaborators {
		if c.Role == CollaboratorRoleOwner {
			return c, true
		}
	}
	return ProjectCollaborator{}, false
}
