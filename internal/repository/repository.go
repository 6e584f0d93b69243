package repository

import (
	"github.com/google/uuid"

	"github.com/irondev/iron-dev-agent/internal/models"
	"github.com/irondev/iron-dev-agent/internal/utils"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// CreateWithOwner creates a project and its owner membership in one transaction
	CreateWithOwner(project *models.Project, owner *models.ProjectCollaborator) error

	// FindByID finds a project with its collaborators and their users
	FindByID(id uuid.UUID) (*models.Project, error)

	// ListForUser lists the projects a user collaborates on, newest activity first.
	// Artifacts are not loaded. A nil page returns every project.
	ListForUser(userID uint64, page *utils.PaginationParams) ([]models.Project, int64, error)

	// Update writes the editable metadata columns
	Update(project *models.Project) error

	// Delete soft deletes a project and removes its memberships
	Delete(id uuid.UUID) error

	// UpdateArtifacts applies mutate to the stored artifacts inside a transaction
	UpdateArtifacts(id uuid.UUID, mutate func(*models.Artifacts) error) (*models.Project, error)

	// FindCollaborator finds a specific membership
	FindCollaborator(projectID uuid.UUID, userID uint64) (*models.ProjectCollaborator, error)

	// AddCollaborator adds a membership
	AddCollaborator(collaborator *models.ProjectCollaborator) error

	// RemoveCollaborator removes a membership
	RemoveCollaborator(projectID uuid.UUID, userID uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByLogin finds a user whose username or email equals login
	FindByLogin(login string) (*models.User, error)

	// Update writes the profile columns
	Update(user *models.User) error

	// UpdatePassword replaces the stored password hash
	UpdatePassword(id uint64, passwordHash string) error
}
