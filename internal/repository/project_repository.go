package repository

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/irondev/iron-dev-agent/internal/database"
	"github.com/irondev/iron-dev-agent/internal/models"
	"github.com/irondev/iron-dev-agent/internal/utils"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithOwner creates the project and the owner membership atomically.
func (r *GormProjectRepository) CreateWithOwner(project *models.Project, owner *models.ProjectCollaborator) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}

		owner.ProjectID = project.ID
		if err := tx.Omit(clause.Associations).Create(owner).Error; err != nil {
			return err
		}

		project.Collaborators = []models.ProjectCollaborator{*owner}
		return nil
	})
}

// FindByID finds a project with its collaborators
func (r *GormProjectRepository) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.Preload("Collaborators.User").
		Where("id = ?", id).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListForUser lists the projects the user collaborates on
func (r *GormProjectRepository) ListForUser(userID uint64, page *utils.PaginationParams) ([]models.Project, int64, error) {
	memberships := r.db.Model(&models.ProjectCollaborator{}).
		Select("project_id").
		Where("user_id = ?", userID)

	query := r.db.Model(&models.Project{}).
		Where("projects.id IN (?)", memberships).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Omit("artifacts").
		Preload("Collaborators").
		Order("projects.updated_at DESC")
	if page != nil {
		listQuery = listQuery.Scopes(database.Paginate(*page))
	}

	var projects []models.Project
	if err := listQuery.Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update writes the editable metadata columns
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Model(project).
		Select("name", "description", "status", "current_stage", "tags", "updated_at").
		Updates(project).Error
}

// Delete soft deletes a project and removes its memberships in a transaction
func (r *GormProjectRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectCollaborator{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Project{}).Error
	})
}

// UpdateArtifacts reads, mutates and writes the artifacts column in one
// transaction. The row is locked on dialects that support SELECT ... FOR UPDATE.
func (r *GormProjectRepository) UpdateArtifacts(id uuid.UUID, mutate func(*models.Artifacts) error) (*models.Project, error) {
	var project models.Project
	err := r.db.Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() != "sqlite" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := query.Where("id = ?", id).First(&project).Error; err != nil {
			return err
		}

		artifacts := project.Artifacts.Data()
		if err := mutate(&artifacts); err != nil {
			return err
		}
		project.Artifacts = datatypes.NewJSONType(artifacts)

		return tx.Model(&project).Select("artifacts", "updated_at").Updates(&project).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindCollaborator finds a specific membership
func (r *GormProjectRepository) FindCollaborator(projectID uuid.UUID, userID uint64) (*models.ProjectCollaborator, error) {
	var collaborator models.ProjectCollaborator
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&collaborator).Error; err != nil {
		return nil, err
	}
	return &collaborator, nil
}

// AddCollaborator adds a membership
func (r *GormProjectRepository) AddCollaborator(collaborator *models.ProjectCollaborator) error {
	return r.db.Omit(clause.Associations).Create(collaborator).Error
}

// RemoveCollaborator removes a membership
func (r *GormProjectRepository) RemoveCollaborator(projectID uuid.UUID, userID uint64) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectCollaborator{}).Error
}
