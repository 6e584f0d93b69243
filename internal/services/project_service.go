package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/irondev/iron-dev-agent/internal/legacy"
	"github.com/irondev/iron-dev-agent/internal/models"
	"github.com/irondev/iron-dev-agent/internal/repository"
	"github.com/irondev/iron-dev-agent/internal/utils"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectForbidden     = errors.New("you do not have access to this project")
	ErrInsufficientRole     = errors.New("your role does not allow this action")
	ErrInvalidProjectName   = errors.New("project name cannot be empty")
	ErrInvalidProjectStatus = errors.New("invalid project status")
	ErrInvalidStage         = errors.New("invalid stage")
	ErrInvalidRole          = errors.New("invalid collaborator role")
	ErrAlreadyCollaborator  = errors.New("user is already a collaborator on this project")
	ErrCollaboratorNotFound = errors.New("collaborator not found")
	ErrCannotRemoveOwner    = errors.New("the project owner cannot be removed")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	legacy      LegacyFiles
	log         *zap.Logger
}

// NewProjectService creates a new ProjectService. files may be nil, in which
// case nothing is mirrored to the flat-file store.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, files LegacyFiles, log *zap.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		legacy:      files,
		log:         log,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	Tags        []string
	OwnerID     uint64
}

// CreateProject creates a project owned by input.OwnerID.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidProjectName
	}

	project := &models.Project{
		Name:         name,
		Description:  input.Description,
		Status:       models.ProjectStatusPlanning,
		CurrentStage: models.StageRequirements,
		Artifacts:    datatypes.NewJSONType(models.Artifacts{}),
		Tags:         datatypes.NewJSONType(normalizeTags(input.Tags)),
	}
	owner := &models.ProjectCollaborator{
		UserID:  input.OwnerID,
		Role:    models.CollaboratorRoleOwner,
		AddedAt: time.Now(),
	}

	if err := s.projectRepo.CreateWithOwner(project, owner); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if s.legacy != nil {
		if err := s.legacy.Create(project.ID.String()); err != nil {
			s.log.Warn("failed to create legacy project directory",
				zap.String("project_id", project.ID.String()),
				zap.Error(err),
			)
		}
	}

	return s.findProject(project.ID)
}

// ListProjects returns the projects the user collaborates on. Artifacts are omitted.
func (s *ProjectService) ListProjects(userID uint64, page *utils.PaginationParams) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.ListForUser(userID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// Authorize returns the caller's membership. A missing project and a project
// the caller does not belong to are indistinguishable.
func (s *ProjectService) Authorize(projectID uuid.UUID, userID uint64) (*models.ProjectCollaborator, error) {
	member, err := s.projectRepo.FindCollaborator(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectForbidden
		}
		return nil, fmt.Errorf("failed to check project access: %w", err)
	}
	return member, nil
}

// GetProject returns the full project, artifacts and collaborators included.
func (s *ProjectService) GetProject(projectID uuid.UUID, userID uint64) (*models.Project, error) {
	if _, err := s.Authorize(projectID, userID); err != nil {
		return nil, err
	}
	return s.findProject(projectID)
}

// UpdateProjectInput carries the optional metadata fields. Nil leaves a field unchanged.
type UpdateProjectInput struct {
	Name         *string
	Description  *string
	Status       *string
	CurrentStage *string
	Tags         *[]string
}

// UpdateProject edits project metadata. Only owners and admins may do this.
func (s *ProjectService) UpdateProject(projectID uuid.UUID, userID uint64, input UpdateProjectInput) (*models.Project, error) {
	member, err := s.Authorize(projectID, userID)
	if err != nil {
		return nil, err
	}
	if !member.Role.CanManage() {
		return nil, ErrInsufficientRole
	}

	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidProjectName
		}
		project.Name = name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		status := models.ProjectStatus(*input.Status)
		if !status.Valid() {
			return nil, ErrInvalidProjectStatus
		}
		project.Status = status
	}
	if input.CurrentStage != nil {
		stage := models.Stage(*input.CurrentStage)
		if !stage.Valid() {
			return nil, ErrInvalidStage
		}
		project.CurrentStage = stage
	}
	if input.Tags != nil {
		project.Tags = datatypes.NewJSONType(normalizeTags(*input.Tags))
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.findProject(projectID)
}

// DeleteProject removes the project. Only the owner may do this.
func (s *ProjectService) DeleteProject(projectID uuid.UUID, userID uint64) error {
	member, err := s.Authorize(projectID, userID)
	if err != nil {
		return err
	}
	if member.Role != models.CollaboratorRoleOwner {
		return ErrInsufficientRole
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if s.legacy != nil {
		if err := s.legacy.Delete(projectID.String()); err != nil && !errors.Is(err, legacy.ErrProjectNotFound) {
			s.log.Warn("failed to delete legacy project directory",
				zap.String("project_id", projectID.String()),
				zap.Error(err),
			)
		}
	}

	return nil
}

// AddCollaboratorInput represents parameters to add a collaborator.
type AddCollaboratorInput struct {
	Username string
	Role     string
}

// AddCollaborator adds an existing user to the project. Owners and admins only.
func (s *ProjectService) AddCollaborator(projectID uuid.UUID, actorID uint64, input AddCollaboratorInput) (*models.ProjectCollaborator, error) {
	member, err := s.Authorize(projectID, actorID)
	if err != nil {
		return nil, err
	}
	if !member.Role.CanManage() {
		return nil, ErrInsufficientRole
	}

	role := models.CollaboratorRole(input.Role)
	if !role.Valid() || role == models.CollaboratorRoleOwner {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.FindByUsername(strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.projectRepo.FindCollaborator(projectID, user.ID); err == nil {
		return nil, ErrAlreadyCollaborator
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check collaborator: %w", err)
	}

	collaborator := &models.ProjectCollaborator{
		ProjectID: projectID,
		UserID:    user.ID,
		Role:      role,
		AddedAt:   time.Now(),
	}
	if err := s.projectRepo.AddCollaborator(collaborator); err != nil {
		return nil, fmt.Errorf("failed to add collaborator: %w", err)
	}

	collaborator.User = *user
	return collaborator, nil
}

// RemoveCollaborator removes a member. Owners and admins may remove anyone but
// the owner; any other member may only remove themselves.
func (s *ProjectService) RemoveCollaborator(projectID uuid.UUID, actorID, userID uint64) error {
	member, err := s.Authorize(projectID, actorID)
	if err != nil {
		return err
	}
	if !member.Role.CanManage() && actorID != userID {
		return ErrInsufficientRole
	}

	target, err := s.projectRepo.FindCollaborator(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCollaboratorNotFound
		}
		return fmt.Errorf("failed to find collaborator: %w", err)
	}
	if target.Role == models.CollaboratorRoleOwner {
		return ErrCannotRemoveOwner
	}

	if err := s.projectRepo.RemoveCollaborator(projectID, userID); err != nil {
		return fmt.Errorf("failed to remove collaborator: %w", err)
	}
	return nil
}

func (s *ProjectService) findProject(projectID uuid.UUID) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
