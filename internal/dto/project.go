package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/irondev/iron-dev-agent/internal/models"
)

type CreateProjectRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// UpdateProjectRequest leaves nil fields unchanged.
type UpdateProjectRequest struct {
	Name         *string   `json:"name" binding:"omitempty,max=255"`
	Description  *string   `json:"description"`
	Status       *string   `json:"status"`
	CurrentStage *string   `json:"currentStage"`
	Tags         *[]string `json:"tags"`
}

type AddCollaboratorRequest struct {
	Username string `json:"username" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type UpdateArtifactRequest struct {
	Content string `json:"content"`
}

// GenerateRequest is the body of POST /api/ai/generate and POST /api/claude.
type GenerateRequest struct {
	Prompt          string `json:"prompt"`
	Type            string `json:"type"`
	ProjectID       string `json:"projectId"`
	Stage           string `json:"stage"`
	PreviousContent string `json:"previousContent"`
	SystemPrompt    string `json:"systemPrompt"`
	Language        string `json:"language"`
}

// CollaboratorDTO represents a project member in API responses
type CollaboratorDTO struct {
	UserID  uint64                  `json:"userId"`
	Role    models.CollaboratorRole `json:"role"`
	AddedAt time.Time               `json:"addedAt"`
	User    *UserSummaryDTO         `json:"user,omitempty"`
}

// ProjectDTO is the full project, artifacts included
type ProjectDTO struct {
	ProjectListItemDTO
	Artifacts models.Artifacts `json:"artifacts"`
}

// ProjectListItemDTO omits artifacts
type ProjectListItemDTO struct {
	ID            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Status        models.ProjectStatus `json:"status"`
	CurrentStage  models.Stage         `json:"currentStage"`
	Tags          []string             `json:"tags"`
	Collaborators []CollaboratorDTO    `json:"collaborators"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// ToCollaboratorDTO converts a membership to DTO. The user is included when preloaded.
func ToCollaboratorDTO(member models.ProjectCollaborator) CollaboratorDTO {
	dto := CollaboratorDTO{
		UserID:  member.UserID,
		Role:    member.Role,
		AddedAt: member.AddedAt,
	}
	if member.User.ID != 0 {
		user := ToUserSummaryDTO(member.User)
		dto.User = &user
	}
	return dto
}

// ToProjectListItemDTO converts a Project model to its list form
func ToProjectListItemDTO(project models.Project) ProjectListItemDTO {
	tags := project.Tags.Data()
	if tags == nil {
		tags = []string{}
	}

	collaborators := make([]CollaboratorDTO, len(project.Collaborators))
	for i, member := range project.Collaborators {
		collaborators[i] = ToCollaboratorDTO(member)
	}

	return ProjectListItemDTO{
		ID:            project.ID,
		Name:          project.Name,
		Description:   project.Description,
		Status:        project.Status,
		CurrentStage:  project.CurrentStage,
		Tags:          tags,
		Collaborators: collaborators,
		CreatedAt:     project.CreatedAt,
		UpdatedAt:     project.UpdatedAt,
	}
}

// ToProjectDTO converts a Project model to DTO including artifacts
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ProjectListItemDTO: ToProjectListItemDTO(project),
		Artifacts:          project.Artifacts.Data(),
	}
}

func ToProjectListDTO(projects []models.Project) []ProjectListItemDTO {
	out := make([]ProjectListItemDTO, len(projects))
	for i, project := range projects {
		out[i] = ToProjectListItemDTO(project)
	}
	return out
}
