package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/irondev/iron-dev-agent/internal/artifacts"
	"github.com/irondev/iron-dev-agent/internal/constants"
	"github.com/irondev/iron-dev-agent/internal/prompts"
)

var (
	ErrPromptRequired = errors.New("prompt is required")
	ErrTypeRequired   = errors.New("type is required")
	ErrStageMismatch  = errors.New("stage does not match the requested type")
)

// GenerationService turns a chat prompt into a stored artifact.
type GenerationService struct {
	projects  *ProjectService
	artifacts *ArtifactService
	generator Generator
	log       *zap.Logger
}

// NewGenerationService creates a new GenerationService. generator may be nil,
// in which case every call fails with ErrGeneratorNotConfigured.
func NewGenerationService(projects *ProjectService, artifactService *ArtifactService, generator Generator, log *zap.Logger) *GenerationService {
	return &GenerationService{
		projects:  projects,
		artifacts: artifactService,
		generator: generator,
		log:       log,
	}
}

// GenerateInput mirrors the generate request body.
type GenerateInput struct {
	Prompt          string
	Type            string
	ProjectID       *uuid.UUID
	Stage           string
	PreviousContent string
	SystemPrompt    string
	Language        string
	UserID          uint64
}

// GenerateResult is the generated text and the project it was stored in.
type GenerateResult struct {
	Content        string
	ProjectID      uuid.UUID
	ProjectCreated bool
	Mode           prompts.Mode
	Artifact       *artifacts.Content
}

// Generate validates the request, resolves or creates the project, builds the
// system prompt, calls the model and persists the reply into the kind's slot.
func (s *GenerationService) Generate(ctx context.Context, input GenerateInput) (*GenerateResult, error) {
	gen, err := validateGeneration(input.Prompt, input.Type, input.Stage)
	if err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, ErrGeneratorNotConfigured
	}

	result := &GenerateResult{}
	if input.ProjectID == nil {
		project, err := s.projects.CreateProject(CreateProjectInput{
			Name:        constants.DefaultProjectName,
			Description: truncateRunes(strings.TrimSpace(input.Prompt), constants.MaxDescriptionRunes),
			OwnerID:     input.UserID,
		})
		if err != nil {
			return nil, err
		}
		result.ProjectID = project.ID
		result.ProjectCreated = true
	} else {
		if _, err := s.projects.Authorize(*input.ProjectID, input.UserID); err != nil {
			return nil, err
		}
		result.ProjectID = *input.ProjectID
	}

	existing := input.PreviousContent
	if strings.TrimSpace(existing) == "" {
		project, err := s.projects.findProject(result.ProjectID)
		if err != nil {
			return nil, err
		}
		existing = s.artifacts.existingContent(project, gen.Slot)
	}

	systemPrompt, mode, err := prompts.Build(gen.Kind, existing, input.Language)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}
	if strings.TrimSpace(input.SystemPrompt) != "" {
		systemPrompt = input.SystemPrompt
	}
	result.Mode = mode

	s.log.Info("generating artifact",
		zap.String("project_id", result.ProjectID.String()),
		zap.String("kind", string(gen.Kind)),
		zap.String("mode", string(mode)),
	)

	content, err := s.generator.Generate(ctx, systemPrompt, input.Prompt)
	if err != nil {
		return nil, err
	}
	result.Content = content

	stored, err := s.artifacts.store(result.ProjectID, gen.Slot, content)
	if err != nil {
		return nil, err
	}
	result.Artifact = stored

	return result, nil
}

func validateGeneration(prompt, typ, stage string) (artifacts.Generation, error) {
	if strings.TrimSpace(prompt) == "" {
		return artifacts.Generation{}, ErrPromptRequired
	}
	if strings.TrimSpace(typ) == "" {
		return artifacts.Generation{}, ErrTypeRequired
	}

	gen, err := artifacts.ParseKind(typ)
	if err != nil {
		return artifacts.Generation{}, err
	}
	if stage != "" && stage != string(gen.Stage()) {
		return artifacts.Generation{}, fmt.Errorf("%w: %s belongs to %s", ErrStageMismatch, gen.Kind, gen.Stage())
	}
	return gen, nil
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
