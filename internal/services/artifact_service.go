package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/irondev/iron-dev-agent/internal/artifacts"
	"github.com/irondev/iron-dev-agent/internal/models"
	"github.com/irondev/iron-dev-agent/internal/repository"
)

var (
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrContentRequired  = errors.New("content is required")
)

// ArtifactService reads and writes the per-stage artifact slots of a project.
type ArtifactService struct {
	projects    *ProjectService
	projectRepo repository.ProjectRepository
	legacy      LegacyFiles
	log         *zap.Logger
	now         func() time.Time
}

// NewArtifactService creates a new ArtifactService. files may be nil.
func NewArtifactService(projects *ProjectService, projectRepo repository.ProjectRepository, files LegacyFiles, log *zap.Logger) *ArtifactService {
	return &ArtifactService{
		projects:    projects,
		projectRepo: projectRepo,
		legacy:      files,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// UpdateArtifact overwrites the primary content of (stage, type). Any
// collaborator may write artifacts.
func (s *ArtifactService) UpdateArtifact(projectID uuid.UUID, userID uint64, stage, typ, content string) (*artifacts.Content, error) {
	if _, err := s.projects.Authorize(projectID, userID); err != nil {
		return nil, err
	}

	slot, err := artifacts.Lookup(stage, typ)
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, ErrContentRequired
	}

	return s.store(projectID, slot, content)
}

// GetArtifact returns the slot and its content. An empty slot is ErrArtifactNotFound.
func (s *ArtifactService) GetArtifact(projectID uuid.UUID, userID uint64, stage, typ string) (artifacts.Slot, *artifacts.Content, error) {
	if _, err := s.projects.Authorize(projectID, userID); err != nil {
		return artifacts.Slot{}, nil, err
	}

	slot, err := artifacts.Lookup(stage, typ)
	if err != nil {
		return artifacts.Slot{}, nil, err
	}

	project, err := s.projects.findProject(projectID)
	if err != nil {
		return artifacts.Slot{}, nil, err
	}

	data := project.Artifacts.Data()
	content, ok := slot.Get(&data)
	if !ok {
		return slot, nil, ErrArtifactNotFound
	}
	return slot, &content, nil
}

// existingContent resolves the content an incremental prompt builds on:
// the stored slot first, then the legacy mirror file.
func (s *ArtifactService) existingContent(project *models.Project, slot artifacts.Slot) string {
	data := project.Artifacts.Data()
	if content, ok := slot.Get(&data); ok {
		return content.Content
	}

	if s.legacy == nil || slot.LegacyFile == "" {
		return ""
	}
	content, err := s.legacy.Read(project.ID.String(), slot)
	if err != nil {
		s.log.Warn("failed to read legacy artifact",
			zap.String("project_id", project.ID.String()),
			zap.String("slot", slot.String()),
			zap.Error(err),
		)
		return ""
	}
	return content
}

// store writes content into the slot and mirrors it to the legacy file when
// the slot has one. Mirror failures are logged only.
func (s *ArtifactService) store(projectID uuid.UUID, slot artifacts.Slot, content string) (*artifacts.Content, error) {
	at := s.now()
	_, err := s.projectRepo.UpdateArtifacts(projectID, func(a *models.Artifacts) error {
		return slot.Set(a, content, at)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update artifact: %w", err)
	}

	if s.legacy != nil && slot.LegacyFile != "" {
		if err := s.legacy.Write(projectID.String(), slot, content); err != nil {
			s.log.Warn("failed to mirror artifact to legacy file",
				zap.String("project_id", projectID.String()),
				zap.String("file", slot.LegacyFile),
				zap.Error(err),
			)
		}
	}

	return &artifacts.Content{Content: content, LastUpdated: at}, nil
}
