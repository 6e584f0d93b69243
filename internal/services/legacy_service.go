package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/irondev/iron-dev-agent/internal/artifacts"
	"github.com/irondev/iron-dev-agent/internal/legacy"
	"github.com/irondev/iron-dev-agent/internal/prompts"
)

// LegacyService serves pre-authentication clients straight from the
// flat-file store. Only prd and ui results are persisted.
type LegacyService struct {
	store     *legacy.Store
	generator Generator
	log       *zap.Logger
}

// NewLegacyService creates a new LegacyService. generator may be nil.
func NewLegacyService(store *legacy.Store, generator Generator, log *zap.Logger) *LegacyService {
	return &LegacyService{
		store:     store,
		generator: generator,
		log:       log,
	}
}

// LegacyGenerateInput mirrors the /api/claude request body. ProjectID is a
// directory name; empty means a new directory.
type LegacyGenerateInput struct {
	Prompt          string
	Type            string
	ProjectID       string
	Stage           string
	PreviousContent string
	SystemPrompt    string
	Language        string
}

type LegacyGenerateResult struct {
	Content   string
	ProjectID string
	Mode      prompts.Mode
}

type legacyCall struct {
	slot         artifacts.Slot
	projectID    string
	systemPrompt string
	mode         prompts.Mode
}

func (s *LegacyService) ListProjects() ([]legacy.ProjectSummary, error) {
	return s.store.List()
}

func (s *LegacyService) GetProject(id string) (*legacy.Project, error) {
	return s.store.Get(id)
}

func (s *LegacyService) DeleteProject(id string) error {
	return s.store.Delete(id)
}

// Generate runs a batch generation and writes the result to the project directory.
func (s *LegacyService) Generate(ctx context.Context, input LegacyGenerateInput) (*LegacyGenerateResult, error) {
	call, err := s.prepare(input)
	if err != nil {
		return nil, err
	}

	content, err := s.generator.Generate(ctx, call.systemPrompt, input.Prompt)
	if err != nil {
		return nil, err
	}

	if err := s.persist(call, content); err != nil {
		return nil, err
	}

	return &LegacyGenerateResult{Content: content, ProjectID: call.projectID, Mode: call.mode}, nil
}

// GenerateStream is Generate with incremental output. onStart receives the
// project ID before the model is called; onChunk receives each delta.
func (s *LegacyService) GenerateStream(ctx context.Context, input LegacyGenerateInput, onStart func(projectID string), onChunk func(string) error) (*LegacyGenerateResult, error) {
	call, err := s.prepare(input)
	if err != nil {
		return nil, err
	}
	onStart(call.projectID)

	content, err := s.generator.Stream(ctx, call.systemPrompt, input.Prompt, onChunk)
	if err != nil {
		return nil, err
	}

	if err := s.persist(call, content); err != nil {
		return nil, err
	}

	return &LegacyGenerateResult{Content: content, ProjectID: call.projectID, Mode: call.mode}, nil
}

func (s *LegacyService) prepare(input LegacyGenerateInput) (*legacyCall, error) {
	gen, err := validateGeneration(input.Prompt, input.Type, input.Stage)
	if err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, ErrGeneratorNotConfigured
	}

	// A new id only gets a directory when the result will be written to it.
	projectID := strings.TrimSpace(input.ProjectID)
	named := projectID != ""
	if !named {
		projectID = legacy.NewID()
	}
	if named || gen.Slot.LegacyFile != "" {
		if err := s.store.Create(projectID); err != nil {
			return nil, err
		}
	}

	existing := input.PreviousContent
	if strings.TrimSpace(existing) == "" && gen.Slot.LegacyFile != "" {
		existing, err = s.store.Read(projectID, gen.Slot)
		if err != nil {
			return nil, fmt.Errorf("failed to read existing content: %w", err)
		}
	}

	systemPrompt, mode, err := prompts.Build(gen.Kind, existing, input.Language)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}
	if strings.TrimSpace(input.SystemPrompt) != "" {
		systemPrompt = input.SystemPrompt
	}

	return &legacyCall{
		slot:         gen.Slot,
		projectID:    projectID,
		systemPrompt: systemPrompt,
		mode:         mode,
	}, nil
}

func (s *LegacyService) persist(call *legacyCall, content string) error {
	if call.slot.LegacyFile == "" {
		return nil
	}
	if err := s.store.Write(call.projectID, call.slot, content); err != nil {
		s.log.Error("failed to save legacy artifact",
			zap.String("project_id", call.projectID),
			zap.String("file", call.slot.LegacyFile),
			zap.Error(err),
		)
		return fmt.Errorf("failed to save %s: %w", call.slot.LegacyFile, err)
	}
	return nil
}
