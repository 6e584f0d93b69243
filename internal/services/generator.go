package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/irondev/iron-dev-agent/internal/cloud"
	"github.com/irondev/iron-dev-agent/internal/config"
)

var (
	ErrGeneratorNotConfigured = errors.New("no text generation provider is configured")
	ErrEmptyGeneration        = errors.New("model returned no text")
)

// Generator is a prompt-in, text-out model backend.
type Generator interface {
	// Generate returns the first text block of the reply.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Stream calls onChunk with each text delta as it arrives and returns the
	// full text. A non-nil error from onChunk aborts the stream.
	Stream(ctx context.Context, systemPrompt, userPrompt string, onChunk func(string) error) (string, error)
}

// GenerationError carries an upstream model failure. Its message is the
// upstream message unchanged.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func generationFailed(provider string, err error) error {
	return &GenerationError{Provider: provider, Err: err}
}

// NewGeneratorFromConfig selects the provider named by cfg.GenerationProvider.
// It returns ErrGeneratorNotConfigured when the provider lacks credentials.
func NewGeneratorFromConfig(ctx context.Context, cfg *config.Config) (Generator, error) {
	switch strings.ToLower(cfg.GenerationProvider) {
	case "", "anthropic":
		if cfg.AnthropicAPIKey != "" {
			return NewAnthropicGenerator(cfg.ModelID, cfg.MaxTokens, option.WithAPIKey(cfg.AnthropicAPIKey)), nil
		}
		if cfg.AWSRegion == "" {
			return nil, ErrGeneratorNotConfigured
		}
		awsCfg, err := cloud.LoadConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewAnthropicGenerator(cfg.ModelID, cfg.MaxTokens, bedrock.WithConfig(awsCfg)), nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, ErrGeneratorNotConfigured
		}
		return NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIMaxTokens), nil
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.GenerationProvider)
	}
}
