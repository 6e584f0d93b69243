package services

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const providerAnthropic = "anthropic"

// AnthropicGenerator calls the Messages API directly or through Bedrock,
// depending on the request options it was built with.
type AnthropicGenerator struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// NewAnthropicGenerator creates a generator for model. Retries are disabled.
func NewAnthropicGenerator(model string, maxTokens int64, opts ...option.RequestOption) *AnthropicGenerator {
	opts = append([]option.RequestOption{option.WithMaxRetries(0)}, opts...)
	return &AnthropicGenerator{
		client:    anthropic.NewClient(opts...),
		model:     anthropic.Model(model),
		maxTokens: maxTokens,
	}
}

// Generate runs over the streaming endpoint and accumulates the message, so
// large token budgets are not rejected as too long for a non-streaming call.
func (g *AnthropicGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	message, err := g.run(ctx, systemPrompt, userPrompt, nil)
	if err != nil {
		return "", err
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", generationFailed(providerAnthropic, ErrEmptyGeneration)
}

// Stream forwards each text delta to onChunk.
func (g *AnthropicGenerator) Stream(ctx context.Context, systemPrompt, userPrompt string, onChunk func(string) error) (string, error) {
	var full strings.Builder
	_, err := g.run(ctx, systemPrompt, userPrompt, func(text string) error {
		full.WriteString(text)
		return onChunk(text)
	})
	if err != nil {
		return "", err
	}
	return full.String(), nil
}

func (g *AnthropicGenerator) run(ctx context.Context, systemPrompt, userPrompt string, onText func(string) error) (*anthropic.Message, error) {
	params := anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	stream := g.client.Messages.NewStreaming(ctx, params)
	defer stream.Close()

	message := anthropic.Message{}
	for stream.Next() {
		event := stream.Current()
		if err := message.Accumulate(event); err != nil {
			return nil, generationFailed(providerAnthropic, err)
		}

		if onText == nil {
			continue
		}
		if delta, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent); ok {
			if text, ok := delta.Delta.AsAny().(anthropic.TextDelta); ok && text.Text != "" {
				if err := onText(text.Text); err != nil {
					return nil, err
				}
			}
		}
	}
	if err := stream.Err(); err != nil {
		return nil, generationFailed(providerAnthropic, err)
	}

	return &message, nil
}
