package services

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const providerOpenAI = "openai"

// OpenAIGenerator calls the chat completions API.
type OpenAIGenerator struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIGenerator creates a generator using the public OpenAI endpoint.
func NewOpenAIGenerator(apiKey, model string, maxTokens int) *OpenAIGenerator {
	return NewOpenAIGeneratorWithConfig(openai.DefaultConfig(apiKey), model, maxTokens)
}

// NewOpenAIGeneratorWithConfig allows a custom base URL or HTTP client.
func NewOpenAIGeneratorWithConfig(cfg openai.ClientConfig, model string, maxTokens int) *OpenAIGenerator {
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIGenerator{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (g *OpenAIGenerator) request(systemPrompt, userPrompt string) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userPrompt,
	})

	return openai.ChatCompletionRequest{
		Model:               g.model,
		Messages:            messages,
		MaxCompletionTokens: g.maxTokens,
	}
}

// Generate returns the content of the first choice.
func (g *OpenAIGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, g.request(systemPrompt, userPrompt))
	if err != nil {
		return "", generationFailed(providerOpenAI, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", generationFailed(providerOpenAI, ErrEmptyGeneration)
	}

	return resp.Choices[0].Message.Content, nil
}

// Stream forwards each content delta to onChunk.
func (g *OpenAIGenerator) Stream(ctx context.Context, systemPrompt, userPrompt string, onChunk func(string) error) (string, error) {
	req := g.request(systemPrompt, userPrompt)
	req.Stream = true

	stream, err := g.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return "", generationFailed(providerOpenAI, err)
	}
	defer stream.Close()

	var full strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", generationFailed(providerOpenAI, err)
		}

		for _, choice := range resp.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			full.WriteString(choice.Delta.Content)
			if err := onChunk(choice.Delta.Content); err != nil {
				return "", err
			}
		}
	}

	return full.String(), nil
}
