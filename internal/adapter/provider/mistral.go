package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const mistralSystemPrompt = "Tu retournes uniquement un JSON valide."

// MistralProvider talks to the Mistral chat-completions API, which is
// wire-compatible with the OpenAI client.
type MistralProvider struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewMistralProvider creates a Mistral-backed provider. The base URL
// may point at any OpenAI-compatible endpoint.
func NewMistralProvider(apiKey, baseURL, model string, timeout time.Duration) (*MistralProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("mistral API key cannot be empty")
	}
	if baseURL == "" {
		baseURL = "https://api.mistral.ai/v1"
	}
	if model == "" {
		model = "mistral-small-latest"
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = baseURL

	return &MistralProvider{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   model,
		timeout: boundedTimeout(timeout),
	}, nil
}

// Generate requests a JSON-object completion at low temperature and
// returns the raw message text.
func (p *MistralProvider) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	response, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: mistralSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("mistral chat completion failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("mistral returned no choices")
	}

	message := response.Choices[0].Message
	if message.Content != "" {
		return message.Content, nil
	}
	var parts []string
	for _, part := range message.MultiContent {
		if part.Type == openai.ChatMessagePartTypeText {
			parts = append(parts, part.Text)
		}
	}
	return strings.Join(parts, ""), nil
}

func (p *MistralProvider) Name() string { return "mistral" }
