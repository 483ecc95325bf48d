package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	ollamaLLM "github.com/tmc/langchaingo/llms/ollama"
)

// OllamaProvider generates through a local Ollama server via the
// LangchainGo client.
type OllamaProvider struct {
	llm     *ollamaLLM.LLM
	timeout time.Duration
}

func NewOllamaProvider(serverURL, model string, timeout time.Duration) (*OllamaProvider, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}

	llm, err := ollamaLLM.New(
		ollamaLLM.WithModel(model),
		ollamaLLM.WithServerURL(serverURL),
		ollamaLLM.WithFormat("json"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo Ollama client: %w", err)
	}

	return &OllamaProvider{llm: llm, timeout: boundedTimeout(timeout)}, nil
}

func (p *OllamaProvider) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	response, err := p.llm.Call(ctx, prompt, llms.WithTemperature(0.2))
	if err != nil {
		return "", fmt.Errorf("ollama generation failed: %w", err)
	}
	return response, nil
}

func (p *OllamaProvider) Name() string { return "ollama" }
