package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// VLLMProvider talks to a self-hosted vLLM server through its plain
// completion endpoint: POST /generate with a prompt, {"text": [...]}
// back. The endpoint has no SDK; the server is typically a sibling
// container reachable over the local network.
type VLLMProvider struct {
	serverURL string
	client    *http.Client
}

func NewVLLMProvider(serverURL string, timeout time.Duration) (*VLLMProvider, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("vllm server URL cannot be empty")
	}
	return &VLLMProvider{
		serverURL: strings.TrimRight(serverURL, "/"),
		client:    &http.Client{Timeout: boundedTimeout(timeout)},
	}, nil
}

func (p *VLLMProvider) Generate(ctx context.Context, prompt string) (string, error) {
	requestBody, err := json.Marshal(map[string]any{
		"prompt":      prompt,
		"max_tokens":  2048,
		"temperature": 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode vllm request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, p.serverURL+"/generate", bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to build vllm request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := p.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("vllm request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vllm server returned status %d", response.StatusCode)
	}

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read vllm response: %w", err)
	}

	var payload struct {
		Text json.RawMessage `json:"text"`
	}
	if err := json.Unmarshal(responseBody, &payload); err != nil {
		return "", fmt.Errorf("failed to decode vllm response: %w", err)
	}
	if len(payload.Text) == 0 {
		return "", fmt.Errorf("vllm response has no text field")
	}

	// Batched servers answer {"text": ["..."]}, single-shot ones
	// {"text": "..."}.
	var texts []string
	if err := json.Unmarshal(payload.Text, &texts); err == nil {
		if len(texts) == 0 {
			return "", fmt.Errorf("vllm response text list is empty")
		}
		return texts[0], nil
	}
	var text string
	if err := json.Unmarshal(payload.Text, &text); err == nil {
		return text, nil
	}
	return "", fmt.Errorf("vllm response text field has an unexpected shape")
}

func (p *VLLMProvider) Name() string { return "vllm" }
