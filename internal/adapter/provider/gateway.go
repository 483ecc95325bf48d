package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"go.uber.org/zap"
)

// NewFromConfig builds the configured provider chain: the selected
// backend wrapped in retry and offline-fallback decorators. An unknown
// selection or a failed constructor degrades to the offline provider
// instead of failing startup.
func NewFromConfig(ctx context.Context, cfg config.LLMConfig) domain.TextProvider {
	base, err := newBaseProvider(ctx, cfg)
	if err != nil {
		logger.Get().Warn("provider construction failed, using offline payloads",
			zap.String("provider", cfg.Provider),
			zap.Error(err))
		return NewOfflineProvider()
	}
	if _, isOffline := base.(*OfflineProvider); isOffline {
		return base
	}
	return NewFallbackProvider(NewRetryProvider(base, cfg.MaxAttempts))
}

func newBaseProvider(ctx context.Context, cfg config.LLMConfig) (domain.TextProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "offline":
		return NewOfflineProvider(), nil
	case "mistral":
		return NewMistralProvider(cfg.MistralAPIKey, cfg.MistralBaseURL, cfg.MistralModel, cfg.Timeout)
	case "vllm":
		return NewVLLMProvider(cfg.VLLMServerURL, cfg.Timeout)
	case "ollama":
		return NewOllamaProvider(cfg.OllamaServer, cfg.OllamaModel, cfg.Timeout)
	case "gemini":
		return NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// boundedTimeout clamps the per-request timeout into the 8..20s window,
// defaulting to 12s when unset.
func boundedTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return 12 * time.Second
	}
	if timeout < 8*time.Second {
		return 8 * time.Second
	}
	if timeout > 20*time.Second {
		return 20 * time.Second
	}
	return timeout
}
