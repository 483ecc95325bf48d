package provider

import (
	"context"

	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"go.uber.org/zap"
)

// FallbackProvider resolves any residual inner error to the offline
// payload, so the composed gateway never returns an error upstream.
type FallbackProvider struct {
	inner   domain.TextProvider
	offline *OfflineProvider
}

func NewFallbackProvider(inner domain.TextProvider) *FallbackProvider {
	return &FallbackProvider{inner: inner, offline: NewOfflineProvider()}
}

func (p *FallbackProvider) Generate(ctx context.Context, prompt string) (string, error) {
	raw, err := p.inner.Generate(ctx, prompt)
	if err != nil {
		logger.Get().Warn("provider exhausted, serving offline payload",
			zap.String("provider", p.inner.Name()),
			zap.Error(err))
		return p.offline.Generate(ctx, prompt)
	}
	return raw, nil
}

func (p *FallbackProvider) Name() string { return p.inner.Name() }
