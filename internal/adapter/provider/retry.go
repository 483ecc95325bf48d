package provider

import (
	"context"
	"fmt"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"go.uber.org/zap"
)

// RetryProvider re-attempts a flaky backend with linearly increasing
// backoff before giving up. The returned error wraps the last attempt's.
type RetryProvider struct {
	inner       domain.TextProvider
	maxAttempts int
	backoffUnit time.Duration
}

func NewRetryProvider(inner domain.TextProvider, maxAttempts int) *RetryProvider {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &RetryProvider{
		inner:       inner,
		maxAttempts: maxAttempts,
		backoffUnit: 1500 * time.Millisecond,
	}
}

func (p *RetryProvider) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		raw, err := p.inner.Generate(ctx, prompt)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		logger.Get().Warn("provider attempt failed",
			zap.String("provider", p.inner.Name()),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", p.maxAttempts),
			zap.Error(err))
		if attempt == p.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(attempt) * p.backoffUnit):
		}
	}
	return "", fmt.Errorf("%s failed after %d attempts: %w", p.inner.Name(), p.maxAttempts, lastErr)
}

func (p *RetryProvider) Name() string { return p.inner.Name() }
