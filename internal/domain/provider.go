package domain

import "context"

// TextProvider is the port for the external text-generation backend.
// Implementations live in internal/adapter/provider.
type TextProvider interface {
	// Generate sends the prompt and returns the raw completion text.
	// The text may be malformed, wrapped in markdown, or empty; the
	// generation pipeline is responsible for making sense of it.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name identifies the backend for logging.
	Name() string
}
