package provider

import "context"

// OfflinePayload is the canned completion served when no remote backend
// is configured or every remote attempt failed. One well-formed MCQ
// keeps the downstream parser on its nominal path; byte-identical
// across processes so degraded runs stay reproducible.
const OfflinePayload = `{"items": [{"item_type": "mcq", "question": "Quelle est l'idee principale presentee par le document ?", "answer": "La notion centrale que la source developpe.", "distractors": ["Un detail peripherique du texte.", "Une idee que la source ne mentionne pas.", "Une conclusion que rien ne justifie."], "difficulty": "medium", "tags": ["offline"], "source": "section:1"}]}`

// OfflineProvider serves the fixed payload without any network access.
type OfflineProvider struct{}

func NewOfflineProvider() *OfflineProvider {
	return &OfflineProvider{}
}

func (p *OfflineProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return OfflinePayload, nil
}

func (p *OfflineProvider) Name() string { return "offline" }
