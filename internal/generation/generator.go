package generation

import (
	"context"

	"quizforge/internal/domain"
	"quizforge/internal/logger"
	"quizforge/internal/matching"
	"quizforge/internal/util"

	"go.uber.org/zap"
)

// Generator runs the full item generation pipeline: prompt building,
// provider call, tolerant parsing, normalization, count enforcement,
// mode and matching coherence, sanitization.
type Generator struct {
	provider         domain.TextProvider
	maxSourceChars   int
	pairsPerQuestion int
}

// NewGenerator wires a generator around a text provider. Non-positive
// limits fall back to the documented defaults.
func NewGenerator(provider domain.TextProvider, maxSourceChars, pairsPerQuestion int) *Generator {
	if maxSourceChars <= 0 {
		maxSourceChars = 14000
	}
	if pairsPerQuestion <= 0 {
		pairsPerQuestion = 3
	}
	return &Generator{
		provider:         provider,
		maxSourceChars:   maxSourceChars,
		pairsPerQuestion: pairsPerQuestion,
	}
}

// GenerateItems produces exactly req.MaxItems sanitized items. It never
// fails: provider errors, unparsable output and short payloads are all
// absorbed by the rule-based fallback.
func (g *Generator) GenerateItems(ctx context.Context, req domain.GenerateRequest) []domain.GeneratedItem {
	req.ApplyDefaults()

	effectiveSource := util.CleanSourceText(req.SourceText)
	if effectiveSource == "" {
		effectiveSource = req.SourceText
	}

	prompt := BuildPrompt(domain.PromptSpec{
		SourceExcerpt: util.TruncateRunes(effectiveSource, g.maxSourceChars),
		ContentTypes:  req.ContentTypes,
		Instructions:  req.Instructions,
		MaxItems:      req.MaxItems,
		Language:      req.Language,
		Level:         req.Level,
		Subject:       req.Subject,
		ClassLevel:    req.ClassLevel,
		Difficulty:    req.Difficulty,
	})

	items := g.attemptGeneration(ctx, prompt, req.ContentTypes)
	if len(items) == 0 {
		retryPrompt := prompt +
			"\n\nIMPORTANT: reponds strictement en JSON avec la cle racine 'items' " +
			"et une liste de questions pedagogiques concretes basees sur la source."
		items = g.attemptGeneration(ctx, retryPrompt, req.ContentTypes)
	}

	validated := EnsureItemCount(items, effectiveSource, req.ContentTypes, req.MaxItems)

	modeSequence := ParseModeSequence(req.Instructions, req.MaxItems)
	pairsPerQuestion := ParsePairsPerQuestion(req.Instructions, g.pairsPerQuestion)

	var llmPool []matching.Pair
	if needsMatchingPool(req.ContentTypes, modeSequence) {
		matchingCount := 0
		for _, mode := range modeSequence {
			if mode == ModeAssociationPairs {
				matchingCount++
			}
		}
		target := matchingCount * (pairsPerQuestion + 2)
		if target < 8 {
			target = 8
		}
		if doubled := req.MaxItems * 2; doubled > target {
			target = doubled
		}
		llmPool = g.buildPairsPool(ctx, effectiveSource, target, req)
	}

	if len(modeSequence) > 0 {
		validated = EnforceModeCoherence(validated, effectiveSource, modeSequence, llmPool, pairsPerQuestion)
	}
	validated = EnforceMatchingCoherence(validated, effectiveSource, llmPool, pairsPerQuestion)

	if len(validated) > req.MaxItems {
		validated = validated[:req.MaxItems]
	}
	for i, item := range validated {
		validated[i] = SanitizeItem(item)
	}
	return validated
}

func needsMatchingPool(contentTypes []domain.ContentType, modeSequence []string) bool {
	for _, contentType := range contentTypes {
		if contentType == domain.ContentTypeMatching {
			return true
		}
	}
	for _, mode := range modeSequence {
		if mode == ModeAssociationPairs {
			return true
		}
	}
	return false
}

func (g *Generator) attemptGeneration(ctx context.Context, prompt string, contentTypes []domain.ContentType) []domain.GeneratedItem {
	raw, err := g.provider.Generate(ctx, prompt)
	if err != nil {
		logger.Get().Warn("provider generation failed, falling back to rule-based items",
			zap.String("provider", g.provider.Name()),
			zap.Error(err))
		return nil
	}
	parsed := ParseOutput(raw)
	return CoerceItems(parsed.Items, contentTypes)
}

// buildPairsPool asks the provider for a dedicated concept/definition
// pool. A thin first harvest triggers one stricter retry; the larger of
// the two harvests wins.
func (g *Generator) buildPairsPool(ctx context.Context, sourceText string, desiredPairs int, req domain.GenerateRequest) []matching.Pair {
	if desiredPairs <= 0 {
		return nil
	}
	prepared := util.CleanSourceText(sourceText)
	if prepared == "" {
		return nil
	}
	targetSize := desiredPairs
	if targetSize < 2 {
		targetSize = 2
	}
	if targetSize > 48 {
		targetSize = 48
	}

	prompt := buildPairsPrompt(pairsPromptSpec{
		TargetSize:    targetSize,
		Language:      req.Language,
		Level:         req.Level,
		Subject:       req.Subject,
		ClassLevel:    req.ClassLevel,
		SourceExcerpt: util.TruncateRunes(prepared, g.maxSourceChars),
	})

	raw, err := g.provider.Generate(ctx, prompt)
	if err != nil {
		logger.Get().Warn("pairs pool generation failed",
			zap.String("provider", g.provider.Name()),
			zap.Error(err))
		raw = ""
	}
	pairs := ParsePairsPayload(raw, targetSize)

	threshold := targetSize
	if threshold > 4 {
		threshold = 4
	}
	if threshold < 2 {
		threshold = 2
	}
	if len(pairs) >= threshold {
		return pairs
	}

	retryPrompt := prompt +
		"\nIMPORTANT: ne fournis que des notions disciplinaires concretes et des definitions completes. " +
		"Aucun mot isole, aucune phrase incomplete." +
		"\nNe commence AUCUNE definition par 'est' ou 'sont'. Chaque definition doit etre un groupe nominal autonome."
	retryRaw, retryErr := g.provider.Generate(ctx, retryPrompt)
	if retryErr != nil {
		return pairs
	}
	retryPairs := ParsePairsPayload(retryRaw, targetSize)
	if len(retryPairs) > len(pairs) {
		return retryPairs
	}
	return pairs
}
