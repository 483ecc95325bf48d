package generation

import (
	"fmt"

	"quizforge/internal/domain"
)

// EnsureItemCount guarantees exactly maxItems items: surplus truncated,
// shortfall padded from the rule-based fallback with colliding prompts
// renamed so callers never see the same question twice.
func EnsureItemCount(items []domain.GeneratedItem, sourceText string, contentTypes []domain.ContentType, maxItems int) []domain.GeneratedItem {
	if maxItems <= 0 {
		return nil
	}
	if len(items) >= maxItems {
		return items[:maxItems]
	}

	fallbackItems := RuleBasedFallback(sourceText, contentTypes, maxItems)
	if len(items) == 0 {
		return fallbackItems
	}

	merged := make([]domain.GeneratedItem, len(items), maxItems)
	copy(merged, items)
	for index := 0; len(merged) < maxItems; index++ {
		candidate := fallbackItems[index%len(fallbackItems)]
		for _, existing := range merged {
			if existing.Prompt == candidate.Prompt {
				candidate.Prompt = fmt.Sprintf("%s (variante %d)", candidate.Prompt, len(merged)+1)
				break
			}
		}
		merged = append(merged, candidate)
	}
	return merged
}
