package generation

import (
	"quizforge/internal/domain"
	"quizforge/internal/logger"
	"quizforge/internal/validation"

	"go.uber.org/zap"
)

// EnforceItemContract swaps items that violate the outgoing item schema
// for deterministic fallback items at the same position. The returned
// slice always has the same length as the input, so the count guarantee
// survives the check.
func EnforceItemContract(contract *validation.ItemContract, req domain.GenerateRequest, items []domain.GeneratedItem) []domain.GeneratedItem {
	if contract == nil {
		return items
	}
	appLogger := logger.Get()

	var substitutes []domain.GeneratedItem
	for i, item := range items {
		err := contract.ValidateItem(item)
		if err == nil {
			continue
		}
		if substitutes == nil {
			substitutes = RuleBasedFallback(req.SourceText, req.ContentTypes, len(items))
		}
		if i < len(substitutes) {
			appLogger.Warn("Item failed contract check, substituting fallback item",
				zap.Int("position", i),
				zap.String("itemType", string(item.ItemType)),
				zap.Error(err))
			items[i] = SanitizeItem(substitutes[i])
		}
	}
	return items
}
