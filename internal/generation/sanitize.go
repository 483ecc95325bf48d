package generation

import (
	"strings"

	"quizforge/internal/domain"
	"quizforge/internal/util"
)

// SanitizeItem strips retrieval artifacts (source labels, video IDs,
// URLs, wire error fragments) from every textual field of an item. A
// field whose cleaned form would be empty keeps its original text.
// Sanitizing an already sanitized item is a no-op.
func SanitizeItem(item domain.GeneratedItem) domain.GeneratedItem {
	cleanedPrompt := cleanGeneratedField(item.Prompt)
	if cleanedPrompt == "" {
		cleanedPrompt = item.Prompt
	}
	item.Prompt = closeQuestionPrompt(util.StripQuestionPrefix(cleanedPrompt))
	item.CorrectAnswer = cleanGeneratedField(item.CorrectAnswer)
	item.Distractors = cleanAll(item.Distractors)
	item.AnswerOptions = cleanAll(item.AnswerOptions)
	item.Feedback = cleanGeneratedField(item.Feedback)
	return item
}

// closeQuestionPrompt appends " ?" to a prompt that reads as a question
// but ends without terminal punctuation. Prompts already punctuated are
// left alone, so cloze statements ending on a blank marker survive.
func closeQuestionPrompt(prompt string) string {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return prompt
	}
	if terminalPunctuationPattern.MatchString(trimmed) {
		return trimmed
	}
	if !questionCuePattern.MatchString(trimmed) {
		return trimmed
	}
	return trimmed + " ?"
}

func cleanGeneratedField(value string) string {
	if value == "" {
		return ""
	}
	cleaned := util.StripURLs(value)
	cleaned = sourceLabelPattern.ReplaceAllString(cleaned, "")
	cleaned = videoIDLabelPattern.ReplaceAllString(cleaned, "")
	cleaned = titleChannelLabelPattern.ReplaceAllString(cleaned, "")
	cleaned = retrievalFailurePattern.ReplaceAllString(cleaned, "")
	cleaned = moreInformationPattern.ReplaceAllString(cleaned, "")
	cleaned = wireErrorPattern.ReplaceAllString(cleaned, "")
	cleaned = spaceRunPattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return strings.TrimSpace(value)
	}
	return cleaned
}

func cleanAll(values []string) []string {
	if values == nil {
		return nil
	}
	cleaned := make([]string, len(values))
	for i, value := range values {
		cleaned[i] = cleanGeneratedField(value)
	}
	return cleaned
}
