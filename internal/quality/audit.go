// Package quality runs a rule-based audit over a stored item batch and
// produces a readiness report. The audit never mutates the batch; it
// surfaces the confidence signal the generation pipeline deliberately
// keeps out of band so callers always receive a complete batch.
package quality

import (
	"fmt"
	"regexp"
	"strings"

	"quizforge/internal/domain"
	"quizforge/internal/matching"
)

// Issue severities, ordered by weight.
const (
	SeverityCritical = "critical"
	SeverityMajor    = "major"
	SeverityMinor    = "minor"
)

// Readiness verdicts for a batch.
const (
	ReadinessReady        = "ready"
	ReadinessReviewNeeded = "review_needed"
	ReadinessBlocked      = "blocked"
)

// Issue codes.
const (
	CodePromptTooShort           = "prompt_too_short"
	CodeMissingSourceReference   = "missing_source_reference"
	CodeMissingExpectedAnswer    = "missing_expected_answer"
	CodeInsufficientDistractors  = "insufficient_distractors"
	CodeDuplicateAnswers         = "duplicate_answers"
	CodeClozeMissingAnswers      = "cloze_missing_answers"
	CodeInsufficientPollOptions  = "insufficient_poll_options"
	CodeInsufficientMatchingPair = "insufficient_matching_pairs"
)

const minPromptLength = 16

// Issue is one finding against one item.
type Issue struct {
	Code      string `json:"code"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	ItemIndex int    `json:"item_index"`
}

// Metrics summarizes the audited batch.
type Metrics struct {
	ItemsTotal             int            `json:"items_total"`
	ItemTypes              map[string]int `json:"item_types"`
	DifficultyDistribution map[string]int `json:"difficulty_distribution"`
	CriticalIssues         int            `json:"critical_issues"`
	MajorIssues            int            `json:"major_issues"`
	MinorIssues            int            `json:"minor_issues"`
}

// Report is the audit result for one batch.
type Report struct {
	BatchID      string  `json:"batch_id"`
	OverallScore int     `json:"overall_score"`
	Readiness    string  `json:"readiness"`
	Metrics      Metrics `json:"metrics"`
	Issues       []Issue `json:"issues"`
}

// clozeHolePattern matches the blank markers the cloze coercer emits
// plus Moodle-style MULTICHOICE tokens.
var clozeHolePattern = regexp.MustCompile(`(?i)(_{2,}|\{\{blank\}\}|\[blank\]|\(blank\)|\{:MULTICHOICE:[^}]+\})`)

// expectedAnswerSeparators splits a compound expected answer while
// keeping duplicates, so hole counts compare against real coverage.
var expectedAnswerSeparators = regexp.MustCompile(`\s*(?:\|\||;;|;|\n)\s*`)

// Auditor scores batches.
type Auditor struct{}

// NewAuditor creates an auditor.
func NewAuditor() *Auditor {
	return &Auditor{}
}

// AuditBatch scores every item in the batch and derives the readiness
// verdict. Score starts at 100 and issues deduct from it; the result
// is clamped to 0..100.
func (a *Auditor) AuditBatch(batch *domain.ItemBatch) Report {
	report := Report{
		Readiness: ReadinessReady,
		Issues:    []Issue{},
		Metrics: Metrics{
			ItemTypes:              make(map[string]int),
			DifficultyDistribution: make(map[string]int),
		},
	}
	if batch == nil {
		report.OverallScore = 100
		return report
	}

	report.BatchID = batch.ID
	report.Metrics.ItemsTotal = len(batch.Items)
	score := 100

	for index, item := range batch.Items {
		report.Metrics.ItemTypes[string(item.ItemType)]++
		report.Metrics.DifficultyDistribution[domain.ClampDifficulty(item.Difficulty)]++

		for _, issue := range auditItem(item, index+1) {
			score -= deduction(issue.Code)
			report.Issues = append(report.Issues, issue)
		}
	}

	for _, issue := range report.Issues {
		switch issue.Severity {
		case SeverityCritical:
			report.Metrics.CriticalIssues++
		case SeverityMajor:
			report.Metrics.MajorIssues++
		case SeverityMinor:
			report.Metrics.MinorIssues++
		}
	}

	if report.Metrics.CriticalIssues > 0 {
		report.Readiness = ReadinessBlocked
	} else if report.Metrics.MajorIssues > 0 {
		report.Readiness = ReadinessReviewNeeded
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	report.OverallScore = score
	return report
}

func deduction(code string) int {
	switch code {
	case CodeMissingExpectedAnswer, CodeClozeMissingAnswers, CodeInsufficientMatchingPair:
		return 10
	case CodePromptTooShort, CodeInsufficientDistractors, CodeInsufficientPollOptions:
		return 8
	case CodeDuplicateAnswers:
		return 4
	case CodeMissingSourceReference:
		return 3
	}
	return 0
}

func auditItem(item domain.GeneratedItem, index int) []Issue {
	var issues []Issue
	prompt := strings.TrimSpace(item.Prompt)
	correct := strings.TrimSpace(item.CorrectAnswer)
	distractors := nonEmptyTrimmed(item.Distractors)
	options := nonEmptyTrimmed(item.AnswerOptions)

	if len([]rune(prompt)) < minPromptLength {
		issues = append(issues, Issue{
			Code:      CodePromptTooShort,
			Severity:  SeverityMajor,
			Message:   "Enonce trop court pour une evaluation fiable.",
			ItemIndex: index,
		})
	}

	if strings.TrimSpace(item.SourceReference) == "" {
		issues = append(issues, Issue{
			Code:      CodeMissingSourceReference,
			Severity:  SeverityMinor,
			Message:   "Reference source absente (section:...).",
			ItemIndex: index,
		})
	}

	switch item.ItemType {
	case domain.ItemTypeMCQ, domain.ItemTypeCloze, domain.ItemTypeOpenQuestion:
		if correct == "" {
			issues = append(issues, Issue{
				Code:      CodeMissingExpectedAnswer,
				Severity:  SeverityCritical,
				Message:   "Reponse attendue manquante.",
				ItemIndex: index,
			})
		}
	}

	if item.ItemType == domain.ItemTypeMCQ {
		if len(distractors) < 3 {
			issues = append(issues, Issue{
				Code:      CodeInsufficientDistractors,
				Severity:  SeverityMajor,
				Message:   "Un QCM doit contenir au moins 3 distracteurs.",
				ItemIndex: index,
			})
		}
		answers := distractors
		if correct != "" {
			answers = append([]string{correct}, distractors...)
		}
		if hasDuplicates(answers) {
			issues = append(issues, Issue{
				Code:      CodeDuplicateAnswers,
				Severity:  SeverityMinor,
				Message:   "Des reponses sont dupliquees (bonne reponse/distracteurs).",
				ItemIndex: index,
			})
		}
	}

	if item.ItemType == domain.ItemTypeCloze {
		holes := CountClozeHoles(prompt)
		expected := len(SplitExpectedAnswersKeepDuplicates(correct))
		if holes > 0 && expected < holes {
			issues = append(issues, Issue{
				Code:      CodeClozeMissingAnswers,
				Severity:  SeverityCritical,
				Message:   fmt.Sprintf("Texte a trous incomplet: %d trou(s) detecte(s) mais %d reponse(s).", holes, expected),
				ItemIndex: index,
			})
		}
	}

	if item.ItemType == domain.ItemTypePoll {
		if uniqueCount(append(options, distractors...)) < 2 {
			issues = append(issues, Issue{
				Code:      CodeInsufficientPollOptions,
				Severity:  SeverityMajor,
				Message:   "Choix multiple incomplet: au moins 2 options sont requises.",
				ItemIndex: index,
			})
		}
	}

	if item.ItemType == domain.ItemTypeMatching {
		if len(matching.DeclaredPairs(item)) < 2 {
			issues = append(issues, Issue{
				Code:      CodeInsufficientMatchingPair,
				Severity:  SeverityCritical,
				Message:   "Association incomplete: au moins 2 paires 'gauche -> droite' sont requises.",
				ItemIndex: index,
			})
		}
	}

	return issues
}

// CountClozeHoles counts blank markers in a cloze prompt.
func CountClozeHoles(prompt string) int {
	if strings.TrimSpace(prompt) == "" {
		return 0
	}
	return len(clozeHolePattern.FindAllString(prompt, -1))
}

// SplitExpectedAnswersKeepDuplicates splits a compound expected answer
// on its separators without deduplicating, so each hole keeps its own
// answer even when two holes share the same word.
func SplitExpectedAnswersKeepDuplicates(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var values []string
	for _, chunk := range expectedAnswerSeparators.Split(raw, -1) {
		if cleaned := strings.TrimSpace(chunk); cleaned != "" {
			values = append(values, cleaned)
		}
	}
	return values
}

func nonEmptyTrimmed(values []string) []string {
	var cleaned []string
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

func hasDuplicates(values []string) bool {
	return uniqueCount(values) != len(values)
}

func uniqueCount(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		seen[strings.ToLower(value)] = struct{}{}
	}
	return len(seen)
}
