package matching

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"quizforge/internal/util"
)

const sideCutset = " -:;,."

// trimNonWordEdges strips leading and trailing runes that are neither
// letters nor digits, accent-aware.
func trimNonWordEdges(value string) string {
	return strings.TrimFunc(value, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func upperFirst(value string) string {
	r, size := utf8.DecodeRuneInString(value)
	if size == 0 {
		return value
	}
	return string(unicode.ToUpper(r)) + value[size:]
}

// NormalizeSide collapses whitespace, strips numbering prefixes and edge
// punctuation, balances a dangling open parenthesis and enforces the
// word-count window. It returns "" when the side is unusable.
func NormalizeSide(value string, maxWords, minWords int) string {
	cleaned := strings.Trim(util.CollapseWhitespace(value), sideCutset)
	if cleaned == "" {
		return ""
	}
	cleaned = util.StripQuestionPrefix(cleaned)
	cleaned = trimNonWordEdges(cleaned)
	if cleaned == "" {
		return ""
	}
	if strings.Count(cleaned, "(") > strings.Count(cleaned, ")") {
		lastOpen := strings.LastIndex(cleaned, "(")
		cleaned = strings.Trim(cleaned[:lastOpen], sideCutset)
	}
	if cleaned == "" {
		return ""
	}
	words := len(strings.Fields(cleaned))
	if words < minWords || words > maxWords {
		return ""
	}
	return cleaned
}

// NormalizeLeftCandidate reduces a raw left side to its core noun
// phrase: prefer an article-led phrase, drop universal determiners, cut
// at the first relative clause or comma, and drop a dangling preposition.
func NormalizeLeftCandidate(value string) string {
	cleaned := strings.Trim(util.CollapseWhitespace(value), sideCutset)
	if cleaned == "" {
		return cleaned
	}
	if m := leftArticlePhrasePattern.FindStringSubmatch(cleaned); m != nil {
		cleaned = strings.TrimSpace(m[1])
	}
	cleaned = strings.TrimSpace(leftDeterminerPrefixPattern.ReplaceAllString(cleaned, ""))
	if loc := leftClauseSplitPattern.FindStringIndex(cleaned); loc != nil {
		cleaned = strings.TrimSpace(cleaned[:loc[0]])
	}
	cleaned = strings.TrimSpace(leftDanglingTailPattern.ReplaceAllString(cleaned, ""))
	return cleaned
}

// NormalizeLeftDisplay capitalizes the first letter of a label.
func NormalizeLeftDisplay(value string) string {
	cleaned := strings.TrimSpace(util.CollapseWhitespace(value))
	if cleaned == "" {
		return cleaned
	}
	r, _ := utf8.DecodeRuneInString(cleaned)
	if unicode.IsLetter(r) && unicode.IsLower(r) {
		cleaned = upperFirst(cleaned)
	}
	return cleaned
}

// StripLeadingArticles removes stacked French articles and partitives
// from the front of a label, repeating until stable.
func StripLeadingArticles(value string) string {
	cleaned := strings.TrimSpace(util.CollapseWhitespace(value))
	changed := true
	for changed {
		changed = false
		next := strings.TrimSpace(leadingArticlePattern.ReplaceAllString(cleaned, ""))
		if next != cleaned {
			cleaned = next
			changed = true
		}
	}
	return cleaned
}

func stripLeadingLabel(right, label string) string {
	re := regexp.MustCompile(`(?i)^\s*` + regexp.QuoteMeta(label) + `\s*[,:-]?\s*`)
	return re.ReplaceAllString(right, "")
}

// CoerceDefinition turns a raw right side into a self-contained
// definition for the given left label: strip "c'est-a-dire" lead-ins and
// restatements of the label, drop bare copulas in front of otherwise
// meaningful predicates, and re-validate the result. Returns "" when no
// usable definition remains.
func CoerceDefinition(left, rightRaw string) string {
	rawRight := NormalizeSide(rightRaw, 34, rightMinWords)
	right := rawRight
	if right == "" {
		return ""
	}
	right = strings.Trim(definitionPrefixPattern.ReplaceAllString(right, ""), sideCutset)
	right = estLeSuivantPrefixPattern.ReplaceAllString(right, "")
	if loc := cestADirePattern.FindStringIndex(right); loc != nil {
		right = strings.Trim(right[loc[1]:], sideCutset)
	}
	right = semicolonPattern.ReplaceAllString(right, ", ")
	if right == "" {
		return ""
	}

	leftCleaned := strings.TrimSpace(util.CollapseWhitespace(left))
	leftCore := StripLeadingArticles(leftCleaned)
	if leftCleaned != "" {
		right = stripLeadingLabel(right, leftCleaned)
	}
	if leftCore != "" && !strings.EqualFold(leftCore, leftCleaned) {
		right = stripLeadingLabel(right, leftCore)
	}
	if leftCore != "" {
		articleLabel := regexp.MustCompile(`(?i)^\s*(?:l['’]|le|la|les|un|une|des|du)\s+` + regexp.QuoteMeta(leftCore) + `\s*[,:-]?\s*`)
		right = articleLabel.ReplaceAllString(right, "")
	}
	right = strings.Trim(introNoisePattern.ReplaceAllString(right, ""), sideCutset)
	right = queLeadPattern.ReplaceAllString(right, "")
	if loc := cestADirePattern.FindStringIndex(right); loc != nil {
		right = strings.Trim(right[loc[1]:], sideCutset)
	}
	if weakDefinitionPattern.MatchString(right) {
		return ""
	}

	// A bare copula in front of a recognized predicate gets stripped so
	// the definition reads as an autonomous noun phrase; a meaningful
	// predicate verb is kept and just capitalized.
	if cop := copulaArticlePattern.FindStringIndex(right); cop != nil && predicatePrefixPattern.MatchString(right) {
		stripped := right[cop[1]:]
		if stripped != "" && len(strings.Fields(stripped)) >= rightMinWords {
			right = upperFirst(stripped)
		} else {
			right = upperFirst(right)
		}
	} else if predicatePrefixPattern.MatchString(right) {
		right = upperFirst(right)
	}

	right = NormalizeSide(right, 34, rightMinWords)
	if right != "" && rightNoisyStartPattern.MatchString(right) {
		right = ""
	}
	if right != "" && rightBadEndPattern.MatchString(right) {
		right = ""
	}
	if right == "" && rawRight != "" && !rightNoisyStartPattern.MatchString(rawRight) {
		// Keep the full, explicit sentence when cleanup removed too much context.
		right = rawRight
	}
	if right != "" && rightBadEndPattern.MatchString(right) {
		return ""
	}
	if right != "" && weakDefinitionPattern.MatchString(right) {
		return ""
	}
	return right
}
