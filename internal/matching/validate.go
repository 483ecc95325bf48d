package matching

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"quizforge/internal/util"
)

func trimLabelPrefix(value, label string) string {
	re := regexp.MustCompile(`(?i)^\s*` + regexp.QuoteMeta(label) + `\s*`)
	return re.ReplaceAllString(value, "")
}

// LooksDefinitionLike reports whether the text reads as a standalone
// definition rather than a question or a fragment.
func LooksDefinitionLike(value string) bool {
	cleaned := strings.TrimSpace(util.CollapseWhitespace(value))
	if cleaned == "" || strings.Contains(cleaned, "?") {
		return false
	}
	return definitionCuePattern.MatchString(cleaned)
}

func isGenericLeftLabel(value string) bool {
	cleaned := strings.Trim(util.CollapseWhitespace(value), sideCutset)
	if cleaned == "" {
		return true
	}
	tokens := tokenPattern.FindAllString(cleaned, -1)
	if len(tokens) == 0 {
		return true
	}

	var contentTokens []string
	for _, token := range tokens {
		normalized := util.NormalizeIdentifier(token)
		if normalized != "" && !inSet(genericTokenStopwords, normalized) {
			contentTokens = append(contentTokens, normalized)
		}
	}
	if len(contentTokens) == 0 {
		return true
	}

	if inSet(leftBadStartTokens, contentTokens[0]) {
		return true
	}
	for _, token := range contentTokens {
		if inSet(leftForbiddenTokens, token) {
			return true
		}
	}

	// Reject isolated generic labels ("lettre", "message"). Acronyms like
	// TCP or IPV4 and specific nouns like "Conduction" stay acceptable.
	if len(tokens) == 1 {
		sole := strings.TrimSpace(tokens[0])
		norm := contentTokens[0]
		if inSet(genericSingleLabelTokens, norm) {
			return true
		}
		if !acronymPattern.MatchString(sole) && (len(norm) < 4 || inSet(stopwords, norm)) {
			return true
		}
	}
	return false
}

// IsValidPair is the quality gate every association pair goes through,
// whether it came from provider output, sentence mining or the fallback
// builder. The left side must be a specific noun-phrase label and the
// right side a self-contained definition of it.
func IsValidPair(left, right string) bool {
	leftCleaned := strings.Trim(util.CollapseWhitespace(left), sideCutset)
	rightCleaned := strings.Trim(util.CollapseWhitespace(right), sideCutset)
	if leftCleaned == "" || rightCleaned == "" {
		return false
	}
	if strings.ContainsAny(leftCleaned, ",;:") {
		return false
	}
	if isGenericLeftLabel(leftCleaned) {
		return false
	}
	if weakCertaintyPattern.MatchString(leftCleaned) {
		return false
	}
	if weakCertaintyPattern.MatchString(rightCleaned) {
		return false
	}

	leftCore := StripLeadingArticles(leftCleaned)
	if leftNoisyPhrasePattern.MatchString(leftCleaned) {
		return false
	}
	if relativeClausePattern.MatchString(leftCleaned) {
		return false
	}
	leftTokens := tokenPattern.FindAllString(leftCore, -1)
	if len(leftTokens) == 0 {
		return false
	}
	if inSet(leftBadStartTokens, util.NormalizeIdentifier(leftTokens[0])) {
		return false
	}
	if len(leftTokens) < 2 {
		lone := util.NormalizeIdentifier(leftTokens[0])
		ok := len(lone) >= 4 &&
			!inSet(genericSingleLabelTokens, lone) &&
			!inSet(stopwords, lone) &&
			!inSet(genericTokenStopwords, lone)
		if !ok {
			return false
		}
	}
	for _, token := range leftTokens {
		if utf8.RuneCountInString(strings.Trim(token, "'’-")) <= 1 {
			return false
		}
	}
	var contentTokens []string
	for _, token := range leftTokens {
		if !inSet(genericTokenStopwords, util.NormalizeIdentifier(token)) {
			contentTokens = append(contentTokens, token)
		}
	}
	for _, token := range leftTokens {
		if inSet(leftForbiddenTokens, util.NormalizeIdentifier(token)) {
			return false
		}
	}
	if len(contentTokens) < 2 {
		// Accept simple labels such as "Le routeur" or "Conduction" when
		// they are specific and non-generic.
		soleID := ""
		if len(contentTokens) == 1 {
			soleID = util.NormalizeIdentifier(contentTokens[0])
		}
		ok := len(contentTokens) == 1 &&
			len(leftTokens) <= 3 &&
			len(soleID) >= 4 &&
			!inSet(genericSingleLabelTokens, soleID) &&
			!inSet(stopwords, soleID) &&
			(leadingArticlePattern.MatchString(leftCleaned) || len(leftTokens) == 1)
		if !ok {
			return false
		}
	}
	if len(leftTokens) > 8 {
		return false
	}

	leftKey := util.NormalizeIdentifier(leftCleaned)
	rightKey := util.NormalizeIdentifier(rightCleaned)
	if leftKey == "" || rightKey == "" {
		return false
	}
	if inSet(stopwords, leftKey) {
		return false
	}
	if badLeftPrefixPattern.MatchString(leftCleaned) {
		return false
	}
	if leftVerbPattern.MatchString(leftCleaned) {
		return false
	}
	if leftKey == rightKey {
		return false
	}
	if placeholderPattern.MatchString(leftCleaned) || placeholderPattern.MatchString(rightCleaned) {
		return false
	}
	rightLower := strings.ToLower(rightCleaned)
	if strings.HasPrefix(rightLower, "definition de ") ||
		strings.HasPrefix(rightLower, "def de ") ||
		strings.HasPrefix(rightLower, "desc de ") {
		return false
	}
	if rightNoisyStartPattern.MatchString(rightCleaned) {
		return false
	}
	if rightBadEndPattern.MatchString(rightCleaned) {
		return false
	}
	rightWords := len(strings.Fields(rightCleaned))
	if rightWords < rightMinWords {
		return false
	}
	if !LooksDefinitionLike(rightCleaned) && rightWords < 8 {
		return false
	}
	if strings.HasPrefix(rightKey, leftKey) {
		// Allow explicit predicate definitions after the concept label:
		// "Le routeur -> Le routeur oriente les paquets ...".
		rightTail := strings.TrimSpace(trimLabelPrefix(rightCleaned, leftCleaned))
		if leftCore != "" && rightTail == rightCleaned {
			rightTail = strings.TrimSpace(trimLabelPrefix(rightCleaned, leftCore))
		}
		if len(strings.Fields(rightTail)) < 3 {
			return false
		}
		if rightNoisyTailPattern.MatchString(rightTail) {
			return false
		}
	}
	if strings.Contains(rightKey, leftKey) && rightWords <= len(strings.Fields(leftCleaned))+1 {
		return false
	}
	return true
}

func uniqueSideCounts(pairs []Pair) (int, int) {
	uniqueLeft := make(map[string]struct{})
	uniqueRight := make(map[string]struct{})
	for _, pair := range pairs {
		if normalized := util.NormalizeIdentifier(StripLeadingArticles(pair.Left)); normalized != "" {
			uniqueLeft[normalized] = struct{}{}
		}
		if normalized := util.NormalizeIdentifier(pair.Right); normalized != "" {
			uniqueRight[normalized] = struct{}{}
		}
	}
	return len(uniqueLeft), len(uniqueRight)
}

// NeedFallback reports whether a pair set is too weak to build an
// association item from and rule-based extraction should take over.
func NeedFallback(pairs []Pair) bool {
	if len(pairs) < 3 {
		return true
	}
	for _, pair := range pairs {
		if !IsValidPair(pair.Left, pair.Right) {
			return true
		}
	}

	uniqueLeft, uniqueRight := uniqueSideCounts(pairs)
	if uniqueLeft < 3 {
		return true
	}
	if uniqueLeft != len(pairs) {
		return true
	}
	if uniqueRight != len(pairs) {
		return true
	}

	totalRightWords := 0
	for _, pair := range pairs {
		totalRightWords += len(strings.Fields(pair.Right))
	}
	averageRightWords := float64(totalRightWords) / float64(len(pairs))
	minAverage := 4
	if rightMinWords > minAverage {
		minAverage = rightMinWords
	}
	if averageRightWords < float64(minAverage) {
		return true
	}
	for _, pair := range pairs {
		if weakDefinitionPattern.MatchString(strings.TrimSpace(pair.Right)) {
			return true
		}
	}
	return false
}

// Exportable is the relaxed gate for association export: at least two
// valid pairs with no duplicated concept or definition.
func Exportable(pairs []Pair) bool {
	if len(pairs) < 2 {
		return false
	}
	for _, pair := range pairs {
		if !IsValidPair(pair.Left, pair.Right) {
			return false
		}
	}
	uniqueLeft, uniqueRight := uniqueSideCounts(pairs)
	return uniqueLeft == len(pairs) && uniqueRight == len(pairs)
}

// PronoteReady is the strict gate applied before an association item is
// allowed into a Pronote-bound payload.
func PronoteReady(pairs []Pair) bool {
	if !Exportable(pairs) {
		return false
	}
	if len(pairs) < 2 {
		return false
	}

	minWords, totalWords := -1, 0
	for _, pair := range pairs {
		words := len(strings.Fields(pair.Right))
		if minWords < 0 || words < minWords {
			minWords = words
		}
		totalWords += words
	}
	floor := 4
	if rightMinWords > floor {
		floor = rightMinWords
	}
	if minWords < floor {
		return false
	}
	if float64(totalWords)/float64(len(pairs)) < 6 {
		return false
	}

	for _, pair := range pairs {
		leftKey := util.NormalizeIdentifier(StripLeadingArticles(pair.Left))
		rightKey := util.NormalizeIdentifier(pair.Right)
		if leftKey == "" || rightKey == "" {
			return false
		}
		if strings.Contains(rightKey, leftKey) && len(strings.Fields(pair.Right)) <= len(strings.Fields(pair.Left))+2 {
			return false
		}
		if weakCertaintyPattern.MatchString(pair.Right) {
			return false
		}
	}
	return true
}

