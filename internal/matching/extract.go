package matching

import (
	"strings"

	"quizforge/internal/domain"
	"quizforge/internal/util"
)

// RawPair is an unnormalized candidate split out of text. Both sides
// still need the normalization pipeline before they count as a Pair.
type RawPair struct {
	Left  string
	Right string
}

var blobSeparators = []string{"->", "=>", "→", "-&gt;", "="}

// ExtractPairsFromBlob splits a free-form blob on list separators and
// pulls a left/right candidate out of each fragment. Arrow separators
// win; a colon or a spaced dash is only trusted when the left side looks
// like a label rather than a clause.
func ExtractPairsFromBlob(blob string) []RawPair {
	var pairs []RawPair
	if strings.TrimSpace(blob) == "" {
		return pairs
	}

	for _, fragment := range pairFragmentSplitPattern.Split(blob, -1) {
		part := strings.TrimSpace(fragment)
		if part == "" {
			continue
		}
		matched := false
		for _, separator := range blobSeparators {
			if strings.Contains(part, separator) {
				leftRaw, rightRaw, _ := strings.Cut(part, separator)
				pairs = append(pairs, RawPair{Left: leftRaw, Right: rightRaw})
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if strings.Contains(part, ":") {
			leftRaw, rightRaw, _ := strings.Cut(part, ":")
			leftCandidate := NormalizeSide(NormalizeLeftCandidate(leftRaw), 8, 1)
			if leftCandidate != "" &&
				!leftVerbPattern.MatchString(leftCandidate) &&
				!strings.Contains(leftRaw, ",") &&
				!strings.Contains(leftRaw, "?") {
				pairs = append(pairs, RawPair{Left: leftRaw, Right: rightRaw})
				continue
			}
		}
		if strings.Contains(part, " - ") {
			leftRaw, rightRaw, _ := strings.Cut(part, " - ")
			leftCandidate := NormalizeSide(NormalizeLeftCandidate(leftRaw), 8, 1)
			if leftCandidate != "" && !leftVerbPattern.MatchString(leftCandidate) {
				pairs = append(pairs, RawPair{Left: leftRaw, Right: rightRaw})
			}
		}
	}
	return pairs
}

func extractPairsFromSentence(sentence string) []RawPair {
	var pairs []RawPair
	candidate := strings.Trim(sentence, sideCutset)
	if candidate == "" {
		return pairs
	}

	if strings.Contains(candidate, ":") {
		left, right, _ := strings.Cut(candidate, ":")
		leftCandidate := NormalizeSide(NormalizeLeftCandidate(left), 8, 1)
		if leftCandidate != "" &&
			strings.TrimSpace(right) != "" &&
			!strings.Contains(left, ",") &&
			!strings.Contains(left, "?") &&
			!leftVerbPattern.MatchString(leftCandidate) {
			pairs = append(pairs, RawPair{Left: left, Right: right})
		}
	}

	if m := sentencePairPattern.FindStringSubmatch(candidate); m != nil {
		predicate := strings.Trim(m[2], " ,:-")
		right := strings.Trim(predicate+" "+m[3], " ,:-")
		if LooksDefinitionLike(right) {
			left := DeriveLabel(strings.Trim(m[1], " ,:-"))
			if left != "" && right != "" {
				pairs = append(pairs, RawPair{Left: left, Right: right})
			}
		}
	}

	if m := cestADirePairPattern.FindStringSubmatch(candidate); m != nil {
		left := DeriveLabel(strings.Trim(m[1], " ,:-"))
		right := strings.Trim(m[2], " ,:-")
		if left != "" && right != "" && LooksDefinitionLike("c'est-a-dire "+right) {
			pairs = append(pairs, RawPair{Left: left, Right: right})
		}
	}

	return pairs
}

func filterLabelTokens(tokens []string) []string {
	var selected []string
	for _, token := range tokens {
		normalized := util.NormalizeIdentifier(token)
		if len(normalized) < 3 {
			continue
		}
		if inSet(genericTokenStopwords, normalized) {
			continue
		}
		if inSet(leftForbiddenTokens, normalized) {
			continue
		}
		if inSet(labelBannedTokens, normalized) {
			continue
		}
		selected = append(selected, token)
		if len(selected) >= 3 {
			break
		}
	}
	return selected
}

// DeriveLabel builds a short concept label out of a sentence, keeping at
// most three specific tokens from its leading noun phrase. Returns ""
// when no trustworthy label can be derived.
func DeriveLabel(sentence string) string {
	sentenceClean := strings.Trim(sentence, sideCutset)
	var candidate string
	if m := sentencePairPattern.FindStringSubmatch(sentenceClean); m != nil {
		candidate = strings.Trim(m[1], sideCutset)
	} else if m := leadingNounPhrasePattern.FindStringSubmatch(sentenceClean); m != nil {
		candidate = strings.Trim(m[1], sideCutset)
	} else if m := leftArticlePhrasePattern.FindStringSubmatch(sentenceClean); m != nil {
		candidate = strings.Trim(m[1], sideCutset)
	} else {
		// Avoid extracting left labels from arbitrary sentence fragments.
		return ""
	}
	if candidate == "" {
		return ""
	}

	selected := filterLabelTokens(tokenPattern.FindAllString(candidate, -1))
	if len(selected) < 2 {
		// Recover a noun phrase when the leading clause starts with
		// discourse noise ("On suppose...", "Toutes les..."), then build a
		// label from that instead.
		if m := leftArticlePhrasePattern.FindStringSubmatch(sentenceClean); m != nil {
			fallbackCandidate := strings.Trim(m[1], sideCutset)
			directLabel := NormalizeSide(NormalizeLeftCandidate(fallbackCandidate), 6, 1)
			if directLabel != "" && !leftVerbPattern.MatchString(directLabel) {
				return directLabel
			}
			selected = filterLabelTokens(tokenPattern.FindAllString(fallbackCandidate, -1))
		}
		if len(selected) < 2 {
			return ""
		}
	}

	label := NormalizeSide(NormalizeLeftCandidate(strings.Join(selected, " ")), 6, 1)
	if label == "" {
		return ""
	}
	if leftVerbPattern.MatchString(label) {
		return ""
	}
	return label
}

// BuildFallbackPairs mines association pairs out of full source
// sentences when provider output gave nothing usable.
func BuildFallbackPairs(sourceText string, desiredPairs int) []Pair {
	sentences := util.SplitInformativeSentences(sourceText, 28, 80)
	collector := NewPairCollector()

	for _, sentence := range sentences {
		for _, raw := range extractPairsFromSentence(sentence) {
			collector.Add(raw.Left, raw.Right)
		}
	}

	usedRights := make(map[string]struct{})
	for _, cand := range collector.candidates {
		usedRights[strings.ToLower(cand.pair.Right)] = struct{}{}
	}
	for _, sentence := range sentences {
		sentenceKey := strings.ToLower(sentence)
		if _, ok := usedRights[sentenceKey]; ok {
			continue
		}
		if !LooksDefinitionLike(sentence) {
			continue
		}
		leftRaw := DeriveLabel(sentence)
		if leftRaw == "" {
			continue
		}
		before := collector.Len()
		collector.Add(leftRaw, sentence)
		if collector.Len() > before {
			usedRights[sentenceKey] = struct{}{}
		}
	}

	limit := desiredPairs
	if limit < 2 {
		limit = 2
	}
	selected := collector.Select(limit)

	if len(selected) < 2 {
		context := "Le document presente des notions importantes."
		if len(sentences) > 0 {
			context = sentences[0]
		}
		collector.Add("Concept principal", context)
		collector.Add("Cas pratique", "Associer chaque notion a son role explicite dans le texte source.")
		collector.Add("Exemple concret", "Relier chaque notion a une illustration concrete du document.")
		selected = collector.Select(limit)
	}

	if len(selected) > limit {
		selected = selected[:limit]
	}
	return selected
}

// ExtractItemPairs recovers association pairs for one generated item,
// starting from the item's own answer fields and widening to source
// sentence mining, then the fallback builder, then fixed placeholders.
func ExtractItemPairs(item domain.GeneratedItem, sourceText string) []Pair {
	collector := NewPairCollector()

	rawSources := make([]string, 0, 1+len(item.AnswerOptions)+len(item.Distractors))
	rawSources = append(rawSources, item.CorrectAnswer)
	rawSources = append(rawSources, item.AnswerOptions...)
	rawSources = append(rawSources, item.Distractors...)
	for _, blob := range rawSources {
		for _, raw := range ExtractPairsFromBlob(blob) {
			collector.Add(raw.Left, raw.Right)
		}
	}
	selected := collector.Select(8)

	if len(selected) < 3 {
		for _, sentence := range util.SplitInformativeSentences(util.CleanSourceText(sourceText), 28, 80) {
			for _, raw := range extractPairsFromSentence(sentence) {
				collector.Add(raw.Left, raw.Right)
			}
		}
		selected = collector.Select(8)
	}

	if len(selected) < 2 {
		for _, pair := range BuildFallbackPairs(util.CleanSourceText(sourceText), 4) {
			collector.Add(pair.Left, pair.Right)
		}
		selected = collector.Select(8)
	}

	if len(selected) < 2 {
		return PlaceholderPairs()
	}
	if len(selected) > 8 {
		selected = selected[:8]
	}
	return selected
}

// DeclaredPairs parses only the pairs an item itself declares, for
// audits and export preflight over stored batches where the source
// text is no longer available. The correct answer is authoritative;
// answer options are consulted only when it yields nothing valid.
func DeclaredPairs(item domain.GeneratedItem) []Pair {
	collector := NewPairCollector()
	for _, raw := range ExtractPairsFromBlob(item.CorrectAnswer) {
		collector.Add(raw.Left, raw.Right)
	}
	if collector.Len() == 0 {
		for _, option := range item.AnswerOptions {
			for _, raw := range ExtractPairsFromBlob(option) {
				collector.Add(raw.Left, raw.Right)
			}
		}
	}
	return collector.Select(8)
}

var pairSeparatorTokens = []string{"->", "=>", "→", "-&gt;"}

func containsPairSeparator(value string) bool {
	for _, token := range pairSeparatorTokens {
		if strings.Contains(value, token) {
			return true
		}
	}
	return false
}

// LooksLikeMatchingItem reports whether an item carries association
// semantics even if it was not typed as matching.
func LooksLikeMatchingItem(item domain.GeneratedItem) bool {
	if item.ItemType == domain.ItemTypeMatching {
		return true
	}
	for _, tag := range item.Tags {
		switch util.NormalizeIdentifier(tag) {
		case "matching", "association", "association_pairs":
			return true
		}
	}
	if containsPairSeparator(item.CorrectAnswer) {
		return true
	}
	for _, option := range item.AnswerOptions {
		if containsPairSeparator(option) {
			return true
		}
	}
	return false
}
