package generation

import (
	"encoding/json"
	"strconv"
	"strings"

	"quizforge/internal/domain"
	"quizforge/internal/matching"
	"quizforge/internal/util"
)

// ModesJSONPrefix marks the machine-readable exam mode distribution
// line inside free-form instructions.
const ModesJSONPrefix = "PRONOTE_MODES_JSON:"

// Pronote exercise modes carried through the instructions side channel.
const (
	ModeSingleChoice      = "single_choice"
	ModeMultipleChoice    = "multiple_choice"
	ModeNumericValue      = "numeric_value"
	ModeFreeResponse      = "free_response"
	ModeSpelling          = "spelling"
	ModeAssociationPairs  = "association_pairs"
	ModeClozeFree         = "cloze_free"
	ModeClozeListUnique   = "cloze_list_unique"
	ModeClozeListVariable = "cloze_list_variable"
)

var pronoteModes = map[string]struct{}{
	ModeSingleChoice:      {},
	ModeMultipleChoice:    {},
	ModeNumericValue:      {},
	ModeFreeResponse:      {},
	ModeSpelling:          {},
	ModeAssociationPairs:  {},
	ModeClozeFree:         {},
	ModeClozeListUnique:   {},
	ModeClozeListVariable: {},
}

const associationPromptText = "Associez chaque notion du texte a sa definition ou a sa caracteristique correspondante."

type modeCount struct {
	mode  string
	count int
}

// decodeModeCounts walks the JSON object tokens in declaration order;
// unmarshalling into a Go map would lose the key order that fixes the
// mode sequence. Strict decoding rejects trailing data the way a whole
// payload parse would.
func decodeModeCounts(payload string, strict bool) ([]modeCount, bool) {
	decoder := json.NewDecoder(strings.NewReader(payload))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return nil, false
	}
	if delim, isDelim := token.(json.Delim); !isDelim || delim != '{' {
		return nil, false
	}

	var counts []modeCount
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, false
		}
		key, _ := keyToken.(string)

		var value any
		if err := decoder.Decode(&value); err != nil {
			return nil, false
		}
		count, _ := intFromJSON(value)
		counts = append(counts, modeCount{mode: key, count: count})
	}
	if _, err := decoder.Token(); err != nil {
		return nil, false
	}
	if strict && strings.TrimSpace(payload[int(decoder.InputOffset()):]) != "" {
		return nil, false
	}
	return counts, true
}

// intFromJSON parses a count leniently: numbers truncate, numeric
// strings parse, booleans count as 0/1. The second return reports
// whether the value was parseable at all.
func intFromJSON(value any) (int, bool) {
	switch v := value.(type) {
	case json.Number:
		if parsed, err := strconv.ParseFloat(v.String(), 64); err == nil {
			return int(parsed), true
		}
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return parsed, true
		}
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// ParseModeSequence reads the ordered exam mode distribution from the
// instructions side channel: a "PRONOTE_MODES_JSON: {...}" line, or the
// first inline occurrence when no line starts with the prefix. Unknown
// modes and non-positive counts are skipped, counts clamp to 100, and
// the sequence truncates to maxItems.
func ParseModeSequence(instructions string, maxItems int) []string {
	if instructions == "" || maxItems <= 0 {
		return nil
	}

	payload := ""
	strict := false
	foundLine := false
	for _, line := range strings.Split(instructions, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, ModesJSONPrefix) {
			payload = strings.TrimSpace(stripped[len(ModesJSONPrefix):])
			strict = true
			foundLine = true
			break
		}
	}
	if !foundLine {
		prefixIdx := strings.Index(strings.ToLower(instructions), strings.ToLower(ModesJSONPrefix))
		if prefixIdx < 0 {
			return nil
		}
		tail := strings.TrimLeft(instructions[prefixIdx+len(ModesJSONPrefix):], " \t\r\n")
		braceIdx := strings.Index(tail, "{")
		if braceIdx < 0 {
			return nil
		}
		payload = tail[braceIdx:]
	}

	counts, ok := decodeModeCounts(payload, strict)
	if !ok {
		return nil
	}

	var sequence []string
	for _, entry := range counts {
		mode := util.NormalizeIdentifier(entry.mode)
		if _, known := pronoteModes[mode]; !known {
			continue
		}
		count := entry.count
		if count <= 0 {
			continue
		}
		if count > 100 {
			count = 100
		}
		for i := 0; i < count; i++ {
			sequence = append(sequence, mode)
		}
	}
	if len(sequence) > maxItems {
		sequence = sequence[:maxItems]
	}
	return sequence
}

// ParsePairsPerQuestion reads matching_pairs_per_question from the
// instructions side channel, clamped to 2..6. The fallback applies when
// the key is absent or unparseable.
func ParsePairsPerQuestion(instructions string, fallback int) int {
	if instructions == "" {
		return fallback
	}
	for _, line := range strings.Split(instructions, "\n") {
		stripped := strings.TrimSpace(line)
		if !strings.HasPrefix(stripped, ModesJSONPrefix) {
			continue
		}
		payload := strings.TrimSpace(stripped[len(ModesJSONPrefix):])

		decoder := json.NewDecoder(strings.NewReader(payload))
		decoder.UseNumber()
		var decoded map[string]any
		if err := decoder.Decode(&decoded); err != nil {
			return fallback
		}
		if raw, present := decoded["matching_pairs_per_question"]; present && raw != nil {
			if value, parsed := intFromJSON(raw); parsed {
				if value < 2 {
					value = 2
				}
				if value > 6 {
					value = 6
				}
				return value
			}
		}
		return fallback
	}
	return fallback
}

// usedPairSet tracks the pair identities consumed across the positions
// of one invocation, so association questions never repeat a pair.
type usedPairSet map[[2]string]struct{}

func pairIdentity(left, right string) [2]string {
	return [2]string{
		strings.ToLower(strings.TrimSpace(left)),
		strings.ToLower(strings.TrimSpace(right)),
	}
}

func (u usedPairSet) add(left, right string) {
	u[pairIdentity(left, right)] = struct{}{}
}

func (u usedPairSet) filter(pairs []matching.Pair) []matching.Pair {
	available := make([]matching.Pair, 0, len(pairs))
	for _, pair := range pairs {
		if _, used := u[pairIdentity(pair.Left, pair.Right)]; !used {
			available = append(available, pair)
		}
	}
	return available
}

// markUsedOptions records the pair identities serialized in answer
// options as "left -> right" fragments.
func markUsedOptions(used usedPairSet, options []string) {
	for _, option := range options {
		for _, separator := range []string{"->", "=>", "→"} {
			if idx := strings.Index(option, separator); idx >= 0 {
				used.add(option[:idx], option[idx+len(separator):])
				break
			}
		}
	}
}

// modeInput bundles everything a mode strategy may need: the item, its
// precomputed prompt/tags/difficulty, and the shared association state.
type modeInput struct {
	item       domain.GeneratedItem
	mode       string
	prompt     string
	tags       []string
	difficulty string
	sourceText string
	pool       []matching.Pair
	poolIndex  int
	pairsPer   int
}

type modeStrategy func(modeInput) domain.GeneratedItem

var modeStrategies = map[string]modeStrategy{
	ModeSingleChoice:      coerceSingleChoice,
	ModeMultipleChoice:    coerceMultipleChoice,
	ModeNumericValue:      coerceNumericValue,
	ModeFreeResponse:      coerceFreeResponse,
	ModeSpelling:          coerceSpelling,
	ModeAssociationPairs:  coerceAssociationPairs,
	ModeClozeFree:         coerceClozeShape,
	ModeClozeListUnique:   coerceClozeShape,
	ModeClozeListVariable: coerceClozeShape,
}

func modeDifficulty(value string) string {
	switch value {
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
		return value
	}
	return domain.DifficultyMedium
}

// CoerceItemForMode adapts one generated item to the target exam mode
// through the strategy map. Unknown modes leave the item untouched.
func CoerceItemForMode(item domain.GeneratedItem, mode, sourceText string, pool []matching.Pair, poolIndex, pairsPerQuestion int) domain.GeneratedItem {
	strategy, known := modeStrategies[mode]
	if !known {
		return item
	}
	return strategy(modeInput{
		item:       item,
		mode:       mode,
		prompt:     strings.TrimSpace(util.StripQuestionPrefix(item.Prompt)),
		tags:       util.DedupeStrings(append(append([]string{}, item.Tags...), "pronote", mode)),
		difficulty: modeDifficulty(item.Difficulty),
		sourceText: sourceText,
		pool:       pool,
		poolIndex:  poolIndex,
		pairsPer:   pairsPerQuestion,
	})
}

// EnforceModeCoherence rewrites each item into the shape its assigned
// exam mode requires. Positions beyond the mode sequence pass through
// untouched; used pairs travel across positions so no two association
// questions share a pair.
func EnforceModeCoherence(items []domain.GeneratedItem, sourceText string, modeSequence []string, llmPool []matching.Pair, pairsPerQuestion int) []domain.GeneratedItem {
	if len(items) == 0 || len(modeSequence) == 0 {
		return items
	}

	matchingModeCount := 0
	for _, mode := range modeSequence {
		if mode == ModeAssociationPairs {
			matchingModeCount++
		}
	}
	var matchingPool []matching.Pair
	if matchingModeCount > 0 {
		desiredPoolSize := matchingModeCount * (pairsPerQuestion + 2)
		if desiredPoolSize < 6 {
			desiredPoolSize = 6
		}
		if len(llmPool) > 0 {
			matchingPool = matching.SelectVariant(llmPool, 0, desiredPoolSize)
		}
		if len(matchingPool) < 2 {
			matchingPool = matching.BuildFallbackPairs(util.CleanSourceText(sourceText), desiredPoolSize)
		}
	}

	used := make(usedPairSet)
	matchingIndex := 0
	coerced := make([]domain.GeneratedItem, 0, len(items))
	for index, item := range items {
		if index >= len(modeSequence) {
			coerced = append(coerced, item)
			continue
		}
		mode := modeSequence[index]

		pool := matchingPool
		if mode == ModeAssociationPairs && len(matchingPool) > 0 {
			if available := used.filter(matchingPool); len(available) >= 2 {
				pool = available
			}
		}

		result := CoerceItemForMode(item, mode, sourceText, pool, matchingIndex, pairsPerQuestion)
		coerced = append(coerced, result)
		if mode == ModeAssociationPairs {
			markUsedOptions(used, result.AnswerOptions)
			matchingIndex++
		}
	}
	return coerced
}

func coerceSingleChoice(in modeInput) domain.GeneratedItem {
	correct := normalizeShortText(in.item.CorrectAnswer)
	if correct == "" {
		correct = pickFirstText(in.item.AnswerOptions)
	}
	if correct == "" {
		correct = "Reponse attendue"
	}
	item := in.item
	item.ItemType = domain.ItemTypeMCQ
	item.Prompt = util.EnsureQuestionMark(in.prompt)
	item.CorrectAnswer = correct
	item.Distractors = coerceMCQDistractors(in.item, correct)
	item.AnswerOptions = nil
	item.Tags = in.tags
	item.Difficulty = in.difficulty
	return item
}

func coerceMultipleChoice(in modeInput) domain.GeneratedItem {
	options := coercePollOptions(in.item)
	expected := coerceExpectedAnswers(in.item.CorrectAnswer, options)
	item := in.item
	item.ItemType = domain.ItemTypePoll
	item.Prompt = util.EnsureQuestionMark(in.prompt)
	item.CorrectAnswer = strings.Join(expected, " || ")
	item.Distractors = nil
	item.AnswerOptions = options
	item.Tags = in.tags
	item.Difficulty = in.difficulty
	return item
}

func coerceNumericValue(in modeInput) domain.GeneratedItem {
	answer := extractNumericAnswer(in.item.CorrectAnswer, in.prompt, in.sourceText)
	prompt := in.prompt
	if !numericPromptPattern.MatchString(prompt) {
		if prompt != "" {
			prompt = "Saisissez la valeur numerique attendue (chiffres uniquement): " + prompt
		} else {
			prompt = "Saisissez la valeur numerique attendue (chiffres uniquement)."
		}
	}
	item := in.item
	item.ItemType = domain.ItemTypeOpenQuestion
	item.Prompt = util.EnsureQuestionMark(prompt)
	item.CorrectAnswer = answer
	item.Distractors = nil
	item.AnswerOptions = nil
	item.Tags = in.tags
	item.Difficulty = in.difficulty
	return item
}

func coerceFreeResponse(in modeInput) domain.GeneratedItem {
	expected := normalizeShortText(in.item.CorrectAnswer)
	if expected != "" && numericOnlyPattern.MatchString(expected) {
		expected = ""
	}
	if expected == "" {
		expected = "Reponse textuelle courte attendue d'apres le texte."
	}
	item := in.item
	item.ItemType = domain.ItemTypeOpenQuestion
	item.Prompt = util.EnsureQuestionMark(in.prompt)
	item.CorrectAnswer = expected
	item.Distractors = nil
	item.AnswerOptions = nil
	item.Tags = in.tags
	item.Difficulty = in.difficulty
	return item
}

func coerceSpelling(in modeInput) domain.GeneratedItem {
	prompt := in.prompt
	if prompt == "" {
		prompt = "Epelez correctement le mot attendu."
	}
	if !strings.Contains(strings.ToLower(prompt), "epel") {
		prompt = "Epelez correctement: " + prompt
	}
	item := in.item
	item.ItemType = domain.ItemTypeOpenQuestion
	item.Prompt = util.EnsureQuestionMark(prompt)
	item.CorrectAnswer = extractSpellingAnswer(in.item.CorrectAnswer, in.sourceText)
	item.Distractors = nil
	item.AnswerOptions = nil
	item.Tags = in.tags
	item.Difficulty = in.difficulty
	return item
}

func coerceAssociationPairs(in modeInput) domain.GeneratedItem {
	extracted := matching.ExtractItemPairs(in.item, in.sourceText)
	if !matching.Exportable(extracted) || matching.NeedFallback(extracted) || !matching.PronoteReady(extracted) {
		extracted = nil
	}
	sourcePairs := in.pool
	if len(sourcePairs) == 0 {
		sourcePairs = matching.BuildFallbackPairs(util.CleanSourceText(in.sourceText), 8)
	}
	pairPool := extracted
	if len(pairPool) == 0 {
		pairPool = sourcePairs
	}

	pairs := matching.SelectVariant(pairPool, in.poolIndex, in.pairsPer)
	if len(pairs) < 2 && len(extracted) > 0 && len(sourcePairs) > 0 {
		pairs = matching.SelectVariant(sourcePairs, in.poolIndex, in.pairsPer)
	}
	if !matching.PronoteReady(pairs) && len(sourcePairs) > 0 {
		pairs = matching.SelectVariant(sourcePairs, in.poolIndex, in.pairsPer)
	}
	if !matching.PronoteReady(pairs) {
		kept := make([]matching.Pair, 0, len(pairs))
		for _, pair := range pairs {
			if matching.IsValidPair(pair.Left, pair.Right) && len(strings.Fields(pair.Right)) >= 4 {
				kept = append(kept, pair)
			}
		}
		pairs = kept
	}
	if !matching.PronoteReady(pairs) {
		pairs = matching.PlaceholderPairs()
	}

	preserved := make([]string, 0, len(in.item.Tags))
	for _, tag := range in.item.Tags {
		if _, shape := itemShapeTags[util.NormalizeIdentifier(tag)]; !shape {
			preserved = append(preserved, tag)
		}
	}

	item := in.item
	item.ItemType = domain.ItemTypeMatching
	item.Prompt = util.EnsureQuestionMark(associationPromptText)
	item.CorrectAnswer = matching.FormatPairs(pairs)
	item.Distractors = nil
	item.AnswerOptions = matching.FormatOptions(pairs)
	item.Tags = util.DedupeStrings(append(preserved, "matching", "pronote", "association_pairs"))
	item.Difficulty = in.difficulty
	return item
}

func coerceClozeShape(in modeInput) domain.GeneratedItem {
	prompt := in.prompt
	if !strings.Contains(prompt, "____") && !strings.Contains(prompt, "{:MULTICHOICE:") {
		if prompt != "" {
			prompt = strings.TrimSpace(strings.TrimRight(prompt, " .") + " ____.")
		} else {
			prompt = "Completez: ____."
		}
	}
	correct := normalizeShortText(in.item.CorrectAnswer)
	if correct == "" {
		correct = extractSpellingAnswer("", in.sourceText)
	}

	var distractors []string
	if in.mode != ModeClozeFree {
		merged := util.DedupeStrings(append(append([]string{}, in.item.Distractors...), in.item.AnswerOptions...))
		distractors = make([]string, 0, len(merged))
		for _, value := range merged {
			if !strings.EqualFold(value, correct) {
				distractors = append(distractors, value)
			}
		}
		if len(distractors) > 3 {
			distractors = distractors[:3]
		}
	}

	item := in.item
	item.ItemType = domain.ItemTypeCloze
	item.Prompt = prompt
	item.CorrectAnswer = correct
	item.Distractors = distractors
	item.AnswerOptions = nil
	item.Tags = in.tags
	item.Difficulty = in.difficulty
	return item
}

// normalizedTagSet folds the item's tags to identifiers for membership
// checks.
func normalizedTagSet(item domain.GeneratedItem) map[string]struct{} {
	set := make(map[string]struct{}, len(item.Tags))
	for _, tag := range item.Tags {
		set[util.NormalizeIdentifier(tag)] = struct{}{}
	}
	return set
}

func isPronoteTagged(tags map[string]struct{}) bool {
	if _, ok := tags["pronote"]; ok {
		return true
	}
	if _, ok := tags["association_pairs"]; ok {
		return true
	}
	for tag := range tags {
		if _, isMode := pronoteModes[tag]; isMode {
			return true
		}
	}
	return false
}

// rewriteMatchingItem coerces an item into the canonical matching shape
// around the selected pairs. Prompts without an association cue are
// replaced wholesale.
func rewriteMatchingItem(item domain.GeneratedItem, pairs []matching.Pair, markAssociation bool) domain.GeneratedItem {
	tags := append([]string{"matching"}, item.Tags...)
	if markAssociation {
		tags = append(tags, "association_pairs")
	}
	prompt := strings.TrimSpace(util.StripQuestionPrefix(item.Prompt))
	if !associationCuePattern.MatchString(prompt) {
		prompt = associationPromptText
	}

	item.ItemType = domain.ItemTypeMatching
	item.Prompt = util.EnsureQuestionMark(prompt)
	item.CorrectAnswer = matching.FormatPairs(pairs)
	item.Distractors = nil
	item.AnswerOptions = matching.FormatOptions(pairs)
	item.Tags = util.DedupeStrings(tags)
	return item
}

// EnforceMatchingCoherence rewrites every matching-flavoured item with
// validated pairs, drawing on the shared pool with variant rotation so
// parallel questions stay disjoint.
func EnforceMatchingCoherence(items []domain.GeneratedItem, sourceText string, llmPool []matching.Pair, pairsPerQuestion int) []domain.GeneratedItem {
	if len(items) == 0 {
		return items
	}
	matchingCount := 0
	for _, item := range items {
		if matching.LooksLikeMatchingItem(item) {
			matchingCount++
		}
	}
	if matchingCount == 0 {
		return items
	}

	desiredPoolSize := matchingCount * (pairsPerQuestion + 2)
	if desiredPoolSize < 8 {
		desiredPoolSize = 8
	}
	var matchingPool []matching.Pair
	if len(llmPool) > 0 {
		matchingPool = matching.SelectVariant(llmPool, 0, desiredPoolSize)
	}
	if len(matchingPool) < 2 {
		matchingPool = matching.BuildFallbackPairs(util.CleanSourceText(sourceText), desiredPoolSize)
	}

	used := make(usedPairSet)
	matchingIndex := 0
	coerced := make([]domain.GeneratedItem, 0, len(items))
	for _, item := range items {
		if !matching.LooksLikeMatchingItem(item) {
			coerced = append(coerced, item)
			continue
		}

		tagSet := normalizedTagSet(item)
		extracted := matching.ExtractItemPairs(item, sourceText)

		if isPronoteTagged(tagSet) && matching.PronoteReady(extracted) {
			pairs := used.filter(extracted)
			if len(pairs) < 2 {
				pairs = extracted
			}
			_, hasAssociation := tagSet["association_pairs"]
			_, hasPronote := tagSet["pronote"]
			coerced = append(coerced, rewriteMatchingItem(item, pairs, hasAssociation || hasPronote))
			for _, pair := range pairs {
				used.add(pair.Left, pair.Right)
			}
			matchingIndex++
			continue
		}

		if matching.NeedFallback(extracted) {
			extracted = nil
		}

		activePool := extracted
		if len(activePool) == 0 {
			activePool = matchingPool
		}
		minNeeded := (matchingCount-1)*pairsPerQuestion + 2
		desiredPairs := pairsPerQuestion
		if len(activePool) < minNeeded {
			desiredPairs = pairsPerQuestion - 1
			if desiredPairs < 2 {
				desiredPairs = 2
			}
		}

		available := used.filter(activePool)
		if len(available) < desiredPairs {
			available = activePool
		}
		pairs := matching.SelectVariant(available, matchingIndex, desiredPairs)
		if len(pairs) < 2 && len(matchingPool) > 0 {
			fallbackAvailable := used.filter(matchingPool)
			if len(fallbackAvailable) < 2 {
				fallbackAvailable = matchingPool
			}
			pairs = matching.SelectVariant(fallbackAvailable, matchingIndex, desiredPairs)
		}
		if len(pairs) < 2 {
			pairs = matching.PlaceholderPairs()
		}

		coerced = append(coerced, rewriteMatchingItem(item, pairs, isPronoteTagged(tagSet)))
		for _, pair := range pairs {
			used.add(pair.Left, pair.Right)
		}
		matchingIndex++
	}
	return coerced
}

// normalizeShortText flattens whitespace and drops a leading
// "Reponse:" label.
func normalizeShortText(value string) string {
	cleaned := strings.TrimSpace(util.CollapseWhitespace(value))
	if cleaned == "" {
		return ""
	}
	return strings.TrimSpace(answerLabelPattern.ReplaceAllString(cleaned, ""))
}

func pickFirstText(values []string) string {
	for _, value := range values {
		if cleaned := normalizeShortText(value); cleaned != "" {
			return cleaned
		}
	}
	return ""
}

func coerceMCQDistractors(item domain.GeneratedItem, correct string) []string {
	merged := util.DedupeStrings(append(append([]string{}, item.Distractors...), item.AnswerOptions...))
	deduped := make([]string, 0, len(merged))
	for _, option := range merged {
		if !strings.EqualFold(option, correct) {
			deduped = append(deduped, option)
		}
	}
	if len(deduped) > 3 {
		deduped = deduped[:3]
	}
	return deduped
}

func coercePollOptions(item domain.GeneratedItem) []string {
	options := util.DedupeStrings(append(append([]string{}, item.AnswerOptions...), item.Distractors...))
	if item.CorrectAnswer != "" {
		for _, part := range multiAnswerSplitPattern.Split(item.CorrectAnswer, -1) {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				options = append(options, trimmed)
			}
		}
		options = util.DedupeStrings(options)
	}
	if len(options) > 6 {
		options = options[:6]
	}
	return options
}

// coerceExpectedAnswers derives the multi-valued expected answer set
// for a multiple-choice poll: the declared answers first, then the
// leading options, always at least two when two options exist.
func coerceExpectedAnswers(rawExpected string, options []string) []string {
	var expected []string
	for _, part := range multiAnswerSplitPattern.Split(rawExpected, -1) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			expected = append(expected, trimmed)
		}
	}
	expected = util.DedupeStrings(expected)

	if len(expected) == 0 && len(options) > 0 {
		limit := 2
		if len(options) < limit {
			limit = len(options)
		}
		expected = append(expected, options[:limit]...)
	}
	if len(expected) == 1 && len(options) >= 2 {
		for _, option := range options {
			if !strings.EqualFold(strings.TrimSpace(option), strings.TrimSpace(expected[0])) {
				expected = append(expected, option)
				break
			}
		}
	}
	if len(expected) > 3 {
		expected = expected[:3]
	}
	return expected
}

// extractNumericAnswer returns the first numeric token found across the
// given texts with decimal commas normalized, defaulting to "1".
func extractNumericAnswer(texts ...string) string {
	for _, text := range texts {
		if match := numericValuePattern.FindString(text); match != "" {
			return strings.ReplaceAll(match, ",", ".")
		}
	}
	return "1"
}

// extractSpellingAnswer picks the first plausible word (three letters
// or more, no interrogatives) from the answer then the source.
func extractSpellingAnswer(correctAnswer, sourceText string) string {
	for _, text := range []string{correctAnswer, sourceText} {
		for _, token := range spellingTokenPattern.FindAllString(text, -1) {
			if _, skip := spellingStopwords[strings.ToLower(token)]; skip {
				continue
			}
			return token
		}
	}
	return "mot"
}
