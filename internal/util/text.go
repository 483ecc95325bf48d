package util

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	urlPattern        = regexp.MustCompile(`(?i)https?://\S+`)

	// Technical lines injected by upstream ingestion (video/web scrapers)
	// that must never leak into prompts or generated items.
	noisySourceLinePattern = regexp.MustCompile(`(?i)^\s*(source\s+(youtube|web)|lien|url|identifiant\s+video|transcription\s+(non\s+activee|indisponible)|generation\s+basee|recuperation\s+impossible|for\s+more\s+information\s+check|client\s+error|http\s+error|acces\s+refuse|access\s+denied)\b`)
	youtubeSourcePattern   = regexp.MustCompile(`(?im)^\s*source\s+youtube\s*:`)
	titleChannelPattern    = regexp.MustCompile(`(?i)^\s*(titre|chaine)\s*:`)

	questionPrefixPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*item\s*#?\s*\d{1,3}\s*(?:[:.)-]\s*)`),
		regexp.MustCompile(`(?i)^\s*q\s*#?\s*\d{1,3}\s*(?:[:.)-]\s*|\s+)`),
		regexp.MustCompile(`(?i)^\s*question\s*(?:ouverte|open|qcm|a\s*saisir|numerique|texte\s*a\s*trous|association|choix\s*multiple|choix\s*unique)?\s*#?\s*\d{1,3}\s*(?:[:.)-]\s*|\s+)`),
		regexp.MustCompile(`(?i)^\s*texte\s*a\s*trous\s*#?\s*\d{1,3}\s*(?:[:.)-]\s*|\s+)`),
		regexp.MustCompile(`(?i)^\s*association\s*#?\s*\d{1,3}\s*(?:[:.)-]\s*|\s+)`),
		regexp.MustCompile(`(?i)^\s*\d{1,3}\s*[:.)-]\s*`),
	}

	sentenceSplitPattern  = regexp.MustCompile(`[.!?]\s+|\n+`)
	blankLineRunPattern   = regexp.MustCompile(`\n{3,}`)
	inlineSpaceRunPattern = regexp.MustCompile(`[ \t]{2,}`)

	nonIdentifierPattern = regexp.MustCompile(`[^a-z0-9_]+`)
	underscoreRunPattern = regexp.MustCompile(`_+`)
)

// CollapseWhitespace replaces every whitespace run with a single space.
// It does not trim; callers pick their own edge cutset.
func CollapseWhitespace(value string) string {
	return whitespacePattern.ReplaceAllString(value, " ")
}

// FoldASCII decomposes value (NFKD) and drops every non-ASCII rune, so
// accented letters fold to their base form and exotic symbols disappear.
func FoldASCII(value string) string {
	decomposed := norm.NFKD.String(value)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeIdentifier folds a free-form key or tag into a snake_case
// ascii identifier: "Choix Multiple" and "choix-multiple" both become
// "choix_multiple".
func NormalizeIdentifier(value string) string {
	normalized := FoldASCII(strings.ToLower(strings.TrimSpace(value)))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = nonIdentifierPattern.ReplaceAllString(normalized, "_")
	normalized = underscoreRunPattern.ReplaceAllString(normalized, "_")
	return strings.Trim(normalized, "_")
}

// DedupeStrings trims entries and removes case-insensitive duplicates
// while preserving first-seen order.
func DedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	deduped := make([]string, 0, len(values))
	for _, value := range values {
		cleaned := strings.TrimSpace(value)
		if cleaned == "" {
			continue
		}
		lowered := strings.ToLower(cleaned)
		if _, ok := seen[lowered]; ok {
			continue
		}
		seen[lowered] = struct{}{}
		deduped = append(deduped, cleaned)
	}
	return deduped
}

// TruncateRunes caps value at limit runes. Slicing by runes keeps
// multi-byte French characters intact.
func TruncateRunes(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	runes := []rune(value)
	return string(runes[:limit])
}

// StripURLs removes every http(s) URL from value.
func StripURLs(value string) string {
	return urlPattern.ReplaceAllString(value, "")
}

// StripQuestionPrefix removes mechanical numbering prefixes such as
// "Q3.", "Question 12:" or "Item #4 -", repeating until stable so
// stacked prefixes ("Question 2: Q2.") disappear entirely.
func StripQuestionPrefix(value string) string {
	next := strings.TrimSpace(value)
	changed := true
	for changed {
		changed = false
		for _, pattern := range questionPrefixPatterns {
			cleaned := strings.TrimLeftFunc(pattern.ReplaceAllString(next, ""), unicode.IsSpace)
			if cleaned != next {
				next = cleaned
				changed = true
			}
		}
	}
	return next
}

// EnsureQuestionMark appends " ?" to a non-empty value that does not
// already end with one, dropping competing terminal punctuation first.
func EnsureQuestionMark(value string) string {
	text := strings.TrimSpace(value)
	if text == "" {
		return text
	}
	if strings.HasSuffix(text, "?") {
		return text
	}
	text = strings.TrimRight(text, ".!;:")
	return text + " ?"
}

// SplitInformativeSentences splits text into sentence-like fragments and
// keeps the informative ones: at least minimumLength runes, at least five
// words, case-insensitively deduped, capped at limit.
func SplitInformativeSentences(text string, minimumLength, limit int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	chunks := sentenceSplitPattern.Split(strings.TrimSpace(text), -1)
	seen := make(map[string]struct{})
	var deduped []string
	for _, chunk := range chunks {
		sentence := strings.Trim(CollapseWhitespace(chunk), " -:;,.")
		if utf8.RuneCountInString(sentence) < minimumLength {
			continue
		}
		if len(strings.Fields(sentence)) < 5 {
			continue
		}
		key := strings.ToLower(sentence)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, sentence)
		if len(deduped) >= limit {
			break
		}
	}
	return deduped
}

// CleanSourceText removes noisy technical lines and URLs from raw source
// text. Video payloads additionally lose their title/channel header
// lines. Blank lines survive as paragraph breaks but never more than one
// in a row.
func CleanSourceText(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	isVideoPayload := youtubeSourcePattern.MatchString(text)
	var keptLines []string
	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			keptLines = append(keptLines, "")
			continue
		}
		if noisySourceLinePattern.MatchString(line) {
			continue
		}
		if isVideoPayload && titleChannelPattern.MatchString(line) {
			continue
		}
		line = strings.TrimSpace(StripURLs(line))
		if line != "" {
			keptLines = append(keptLines, line)
		}
	}

	cleaned := strings.Join(keptLines, "\n")
	cleaned = blankLineRunPattern.ReplaceAllString(cleaned, "\n\n")
	cleaned = inlineSpaceRunPattern.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
