package generation

import (
	"encoding/json"
	"regexp"
	"strings"

	"quizforge/internal/domain"
	"quizforge/internal/matching"
)

var fencedJSONPattern = regexp.MustCompile("(?is)```(?:json)?\\s*([\\[{].*?[\\]}])\\s*```")

// itemRootAliases are the root keys providers use instead of "items".
var itemRootAliases = []string{"questions", "results", "output", "data", "quiz"}

// ExtractJSONBlock locates the JSON payload inside a provider response:
// a fenced code block first, then the span from the first opening brace
// or bracket to the last matching closer. Unextractable input is
// returned verbatim so the caller's decode reports the failure.
func ExtractJSONBlock(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}

	if m := fencedJSONPattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}

	start := -1
	for _, position := range []int{strings.Index(raw, "{"), strings.Index(raw, "[")} {
		if position >= 0 && (start < 0 || position < start) {
			start = position
		}
	}
	if start < 0 {
		return raw
	}

	closer := "}"
	if raw[start] == '[' {
		closer = "]"
	}
	if end := strings.LastIndex(raw, closer); end > start {
		return raw[start : end+1]
	}
	return raw
}

// ParsedOutput is the tolerant intermediate payload decoded from a
// provider response.
type ParsedOutput struct {
	Items        []domain.RawItemRecord
	ContentTypes []string
}

// decodeJSONValue decodes exactly one JSON value. Numbers keep their
// literal form so "3" and "3.0" survive coercion unchanged; trailing
// garbage fails the decode.
func decodeJSONValue(raw string) (any, bool) {
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, false
	}
	if strings.TrimSpace(raw[int(decoder.InputOffset()):]) != "" {
		return nil, false
	}
	return payload, true
}

// ParseOutput decodes a provider response into raw item records. It
// never fails: anything undecodable yields an empty result. A bare
// array is treated as the item list, a bare object as the payload
// envelope, and the item list is searched under alias root keys when
// "items" is absent.
func ParseOutput(raw string) ParsedOutput {
	payload, ok := decodeJSONValue(ExtractJSONBlock(raw))
	if !ok {
		return ParsedOutput{}
	}

	if list, isList := payload.([]any); isList {
		payload = map[string]any{"items": list}
	}
	envelope, isObject := payload.(map[string]any)
	if !isObject {
		return ParsedOutput{}
	}

	items := envelope["items"]
	if record, isRecord := items.(map[string]any); isRecord {
		items = []any{record}
	}
	list, isList := items.([]any)
	if !isList {
		for _, alias := range itemRootAliases {
			candidate := envelope[alias]
			if aliased, ok := candidate.([]any); ok {
				list, isList = aliased, true
				break
			}
			if nested, ok := candidate.(map[string]any); ok {
				if nestedItems, ok := nested["items"].([]any); ok {
					list, isList = nestedItems, true
					break
				}
			}
		}
	}

	// One malformed row invalidates the whole payload; the caller's
	// count enforcement covers the gap.
	records := make([]domain.RawItemRecord, 0, len(list))
	for _, entry := range list {
		record, isRecord := entry.(map[string]any)
		if !isRecord {
			return ParsedOutput{}
		}
		records = append(records, domain.RawItemRecord(record))
	}

	var contentTypes []string
	switch value := envelope["content_types"].(type) {
	case string:
		contentTypes = []string{value}
	case []any:
		for _, entry := range value {
			text, isText := entry.(string)
			if !isText {
				return ParsedOutput{}
			}
			contentTypes = append(contentTypes, text)
		}
	}

	return ParsedOutput{Items: records, ContentTypes: contentTypes}
}

var pairLeftKeys = []string{"left", "concept", "notion", "term", "element", "label"}
var pairRightKeys = []string{"right", "definition", "description", "explanation", "answer"}

// ParsePairsPayload decodes the dedicated pairs-pool response and runs
// every candidate through the matching pipeline, returning the best
// validated pairs up to limit.
func ParsePairsPayload(raw string, limit int) []matching.Pair {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	payload, ok := decodeJSONValue(ExtractJSONBlock(raw))
	if !ok {
		return nil
	}

	var rows []map[string]any
	switch value := payload.(type) {
	case map[string]any:
		if rawPairs, isList := value["pairs"].([]any); isList {
			rows = mappingRows(rawPairs)
		} else if items, isList := value["items"].([]any); isList {
			rows = mappingRows(items)
		}
	case []any:
		rows = mappingRows(value)
	}

	collector := matching.NewPairCollector()
	for _, row := range rows {
		left := firstStringValue(row, pairLeftKeys)
		right := firstStringValue(row, pairRightKeys)
		if left == "" || right == "" {
			continue
		}
		collector.Add(left, right)
	}

	if limit < 2 {
		limit = 2
	}
	return collector.Select(limit)
}

func mappingRows(entries []any) []map[string]any {
	rows := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		if mapping, isMapping := entry.(map[string]any); isMapping {
			rows = append(rows, mapping)
		}
	}
	return rows
}

func firstStringValue(row map[string]any, keys []string) string {
	for _, key := range keys {
		if value, isText := row[key].(string); isText && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
