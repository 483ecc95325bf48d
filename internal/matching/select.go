package matching

import (
	"sort"
	"strings"

	"quizforge/internal/util"
)

// QualityScore ranks a candidate pair. Longer definitions win, a
// moderately descriptive label helps, hedged wording is penalized.
func QualityScore(left, right string) int {
	leftWords := len(strings.Fields(left))
	rightWords := len(strings.Fields(right))
	if leftWords > 6 {
		leftWords = 6
	}
	score := rightWords*10 + leftWords*2
	if strings.Contains(right, ",") {
		score += 2
	}
	if predicatePrefixPattern.MatchString(right) {
		score++
	}
	if weakCertaintyPattern.MatchString(right) {
		score -= 8
	}
	return score
}

type candidate struct {
	seq   int
	pair  Pair
	score int
}

// PairCollector accumulates raw left/right candidates, normalizes and
// validates each one, and keeps insertion order for stable selection.
type PairCollector struct {
	candidates []candidate
	seen       map[[2]string]struct{}
}

func NewPairCollector() *PairCollector {
	return &PairCollector{seen: make(map[[2]string]struct{})}
}

// Add runs one raw candidate through the normalization pipeline and
// keeps it when it survives the validation gate.
func (c *PairCollector) Add(leftRaw, rightRaw string) {
	left := NormalizeSide(NormalizeLeftCandidate(leftRaw), 8, 1)
	if left == "" {
		return
	}
	left = NormalizeLeftDisplay(left)
	right := CoerceDefinition(left, rightRaw)
	if right == "" {
		return
	}
	if !IsValidPair(left, right) {
		return
	}
	pair := Pair{Left: left, Right: right}
	key := pair.key()
	if _, ok := c.seen[key]; ok {
		return
	}
	c.seen[key] = struct{}{}
	c.candidates = append(c.candidates, candidate{
		seq:   len(c.candidates) + 1,
		pair:  pair,
		score: QualityScore(left, right),
	})
}

// Len reports how many candidates survived so far.
func (c *PairCollector) Len() int {
	return len(c.candidates)
}

// Select returns up to limit pairs, best-scoring first for admission but
// returned in original insertion order, with duplicate concepts and
// duplicate definitions excluded.
func (c *PairCollector) Select(limit int) []Pair {
	return selectBest(c.candidates, limit)
}

func selectBest(candidates []candidate, limit int) []Pair {
	if limit <= 0 || len(candidates) == 0 {
		return nil
	}
	ranked := make([]candidate, len(candidates))
	copy(ranked, candidates)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].seq < ranked[j].seq
	})

	var selected []candidate
	seenLeft := make(map[string]struct{})
	seenRight := make(map[string]struct{})
	for _, cand := range ranked {
		leftID := util.NormalizeIdentifier(StripLeadingArticles(cand.pair.Left))
		rightID := util.NormalizeIdentifier(cand.pair.Right)
		if leftID == "" || rightID == "" {
			continue
		}
		if _, ok := seenLeft[leftID]; ok {
			continue
		}
		if _, ok := seenRight[rightID]; ok {
			continue
		}
		seenLeft[leftID] = struct{}{}
		seenRight[rightID] = struct{}{}
		selected = append(selected, cand)
		if len(selected) >= limit {
			break
		}
	}

	sort.Slice(selected, func(i, j int) bool { return selected[i].seq < selected[j].seq })
	pairs := make([]Pair, 0, len(selected))
	for _, cand := range selected {
		pairs = append(pairs, cand.pair)
	}
	return pairs
}

// SelectVariant picks a stable subset of pairs while varying the payload
// across item variants. When the pool is small the whole pool is rotated
// so consecutive association items do not repeat the exact same string.
func SelectVariant(pairs []Pair, variantIndex, desiredPairs int) []Pair {
	if desiredPairs <= 0 {
		return nil
	}

	var deduped []Pair
	seen := make(map[[2]string]struct{})
	for _, pair := range pairs {
		key := pair.key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, pair)
	}
	if len(deduped) == 0 {
		return nil
	}
	if len(deduped) <= desiredPairs {
		if len(deduped) <= 1 {
			return deduped
		}
		offset := variantIndex % len(deduped)
		rotated := make([]Pair, 0, len(deduped))
		rotated = append(rotated, deduped[offset:]...)
		rotated = append(rotated, deduped[:offset]...)
		return rotated
	}

	var selected []Pair
	start := (variantIndex * desiredPairs) % len(deduped)
	cursor := start
	attempts := 0
	for len(selected) < desiredPairs && attempts < len(deduped)*2 {
		pair := deduped[cursor%len(deduped)]
		if !containsPair(selected, pair) {
			selected = append(selected, pair)
		}
		cursor++
		attempts++
	}
	if len(selected) < desiredPairs {
		for _, pair := range deduped {
			if containsPair(selected, pair) {
				continue
			}
			selected = append(selected, pair)
			if len(selected) >= desiredPairs {
				break
			}
		}
	}
	if len(selected) > desiredPairs {
		selected = selected[:desiredPairs]
	}
	return selected
}

func containsPair(pairs []Pair, pair Pair) bool {
	for _, existing := range pairs {
		if existing == pair {
			return true
		}
	}
	return false
}
