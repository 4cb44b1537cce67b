package intent

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// number-words recognized as ordinal references into a shown list
var numberWords = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10,
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"last": -1,
}

var (
	digitRefRegex  = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\b`)
	wordTokenRegex = regexp.MustCompile(`[a-z0-9]+`)
	// tokens allowed in an utterance that is nothing but an ordinal
	// reference ("1 and 3", "the first one")
	bareOrdinalRegex = regexp.MustCompile(`^(?:\s*(?:\d{1,2}(?:st|nd|rd|th)?|first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth|last|one|the|and|,|&)\s*)+$`)
)

// Ordinals maps every ordinal reference in the utterance to a zero-based
// index into a list of shownCount items. Positions outside [1, shownCount]
// are silently dropped so a partial valid selection still proceeds. The
// result is duplicate-free and ascending.
func Ordinals(text string, shownCount int) []int {
	if shownCount <= 0 {
		return nil
	}

	lower := strings.ToLower(text)
	seen := make(map[int]bool)

	for _, m := range digitRefRegex.FindAllStringSubmatch(lower, -1) {
		if pos, err := strconv.Atoi(m[1]); err == nil {
			addPosition(seen, pos, shownCount)
		}
	}

	prev := ""
	for _, w := range wordTokenRegex.FindAllString(lower, -1) {
		// digit references were already consumed above
		if w[0] >= '0' && w[0] <= '9' {
			prev = w
			continue
		}
		pos, ok := numberWords[w]
		if !ok {
			prev = w
			continue
		}
		// "one" right after another number reference is the noun ("the
		// first one", "the 2nd one"), elsewhere it is position 1
		// ("select 2 and one")
		if w == "one" && isNumberToken(prev) {
			prev = w
			continue
		}
		if pos == -1 {
			pos = shownCount
		}
		addPosition(seen, pos, shownCount)
		prev = w
	}

	if len(seen) == 0 {
		return nil
	}

	indices := make([]int, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

func isNumberToken(tok string) bool {
	if tok == "" {
		return false
	}
	if tok[0] >= '0' && tok[0] <= '9' {
		return true
	}
	return numberWords[tok] != 0
}

func addPosition(seen map[int]bool, pos, shownCount int) {
	if pos >= 1 && pos <= shownCount {
		seen[pos-1] = true
	}
}

// HasOrdinalShape reports whether the utterance consists solely of
// ordinal references, so a bare "1 and 3" counts as a selection even
// without a select verb.
func HasOrdinalShape(text string) bool {
	trimmed := strings.TrimSpace(strings.ToLower(text))
	if trimmed == "" {
		return false
	}
	return bareOrdinalRegex.MatchString(trimmed)
}
