// Package enrich holds the heuristic text utilities: stoplist-filtered
// term-frequency keywords and a difficulty label.
package enrich

import (
	"sort"
	"strings"
	"unicode"
)

var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "all": {},
	"also": {}, "an": {}, "and": {}, "any": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "because": {}, "been": {}, "before": {}, "being": {}, "below": {},
	"between": {}, "both": {}, "but": {}, "by": {}, "can": {}, "could": {},
	"did": {}, "do": {}, "does": {}, "doing": {}, "down": {}, "during": {},
	"each": {}, "few": {}, "for": {}, "from": {}, "further": {}, "had": {},
	"has": {}, "have": {}, "having": {}, "he": {}, "her": {}, "here": {},
	"hers": {}, "him": {}, "his": {}, "how": {}, "i": {}, "if": {}, "in": {},
	"into": {}, "is": {}, "it": {}, "its": {}, "just": {}, "me": {}, "more": {},
	"most": {}, "my": {}, "no": {}, "nor": {}, "not": {}, "notes": {}, "now": {},
	"of": {}, "off": {}, "on": {}, "once": {}, "only": {}, "or": {}, "other": {},
	"our": {}, "out": {}, "over": {}, "own": {}, "same": {}, "she": {}, "so": {},
	"some": {}, "such": {}, "than": {}, "that": {}, "the": {}, "their": {},
	"them": {}, "then": {}, "there": {}, "these": {}, "they": {}, "this": {},
	"those": {}, "through": {}, "to": {}, "too": {}, "under": {}, "until": {},
	"up": {}, "very": {}, "was": {}, "we": {}, "were": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "who": {}, "whom": {},
	"why": {}, "will": {}, "with": {}, "would": {}, "you": {}, "your": {},
}

// Keywords returns up to max keywords ranked by term frequency, ties broken
// alphabetically so output is deterministic.
func Keywords(text string, max int) []string {
	if max <= 0 {
		return []string{}
	}

	freq := make(map[string]int)
	for _, word := range tokenize(text) {
		if len(word) < 3 {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}
		freq[word]++
	}

	ranked := make([]string, 0, len(freq))
	for word := range freq {
		ranked = append(ranked, word)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if freq[ranked[i]] != freq[ranked[j]] {
			return freq[ranked[i]] > freq[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})

	if len(ranked) > max {
		ranked = ranked[:max]
	}
	return ranked
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
