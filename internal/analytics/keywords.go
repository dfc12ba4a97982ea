package analytics

import (
	"sort"
	"strings"
	"unicode"
)

// stopWords are common English function words excluded from keyword ranking.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {},
	"to": {}, "for": {}, "of": {}, "with": {}, "by": {}, "a": {}, "an": {},
	"is": {}, "was": {}, "are": {}, "were": {}, "been": {}, "be": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "may": {},
	"might": {}, "can": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"me": {}, "him": {}, "her": {}, "us": {}, "them": {}, "my": {},
	"your": {}, "his": {}, "its": {}, "our": {}, "their": {},
}

// ExtractKeywords tokenizes a text blob and returns candidate keywords ranked
// by descending frequency. Tokens of length <= 3 and stop-words are dropped.
// Ties keep first-encounter order. No stemming is applied, so "learning" and
// "learnings" rank separately.
func ExtractKeywords(text string) []string {
	if text == "" {
		return nil
	}

	// Lowercase, strip punctuation, split on whitespace.
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	type entry struct {
		word  string
		count int
		order int
	}

	counts := make(map[string]*entry)
	var entries []*entry

	for _, word := range strings.Fields(b.String()) {
		if len(word) <= 3 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if e, ok := counts[word]; ok {
			e.count++
			continue
		}
		e := &entry{word: word, count: 1, order: len(entries)}
		counts[word] = e
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].order < entries[j].order
	})

	keywords := make([]string, len(entries))
	for i, e := range entries {
		keywords[i] = e.word
	}
	return keywords
}

// TopKeywords truncates the ranked keyword list to at most n entries.
func TopKeywords(text string, n int) []string {
	keywords := ExtractKeywords(text)
	if len(keywords) > n {
		keywords = keywords[:n]
	}
	return keywords
}
