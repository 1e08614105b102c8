package tokencoll

import (
	"hash/fnv"
	"sort"
	"strings"
)

// Token is one autocomplete candidate.
type Token struct {
	// Content is the text inserted when the token is accepted.
	Content string

	// Description is renderer-facing detail text.
	Description string

	// Priority orders tokens in the published list; higher sorts
	// first.
	Priority int
}

// Matches reports whether the token is a candidate for the typed
// input. Matching is a case-insensitive substring test on Content;
// precedingContext and line are available to richer token kinds and
// are ignored by the base rule.
func (t Token) Matches(input, precedingContext string, line int) bool {
	if input == "" {
		return false
	}
	return strings.Contains(strings.ToLower(t.Content), strings.ToLower(input))
}

// sortTokens orders a list by priority descending, then content
// case-insensitively.
func sortTokens(tokens []Token) {
	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].Priority != tokens[j].Priority {
			return tokens[i].Priority > tokens[j].Priority
		}
		return strings.ToLower(tokens[i].Content) < strings.ToLower(tokens[j].Content)
	})
}

// hashTokens sums per-content FNV-1a hashes, giving an order-free
// fingerprint of a list.
func hashTokens(tokens []Token) uint64 {
	var sum uint64
	for _, t := range tokens {
		h := fnv.New64a()
		h.Write([]byte(t.Content))
		sum += h.Sum64()
	}
	return sum
}
