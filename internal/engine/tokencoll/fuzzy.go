package tokencoll

import (
	"sort"
	"strings"
	"unicode"
)

// Match pairs a token with its relevance to a query.
type Match struct {
	Token Token

	// Score ranks the match; higher is better.
	Score int

	// Positions holds the rune indices of the query characters
	// within the token content.
	Positions []int
}

// priorityWeight converts a token's priority into score points.
const priorityWeight = 10

// Matches returns the published tokens matching input as a case-
// insensitive subsequence, ranked best first. An empty input yields
// every token in published order with zero score.
func (c *Collection) Matches(input, precedingContext string, line int) []Match {
	tokens := c.Tokens()
	query := []rune(strings.ToLower(strings.TrimSpace(input)))

	if len(query) == 0 {
		out := make([]Match, len(tokens))
		for i, t := range tokens {
			out[i] = Match{Token: t}
		}
		return out
	}

	var out []Match
	for _, t := range tokens {
		positions, ok := subsequence(query, []rune(strings.ToLower(t.Content)))
		if !ok {
			continue
		}
		out = append(out, Match{
			Token:     t,
			Score:     scoreMatch(t, query, positions),
			Positions: positions,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Token.Content < out[j].Token.Content
	})
	return out
}

// subsequence finds the leftmost occurrence of query as a character
// subsequence of text.
func subsequence(query, text []rune) ([]int, bool) {
	positions := make([]int, 0, len(query))
	qi := 0
	for ti, r := range text {
		if qi == len(query) {
			break
		}
		if r == query[qi] {
			positions = append(positions, ti)
			qi++
		}
	}
	if qi != len(query) {
		return nil, false
	}
	return positions, true
}

// scoreMatch ranks a subsequence hit. Consecutive characters, word
// boundaries and prefix anchoring all earn points; spread-out
// matches and long candidates lose some.
func scoreMatch(t Token, query []rune, positions []int) int {
	score := 100 + t.Priority*priorityWeight

	content := []rune(t.Content)
	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			score += 20
		}
	}
	for _, p := range positions {
		if p == 0 || isBoundary(content, p) {
			score += 15
		}
	}
	if positions[0] == 0 {
		score += 25
	} else {
		score -= positions[0]
	}
	if gap := positions[len(positions)-1] - positions[0] - len(positions) + 1; gap > 0 {
		score -= gap * 2
	}
	if len(content) < 20 {
		score += 20 - len(content)
	}
	return score
}

func isBoundary(content []rune, i int) bool {
	if i <= 0 || i >= len(content) {
		return false
	}
	prev := content[i-1]
	if prev == '_' || prev == '.' || unicode.IsSpace(prev) {
		return true
	}
	// lowerUpper camelCase step
	return unicode.IsLower(prev) && unicode.IsUpper(content[i])
}
