package tokencoll

import (
	"strings"
	"sync"
	"unicode"
)

// Provider contributes tokens during a rebuild. AddTokens runs on
// the worker goroutine and must not read editor state directly; it
// appends to dst and returns the extended slice.
type Provider interface {
	AddTokens(dst []Token) []Token
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(dst []Token) []Token

func (f ProviderFunc) AddTokens(dst []Token) []Token { return f(dst) }

// minScanWordLength filters out short identifiers the scan provider
// would otherwise flood the index with.
const minScanWordLength = 3

// LineScanProvider derives tokens from the identifiers appearing in
// a line snapshot. The editor thread refreshes the snapshot with
// SetLines before signaling a rebuild; the worker only ever reads
// the stored copy.
type LineScanProvider struct {
	mu       sync.Mutex
	lines    []string
	priority int
}

// NewLineScanProvider returns a provider emitting tokens at the
// given priority.
func NewLineScanProvider(priority int) *LineScanProvider {
	return &LineScanProvider{priority: priority}
}

// SetLines replaces the snapshot the next rebuild scans.
func (p *LineScanProvider) SetLines(lines []string) {
	p.mu.Lock()
	p.lines = lines
	p.mu.Unlock()
}

// AddTokens scans the snapshot for identifier-shaped words and emits
// each distinct one once.
func (p *LineScanProvider) AddTokens(dst []Token) []Token {
	p.mu.Lock()
	lines := p.lines
	p.mu.Unlock()

	seen := make(map[string]bool)
	for _, line := range lines {
		for _, word := range scanWords(line) {
			if len(word) < minScanWordLength || seen[word] {
				continue
			}
			seen[word] = true
			dst = append(dst, Token{Content: word, Priority: p.priority})
		}
	}
	return dst
}

// scanWords splits a line into identifier-shaped words.
func scanWords(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
