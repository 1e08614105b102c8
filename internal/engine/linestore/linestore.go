package linestore

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/glyphed/internal/engine/index"
)

// Errors returned by store operations.
var (
	ErrRowOutOfRange = errors.New("row out of range")
)

// RevisionID uniquely identifies a store state at a point in time.
type RevisionID string

// NewRevisionID mints a fresh revision identifier.
func NewRevisionID() RevisionID {
	return RevisionID(uuid.New().String())
}

// Store is an ordered sequence of logical lines.
type Store struct {
	lines    []string
	revision RevisionID
}

// New creates an empty store holding a single empty line.
func New() *Store {
	return &Store{lines: []string{""}, revision: NewRevisionID()}
}

// FromString creates a store from content, splitting on '\n' and
// discarding carriage returns.
func FromString(content string) *Store {
	s := New()
	s.ReplaceAll(content)
	return s
}

// NumRows returns the number of logical lines. It is always >= 1.
func (s *Store) NumRows() int {
	return len(s.lines)
}

// Line returns the text of row r without a terminator. Out-of-range
// rows return the empty string.
func (s *Store) Line(r int) string {
	if r < 0 || r >= len(s.lines) {
		return ""
	}
	return s.lines[r]
}

// NumColumns returns the character count of row r, or 0 when r is out
// of range.
func (s *Store) NumColumns(r int) int {
	if r < 0 || r >= len(s.lines) {
		return 0
	}
	return len([]rune(s.lines[r]))
}

// Revision returns the current revision ID.
func (s *Store) Revision() RevisionID {
	return s.revision
}

// End returns the one-past-the-end sentinel position.
func (s *Store) End() index.Position {
	return index.Position{Row: len(s.lines), Col: 0}
}

// InRange reports whether p references a valid document position. The
// column may equal the line length; the end sentinel is not in range.
func (s *Store) InRange(p index.Position) bool {
	if p.Row < 0 || p.Row >= len(s.lines) {
		return false
	}
	return p.Col >= 0 && p.Col <= s.NumColumns(p.Row)
}

// Clamp returns p limited to the nearest valid position.
func (s *Store) Clamp(p index.Position) index.Position {
	if p.Row < 0 {
		return index.Position{}
	}
	if p.Row >= len(s.lines) {
		r := len(s.lines) - 1
		return index.Position{Row: r, Col: s.NumColumns(r)}
	}
	if p.Col < 0 {
		p.Col = 0
	} else if n := s.NumColumns(p.Row); p.Col > n {
		p.Col = n
	}
	return p
}

// ReplaceAll replaces the whole content, splitting on '\n'.
func (s *Store) ReplaceAll(content string) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	s.lines = strings.Split(content, "\n")
	s.revision = NewRevisionID()
}

// CharacterAt returns the character at p. The position at a line end
// and the end sentinel both read as '\n'; invalid positions read as 0.
func (s *Store) CharacterAt(p index.Position) rune {
	if p.Row < 0 || p.Col < 0 {
		return 0
	}
	if p.Row >= len(s.lines) {
		if p == s.End() {
			return '\n'
		}
		return 0
	}
	runes := []rune(s.lines[p.Row])
	if p.Col >= len(runes) {
		return '\n'
	}
	return runes[p.Col]
}

// TextBetween returns the content spanning [a, b) with '\n' separators
// for cross-line spans. Both positions are clamped to the document.
func (s *Store) TextBetween(a, b index.Position) string {
	if b.Before(a) {
		a, b = b, a
	}
	a = s.Clamp(a)
	b = s.Clamp(b)

	if a.Row == b.Row {
		runes := []rune(s.lines[a.Row])
		return string(runes[a.Col:b.Col])
	}

	var sb strings.Builder
	head := []rune(s.lines[a.Row])
	sb.WriteString(string(head[a.Col:]))
	sb.WriteByte('\n')
	for r := a.Row + 1; r < b.Row; r++ {
		sb.WriteString(s.lines[r])
		sb.WriteByte('\n')
	}
	tail := []rune(s.lines[b.Row])
	sb.WriteString(string(tail[:b.Col]))
	return sb.String()
}

// Splice removes rows [startRow, endRow] inclusive and inserts the
// given lines at startRow. An empty replacement inserts one empty line
// so the store never drops below one row. Splice is the document
// fulfill primitive; no other caller may resize the line vector.
func (s *Store) Splice(startRow, endRow int, replacement []string) error {
	if startRow < 0 || endRow < startRow || endRow >= len(s.lines) {
		return ErrRowOutOfRange
	}
	if len(replacement) == 0 {
		replacement = []string{""}
	}
	out := make([]string, 0, len(s.lines)-(endRow-startRow+1)+len(replacement))
	out = append(out, s.lines[:startRow]...)
	out = append(out, replacement...)
	out = append(out, s.lines[endRow+1:]...)
	s.lines = out
	s.revision = NewRevisionID()
	return nil
}

// Text returns the full content joined with '\n'.
func (s *Store) Text() string {
	return strings.Join(s.lines, "\n")
}

// Lines returns a copy of the line vector. Intended for snapshot
// readers such as token providers.
func (s *Store) Lines() []string {
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}
