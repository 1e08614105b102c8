package tokenizer

import (
	"strings"
	"unicode"

	"github.com/dshills/glyphed/internal/engine/index"
)

// defaultKeywords is the built-in keyword set for C-family sources.
var defaultKeywords = []string{
	"break", "case", "const", "continue", "default", "do", "else",
	"enum", "extern", "false", "for", "func", "goto", "if", "import",
	"int", "nil", "null", "package", "return", "static", "struct",
	"switch", "true", "type", "var", "void", "while",
}

// CStyle is a line-scanning lexer for C-family syntax. It recognizes
// line and block comments, string and character literals, numbers,
// keywords and identifiers. Block comments may span rows within one
// tokenize pass.
type CStyle struct {
	keywords map[string]bool
}

// NewCStyle returns a lexer with the default keyword set.
func NewCStyle() *CStyle {
	l := &CStyle{keywords: make(map[string]bool, len(defaultKeywords))}
	for _, kw := range defaultKeywords {
		l.keywords[kw] = true
	}
	return l
}

// AddKeywords extends the keyword set.
func (l *CStyle) AddKeywords(keywords ...string) *CStyle {
	for _, kw := range keywords {
		l.keywords[kw] = true
	}
	return l
}

// Tokenize scans rows [startRow, endRowExcl) and returns the token
// records covering them.
func (l *CStyle) Tokenize(it CharIterator, startRow, endRowExcl int) []Record {
	s := scan{lexer: l, it: it, prev: it.Position(), limit: endRowExcl}
	s.run()
	return s.records
}

type scan struct {
	lexer   *CStyle
	it      CharIterator
	prev    index.Position
	limit   int
	records []Record
}

// emit closes the span from the previous record end to the current
// position with the given tag.
func (s *scan) emit(token int) {
	p := s.it.Position()
	if p == s.prev {
		return
	}
	s.records = append(s.records, Record{SpanEnd: p, Token: token})
	s.prev = p
}

func (s *scan) done() bool {
	return s.it.Position().Row >= s.limit
}

// advance consumes one character, reporting false at the document end.
func (s *scan) advance() bool {
	_, ok := s.it.Next()
	return ok
}

func (s *scan) run() {
	for !s.done() {
		before := s.it.Position()
		c := s.it.Peek()
		switch {
		case c == '\n' || c == ' ' || c == '\t':
			s.whitespace()
		case c == '/':
			s.slash()
		case c == '"' || c == '\'':
			s.literal(c)
		case unicode.IsDigit(c):
			s.number()
		case unicode.IsLetter(c) || c == '_':
			s.word()
		default:
			s.advance()
			s.emit(TokenPunctuation)
		}
		if s.it.Position() == before {
			return
		}
	}
}

func (s *scan) whitespace() {
	for !s.done() {
		c := s.it.Peek()
		if c != '\n' && c != ' ' && c != '\t' {
			break
		}
		if !s.advance() {
			break
		}
	}
	s.emit(TokenPlain)
}

// slash disambiguates division, line comments and block comments.
func (s *scan) slash() {
	if !s.advance() {
		s.emit(TokenPunctuation)
		return
	}
	switch s.it.Peek() {
	case '/':
		for !s.done() && s.it.Peek() != '\n' {
			if !s.advance() {
				break
			}
		}
		s.emit(TokenComment)
	case '*':
		s.advance()
		var last rune
		for !s.done() {
			c, ok := s.it.Next()
			if !ok {
				break
			}
			if last == '*' && c == '/' {
				break
			}
			last = c
		}
		s.emit(TokenComment)
	default:
		s.emit(TokenPunctuation)
	}
}

// literal consumes a quoted string or character literal, honoring
// backslash escapes and stopping at the end of the line.
func (s *scan) literal(quote rune) {
	s.advance()
	escaped := false
	for !s.done() {
		c := s.it.Peek()
		if c == '\n' {
			break
		}
		if !s.advance() {
			break
		}
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == quote {
			break
		}
	}
	s.emit(TokenString)
}

func (s *scan) number() {
	for !s.done() {
		c := s.it.Peek()
		if !unicode.IsDigit(c) && !unicode.IsLetter(c) && c != '.' {
			break
		}
		if !s.advance() {
			break
		}
	}
	s.emit(TokenNumber)
}

func (s *scan) word() {
	var b strings.Builder
	for !s.done() {
		c := s.it.Peek()
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			break
		}
		if !s.advance() {
			break
		}
		b.WriteRune(c)
	}
	if s.lexer.keywords[b.String()] {
		s.emit(TokenKeyword)
	} else {
		s.emit(TokenIdentifier)
	}
}
