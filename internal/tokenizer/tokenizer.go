package tokenizer

import (
	"github.com/dshills/glyphed/internal/engine/document"
	"github.com/dshills/glyphed/internal/engine/index"
)

// Token tags emitted by the built-in lexer. Plain is the zero tag a
// cleared glyph entry carries.
const (
	TokenPlain = iota
	TokenKeyword
	TokenIdentifier
	TokenNumber
	TokenString
	TokenComment
	TokenPunctuation
	// TokenDeactivated overrides every tag on a deactivated line.
	TokenDeactivated
)

// Record marks the end of one token span.
type Record struct {
	SpanEnd index.Position
	Token   int
}

// CharIterator reads document characters forward. The document
// package's Iterator satisfies it.
type CharIterator interface {
	Position() index.Position
	Next() (rune, bool)
	Peek() rune
}

// Tokenizer emits records covering the half-open row range, reading
// characters from an iterator positioned at column 0 of startRow.
// Records must arrive in document order and cover the whole range.
type Tokenizer interface {
	Tokenize(it CharIterator, startRow, endRowExcl int) []Record
}

// Zones converts an ordered record list into selection zones. Each
// zone's token tag is the record's token; spans start where the
// previous record ended.
func Zones(records []Record, start index.Position) []index.Selection {
	zones := make([]index.Selection, 0, len(records))
	prev := start
	for _, rec := range records {
		zones = append(zones, index.Selection{
			Head:  prev,
			Tail:  rec.SpanEnd,
			Token: rec.Token,
		})
		prev = rec.SpanEnd
	}
	return zones
}

// Apply retokenizes rows [startRow, endRowExcl) of doc and stamps the
// resulting zones onto the glyph cache. Rows listed in deactivated
// are stamped with TokenDeactivated instead of their lexical tags. A
// panic inside the tokenizer aborts the pass and the rows keep their
// previous tags.
func Apply(doc *document.Document, t Tokenizer, startRow, endRowExcl int, deactivated map[int]bool) {
	if t == nil {
		return
	}
	if startRow < 0 {
		startRow = 0
	}
	if endRowExcl > doc.NumRows() {
		endRowExcl = doc.NumRows()
	}
	if startRow >= endRowExcl {
		return
	}

	start := index.Position{Row: startRow, Col: 0}
	var records []Record

	func() {
		defer func() {
			if recover() != nil {
				records = nil
			}
		}()
		it := doc.NewIterator(start)
		records = t.Tokenize(it, startRow, endRowExcl)
	}()

	if records == nil {
		return
	}

	zones := Zones(records, start)
	for r := startRow; r < endRowExcl; r++ {
		if deactivated[r] {
			zones = append(zones, index.Selection{
				Head:  index.Position{Row: r, Col: 0},
				Tail:  index.Position{Row: r, Col: doc.NumColumns(r)},
				Token: TokenDeactivated,
			})
		}
	}

	doc.ClearTokens(startRow, endRowExcl)
	doc.ApplyTokens(startRow, endRowExcl, zones)
}
