package tokenizer

import (
	"testing"

	"github.com/dshills/glyphed/internal/engine/document"
	"github.com/dshills/glyphed/internal/engine/glyph"
	"github.com/dshills/glyphed/internal/engine/index"
	"github.com/dshills/glyphed/internal/event"
)

func newTestDoc(content string) *document.Document {
	return document.New(content, glyph.DefaultFont(), event.NewBus())
}

func tagAt(t *testing.T, d *document.Document, p index.Position) int {
	t.Helper()
	e := d.Glyphs().Peek(p.Row)
	if e == nil {
		t.Fatalf("row %d has no entry", p.Row)
	}
	return e.Token(p.Col, -1)
}

func TestCStyleTagging(t *testing.T) {
	d := newTestDoc(`return "hi\"x" 42 // done`)
	Apply(d, NewCStyle(), 0, 1, nil)

	tests := []struct {
		col  int
		want int
	}{
		{0, TokenKeyword},
		{5, TokenKeyword},
		{6, TokenPlain},
		{7, TokenString},
		{11, TokenString}, // escaped quote stays inside the literal
		{13, TokenString},
		{14, TokenPlain},
		{15, TokenNumber},
		{16, TokenNumber},
		{18, TokenComment},
		{24, TokenComment},
	}
	for _, tt := range tests {
		if got := tagAt(t, d, index.Pos(0, tt.col)); got != tt.want {
			t.Errorf("col %d tag = %d, want %d", tt.col, got, tt.want)
		}
	}
}

func TestCStyleIdentifiersAndPunctuation(t *testing.T) {
	d := newTestDoc("count += 1")
	Apply(d, NewCStyle(), 0, 1, nil)

	if got := tagAt(t, d, index.Pos(0, 0)); got != TokenIdentifier {
		t.Errorf("identifier tag = %d", got)
	}
	if got := tagAt(t, d, index.Pos(0, 6)); got != TokenPunctuation {
		t.Errorf("operator tag = %d", got)
	}
	if got := tagAt(t, d, index.Pos(0, 9)); got != TokenNumber {
		t.Errorf("number tag = %d", got)
	}
}

func TestCStyleBlockCommentSpansRows(t *testing.T) {
	d := newTestDoc("a /* x\ny */ b")
	Apply(d, NewCStyle(), 0, 2, nil)

	tests := []struct {
		p    index.Position
		want int
	}{
		{index.Pos(0, 0), TokenIdentifier},
		{index.Pos(0, 2), TokenComment},
		{index.Pos(0, 5), TokenComment},
		{index.Pos(1, 0), TokenComment},
		{index.Pos(1, 3), TokenComment},
		{index.Pos(1, 5), TokenIdentifier},
	}
	for _, tt := range tests {
		if got := tagAt(t, d, tt.p); got != tt.want {
			t.Errorf("tag at %v = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestCStyleDivisionIsPunctuation(t *testing.T) {
	d := newTestDoc("a/b")
	Apply(d, NewCStyle(), 0, 1, nil)
	if got := tagAt(t, d, index.Pos(0, 1)); got != TokenPunctuation {
		t.Errorf("division tag = %d", got)
	}
	if got := tagAt(t, d, index.Pos(0, 2)); got != TokenIdentifier {
		t.Errorf("tag after division = %d", got)
	}
}

func TestAddKeywords(t *testing.T) {
	d := newTestDoc("widget w")
	Apply(d, NewCStyle().AddKeywords("widget"), 0, 1, nil)
	if got := tagAt(t, d, index.Pos(0, 0)); got != TokenKeyword {
		t.Errorf("custom keyword tag = %d", got)
	}
}

func TestApplyDeactivatedRows(t *testing.T) {
	d := newTestDoc("return 1\nreturn 2")
	Apply(d, NewCStyle(), 0, 2, map[int]bool{1: true})

	if got := tagAt(t, d, index.Pos(0, 0)); got != TokenKeyword {
		t.Errorf("active row tag = %d", got)
	}
	for _, col := range []int{0, 4, 7} {
		if got := tagAt(t, d, index.Pos(1, col)); got != TokenDeactivated {
			t.Errorf("deactivated row col %d tag = %d", col, got)
		}
	}
}

type panicTokenizer struct{}

func (panicTokenizer) Tokenize(CharIterator, int, int) []Record {
	panic("lexer bug")
}

func TestApplyRecoversFromPanicKeepingTags(t *testing.T) {
	d := newTestDoc("return x")
	Apply(d, NewCStyle(), 0, 1, nil)
	if got := tagAt(t, d, index.Pos(0, 0)); got != TokenKeyword {
		t.Fatalf("setup tag = %d", got)
	}

	Apply(d, panicTokenizer{}, 0, 1, nil)
	if got := tagAt(t, d, index.Pos(0, 0)); got != TokenKeyword {
		t.Errorf("tag after failed pass = %d, want previous tags kept", got)
	}
}

func TestApplyClampsRowRange(t *testing.T) {
	d := newTestDoc("return x")
	Apply(d, NewCStyle(), -5, 99, nil)
	if got := tagAt(t, d, index.Pos(0, 0)); got != TokenKeyword {
		t.Errorf("tag = %d", got)
	}
	// An inverted range is a no-op.
	Apply(d, NewCStyle(), 3, 1, nil)
}

func TestZones(t *testing.T) {
	records := []Record{
		{SpanEnd: index.Pos(0, 3), Token: TokenKeyword},
		{SpanEnd: index.Pos(1, 2), Token: TokenPlain},
	}
	zones := Zones(records, index.Pos(0, 0))
	if len(zones) != 2 {
		t.Fatalf("zones = %d, want 2", len(zones))
	}
	if zones[0].Head != index.Pos(0, 0) || zones[0].Tail != index.Pos(0, 3) || zones[0].Token != TokenKeyword {
		t.Errorf("zone 0 = %+v", zones[0])
	}
	if zones[1].Head != index.Pos(0, 3) || zones[1].Tail != index.Pos(1, 2) {
		t.Errorf("zone 1 = %+v", zones[1])
	}
}
