package document

import (
	"testing"

	"github.com/dshills/glyphed/internal/engine/fold"
	"github.com/dshills/glyphed/internal/engine/glyph"
	"github.com/dshills/glyphed/internal/engine/index"
	"github.com/dshills/glyphed/internal/event"
)

func newTestDoc(content string) *Document {
	return New(content, glyph.DefaultFont(), event.NewBus())
}

func caretTx(p index.Position, content string) Transaction {
	return Transaction{Selection: index.NewSelection(p, p), Content: content}
}

func TestFulfillInsertSingleLine(t *testing.T) {
	d := newTestDoc("the quick fox")
	r, err := d.Fulfill(caretTx(index.Pos(0, 4), "very "))
	if err != nil {
		t.Fatalf("Fulfill: %v", err)
	}
	if d.Store().Text() != "the very quick fox" {
		t.Errorf("text = %q", d.Store().Text())
	}
	if r.Content != "" {
		t.Errorf("reciprocal content = %q, want empty", r.Content)
	}
	want := index.NewSelection(index.Pos(0, 4), index.Pos(0, 9))
	if r.Selection.Head != want.Head || r.Selection.Tail != want.Tail {
		t.Errorf("reciprocal selection = %v", r.Selection)
	}
	if r.Direction != TxReverse {
		t.Error("reciprocal of a forward transaction must travel in reverse")
	}
}

func TestFulfillReplaceAcrossLines(t *testing.T) {
	d := newTestDoc("alpha\nbeta\ngamma")
	tx := Transaction{
		Selection: index.NewSelection(index.Pos(0, 2), index.Pos(2, 3)),
		Content:   "X\nY",
	}
	r, err := d.Fulfill(tx)
	if err != nil {
		t.Fatalf("Fulfill: %v", err)
	}
	if d.Store().Text() != "alX\nYma" {
		t.Errorf("text = %q", d.Store().Text())
	}
	if r.Content != "pha\nbeta\ngam" {
		t.Errorf("reciprocal content = %q", r.Content)
	}
}

func TestFulfillBackspaceMarker(t *testing.T) {
	d := newTestDoc("ab")
	r, err := d.Fulfill(caretTx(index.Pos(0, 1), string(DeletePrevChar)))
	if err != nil {
		t.Fatalf("Fulfill: %v", err)
	}
	if d.Store().Text() != "b" {
		t.Errorf("text = %q, want b", d.Store().Text())
	}
	if r.Content != "a" {
		t.Errorf("reciprocal content = %q, want a", r.Content)
	}
	if !r.Selection.IsSingular() || r.Selection.Head != index.Pos(0, 0) {
		t.Errorf("reciprocal selection = %v", r.Selection)
	}
}

func TestFulfillBackspaceJoinsLines(t *testing.T) {
	d := newTestDoc("ab\ncd")
	if _, err := d.Fulfill(caretTx(index.Pos(1, 0), string(DeletePrevChar))); err != nil {
		t.Fatalf("Fulfill: %v", err)
	}
	if d.Store().Text() != "abcd" {
		t.Errorf("text = %q, want abcd", d.Store().Text())
	}
	if d.NumRows() != 1 {
		t.Errorf("rows = %d, want 1", d.NumRows())
	}
}

func TestFulfillForwardDeleteMarker(t *testing.T) {
	d := newTestDoc("ab")
	r, err := d.Fulfill(caretTx(index.Pos(0, 0), string(DeleteNextChar)))
	if err != nil {
		t.Fatalf("Fulfill: %v", err)
	}
	if d.Store().Text() != "b" {
		t.Errorf("text = %q, want b", d.Store().Text())
	}
	if r.Content != "a" {
		t.Errorf("reciprocal content = %q", r.Content)
	}
}

func TestFulfillDeleteMarkerWithSpanRemovesSpanOnly(t *testing.T) {
	// A non-singular selection ignores the marker's extra step.
	d := newTestDoc("abcdef")
	tx := Transaction{
		Selection: index.NewSelection(index.Pos(0, 1), index.Pos(0, 4)),
		Content:   string(DeletePrevChar),
	}
	if _, err := d.Fulfill(tx); err != nil {
		t.Fatalf("Fulfill: %v", err)
	}
	if d.Store().Text() != "aef" {
		t.Errorf("text = %q, want aef", d.Store().Text())
	}
}

func TestFulfillOutOfRangeLeavesStateUntouched(t *testing.T) {
	d := newTestDoc("ab\ncd")
	d.SetSelections([]index.Selection{index.Caret(index.Pos(1, 1))})
	rev := d.Store().Revision()

	_, err := d.Fulfill(caretTx(index.Pos(9, 0), "x"))
	if err != ErrInvalidTransaction {
		t.Fatalf("err = %v, want ErrInvalidTransaction", err)
	}
	if d.Store().Text() != "ab\ncd" {
		t.Error("failed transaction must not mutate text")
	}
	if d.Store().Revision() != rev {
		t.Error("failed transaction must not bump the revision")
	}
	if d.Selection(0) != index.Caret(index.Pos(1, 1)) {
		t.Error("failed transaction must not move selections")
	}
}

func TestFulfillAdjustsOtherSelections(t *testing.T) {
	d := newTestDoc("hello\nworld")
	d.SetSelections([]index.Selection{
		index.Caret(index.Pos(0, 0)),
		index.Caret(index.Pos(1, 2)),
	})

	if _, err := d.Fulfill(caretTx(index.Pos(0, 0), "X\n")); err != nil {
		t.Fatalf("Fulfill: %v", err)
	}
	if d.Store().Text() != "X\nhello\nworld" {
		t.Fatalf("text = %q", d.Store().Text())
	}
	// The caret at the insertion point rides past the new content; the
	// caret below shifts down a row.
	if d.Selection(0) != index.Caret(index.Pos(1, 0)) {
		t.Errorf("selection 0 = %v, want caret 1:0", d.Selection(0))
	}
	if d.Selection(1) != index.Caret(index.Pos(2, 2)) {
		t.Errorf("selection 1 = %v, want caret 2:2", d.Selection(1))
	}
}

func TestFulfillCollapsesSelectionInsideRemovedSpan(t *testing.T) {
	d := newTestDoc("abcdef")
	d.SetSelections([]index.Selection{index.Caret(index.Pos(0, 3))})

	tx := Transaction{
		Selection: index.NewSelection(index.Pos(0, 1), index.Pos(0, 5)),
		Content:   "",
	}
	if _, err := d.Fulfill(tx); err != nil {
		t.Fatalf("Fulfill: %v", err)
	}
	if d.Store().Text() != "af" {
		t.Errorf("text = %q, want af", d.Store().Text())
	}
	if d.Selection(0) != index.Caret(index.Pos(0, 1)) {
		t.Errorf("selection = %v, want caret 0:1", d.Selection(0))
	}
}

func TestFulfillReciprocalRestoresText(t *testing.T) {
	tests := []struct {
		name string
		text string
		tx   Transaction
	}{
		{"insert", "one\ntwo", caretTx(index.Pos(1, 0), "zero\n")},
		{"replace span", "one\ntwo\nthree",
			Transaction{Selection: index.NewSelection(index.Pos(0, 1), index.Pos(2, 2)), Content: "!"}},
		{"delete line", "one\ntwo",
			Transaction{Selection: index.NewSelection(index.Pos(0, 0), index.Pos(1, 0)), Content: ""}},
		{"backspace", "one", caretTx(index.Pos(0, 2), string(DeletePrevChar))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDoc(tt.text)
			r, err := d.Fulfill(tt.tx)
			if err != nil {
				t.Fatalf("Fulfill: %v", err)
			}
			r2, err := d.Fulfill(r)
			if err != nil {
				t.Fatalf("Fulfill(reciprocal): %v", err)
			}
			if d.Store().Text() != tt.text {
				t.Errorf("text after round trip = %q, want %q", d.Store().Text(), tt.text)
			}
			if r2.Direction != TxForward {
				t.Error("reciprocal of a reverse transaction must travel forward")
			}
		})
	}
}

func TestFulfillSequenceUndoneInReverse(t *testing.T) {
	d := newTestDoc("base")
	txs := []Transaction{
		caretTx(index.Pos(0, 4), " one"),
		caretTx(index.Pos(0, 0), "zero "),
		{Selection: index.NewSelection(index.Pos(0, 5), index.Pos(0, 9)), Content: "BASE\nnew"},
	}
	var recips []Transaction
	for _, tx := range txs {
		r, err := d.Fulfill(tx)
		if err != nil {
			t.Fatalf("Fulfill: %v", err)
		}
		recips = append(recips, r)
	}
	for i := len(recips) - 1; i >= 0; i-- {
		if _, err := d.Fulfill(recips[i]); err != nil {
			t.Fatalf("Fulfill(reciprocal %d): %v", i, err)
		}
	}
	if d.Store().Text() != "base" {
		t.Errorf("text = %q, want base", d.Store().Text())
	}
}

func TestFulfillShiftsFoldAnchors(t *testing.T) {
	d := newTestDoc("a\nb\nc\nd\ne")
	d.Folds().SetRanges([]fold.RowRange{{Start: 2, End: 4}})

	// Inserting a line above the range moves it down.
	if _, err := d.Fulfill(caretTx(index.Pos(0, 0), "new\n")); err != nil {
		t.Fatalf("Fulfill: %v", err)
	}
	r := d.Folds().Roots()[0]
	if r.Start != 3 || r.End != 5 {
		t.Errorf("range = [%d,%d), want [3,5)", r.Start, r.End)
	}

	// Removing it moves the range back up.
	del := Transaction{
		Selection: index.NewSelection(index.Pos(0, 0), index.Pos(1, 0)),
		Content:   "",
	}
	if _, err := d.Fulfill(del); err != nil {
		t.Fatalf("Fulfill: %v", err)
	}
	r = d.Folds().Roots()[0]
	if r.Start != 2 || r.End != 4 {
		t.Errorf("range = [%d,%d), want [2,4)", r.Start, r.End)
	}
}
