package engine

import (
	"github.com/dshills/glyphed/internal/engine/document"
	"github.com/dshills/glyphed/internal/engine/index"
	"github.com/dshills/glyphed/internal/event"
)

// closurePairs maps each opening bracket or quote to its closer.
var closurePairs = map[rune]rune{
	'(': ')',
	'{': '}',
	'[': ']',
	'"': '"',
}

func isLeftClosure(ch rune) bool {
	_, ok := closurePairs[ch]
	return ok
}

func isRightClosure(ch rune) bool {
	for _, close := range closurePairs {
		if close == ch {
			return true
		}
	}
	return false
}

func isMatchingClosure(left, right rune) bool {
	return closurePairs[left] == right && isLeftClosure(left)
}

// Move applies one navigation step to every selection. With extend
// set only the head moves, stretching the selection.
func (e *Engine) Move(target document.Target, direction document.Direction, extend bool) {
	part := document.PartBoth
	if extend {
		part = document.PartHead
	}
	e.doc.NavigateSelections(target, direction, part)
}

// Insert performs one transaction per selection, all coalescing into
// the same undo group. Each callback repositions its own selection:
// a reverse reciprocal leaves a caret after the inserted content, a
// forward one restores the full span on undo.
func (e *Engine) Insert(content string) error {
	if e.doc.NumSelections() == 0 {
		return ErrNoSelection
	}
	for n := 0; n < e.doc.NumSelections(); n++ {
		tx := document.Transaction{
			Selection: e.doc.Selection(n),
			Content:   content,
		}
		slot := n
		callback := func(r document.Transaction) {
			if slot >= e.doc.NumSelections() {
				return
			}
			switch r.Direction {
			case document.TxForward:
				e.doc.SetSelection(slot, r.Selection)
			case document.TxReverse:
				e.doc.SetSelection(slot, index.Selection{Head: r.Selection.Tail, Tail: r.Selection.Tail})
			}
		}
		if err := e.undo.Perform(tx, callback); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes one target unit in the given direction. A singular
// caret sitting between a matching bracket or quote pair removes both
// characters at once.
func (e *Engine) Delete(target document.Target, direction document.Direction) error {
	if e.doc.NumSelections() == 0 {
		return ErrNoSelection
	}
	s := e.doc.Selection(e.doc.NumSelections() - 1)

	left := e.doc.CharacterAt(s.Head.Translated(0, -1))
	right := e.doc.CharacterAt(s.Head)
	if s.IsSingular() && isMatchingClosure(left, right) {
		e.doc.NavigateSelections(document.TargetCharacter, document.BackwardCol, document.PartTail)
		e.doc.NavigateSelections(document.TargetCharacter, document.ForwardCol, document.PartHead)
		return e.Insert("")
	}

	if s.IsSingular() {
		e.doc.NavigateSelections(target, direction, document.PartHead)
	}
	return e.Insert("")
}

// AutoClose inserts a bracket or quote pair and leaves the caret
// between the two characters. Non-closure characters insert
// literally.
func (e *Engine) AutoClose(ch rune) error {
	close, ok := closurePairs[ch]
	if !ok {
		return e.Insert(string(ch))
	}
	if err := e.Insert(string(ch) + string(close)); err != nil {
		return err
	}
	e.doc.NavigateSelections(document.TargetCharacter, document.BackwardCol, document.PartBoth)
	return nil
}

// SkipIfClosure advances past ch when it is the very next character,
// avoiding doubled closers after an AutoClose; otherwise it inserts
// ch literally.
func (e *Engine) SkipIfClosure(ch rune) error {
	if isRightClosure(ch) && e.doc.NumSelections() > 0 {
		s := e.doc.Selection(0)
		if e.doc.CharacterAt(s.Head) == ch {
			e.doc.NavigateSelections(document.TargetCharacter, document.ForwardCol, document.PartBoth)
			return nil
		}
	}
	return e.Insert(string(ch))
}

// DuplicateCaret appends a new singular selection one row away from
// the last one.
func (e *Engine) DuplicateCaret(direction document.Direction) error {
	if e.doc.NumSelections() == 0 {
		return ErrNoSelection
	}
	last := e.doc.Selection(e.doc.NumSelections() - 1)
	p := e.doc.Navigate(last.Head, document.TargetCharacter, direction)
	e.doc.AddSelection(index.Selection{Head: p, Tail: p})
	return nil
}

// SelectNextMatch searches forward for the last selection's content
// and adds the next occurrence as a new selection.
func (e *Engine) SelectNextMatch() bool {
	if e.doc.NumSelections() == 0 {
		return false
	}
	last := e.doc.Selection(e.doc.NumSelections() - 1).Oriented()
	if last.IsSingular() {
		return false
	}
	needle := e.doc.SelectionContent(last)
	found := e.doc.Search(last.Tail, needle)
	if found.IsSingular() {
		return false
	}
	e.doc.AddSelection(found)
	return true
}

// CollapseSelections makes every selection singular; when all are
// already singular only the last caret survives.
func (e *Engine) CollapseSelections() {
	sels := e.doc.Selections()
	collapsed := false
	for i, s := range sels {
		if !s.IsSingular() {
			sels[i] = index.Selection{Head: s.Head, Tail: s.Head, Token: s.Token}
			collapsed = true
		}
	}
	if collapsed {
		e.doc.SetSelections(sels)
		return
	}
	if len(sels) > 1 {
		e.doc.SetSelections([]index.Selection{sels[len(sels)-1]})
	}
}

// ExpandSelections grows every selection by one target unit on both
// ends.
func (e *Engine) ExpandSelections(target document.Target) {
	e.doc.NavigateSelections(target, document.BackwardCol, document.PartTail)
	e.doc.NavigateSelections(target, document.ForwardCol, document.PartHead)
}

// FoldToggle folds or unfolds the range starting at row.
func (e *Engine) FoldToggle(row int) bool {
	if !e.doc.Folds().ToggleFold(row) {
		return false
	}
	e.doc.RebuildRowPositions()
	e.bus.Publish(event.TopicFold, row)
	return true
}

// Undo reverses the most recent undo group.
func (e *Engine) Undo() error { return e.undo.Undo() }

// Redo replays the most recently undone group.
func (e *Engine) Redo() error { return e.undo.Redo() }

// CanUndo reports whether an undo group is available.
func (e *Engine) CanUndo() bool { return e.undo.CanUndo() }

// CanRedo reports whether a redo group is available.
func (e *Engine) CanRedo() bool { return e.undo.CanRedo() }

// MatchingBracket returns the position of the bracket matching the
// character at p, walking forward from an opener or backward from a
// closer while tracking nesting depth.
func (e *Engine) MatchingBracket(p index.Position) (index.Position, bool) {
	const opens = "([{"
	const closes = ")]}"

	c := e.doc.CharacterAt(p)
	var match rune
	forward := true
	switch {
	case c == '(' || c == '[' || c == '{':
		match = closurePairs[c]
	case c == ')' || c == ']' || c == '}':
		forward = false
		for open, close := range closurePairs {
			if close == c && open != '"' {
				match = open
			}
		}
	default:
		return index.Position{}, false
	}

	it := e.doc.NewIterator(p)
	depth := 0
	if forward {
		for {
			ch, ok := it.Next()
			if !ok {
				return index.Position{}, false
			}
			switch ch {
			case c:
				depth++
			case match:
				depth--
				if depth == 0 {
					return it.Position().Translated(0, -1), true
				}
			}
		}
	}
	// Walk backward from the closer.
	depth = 0
	it.SetPosition(p.Translated(0, 1))
	for {
		ch, ok := it.Prev()
		if !ok {
			return index.Position{}, false
		}
		switch ch {
		case c:
			depth++
		case match:
			depth--
			if depth == 0 {
				return it.Position(), true
			}
		}
	}
}
