package engine

import (
	"github.com/dshills/glyphed/internal/engine/document"
	"github.com/dshills/glyphed/internal/engine/index"
	"github.com/dshills/glyphed/internal/engine/tokencoll"
)

// wordUnderCaret returns the subword range surrounding the last
// selection's head and its content.
func (e *Engine) wordUnderCaret() (index.Selection, string) {
	s := e.doc.Selection(e.doc.NumSelections() - 1)
	start := e.doc.Navigate(s.Head, document.TargetSubword, document.BackwardCol)
	end := e.doc.Navigate(s.Head, document.TargetSubword, document.ForwardCol)
	word := index.Selection{Head: start, Tail: end}
	return word, e.doc.SelectionContent(word)
}

// OpenAutocomplete starts a session for the word under the caret and
// returns the ranked candidates. An empty result leaves no session
// open.
func (e *Engine) OpenAutocomplete() ([]tokencoll.Match, error) {
	if e.doc.NumSelections() == 0 {
		return nil, ErrNoSelection
	}
	word, input := e.wordUnderCaret()
	matches := e.tokens.Matches(input, e.doc.Line(word.Head.Row), word.Head.Row)
	e.session.active = len(matches) > 0
	return matches, nil
}

// AutocompleteActive reports whether a session is open.
func (e *Engine) AutocompleteActive() bool { return e.session.active }

// AutocompleteMatches re-queries the index for the word under the
// caret, letting the host refresh an open popup as the user types.
func (e *Engine) AutocompleteMatches() []tokencoll.Match {
	if !e.session.active || e.doc.NumSelections() == 0 {
		return nil
	}
	word, input := e.wordUnderCaret()
	return e.tokens.Matches(input, e.doc.Line(word.Head.Row), word.Head.Row)
}

// CloseAutocomplete ends the session. A non-empty textToInsert
// replaces the word under the caret with the accepted token.
func (e *Engine) CloseAutocomplete(textToInsert string) error {
	if !e.session.active {
		return ErrNoAutocomplete
	}
	e.session.active = false
	if textToInsert == "" {
		return nil
	}
	if e.doc.NumSelections() == 0 {
		return ErrNoSelection
	}
	word, _ := e.wordUnderCaret()
	e.doc.SetSelection(e.doc.NumSelections()-1, word)
	return e.Insert(textToInsert)
}
