package main

import (
	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/glyphed"
	"github.com/dshills/glyphed/internal/engine/fold"
	"github.com/dshills/glyphed/internal/engine/index"
	"github.com/dshills/glyphed/internal/tokenizer"
)

// gutterWidth reserves columns for fold markers.
const gutterWidth = 2

// tokenStyles maps lexer tags to terminal styles.
var tokenStyles = map[int]tcell.Style{
	tokenizer.TokenPlain:       tcell.StyleDefault,
	tokenizer.TokenKeyword:     tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true),
	tokenizer.TokenIdentifier:  tcell.StyleDefault,
	tokenizer.TokenNumber:      tcell.StyleDefault.Foreground(tcell.ColorRed),
	tokenizer.TokenString:      tcell.StyleDefault.Foreground(tcell.ColorGreen),
	tokenizer.TokenComment:     tcell.StyleDefault.Foreground(tcell.ColorGray),
	tokenizer.TokenPunctuation: tcell.StyleDefault.Foreground(tcell.ColorYellow),
	tokenizer.TokenDeactivated: tcell.StyleDefault.Foreground(tcell.ColorDarkGray),
}

type ui struct {
	screen  tcell.Screen
	editor  *glyphed.Engine
	reloads <-chan glyphed.Options

	scrollRow int
	quit      bool
}

func newUI(screen tcell.Screen, editor *glyphed.Engine, reloads <-chan glyphed.Options) *ui {
	return &ui{screen: screen, editor: editor, reloads: reloads}
}

func (u *ui) loop() {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	u.draw()
	for !u.quit {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			u.handle(ev)
		case <-u.editor.TokenNotifications():
			// The token index republished; redraw picks up any open
			// autocomplete list.
		case o := <-u.reloads:
			if err := u.editor.SetOptions(o); err != nil {
				log.Warn("rejected reloaded options", "err", err)
			}
		}
		u.draw()
	}
}

func (u *ui) handle(ev tcell.Event) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		if _, isResize := ev.(*tcell.EventResize); isResize {
			u.screen.Sync()
		}
		return
	}

	shift := key.Modifiers()&tcell.ModShift != 0
	alt := key.Modifiers()&tcell.ModAlt != 0

	switch key.Key() {
	case tcell.KeyEscape:
		if u.editor.AutocompleteActive() {
			u.editor.CloseAutocomplete("")
			return
		}
		u.editor.CollapseSelections()
	case tcell.KeyCtrlQ:
		u.quit = true
	case tcell.KeyRight:
		u.editor.Move(glyphed.TargetCharacter, glyphed.ForwardCol, shift)
	case tcell.KeyLeft:
		u.editor.Move(glyphed.TargetCharacter, glyphed.BackwardCol, shift)
	case tcell.KeyDown:
		if alt {
			u.editor.DuplicateCaret(glyphed.ForwardRow)
			return
		}
		u.editor.Move(glyphed.TargetCharacter, glyphed.ForwardRow, shift)
	case tcell.KeyUp:
		if alt {
			u.editor.DuplicateCaret(glyphed.BackwardRow)
			return
		}
		u.editor.Move(glyphed.TargetCharacter, glyphed.BackwardRow, shift)
	case tcell.KeyHome:
		u.editor.Move(glyphed.TargetFirstNonWhitespace, glyphed.BackwardCol, shift)
	case tcell.KeyEnd:
		u.editor.Move(glyphed.TargetLine, glyphed.ForwardCol, shift)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		u.editor.Delete(glyphed.TargetCharacter, glyphed.BackwardCol)
	case tcell.KeyDelete:
		u.editor.Delete(glyphed.TargetCharacter, glyphed.ForwardCol)
	case tcell.KeyEnter:
		u.editor.Insert("\n")
	case tcell.KeyTab:
		u.editor.Insert("\t")
	case tcell.KeyCtrlZ:
		u.editor.Undo()
	case tcell.KeyCtrlY:
		u.editor.Redo()
	case tcell.KeyCtrlD:
		u.editor.SelectNextMatch()
	case tcell.KeyCtrlF:
		u.foldAtCaret()
	case tcell.KeyCtrlSpace:
		u.editor.OpenAutocomplete()
	case tcell.KeyRune:
		u.typeRune(key.Rune())
	}
}

func (u *ui) typeRune(ch rune) {
	switch ch {
	case '"', '(', '{', '[':
		u.editor.AutoClose(ch)
	case ')', '}', ']':
		u.editor.SkipIfClosure(ch)
	default:
		u.editor.Insert(string(ch))
	}
}

func (u *ui) foldAtCaret() {
	doc := u.editor.Document()
	if doc.NumSelections() == 0 {
		return
	}
	u.editor.FoldToggle(doc.Selection(doc.NumSelections() - 1).Head.Row)
}

func (u *ui) draw() {
	u.screen.Clear()
	doc := u.editor.Document()
	_, height := u.screen.Size()

	u.scrollToCaret(height)

	screenRow := 0
	for row := u.scrollRow; row < doc.NumRows() && screenRow < height; row++ {
		if doc.Folds().IsFolded(row) {
			continue
		}
		u.drawGutter(row, screenRow)
		u.drawLine(row, screenRow)
		screenRow++
	}
	u.drawSelections(height)
	u.screen.Show()
}

// scrollToCaret keeps the last caret's row on screen.
func (u *ui) scrollToCaret(height int) {
	doc := u.editor.Document()
	if doc.NumSelections() == 0 {
		return
	}
	caret := doc.Selection(doc.NumSelections() - 1).Head.Row
	if caret < u.scrollRow {
		u.scrollRow = caret
	}
	if caret >= u.scrollRow+height {
		u.scrollRow = caret - height + 1
	}
}

func (u *ui) drawGutter(row, screenRow int) {
	marker := ' '
	switch u.editor.Document().Folds().LineType(row) {
	case fold.LineRangeStartOpen:
		marker = '-'
	case fold.LineRangeStartClosed:
		marker = '+'
	case fold.LineRangeEnd:
		marker = '`'
	case fold.LineBetween:
		marker = '|'
	}
	u.screen.SetContent(0, screenRow, marker, nil, tcell.StyleDefault.Foreground(tcell.ColorGray))
}

func (u *ui) drawLine(row, screenRow int) {
	doc := u.editor.Document()
	for _, g := range doc.GlyphsForRow(row, -1, false) {
		style, ok := tokenStyles[g.Token]
		if !ok {
			style = tcell.StyleDefault
		}
		x := gutterWidth + int(g.Bounds.X/doc.Font().CharWidth)
		u.screen.SetContent(x, screenRow, g.Rune, nil, style)
	}
}

func (u *ui) drawSelections(height int) {
	doc := u.editor.Document()
	for _, s := range doc.Selections() {
		u.markSelection(s, height)
	}
}

// markSelection reverses the cells a selection covers and shows the
// caret cell.
func (u *ui) markSelection(s index.Selection, height int) {
	doc := u.editor.Document()
	o := s.Oriented()
	for row := o.Head.Row; row <= o.Tail.Row && row < doc.NumRows(); row++ {
		if doc.Folds().IsFolded(row) {
			continue
		}
		screenRow := u.screenRowFor(row)
		if screenRow < 0 || screenRow >= height {
			continue
		}
		start, end := o.ColumnRangeOnRow(row, doc.NumColumns(row))
		for c := start; c < end; c++ {
			u.invertCell(gutterWidth+c, screenRow)
		}
	}
	caret := s.Head
	if screenRow := u.screenRowFor(caret.Row); screenRow >= 0 && screenRow < height {
		u.screen.ShowCursor(gutterWidth+caret.Col, screenRow)
	}
}

// screenRowFor maps a document row to a screen row, accounting for
// scroll and folded rows; -1 when off screen.
func (u *ui) screenRowFor(row int) int {
	if row < u.scrollRow {
		return -1
	}
	doc := u.editor.Document()
	screenRow := 0
	for r := u.scrollRow; r < row; r++ {
		if !doc.Folds().IsFolded(r) {
			screenRow++
		}
	}
	return screenRow
}

func (u *ui) invertCell(x, y int) {
	ch, _, style, _ := u.screen.GetContent(x, y)
	u.screen.SetContent(x, y, ch, nil, style.Reverse(true))
}
