package engine

import (
	"errors"
	"time"

	"github.com/dshills/glyphed/internal/config"
	"github.com/dshills/glyphed/internal/engine/document"
	"github.com/dshills/glyphed/internal/engine/glyph"
	"github.com/dshills/glyphed/internal/engine/history"
	"github.com/dshills/glyphed/internal/engine/index"
	"github.com/dshills/glyphed/internal/engine/tokencoll"
	"github.com/dshills/glyphed/internal/event"
	"github.com/dshills/glyphed/internal/tokenizer"
)

// Errors returned by controller intents.
var (
	// ErrNoSelection indicates an intent that needs a caret ran with
	// an empty selection set.
	ErrNoSelection = errors.New("no active selection")

	// ErrNoAutocomplete indicates a close with no open session.
	ErrNoAutocomplete = errors.New("no autocomplete session")
)

// scanProviderPriority ranks document-derived tokens below any
// host-registered provider at priority > 0.
const scanProviderPriority = 0

// Engine is the editor controller facade.
type Engine struct {
	doc    *document.Document
	undo   *history.UndoEngine
	tokens *tokencoll.Collection
	scan   *tokencoll.LineScanProvider
	bus    *event.Bus

	lexer       tokenizer.Tokenizer
	opts        config.Options
	deactivated map[int]bool

	tokenNotify chan struct{}

	session autocompleteSession
}

type autocompleteSession struct {
	active bool
}

// New builds an engine over the given content. extraProviders join
// the built-in line-scanning token provider.
func New(content string, opts config.Options, extraProviders ...tokencoll.Provider) *Engine {
	bus := event.NewBus()
	font := glyph.FontMetrics{
		Height:    opts.Font.Height,
		Ascent:    opts.Font.Ascent,
		CharWidth: opts.Font.CharWidth,
	}

	e := &Engine{
		bus:         bus,
		lexer:       tokenizer.NewCStyle(),
		opts:        opts,
		deactivated: opts.DeactivatedSet(),
		tokenNotify: make(chan struct{}, 1),
	}

	e.doc = document.New(content, font, bus)
	e.doc.SetLineSpacing(opts.LineSpacing)
	e.doc.SetWrapWidth(opts.WrapWidth)
	e.doc.SetSelections([]index.Selection{{}})

	e.undo = history.NewUndoEngine(e.doc,
		time.Duration(opts.UndoIdleThresholdMs)*time.Millisecond)

	e.scan = tokencoll.NewLineScanProvider(scanProviderPriority)
	providers := append([]tokencoll.Provider{e.scan}, extraProviders...)
	e.tokens = tokencoll.NewCollection(providers,
		tokencoll.WithRebuildIdle(time.Duration(opts.TokenRebuildIdleMs)*time.Millisecond),
		tokencoll.WithNotifier(e.postTokenNotification),
	)

	bus.Subscribe(event.TopicLayout, e.onLayoutChange)

	e.scan.SetLines(e.doc.Store().Lines())
	e.tokens.Signal()
	e.Retokenize(0, e.doc.NumRows())
	e.RecomputeFoldRanges()

	return e
}

// Document exposes the underlying document for rendering queries.
func (e *Engine) Document() *document.Document { return e.doc }

// Bus returns the observer bus.
func (e *Engine) Bus() *event.Bus { return e.bus }

// Tokens returns the autocomplete token index.
func (e *Engine) Tokens() *tokencoll.Collection { return e.tokens }

// Options returns the active option set.
func (e *Engine) Options() config.Options { return e.opts }

// SetOptions applies a new option set, invalidating layout state as
// needed.
func (e *Engine) SetOptions(opts config.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	e.opts = opts
	e.deactivated = opts.DeactivatedSet()
	e.doc.SetFont(glyph.FontMetrics{
		Height:    opts.Font.Height,
		Ascent:    opts.Font.Ascent,
		CharWidth: opts.Font.CharWidth,
	})
	e.doc.SetLineSpacing(opts.LineSpacing)
	e.doc.SetWrapWidth(opts.WrapWidth)
	e.Retokenize(0, e.doc.NumRows())
	return nil
}

// SetTokenizer replaces the lexer used for zone coloring.
func (e *Engine) SetTokenizer(t tokenizer.Tokenizer) {
	e.lexer = t
	e.Retokenize(0, e.doc.NumRows())
}

// Stop shuts down the token index worker.
func (e *Engine) Stop() {
	e.tokens.Stop()
}

// TokenNotifications delivers a signal after each token index
// publish. The host drains it on the editor thread and pulls the new
// list through Tokens.
func (e *Engine) TokenNotifications() <-chan struct{} {
	return e.tokenNotify
}

func (e *Engine) postTokenNotification() {
	select {
	case e.tokenNotify <- struct{}{}:
	default:
	}
}

// Retokenize reruns the lexer over the half-open row range and stamps
// the resulting zones.
func (e *Engine) Retokenize(startRow, endRowExcl int) {
	tokenizer.Apply(e.doc, e.lexer, startRow, endRowExcl, e.deactivated)
}

// onLayoutChange keeps the token index and glyph tags in step with
// edits.
func (e *Engine) onLayoutChange(_ event.Topic, payload any) {
	change, ok := payload.(event.LayoutChange)
	if !ok {
		return
	}
	e.scan.SetLines(e.doc.Store().Lines())
	e.tokens.Signal()

	// A block construct opened upstream can restyle everything below,
	// so retokenize from the edit to the end of the document.
	e.Retokenize(change.StartRow, e.doc.NumRows())
	e.RecomputeFoldRanges()
}
