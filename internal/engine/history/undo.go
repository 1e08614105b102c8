package history

import (
	"errors"
	"time"

	"github.com/dshills/glyphed/internal/engine/document"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultIdleThreshold is the pause that separates one undo group
// from the next.
const DefaultIdleThreshold = 400 * time.Millisecond

// Fulfiller applies a transaction atomically and returns its inverse.
type Fulfiller interface {
	Fulfill(document.Transaction) (document.Transaction, error)
}

// Callback receives the reciprocal transaction after a perform, undo
// or redo step so the caller can reposition selections.
type Callback func(document.Transaction)

// step holds one ready-to-run transaction and its callback. On the
// undo stack the transaction reverses a performed edit; after an undo
// it is swapped for the transaction that redoes it.
type step struct {
	tx       document.Transaction
	callback Callback
}

// group is one undo unit of coalesced steps.
type group struct {
	steps []step
}

// UndoEngine records transactions in idle-gap coalesced groups and
// replays them through a Fulfiller.
type UndoEngine struct {
	doc  Fulfiller
	idle time.Duration

	undoStack []*group
	redoStack []*group

	lastPush time.Time
	now      func() time.Time
}

// NewUndoEngine returns an engine recording against doc. A
// non-positive idle threshold selects DefaultIdleThreshold.
func NewUndoEngine(doc Fulfiller, idle time.Duration) *UndoEngine {
	if idle <= 0 {
		idle = DefaultIdleThreshold
	}
	return &UndoEngine{
		doc:  doc,
		idle: idle,
		now:  time.Now,
	}
}

// Perform applies tx through the document and records its inverse.
// The transaction joins the current group when it arrives within the
// idle threshold of the previous one, otherwise a new group opens.
// cb may be nil; when set it runs synchronously with the reciprocal.
func (u *UndoEngine) Perform(tx document.Transaction, cb Callback) error {
	now := u.now()
	openNew := len(u.undoStack) == 0 || now.Sub(u.lastPush) > u.idle

	inverse, err := u.doc.Fulfill(tx)
	if err != nil {
		return err
	}

	if openNew {
		u.undoStack = append(u.undoStack, &group{})
	}
	g := u.undoStack[len(u.undoStack)-1]
	g.steps = append(g.steps, step{tx: inverse, callback: cb})

	u.redoStack = nil
	u.lastPush = now

	if cb != nil {
		cb(inverse)
	}
	return nil
}

// CommitGroup closes the current group so the next perform starts a
// fresh one regardless of timing.
func (u *UndoEngine) CommitGroup() {
	u.lastPush = time.Time{}
}

// Undo reverses the most recent group. Steps replay in reverse
// recording order and each stored transaction is swapped for its
// reciprocal, priming the group for redo.
func (u *UndoEngine) Undo() error {
	if len(u.undoStack) == 0 {
		return ErrNothingToUndo
	}
	g := u.undoStack[len(u.undoStack)-1]
	u.undoStack = u.undoStack[:len(u.undoStack)-1]

	for i := len(g.steps) - 1; i >= 0; i-- {
		r, err := u.doc.Fulfill(g.steps[i].tx)
		if err != nil {
			return err
		}
		if cb := g.steps[i].callback; cb != nil {
			cb(r)
		}
		g.steps[i].tx = r
	}

	u.redoStack = append(u.redoStack, g)
	u.lastPush = time.Time{}
	return nil
}

// Redo replays the most recently undone group in recording order.
func (u *UndoEngine) Redo() error {
	if len(u.redoStack) == 0 {
		return ErrNothingToRedo
	}
	g := u.redoStack[len(u.redoStack)-1]
	u.redoStack = u.redoStack[:len(u.redoStack)-1]

	for i := range g.steps {
		r, err := u.doc.Fulfill(g.steps[i].tx)
		if err != nil {
			return err
		}
		if cb := g.steps[i].callback; cb != nil {
			cb(r)
		}
		g.steps[i].tx = r
	}

	u.undoStack = append(u.undoStack, g)
	u.lastPush = time.Time{}
	return nil
}

// CanUndo reports whether an undo group is available.
func (u *UndoEngine) CanUndo() bool { return len(u.undoStack) > 0 }

// CanRedo reports whether a redo group is available.
func (u *UndoEngine) CanRedo() bool { return len(u.redoStack) > 0 }

// Depth returns the number of recorded undo and redo groups.
func (u *UndoEngine) Depth() (undo, redo int) {
	return len(u.undoStack), len(u.redoStack)
}
