package glyph

import (
	"sync/atomic"

	"github.com/dshills/glyphed/internal/engine/index"
)

// Cache memoizes one layout Entry per document line. Entries are
// rebuilt on demand when their (content hash, wrap width) key no
// longer matches the line, so callers never track dirty state
// themselves.
//
// The cache runs on the editor thread; the hit/miss counters are the
// only state touched from elsewhere (stats readers).
type Cache struct {
	font      FontMetrics
	wrapWidth int // visual columns, Unlimited for none
	entries   []*Entry

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCache creates a cache for the given number of rows.
func NewCache(font FontMetrics) *Cache {
	return &Cache{font: font, wrapWidth: Unlimited}
}

// Font returns the current font metrics.
func (c *Cache) Font() FontMetrics { return c.font }

// SetFont replaces the font metrics and drops every entry.
func (c *Cache) SetFont(font FontMetrics) {
	c.font = font
	c.InvalidateAll()
}

// WrapWidth returns the soft-wrap width in visual columns, or
// Unlimited when wrapping is off.
func (c *Cache) WrapWidth() int { return c.wrapWidth }

// SetWrapWidth sets the soft-wrap width in visual columns and drops
// every entry when the width changes.
func (c *Cache) SetWrapWidth(cols int) {
	if cols <= 0 {
		cols = Unlimited
	}
	if cols == c.wrapWidth {
		return
	}
	c.wrapWidth = cols
	c.InvalidateAll()
}

// NumRows returns the number of rows the cache is tracking.
func (c *Cache) NumRows() int { return len(c.entries) }

// Reset resizes the cache to the given line count, dropping all
// entries. Layouts rebuild on demand.
func (c *Cache) Reset(numRows int) {
	c.entries = make([]*Entry, numRows)
}

// SpliceRows mirrors a document splice: rows [startRow, endRow]
// inclusive are removed and count unbuilt slots are inserted at
// startRow. Entries after the splice keep their layouts.
func (c *Cache) SpliceRows(startRow, endRow, count int) {
	if startRow < 0 || endRow < startRow || endRow >= len(c.entries) {
		return
	}
	out := make([]*Entry, 0, len(c.entries)-(endRow-startRow+1)+count)
	out = append(out, c.entries[:startRow]...)
	out = append(out, make([]*Entry, count)...)
	out = append(out, c.entries[endRow+1:]...)
	c.entries = out
}

// EnsureValid returns the entry for row r, rebuilding it when the
// stored key no longer matches the line text under the current wrap
// width. Out-of-range rows return nil.
func (c *Cache) EnsureValid(r int, text string) *Entry {
	if r < 0 || r >= len(c.entries) {
		return nil
	}
	key := MakeKey(text, c.wrapWidth)
	if e := c.entries[r]; e != nil && e.key == key {
		c.hits.Add(1)
		return e
	}
	c.misses.Add(1)
	e := NewEntry(text, c.wrapWidth, c.font)
	c.entries[r] = e
	return e
}

// Peek returns the entry for row r without validating or building it.
func (c *Cache) Peek(r int) *Entry {
	if r < 0 || r >= len(c.entries) {
		return nil
	}
	return c.entries[r]
}

// Invalidate drops the entries for rows [startRow, endRowExcl).
func (c *Cache) Invalidate(startRow, endRowExcl int) {
	if startRow < 0 {
		startRow = 0
	}
	if endRowExcl > len(c.entries) {
		endRowExcl = len(c.entries)
	}
	for r := startRow; r < endRowExcl; r++ {
		c.entries[r] = nil
	}
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	for i := range c.entries {
		c.entries[i] = nil
	}
}

// ClearTokens resets the token tags on row r. A row without a built
// entry has nothing to clear.
func (c *Cache) ClearTokens(r int) {
	if e := c.Peek(r); e != nil {
		e.ClearTokens()
	}
}

// ApplyTokens applies a zone's token tag to row r. The row must have
// been validated first; unbuilt rows are skipped.
func (c *Cache) ApplyTokens(r int, zone index.Selection) {
	if e := c.Peek(r); e != nil {
		e.ApplyZone(r, zone)
	}
}

// Stats reports hit and miss counts since creation.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
