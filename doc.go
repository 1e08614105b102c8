// Package glyphed is an embeddable source-code editor engine: a
// multi-line document with multi-caret selections, grouped undo,
// soft-wrapped glyph layout, code folding and a background-built
// autocomplete token index.
//
// Hosts construct an Engine, feed it semantic intents from their own
// input layer, and draw from the document's geometry queries. See
// cmd/glyphed for a terminal host.
package glyphed
