// Package tokenizer classifies document characters for zone-based
// glyph coloring.
//
// A Tokenizer walks document characters through a CharIterator and
// emits Records, each marking where a token span ends and which small
// integer tag covers it. The core never interprets tag values beyond
// equality; the renderer maps them to colors.
//
// Apply drives a tokenizer over a row range of a document, converts
// the records into selection zones, and stamps them onto the glyph
// cache. A panicking tokenizer is treated as a no-op: the affected
// rows keep their previous tags.
package tokenizer
