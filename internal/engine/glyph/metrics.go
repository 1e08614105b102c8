package glyph

// TabSize is the fixed tab width in visual columns. Tabs round the
// visual column to the next multiple of this value.
const TabSize = 4

// FontMetrics describes the uniform character cell used to lay out
// glyphs. Every character occupies one cell; there is no per-character
// width variation.
type FontMetrics struct {
	Height    float64 // cell height in pixels
	Ascent    float64 // distance from cell top to the baseline
	CharWidth float64 // cell width in pixels
}

// DefaultFont returns the metrics used when none are configured.
func DefaultFont() FontMetrics {
	return FontMetrics{Height: 16, Ascent: 12, CharWidth: 8}
}

// CellRect returns the character cell rectangle at the cell origin.
func (f FontMetrics) CellRect() (w, h float64) {
	return f.CharWidth, f.Height
}

// RoundToTab returns the visual column after a tab at column c.
func RoundToTab(c int) int {
	return c + TabSize - c%TabSize
}
