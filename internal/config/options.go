package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidOption indicates a value outside its permitted range.
	ErrInvalidOption = errors.New("invalid option value")
)

// FontOptions describe the uniform character cell the glyph cache
// lays text out with.
type FontOptions struct {
	// Height is the cell height in pixels.
	Height float64 `toml:"height"`

	// Ascent is the baseline offset from the cell top.
	Ascent float64 `toml:"ascent"`

	// CharWidth is the cell width in pixels.
	CharWidth float64 `toml:"char_width"`
}

// Options is the full set of engine configuration.
type Options struct {
	Font FontOptions `toml:"font"`

	// LineSpacing multiplies row height; at least 1.0.
	LineSpacing float64 `toml:"line_spacing"`

	// WrapWidth is the soft wrap width in pixels; zero or negative
	// disables wrapping.
	WrapWidth float64 `toml:"wrap_width"`

	// TabSize is the tab stop interval in visual columns.
	TabSize int `toml:"tab_size"`

	// UndoIdleThresholdMs separates undo groups.
	UndoIdleThresholdMs int `toml:"undo_idle_threshold_ms"`

	// TokenRebuildIdleMs debounces token index rebuilds.
	TokenRebuildIdleMs int `toml:"token_rebuild_idle_ms"`

	// AutocompletePopupRows is a renderer hint for popup sizing.
	AutocompletePopupRows int `toml:"autocomplete_popup_rows"`

	// DeactivatedLines lists rows rendered in a secondary color.
	DeactivatedLines []int `toml:"deactivated_lines"`
}

// Default returns the built-in option set.
func Default() Options {
	return Options{
		Font: FontOptions{
			Height:    16,
			Ascent:    12,
			CharWidth: 8,
		},
		LineSpacing:           1.0,
		WrapWidth:             0,
		TabSize:               4,
		UndoIdleThresholdMs:   400,
		TokenRebuildIdleMs:    3000,
		AutocompletePopupRows: 7,
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.Font.Height <= 0 || o.Font.CharWidth <= 0 {
		return fmt.Errorf("%w: font cell must be positive", ErrInvalidOption)
	}
	if o.Font.Ascent < 0 || o.Font.Ascent > o.Font.Height {
		return fmt.Errorf("%w: ascent must lie within the cell height", ErrInvalidOption)
	}
	if o.LineSpacing < 1.0 {
		return fmt.Errorf("%w: line spacing must be >= 1.0", ErrInvalidOption)
	}
	if o.TabSize != 4 {
		return fmt.Errorf("%w: tab size is fixed at 4", ErrInvalidOption)
	}
	if o.UndoIdleThresholdMs < 0 || o.TokenRebuildIdleMs < 0 {
		return fmt.Errorf("%w: idle thresholds must be non-negative", ErrInvalidOption)
	}
	if o.AutocompletePopupRows < 1 {
		return fmt.Errorf("%w: popup must have at least one row", ErrInvalidOption)
	}
	for _, row := range o.DeactivatedLines {
		if row < 0 {
			return fmt.Errorf("%w: deactivated line %d is negative", ErrInvalidOption, row)
		}
	}
	return nil
}

// DeactivatedSet returns the deactivated rows as a lookup set.
func (o Options) DeactivatedSet() map[int]bool {
	set := make(map[int]bool, len(o.DeactivatedLines))
	for _, row := range o.DeactivatedLines {
		set[row] = true
	}
	return set
}
