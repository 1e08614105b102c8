package glyphed

import (
	"github.com/dshills/glyphed/internal/config"
	"github.com/dshills/glyphed/internal/engine"
	"github.com/dshills/glyphed/internal/engine/document"
	"github.com/dshills/glyphed/internal/engine/index"
	"github.com/dshills/glyphed/internal/engine/tokencoll"
)

// Engine is the editor controller facade.
type Engine = engine.Engine

// Options is the engine configuration set.
type Options = config.Options

// Position is a (row, column) document coordinate.
type Position = index.Position

// Selection is an ordered pair of positions with a style tag.
type Selection = index.Selection

// Token is one autocomplete candidate.
type Token = tokencoll.Token

// Match is a ranked autocomplete result.
type Match = tokencoll.Match

// Provider contributes autocomplete tokens during index rebuilds.
type Provider = tokencoll.Provider

// Navigation targets.
type Target = document.Target

const (
	TargetWhitespace         = document.TargetWhitespace
	TargetPunctuation        = document.TargetPunctuation
	TargetCharacter          = document.TargetCharacter
	TargetSubword            = document.TargetSubword
	TargetCppToken           = document.TargetCppToken
	TargetSubwordWithPoint   = document.TargetSubwordWithPoint
	TargetWord               = document.TargetWord
	TargetFirstNonWhitespace = document.TargetFirstNonWhitespace
	TargetToken              = document.TargetToken
	TargetLine               = document.TargetLine
	TargetParagraph          = document.TargetParagraph
	TargetScope              = document.TargetScope
	TargetDocument           = document.TargetDocument
)

// Navigation directions.
type Direction = document.Direction

const (
	ForwardCol  = document.ForwardCol
	BackwardCol = document.BackwardCol
	ForwardRow  = document.ForwardRow
	BackwardRow = document.BackwardRow
)

// DefaultOptions returns the built-in option set.
func DefaultOptions() Options { return config.Default() }

// LoadOptions reads a TOML options file.
func LoadOptions(path string) (Options, error) { return config.Load(path) }

// New builds an engine over the given content.
func New(content string, opts Options, providers ...Provider) *Engine {
	return engine.New(content, opts, providers...)
}
