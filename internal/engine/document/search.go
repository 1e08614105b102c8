package document

import (
	"strings"

	"github.com/dshills/glyphed/internal/engine/index"
)

// Search scans forward from start for the first occurrence of needle,
// which must not span lines. It returns the matching selection, or a
// singular zero selection when nothing matches.
func (d *Document) Search(start index.Position, needle string) index.Selection {
	if needle == "" {
		return index.Selection{}
	}
	n := len([]rune(needle))
	start = d.store.Clamp(start)
	for start != d.End() {
		line := []rune(d.Line(start.Row))
		if idx := indexOfRunes(line, start.Col, needle); idx >= 0 {
			return index.Selection{
				Head: index.Position{Row: start.Row, Col: idx},
				Tail: index.Position{Row: start.Row, Col: idx + n},
			}
		}
		start = index.Position{Row: start.Row + 1, Col: 0}
	}
	return index.Selection{}
}

// indexOfRunes returns the rune index of the first occurrence of
// needle in line at or after from, or -1.
func indexOfRunes(line []rune, from int, needle string) int {
	if from < 0 {
		from = 0
	}
	if from > len(line) {
		return -1
	}
	rest := string(line[from:])
	b := strings.Index(rest, needle)
	if b < 0 {
		return -1
	}
	return from + len([]rune(rest[:b]))
}
