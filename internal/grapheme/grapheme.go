// Package grapheme measures terminal cell widths of document text.
package grapheme

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// TabAdvance is the number of cells a tab occupies when it starts at col.
func TabAdvance(col, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	if col < 0 {
		col = 0
	}
	return tabWidth - col%tabWidth
}

// Width returns the cell width of s when it starts at col. Tabs expand to the
// next tab stop.
func Width(s string, col, tabWidth int) int {
	if s == "\t" {
		return TabAdvance(col, tabWidth)
	}
	w := runewidth.StringWidth(s)
	if w <= 0 {
		w = uniseg.StringWidth(s)
	}
	if w < 0 {
		w = 0
	}
	return w
}

// RuneWidth is Width for a single rune. Zero-width runes report 0.
func RuneWidth(r rune, col, tabWidth int) int {
	if r == '\t' {
		return TabAdvance(col, tabWidth)
	}
	return runewidth.RuneWidth(r)
}

// StringCells returns the total cell width of s starting at column 0.
func StringCells(s string, tabWidth int) int {
	col := 0
	for _, g := range Split(s) {
		col += Width(g, col, tabWidth)
	}
	return col
}

// Truncate cuts s to at most width cells, padding with spaces when a wide
// cluster would straddle the limit.
func Truncate(s string, width, tabWidth int) string {
	if width <= 0 {
		return ""
	}
	var sb strings.Builder
	used := 0
	for _, g := range Split(s) {
		w := Width(g, used, tabWidth)
		if used+w > width {
			sb.WriteString(strings.Repeat(" ", width-used))
			return sb.String()
		}
		sb.WriteString(g)
		used += w
	}
	return sb.String()
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
