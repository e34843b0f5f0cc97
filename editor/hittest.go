package editor

import (
	"strconv"

	"github.com/iw2rmb/mdfence/buffer"
	"github.com/iw2rmb/mdfence/internal/grapheme"
)

// gutterWidth is the width of the line-number gutter, including the trailing
// separator space. Zero when line numbers are off.
func (m Model) gutterWidth() int {
	if !m.cfg.ShowLineNums || m.buf == nil {
		return 0
	}
	return len(strconv.Itoa(max(m.buf.LineCount(), 1))) + 1
}

// screenToDocPos maps viewport-local cell coordinates to a document position.
// Coordinates are clamped into document bounds; gutter clicks map to column 0.
func (m Model) screenToDocPos(x, y int) buffer.Pos {
	if m.buf == nil {
		return buffer.Pos{}
	}
	row := clampInt(m.viewport.YOffset+y, 0, m.buf.LineCount()-1)
	x -= m.gutterWidth()
	if x <= 0 {
		return buffer.Pos{Row: row}
	}
	return buffer.Pos{Row: row, Col: colForCell([]rune(m.buf.Line(row)), x, m.cfg.TabWidth)}
}

// docToScreenPos maps a document position to viewport-local cell coordinates.
// ok is false when the position is outside the visible viewport.
func (m Model) docToScreenPos(pos buffer.Pos) (x, y int, ok bool) {
	if m.buf == nil {
		return 0, 0, false
	}
	row := clampInt(pos.Row, 0, m.buf.LineCount()-1)
	line := []rune(m.buf.Line(row))
	col := clampInt(pos.Col, 0, len(line))

	x = m.gutterWidth() + cellForCol(line, col, m.cfg.TabWidth)
	y = row - m.viewport.YOffset
	if y < 0 || y >= m.visibleRowCount() {
		return x, y, false
	}
	if x < 0 || x >= m.viewport.Width {
		return x, y, false
	}
	return x, y, true
}

// cellForCol is the cell offset where rune col starts.
func cellForCol(line []rune, col, tabWidth int) int {
	cell := 0
	for i := 0; i < col && i < len(line); i++ {
		cell += grapheme.RuneWidth(line[i], cell, tabWidth)
	}
	return cell
}

// colForCell is the rune column covering cell. Clicks on the right half of a
// wide rune still land before it; clicks past the end land at the line end.
func colForCell(line []rune, cell, tabWidth int) int {
	at := 0
	for i, r := range line {
		w := grapheme.RuneWidth(r, at, tabWidth)
		if cell < at+w {
			return i
		}
		at += w
	}
	return len(line)
}
