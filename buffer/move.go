package buffer

import "unicode"

type MoveUnit int

const (
	MoveRune MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start, or document start for MoveDoc
	DirEnd  // line end, or document end for MoveDoc
)

// Move is one cursor motion. Extend grows the selection from its anchor
// instead of clearing it.
type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool
}

func (b *Buffer) Move(m Move) {
	from := b.cursor
	to := b.clampPos(b.target(from, m))

	var sel selectionState
	if m.Extend {
		anchor := from
		if b.sel.active && b.sel.anchor != b.sel.end {
			anchor = b.sel.anchor
		}
		if anchor != to {
			sel = selectionState{active: true, anchor: anchor, end: to}
		}
	}

	if from == to && sel == b.sel {
		return
	}

	change := b.beginChange(ChangeSourceLocal)
	b.cursor = to
	b.sel = sel
	b.version++
	b.commitChange(change)
}

func (b *Buffer) target(p Pos, m Move) Pos {
	last := len(b.lines) - 1
	line := b.lines[p.Row]

	switch m.Dir {
	case DirHome:
		if m.Unit == MoveDoc {
			return Pos{}
		}
		return Pos{Row: p.Row}
	case DirEnd:
		if m.Unit == MoveDoc {
			return Pos{Row: last, Col: len(b.lines[last])}
		}
		return Pos{Row: p.Row, Col: len(line)}
	}

	switch m.Unit {
	case MoveDoc:
		switch m.Dir {
		case DirUp:
			return Pos{}
		case DirDown:
			return Pos{Row: last, Col: len(b.lines[last])}
		}
	case MoveWord:
		switch m.Dir {
		case DirLeft:
			return Pos{Row: p.Row, Col: prevWordBoundary(line, p.Col)}
		case DirRight:
			return Pos{Row: p.Row, Col: nextWordBoundary(line, p.Col)}
		}
	case MoveRune, MoveLine:
		switch m.Dir {
		case DirUp:
			return b.vertical(p, -1)
		case DirDown:
			return b.vertical(p, 1)
		case DirLeft:
			if m.Unit == MoveRune {
				return b.stepLeft(p)
			}
		case DirRight:
			if m.Unit == MoveRune {
				return b.stepRight(p)
			}
		}
	}
	return p
}

func (b *Buffer) vertical(p Pos, delta int) Pos {
	row := p.Row + delta
	if row < 0 || row >= len(b.lines) {
		return p
	}
	return Pos{Row: row, Col: min(p.Col, len(b.lines[row]))}
}

func (b *Buffer) stepLeft(p Pos) Pos {
	switch {
	case p.Col > 0:
		return Pos{Row: p.Row, Col: p.Col - 1}
	case p.Row > 0:
		return Pos{Row: p.Row - 1, Col: len(b.lines[p.Row-1])}
	}
	return p
}

func (b *Buffer) stepRight(p Pos) Pos {
	switch {
	case p.Col < len(b.lines[p.Row]):
		return Pos{Row: p.Row, Col: p.Col + 1}
	case p.Row < len(b.lines)-1:
		return Pos{Row: p.Row + 1}
	}
	return p
}

// Word motion stays on the current line: skip whitespace, then the word.
func prevWordBoundary(line []rune, col int) int {
	i := min(max(col, 0), len(line))
	for i > 0 && unicode.IsSpace(line[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(line[i-1]) {
		i--
	}
	return i
}

func nextWordBoundary(line []rune, col int) int {
	i := min(max(col, 0), len(line))
	for i < len(line) && unicode.IsSpace(line[i]) {
		i++
	}
	for i < len(line) && !unicode.IsSpace(line[i]) {
		i++
	}
	return i
}
