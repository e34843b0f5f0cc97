package buffer

import (
	"slices"
	"strings"
)

// InsertText inserts text at the cursor, or replaces the active selection.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		if _, ok := b.Selection(); ok {
			b.DeleteSelection()
		}
		return
	}

	r, ok := b.Selection()
	if !ok {
		r = Range{Start: b.cursor, End: b.cursor}
	}
	b.replaceAndCommit(r, s)
}

// InsertRune inserts a single rune at the cursor, or replaces the active
// selection.
func (b *Buffer) InsertRune(r rune) {
	b.InsertText(string(r))
}

// InsertNewline inserts a line break at the cursor, or replaces the active
// selection.
func (b *Buffer) InsertNewline() {
	b.InsertText("\n")
}

// DeleteBackward applies backspace semantics.
func (b *Buffer) DeleteBackward() {
	if _, ok := b.Selection(); ok {
		b.DeleteSelection()
		return
	}

	row, col := b.cursor.Row, b.cursor.Col
	if row == 0 && col == 0 {
		return
	}

	if col > 0 {
		b.replaceAndCommit(Range{Start: Pos{Row: row, Col: col - 1}, End: b.cursor}, "")
		return
	}

	// Join with previous line (delete the newline).
	prevRow := row - 1
	b.replaceAndCommit(Range{Start: Pos{Row: prevRow, Col: len(b.lines[prevRow])}, End: b.cursor}, "")
}

// DeleteForward applies delete-key semantics.
func (b *Buffer) DeleteForward() {
	if _, ok := b.Selection(); ok {
		b.DeleteSelection()
		return
	}

	row, col := b.cursor.Row, b.cursor.Col
	lastRow := len(b.lines) - 1
	if row == lastRow && col == len(b.lines[lastRow]) {
		return
	}

	if col < len(b.lines[row]) {
		b.replaceAndCommit(Range{Start: b.cursor, End: Pos{Row: row, Col: col + 1}}, "")
		return
	}

	// Join with next line (delete the newline).
	b.replaceAndCommit(Range{Start: b.cursor, End: Pos{Row: row + 1, Col: 0}}, "")
}

// DeleteSelection deletes the active selection, if any.
func (b *Buffer) DeleteSelection() {
	r, ok := b.Selection()
	if !ok {
		return
	}
	b.replaceAndCommit(r, "")
}

func (b *Buffer) replaceAndCommit(r Range, text string) {
	b.apply(ChangeSourceLocal, []TextEdit{{Range: r, Text: text}})
}

func (b *Buffer) replaceRange(r Range, text string) (cursor Pos, applied AppliedEdit, ok bool) {
	r = NormalizeRange(ClampRange(r, len(b.lines), b.lineLen))
	deleted := textForLinesRange(b.lines, r)
	if deleted == text {
		return b.cursor, AppliedEdit{}, false
	}

	head := b.lines[r.Start.Row][:r.Start.Col]
	tail := b.lines[r.End.Row][r.End.Col:]
	ins := splitLines(text)
	last := len(ins) - 1

	repl := make([][]rune, len(ins))
	for i, part := range ins {
		var line []rune
		if i == 0 {
			line = append(line, head...)
		}
		line = append(line, part...)
		if i == last {
			line = append(line, tail...)
		}
		repl[i] = line
	}
	cursor = Pos{Row: r.Start.Row + last, Col: len(ins[last])}
	if last == 0 {
		cursor.Col += len(head)
	}

	b.lines = slices.Concat(b.lines[:r.Start.Row], repl, b.lines[r.End.Row+1:])
	applied = AppliedEdit{
		RangeBefore: r,
		RangeAfter:  Range{Start: r.Start, End: cursor},
		InsertText:  text,
		DeletedText: deleted,
	}
	return cursor, applied, true
}

func textForLinesRange(lines [][]rune, r Range) string {
	r = NormalizeRange(r)
	if r.IsEmpty() {
		return ""
	}

	if r.Start.Row == r.End.Row {
		return string(lines[r.Start.Row][r.Start.Col:r.End.Col])
	}

	var sb strings.Builder
	for row := r.Start.Row; row <= r.End.Row; row++ {
		if row > r.Start.Row {
			sb.WriteByte('\n')
		}
		partStart := 0
		partEnd := len(lines[row])
		if row == r.Start.Row {
			partStart = r.Start.Col
		}
		if row == r.End.Row {
			partEnd = r.End.Col
		}
		sb.WriteString(string(lines[row][partStart:partEnd]))
	}
	return sb.String()
}
