package buffer

import "strings"

type Options struct {
	HistoryLimit int // default: 1000
}

type selectionState struct {
	active bool
	anchor Pos
	end    Pos
}

// Buffer is the mutable document state: text, cursor, and selection.
type Buffer struct {
	lines       [][]rune
	version     uint64
	textVersion uint64

	cursor Pos
	sel    selectionState

	opt  Options
	hist historyState

	lastChange    Change
	hasLastChange bool

	snap *Snapshot
}

func New(text string, opt Options) *Buffer {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	return &Buffer{
		lines:  splitLines(text),
		cursor: Pos{Row: 0, Col: 0},
		sel:    selectionState{},
		opt:    opt,
	}
}

func (b *Buffer) Text() string {
	if len(b.lines) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// Version changes on every effective mutation, including cursor moves.
func (b *Buffer) Version() uint64 { return b.version }

// TextVersion changes only when the text changes.
func (b *Buffer) TextVersion() uint64 { return b.textVersion }

func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the text of row, or "" when row is out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return string(b.lines[row])
}

// Snapshot returns an immutable view of the current text. The same pointer is
// returned until the text changes, so callers may cache by identity.
func (b *Buffer) Snapshot() *Snapshot {
	if b.snap != nil && b.snap.version == b.textVersion {
		return b.snap
	}
	lines := make([]string, len(b.lines))
	for i, line := range b.lines {
		lines[i] = string(line)
	}
	b.snap = newSnapshot(lines, b.textVersion)
	return b.snap
}

func (b *Buffer) Cursor() Pos { return b.cursor }

// CursorOffset returns the cursor as an absolute rune offset.
func (b *Buffer) CursorOffset() int {
	off, _ := b.Snapshot().OffsetFromPos(b.cursor)
	return off
}

func (b *Buffer) SetCursor(p Pos) {
	next := b.clampPos(p)
	if next == b.cursor {
		return
	}
	change := b.beginChange(ChangeSourceLocal)
	b.cursor = next
	b.version++
	b.commitChange(change)
}

func (b *Buffer) Selection() (Range, bool) {
	if !b.sel.active {
		return Range{}, false
	}
	r := NormalizeRange(Range{Start: b.sel.anchor, End: b.sel.end})
	if r.IsEmpty() {
		return Range{}, false
	}
	return r, true
}

// SelectionRaw returns the raw selection anchor/end without normalization.
//
// This is useful for UI layers that need to preserve the selection direction
// (e.g. shift+click behavior) while still treating empty selections as inactive.
func (b *Buffer) SelectionRaw() (Range, bool) {
	if !b.sel.active || b.sel.anchor == b.sel.end {
		return Range{}, false
	}
	return Range{Start: b.sel.anchor, End: b.sel.end}, true
}

func (b *Buffer) SetSelection(r Range) {
	clamped := ClampRange(r, len(b.lines), b.lineLen)
	next := selectionState{
		active: true,
		anchor: clamped.Start,
		end:    clamped.End,
	}
	if NormalizeRange(clamped).IsEmpty() {
		next = selectionState{}
	}

	prevRange, prevOK := b.Selection()
	nextRange, nextOK := Range{}, false
	if next.active {
		nextRange, nextOK = NormalizeRange(Range{Start: next.anchor, End: next.end}), true
	}

	if prevOK == nextOK && (!prevOK || prevRange == nextRange) {
		b.sel = next
		return
	}

	change := b.beginChange(ChangeSourceLocal)
	b.sel = next
	b.version++
	b.commitChange(change)
}

func (b *Buffer) ClearSelection() {
	if !b.sel.active {
		return
	}
	if _, ok := b.Selection(); !ok {
		b.sel = selectionState{}
		return
	}
	change := b.beginChange(ChangeSourceLocal)
	b.sel = selectionState{}
	b.version++
	b.commitChange(change)
}

func (b *Buffer) lineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *Buffer) clampPos(p Pos) Pos {
	return ClampPos(p, len(b.lines), b.lineLen)
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, []rune(s))
	}
	if len(lines) == 0 {
		lines = append(lines, nil)
	}
	return lines
}
