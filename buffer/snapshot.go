package buffer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrOutOfRange reports a position or offset outside document bounds.
var ErrOutOfRange = errors.New("buffer: position out of range")

// Snapshot is an immutable view of a document's lines.
//
// Offsets are absolute rune offsets; the line break between two rows counts as
// one rune. A snapshot with N rows therefore has Len() == sum(len(row)) + N-1.
type Snapshot struct {
	lines   []string
	starts  []int
	lens    []int
	length  int
	version uint64
}

// NewSnapshot builds a snapshot from text, splitting on '\n'.
func NewSnapshot(text string) *Snapshot {
	return newSnapshot(strings.Split(text, "\n"), 0)
}

// NewSnapshotLines builds a snapshot from already split lines.
func NewSnapshotLines(lines []string) *Snapshot {
	return newSnapshot(append([]string(nil), lines...), 0)
}

func newSnapshot(lines []string, version uint64) *Snapshot {
	if len(lines) == 0 {
		lines = []string{""}
	}
	s := &Snapshot{
		lines:   lines,
		starts:  make([]int, len(lines)),
		lens:    make([]int, len(lines)),
		version: version,
	}
	off := 0
	for i, line := range lines {
		s.starts[i] = off
		s.lens[i] = utf8.RuneCountInString(line)
		off += s.lens[i]
		if i < len(lines)-1 {
			off++
		}
	}
	s.length = off
	return s
}

// Version is the owning buffer's text version, or 0 for standalone snapshots.
func (s *Snapshot) Version() uint64 { return s.version }

func (s *Snapshot) LineCount() int { return len(s.lines) }

// Len returns the document length in runes.
func (s *Snapshot) Len() int { return s.length }

// Line returns the text of row, or "" when row is out of range.
func (s *Snapshot) Line(row int) string {
	if row < 0 || row >= len(s.lines) {
		return ""
	}
	return s.lines[row]
}

// Lines returns a copy of all rows.
func (s *Snapshot) Lines() []string {
	return append([]string(nil), s.lines...)
}

func (s *Snapshot) Text() string { return strings.Join(s.lines, "\n") }

func (s *Snapshot) fullRange() Range {
	last := len(s.lines) - 1
	return Range{End: Pos{Row: last, Col: s.lens[last]}}
}

// LineStart returns the offset of the first rune of row.
func (s *Snapshot) LineStart(row int) int {
	if row < 0 || row >= len(s.starts) {
		return -1
	}
	return s.starts[row]
}

// LineEnd returns the offset just past the last rune of row (before its line
// break).
func (s *Snapshot) LineEnd(row int) int {
	if row < 0 || row >= len(s.starts) {
		return -1
	}
	return s.starts[row] + s.lens[row]
}

// PosFromOffset converts an absolute offset into a row/column position.
// Offsets at a row's end (just before its line break) belong to that row.
func (s *Snapshot) PosFromOffset(off int) (Pos, error) {
	if off < 0 || off > s.length {
		return Pos{}, fmt.Errorf("offset %d not in [0,%d]: %w", off, s.length, ErrOutOfRange)
	}
	row := sort.Search(len(s.starts), func(i int) bool { return s.starts[i] > off }) - 1
	if row < 0 {
		row = 0
	}
	return Pos{Row: row, Col: off - s.starts[row]}, nil
}

// OffsetFromPos converts a row/column position into an absolute offset.
func (s *Snapshot) OffsetFromPos(p Pos) (int, error) {
	if p.Row < 0 || p.Row >= len(s.lines) || p.Col < 0 || p.Col > s.lens[p.Row] {
		return 0, fmt.Errorf("pos (%d,%d): %w", p.Row, p.Col, ErrOutOfRange)
	}
	return s.starts[p.Row] + p.Col, nil
}

// LineBefore returns the text of the row containing off, up to off, along with
// the row's start offset.
func (s *Snapshot) LineBefore(off int) (text string, lineStart int, err error) {
	p, err := s.PosFromOffset(off)
	if err != nil {
		return "", 0, err
	}
	runes := []rune(s.lines[p.Row])
	return string(runes[:p.Col]), s.starts[p.Row], nil
}
