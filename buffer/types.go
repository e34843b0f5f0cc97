package buffer

import "cmp"

// Pos is a 0-based (row, column) position; Col counts runes.
type Pos struct {
	Row int
	Col int
}

// Range is the half-open span [Start, End). Ranges produced by this package
// are normalized so that Start does not follow End.
type Range struct {
	Start Pos
	End   Pos
}

// TextEdit replaces Range with Text. Text may span several lines.
type TextEdit struct {
	Range Range
	Text  string
}

// ComparePos orders positions row first, then column.
func ComparePos(a, b Pos) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Col, b.Col)
}

func NormalizeRange(r Range) Range {
	if ComparePos(r.Start, r.End) > 0 {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

func (r Range) IsEmpty() bool { return r.Start == r.End }

// Contains reports whether p lies in [Start, End] of the normalized range.
func (r Range) Contains(p Pos) bool {
	r = NormalizeRange(r)
	return ComparePos(r.Start, p) <= 0 && ComparePos(p, r.End) <= 0
}

// ClampPos moves p onto the nearest valid position of a document with
// rowCount rows (at least one) whose row lengths are reported by lineLen.
func ClampPos(p Pos, rowCount int, lineLen func(row int) int) Pos {
	rowCount = max(rowCount, 1)
	row := min(max(p.Row, 0), rowCount-1)

	width := 0
	if lineLen != nil {
		width = max(lineLen(row), 0)
	}
	return Pos{Row: row, Col: min(max(p.Col, 0), width)}
}

func ClampRange(r Range, rowCount int, lineLen func(row int) int) Range {
	return Range{
		Start: ClampPos(r.Start, rowCount, lineLen),
		End:   ClampPos(r.End, rowCount, lineLen),
	}
}
