package fence

import (
	"fmt"
	"sort"

	"github.com/iw2rmb/mdfence/buffer"
)

type marker struct {
	row    int
	kind   markerKind
	lang   string
	closer bool // bare line that closes the fence above it
}

// Index is the marker classification of one snapshot.
type Index struct {
	doc     *buffer.Snapshot
	markers []marker
}

// NewIndex classifies every marker line of doc.
func NewIndex(doc *buffer.Snapshot) *Index {
	ix := &Index{doc: doc}
	open := false
	for row := 0; row < doc.LineCount(); row++ {
		kind, lang := classifyLine(doc.Line(row))
		switch kind {
		case notMarker:
			continue
		case bareMarker:
			ix.markers = append(ix.markers, marker{row: row, kind: kind, closer: open})
			open = !open
		case taggedMarker:
			ix.markers = append(ix.markers, marker{row: row, kind: kind, lang: lang})
			open = true
		}
	}
	return ix
}

// Snapshot returns the snapshot the index currently resolves offsets against.
func (ix *Index) Snapshot() *buffer.Snapshot { return ix.doc }

// rebase reuses the marker classification for doc. The caller guarantees that
// no marker row moved or changed.
func (ix *Index) rebase(doc *buffer.Snapshot) *Index {
	return &Index{doc: doc, markers: ix.markers}
}

func (ix *Index) isMarkerRow(row int) bool {
	i := sort.Search(len(ix.markers), func(i int) bool { return ix.markers[i].row >= row })
	return i < len(ix.markers) && ix.markers[i].row == row
}

// Locate returns the fence enclosing offset, if any.
func (ix *Index) Locate(offset int) (Fence, bool, error) {
	pos, err := ix.doc.PosFromOffset(offset)
	if err != nil {
		return Fence{}, false, fmt.Errorf("fence: locate: %w", err)
	}

	// Nearest marker at or above the cursor row.
	i := sort.Search(len(ix.markers), func(i int) bool { return ix.markers[i].row > pos.Row }) - 1
	if i < 0 || ix.markers[i].closer {
		return Fence{}, false, nil
	}

	f := ix.fenceAt(i)
	if f.Closed {
		if offset > f.OpenEnd && offset < ix.doc.LineStart(f.EndRow) {
			return f, true, nil
		}
		return Fence{}, false, nil
	}
	if offset >= f.OpenEnd {
		return f, true, nil
	}
	return Fence{}, false, nil
}

// fenceAt builds the fence opened by markers[i].
func (ix *Index) fenceAt(i int) Fence {
	open := ix.markers[i]
	f := Fence{
		StartRow: open.row,
		OpenEnd:  ix.doc.LineEnd(open.row),
		Lang:     open.lang,
	}
	for _, m := range ix.markers[i+1:] {
		if m.kind == bareMarker {
			f.EndRow = m.row
			f.Closed = true
			break
		}
	}
	return f
}

// Fences lists one fence per opening marker, top-down. A tagged line inside
// an open fence starts a fence of its own, matching Locate, which takes the
// nearest opener above the cursor.
func (ix *Index) Fences() []Fence {
	var out []Fence
	for i, m := range ix.markers {
		if !m.closer {
			out = append(out, ix.fenceAt(i))
		}
	}
	return out
}
