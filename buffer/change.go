package buffer

// ChangeSource identifies what produced a change.
type ChangeSource uint8

const (
	// ChangeSourceLocal is typing, deletion, cursor and selection movement.
	ChangeSourceLocal ChangeSource = iota
	// ChangeSourceHistory is an undo or redo step.
	ChangeSourceHistory
	// ChangeSourceHost is a whole-document replacement through SetText.
	ChangeSourceHost
)

func (s ChangeSource) String() string {
	switch s {
	case ChangeSourceHistory:
		return "history"
	case ChangeSourceHost:
		return "host"
	default:
		return "local"
	}
}

// SelectionState is a normalized selection at one point in time.
type SelectionState struct {
	Active bool
	Range  Range
}

// AppliedEdit is one effective replacement inside a change.
type AppliedEdit struct {
	RangeBefore Range
	RangeAfter  Range
	InsertText  string
	DeletedText string
}

// Change describes the most recent versioned mutation of a Buffer.
type Change struct {
	Source          ChangeSource
	VersionBefore   uint64
	VersionAfter    uint64
	CursorBefore    Pos
	CursorAfter     Pos
	SelectionBefore SelectionState
	SelectionAfter  SelectionState
	AppliedEdits    []AppliedEdit
}

// TextChanged reports whether the change edited text rather than only moving
// the cursor or selection.
func (c Change) TextChanged() bool { return len(c.AppliedEdits) > 0 }

// Rows returns the first and last row touched by the change, measured after it
// was applied. ok is false for cursor-only changes.
func (c Change) Rows() (first, last int, ok bool) {
	for i, e := range c.AppliedEdits {
		r := NormalizeRange(e.RangeAfter)
		if i == 0 || r.Start.Row < first {
			first = r.Start.Row
		}
		if i == 0 || r.End.Row > last {
			last = r.End.Row
		}
	}
	return first, last, len(c.AppliedEdits) > 0
}

type changeBuilder struct {
	source          ChangeSource
	versionBefore   uint64
	cursorBefore    Pos
	selectionBefore SelectionState
	edits           []AppliedEdit
}

// LastChange returns the most recent effective change.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	out := b.lastChange
	out.AppliedEdits = append([]AppliedEdit(nil), out.AppliedEdits...)
	return out, true
}

func (sel selectionState) public() SelectionState {
	if !sel.active {
		return SelectionState{}
	}
	r := NormalizeRange(Range{Start: sel.anchor, End: sel.end})
	if r.IsEmpty() {
		return SelectionState{}
	}
	return SelectionState{Active: true, Range: r}
}

func (b *Buffer) beginChange(source ChangeSource) changeBuilder {
	return changeBuilder{
		source:          source,
		versionBefore:   b.version,
		cursorBefore:    b.cursor,
		selectionBefore: b.sel.public(),
	}
}

func (cb *changeBuilder) add(edit AppliedEdit) {
	edit.RangeBefore = NormalizeRange(edit.RangeBefore)
	edit.RangeAfter = NormalizeRange(edit.RangeAfter)
	cb.edits = append(cb.edits, edit)
}

func (b *Buffer) commitChange(cb changeBuilder) {
	if b.version == cb.versionBefore {
		return
	}
	b.lastChange = Change{
		Source:          cb.source,
		VersionBefore:   cb.versionBefore,
		VersionAfter:    b.version,
		CursorBefore:    cb.cursorBefore,
		CursorAfter:     b.cursor,
		SelectionBefore: cb.selectionBefore,
		SelectionAfter:  b.sel.public(),
		AppliedEdits:    append([]AppliedEdit(nil), cb.edits...),
	}
	b.hasLastChange = true
}

// wholeDocumentEdit describes a jump between two snapshots as one
// replacement of the entire text.
func wholeDocumentEdit(before, after *Snapshot) (AppliedEdit, bool) {
	if before == after {
		return AppliedEdit{}, false
	}
	beforeText, afterText := before.Text(), after.Text()
	if beforeText == afterText {
		return AppliedEdit{}, false
	}
	return AppliedEdit{
		RangeBefore: before.fullRange(),
		RangeAfter:  after.fullRange(),
		InsertText:  afterText,
		DeletedText: beforeText,
	}, true
}
