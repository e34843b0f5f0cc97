package buffer

// historyEntry holds the shared immutable snapshot of a past state, so an
// undo step costs no copy of the text.
type historyEntry struct {
	snap   *Snapshot
	cursor Pos
	sel    selectionState
}

type historyState struct {
	undo []historyEntry
	redo []historyEntry
}

func (b *Buffer) checkpoint() historyEntry {
	return historyEntry{snap: b.Snapshot(), cursor: b.cursor, sel: b.sel}
}

func (b *Buffer) restore(e historyEntry) {
	b.lines = make([][]rune, e.snap.LineCount())
	for i := range b.lines {
		b.lines[i] = []rune(e.snap.Line(i))
	}
	b.cursor = b.clampPos(e.cursor)
	b.sel = selectionState{}

	if e.sel.active {
		anchor, end := b.clampPos(e.sel.anchor), b.clampPos(e.sel.end)
		if anchor != end {
			b.sel = selectionState{active: true, anchor: anchor, end: end}
		}
	}
}

func (h *historyState) push(e historyEntry, limit int) {
	if limit <= 0 {
		return
	}
	h.undo = append(h.undo, e)
	if over := len(h.undo) - limit; over > 0 {
		h.undo = h.undo[over:]
	}
}

func (b *Buffer) recordUndo(prev historyEntry) {
	b.hist.push(prev, b.opt.HistoryLimit)
	b.hist.redo = nil
}

func (b *Buffer) CanUndo() bool { return len(b.hist.undo) > 0 }

func (b *Buffer) CanRedo() bool { return len(b.hist.redo) > 0 }

// Undo restores the state before the last text change.
func (b *Buffer) Undo() bool {
	n := len(b.hist.undo)
	if n == 0 {
		return false
	}
	prev := b.hist.undo[n-1]
	b.hist.undo = b.hist.undo[:n-1]
	b.hist.redo = append(b.hist.redo, b.travel(prev))
	return true
}

// Redo reapplies the most recently undone change.
func (b *Buffer) Redo() bool {
	n := len(b.hist.redo)
	if n == 0 {
		return false
	}
	next := b.hist.redo[n-1]
	b.hist.redo = b.hist.redo[:n-1]
	b.hist.push(b.travel(next), b.opt.HistoryLimit)
	return true
}

// travel replaces the current state with e and returns the state it left.
func (b *Buffer) travel(e historyEntry) historyEntry {
	cur := b.checkpoint()
	change := b.beginChange(ChangeSourceHistory)

	b.restore(e)
	b.version++
	b.textVersion++
	if edit, ok := wholeDocumentEdit(cur.snap, e.snap); ok {
		change.add(edit)
	}
	b.commitChange(change)
	return cur
}
