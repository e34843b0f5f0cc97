package buffer

// Apply applies edits in order as a single undo step. Each range is read
// against the text left by the edits before it and clamped into bounds.
// The cursor lands at the end of the last effective edit and any selection is
// cleared.
func (b *Buffer) Apply(edits ...TextEdit) {
	b.apply(ChangeSourceLocal, edits)
}

// SetText replaces the whole document, e.g. when a host reloads a file.
// The replacement is undoable; the cursor moves to the end of the new text.
func (b *Buffer) SetText(text string) {
	b.apply(ChangeSourceHost, []TextEdit{{Range: b.Snapshot().fullRange(), Text: text}})
}

func (b *Buffer) apply(source ChangeSource, edits []TextEdit) {
	if len(edits) == 0 {
		return
	}

	prev := b.checkpoint()
	change := b.beginChange(source)
	cursor := b.cursor
	for _, e := range edits {
		next, applied, ok := b.replaceRange(e.Range, e.Text)
		if !ok {
			continue
		}
		cursor = next
		change.add(applied)
	}
	if len(change.edits) == 0 {
		return
	}

	b.cursor = b.clampPos(cursor)
	b.sel = selectionState{}
	b.version++
	b.textVersion++
	b.recordUndo(prev)
	b.commitChange(change)
}
