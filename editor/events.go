package editor

import "github.com/iw2rmb/mdfence/buffer"

// ChangeEvent reports buffer state after a change.
type ChangeEvent struct {
	Version   uint64
	Cursor    buffer.Pos
	Selection struct {
		Range  buffer.Range
		Active bool
	}

	Text   string
	Change buffer.Change
}

// CursorEvent reports the cursor position together with the document it
// refers to. Snapshot is immutable; Offset is the absolute rune offset.
// Change is the buffer change that produced the event, if any.
type CursorEvent struct {
	Snapshot *buffer.Snapshot
	Offset   int
	Cursor   buffer.Pos
	Version  uint64
	Change   buffer.Change
}

func buildChangeEvent(b *buffer.Buffer) ChangeEvent {
	ev := ChangeEvent{
		Version: b.Version(),
		Cursor:  b.Cursor(),
		Text:    b.Text(),
	}
	if r, ok := b.Selection(); ok {
		ev.Selection.Active = true
		ev.Selection.Range = r
	}
	if ch, ok := b.LastChange(); ok {
		ev.Change = ch
	}
	return ev
}

func buildCursorEvent(b *buffer.Buffer) CursorEvent {
	ev := CursorEvent{
		Snapshot: b.Snapshot(),
		Offset:   b.CursorOffset(),
		Cursor:   b.Cursor(),
		Version:  b.Version(),
	}
	if ch, ok := b.LastChange(); ok {
		ev.Change = ch
	}
	return ev
}
