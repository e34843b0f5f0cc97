package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestOnChange_FiresOnMutationsAndSkipsNoOps(t *testing.T) {
	var events []ChangeEvent
	m := New(Config{
		Text: "ab",
		OnChange: func(ev ChangeEvent) {
			events = append(events, ev)
		},
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if len(events) != 1 {
		t.Fatalf("events after move: got %d, want %d", len(events), 1)
	}
	if got := events[0].Text; got != "ab" {
		t.Fatalf("event text after move: got %q, want %q", got, "ab")
	}
	if got := events[0].Cursor; got != bufferPos(0, 1) {
		t.Fatalf("event cursor after move: got %v, want %v", got, bufferPos(0, 1))
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight}) // to EOL
	if len(events) != 2 {
		t.Fatalf("events after move to EOL: got %d, want %d", len(events), 2)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight}) // no-op at EOL
	if len(events) != 2 {
		t.Fatalf("events after no-op: got %d, want %d", len(events), 2)
	}

	m, _ = m.Update(runeKey('X'))
	if len(events) != 3 {
		t.Fatalf("events after insert: got %d, want %d", len(events), 3)
	}
	if got := events[2].Text; got != "abX" {
		t.Fatalf("event text after insert: got %q, want %q", got, "abX")
	}
}

func TestOnCursorChange_ReportsOffsetsAfterMovesAndEdits(t *testing.T) {
	var events []CursorEvent
	m := New(Config{
		Text: "ab\ncd",
		OnCursorChange: func(ev CursorEvent) {
			events = append(events, ev)
		},
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if len(events) != 1 {
		t.Fatalf("events after down: got %d, want %d", len(events), 1)
	}
	if got, want := events[0].Offset, 3; got != want {
		t.Fatalf("offset after down: got %d, want %d", got, want)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftLeft})
	if len(events) != 3 {
		t.Fatalf("events after selection moves: got %d, want %d", len(events), 3)
	}

	m, _ = m.Update(runeKey('Z'))
	last := events[len(events)-1]
	if got, want := last.Snapshot.Text(), "ab\nZcd"; got != want {
		t.Fatalf("snapshot after insert: got %q, want %q", got, want)
	}
	if got, want := last.Offset, 4; got != want {
		t.Fatalf("offset after insert: got %d, want %d", got, want)
	}

	// A host mutation outside Update is reported on the next Update.
	m.Buffer().SetCursor(bufferPos(0, 0))
	n := len(events)
	m, _ = m.Update(nil)
	if len(events) != n+1 {
		t.Fatalf("events after external move: got %d, want %d", len(events), n+1)
	}
	if got := events[len(events)-1].Offset; got != 0 {
		t.Fatalf("offset after external move: got %d, want 0", got)
	}
}

func TestOnCursorChange_CarriesEditedRows(t *testing.T) {
	var events []CursorEvent
	m := New(Config{
		Text: "ab\ncd",
		OnCursorChange: func(ev CursorEvent) {
			events = append(events, ev)
		},
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if _, _, ok := events[len(events)-1].Change.Rows(); ok {
		t.Fatalf("cursor move reported edited rows")
	}

	m, _ = m.Update(runeKey('Z'))
	first, last, ok := events[len(events)-1].Change.Rows()
	if !ok || first != 1 || last != 1 {
		t.Fatalf("rows=(%d, %d, %v), want (1, 1, true)", first, last, ok)
	}
}
