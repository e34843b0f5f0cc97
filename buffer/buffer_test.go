package buffer

import "testing"

// TestBuffer_Versions walks one buffer through a script and checks that
// Version counts every visible change while TextVersion counts text edits.
func TestBuffer_Versions(t *testing.T) {
	b := New("a\nbc", Options{})

	steps := []struct {
		name   string
		do     func()
		v, tv  uint64
		cursor Pos
	}{
		{name: "initial", do: func() {}, v: 0, tv: 0},
		{name: "cursor clamps", do: func() { b.SetCursor(Pos{Row: 999, Col: 999}) }, v: 1, tv: 0, cursor: Pos{Row: 1, Col: 2}},
		{name: "same cursor", do: func() { b.SetCursor(Pos{Row: 1, Col: 2}) }, v: 1, tv: 0, cursor: Pos{Row: 1, Col: 2}},
		{name: "selection", do: func() { b.SetSelection(Range{Start: Pos{Row: 1, Col: 99}, End: Pos{Row: 0, Col: -1}}) }, v: 2, tv: 0, cursor: Pos{Row: 1, Col: 2}},
		{name: "same selection reversed", do: func() { b.SetSelection(Range{Start: Pos{Row: 1, Col: 2}, End: Pos{Row: 0, Col: 0}}) }, v: 2, tv: 0, cursor: Pos{Row: 1, Col: 2}},
		{name: "clear", do: b.ClearSelection, v: 3, tv: 0, cursor: Pos{Row: 1, Col: 2}},
		{name: "clear again", do: b.ClearSelection, v: 3, tv: 0, cursor: Pos{Row: 1, Col: 2}},
		{name: "insert", do: func() { b.InsertText("X") }, v: 4, tv: 1, cursor: Pos{Row: 1, Col: 3}},
		{name: "undo", do: func() { b.Undo() }, v: 5, tv: 2, cursor: Pos{Row: 1, Col: 2}},
		{name: "redo", do: func() { b.Redo() }, v: 6, tv: 3, cursor: Pos{Row: 1, Col: 3}},
	}

	for _, st := range steps {
		st.do()
		if b.Version() != st.v || b.TextVersion() != st.tv {
			t.Fatalf("%s: versions=(%d,%d), want (%d,%d)", st.name, b.Version(), b.TextVersion(), st.v, st.tv)
		}
		if got := b.Cursor(); got != st.cursor {
			t.Fatalf("%s: cursor=%v, want %v", st.name, got, st.cursor)
		}
	}
}

func TestBuffer_SetSelection_NormalizesAndClamps(t *testing.T) {
	b := New("a\nbc", Options{})
	b.SetSelection(Range{Start: Pos{Row: 1, Col: 99}, End: Pos{Row: 0, Col: -1}})

	r, ok := b.Selection()
	if want := (Range{Start: Pos{Row: 0, Col: 0}, End: Pos{Row: 1, Col: 2}}); !ok || r != want {
		t.Fatalf("selection=%v,%v want %v", r, ok, want)
	}

	b.SetSelection(Range{Start: Pos{Row: 0, Col: 1}, End: Pos{Row: 0, Col: 1}})
	if _, ok := b.Selection(); ok {
		t.Fatalf("empty selection should be inactive")
	}
}

func TestBuffer_SelectionRaw_PreservesDirection(t *testing.T) {
	b := New("abcd", Options{})
	backward := Range{Start: Pos{Row: 0, Col: 3}, End: Pos{Row: 0, Col: 1}}
	b.SetSelection(backward)

	if raw, ok := b.SelectionRaw(); !ok || raw != backward {
		t.Fatalf("raw=%v,%v want %v", raw, ok, backward)
	}
	if norm, ok := b.Selection(); !ok || norm != NormalizeRange(backward) {
		t.Fatalf("normalized=%v,%v want %v", norm, ok, NormalizeRange(backward))
	}
}

func TestBuffer_Lines(t *testing.T) {
	b := New("```go\nfmt\n```", Options{})
	if got := b.LineCount(); got != 3 {
		t.Fatalf("line count=%d, want 3", got)
	}
	for row, want := range map[int]string{0: "```go", 1: "fmt", 2: "```", 3: "", -1: ""} {
		if got := b.Line(row); got != want {
			t.Fatalf("Line(%d)=%q, want %q", row, got, want)
		}
	}
	if got := New("", Options{}).LineCount(); got != 1 {
		t.Fatalf("empty buffer line count=%d, want 1", got)
	}
}
