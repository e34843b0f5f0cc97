package editor

import (
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestHighlighting_CalledOnlyForVisibleLines(t *testing.T) {
	var rows []int
	h := &stubHighlighter{
		fn: func(ctx LineContext) ([]HighlightSpan, error) {
			rows = append(rows, ctx.Row)
			return nil, nil
		},
	}

	m := New(Config{
		Text:         "a\nb\nc",
		Capabilities: Capabilities{Highlighter: h},
	})
	m = m.SetSize(10, 1)
	rows = nil
	_ = m.renderContent()

	if len(rows) != 1 || rows[0] != 0 {
		t.Fatalf("highlighter rows: got %v, want %v", rows, []int{0})
	}
}

func TestHighlighting_LineContext(t *testing.T) {
	var got []LineContext
	h := HighlighterFunc(func(ctx LineContext) ([]HighlightSpan, error) {
		got = append(got, ctx)
		return nil, nil
	})

	m := New(Config{Text: "ab\ncdé", Capabilities: Capabilities{Highlighter: h}})
	m = m.SetSize(10, 2)
	m.buf.SetCursor(bufferPos(1, 3))
	got = nil
	_ = m.renderContent()

	if len(got) != 2 {
		t.Fatalf("calls: got %d, want 2", len(got))
	}
	if got[0].HasCursor || got[0].CursorCol != -1 {
		t.Fatalf("row 0 cursor: got (%v,%d), want (false,-1)", got[0].HasCursor, got[0].CursorCol)
	}
	if !got[1].HasCursor || got[1].CursorCol != 3 {
		t.Fatalf("row 1 cursor: got (%v,%d), want (true,3)", got[1].HasCursor, got[1].CursorCol)
	}
	if got[1].LineStart != 3 || got[1].Text != "cdé" {
		t.Fatalf("row 1: got (%d,%q), want (3,%q)", got[1].LineStart, got[1].Text, "cdé")
	}
	if got[1].Snapshot == nil || got[1].Snapshot.Text() != "ab\ncdé" {
		t.Fatalf("row 1 snapshot mismatch")
	}
}

func TestHighlighting_SpansStyleText(t *testing.T) {
	r := trueColorRenderer()
	st := Style{Text: r.NewStyle()}
	kw := r.NewStyle().Foreground(lipgloss.Color("#ff0000"))

	m := New(Config{
		Text:  "abcd",
		Style: st,
		Capabilities: Capabilities{Highlighter: HighlighterFunc(func(ctx LineContext) ([]HighlightSpan, error) {
			return []HighlightSpan{{StartCol: 1, EndCol: 3, Style: kw}}, nil
		})},
	})
	m = m.SetSize(10, 1)
	m = m.Blur()

	got := m.renderContent()
	want := st.Text.Render("a") + kw.Inherit(st.Text).Render("bc") + st.Text.Render("d")
	if got != want {
		t.Fatalf("unexpected highlighted render:\n got: %q\nwant: %q", got, want)
	}
}

func TestHighlighting_ErrorFallsBackToPlainText(t *testing.T) {
	r := trueColorRenderer()
	st := Style{Text: r.NewStyle()}

	m := New(Config{
		Text:  "abcd",
		Style: st,
		Capabilities: Capabilities{Highlighter: &stubHighlighter{
			fn: func(ctx LineContext) ([]HighlightSpan, error) {
				return []HighlightSpan{{StartCol: 1, EndCol: 3, Style: r.NewStyle().Underline(true)}}, errors.New("boom")
			},
		}},
	})
	m = m.SetSize(10, 1)
	m = m.Blur()

	if got, want := m.renderContent(), st.Text.Render("abcd"); got != want {
		t.Fatalf("unexpected render with highlighter error:\n got: %q\nwant: %q", got, want)
	}
}

func TestNormalizeHighlightSpans(t *testing.T) {
	spans := []HighlightSpan{
		{StartCol: 5, EndCol: 9},
		{StartCol: 3, EndCol: 1},
		{StartCol: 2, EndCol: 4},
		{StartCol: 4, EndCol: 4},
		{StartCol: -2, EndCol: 0},
	}
	got := normalizeHighlightSpans(spans, 6)

	want := [][2]int{{1, 3}, {5, 6}}
	if len(got) != len(want) {
		t.Fatalf("spans: got %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i].StartCol != want[i][0] || got[i].EndCol != want[i][1] {
			t.Fatalf("span %d: got [%d,%d), want [%d,%d)", i, got[i].StartCol, got[i].EndCol, want[i][0], want[i][1])
		}
	}
}

func TestApplyCapabilities_SwapsHighlighterAndClearsPopup(t *testing.T) {
	calls := 0
	m := New(Config{Text: "ab"})
	m = m.SetSize(10, 1)
	m = m.SetCompletionState(CompletionState{
		Visible: true,
		Items:   []CompletionItem{{ID: "x", InsertText: "x"}},
	})

	m = m.ApplyCapabilities(Capabilities{
		Name: "fence:go",
		Highlighter: HighlighterFunc(func(ctx LineContext) ([]HighlightSpan, error) {
			calls++
			return nil, nil
		}),
	})
	if calls == 0 {
		t.Fatalf("expected new highlighter to render")
	}
	if m.CompletionState().Visible {
		t.Fatalf("expected popup dismissed on capability swap")
	}
	if got := m.Capabilities().Name; got != "fence:go" {
		t.Fatalf("capabilities name: got %q, want %q", got, "fence:go")
	}
	if got := m.Buffer().Text(); got != "ab" {
		t.Fatalf("text changed on swap: got %q", got)
	}
}
