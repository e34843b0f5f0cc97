package editor

import (
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/iw2rmb/mdfence/buffer"
)

type memClipboard struct {
	s string
}

func (c *memClipboard) ReadText() (string, error) { return c.s, nil }
func (c *memClipboard) WriteText(s string) error  { c.s = s; return nil }

type stubHighlighter struct {
	fn func(ctx LineContext) ([]HighlightSpan, error)
}

func (h *stubHighlighter) HighlightLine(ctx LineContext) ([]HighlightSpan, error) {
	return h.fn(ctx)
}

func stripANSI(s string) string { return ansi.Strip(s) }

func assertLines(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("line count: got %d, want %d\n got: %q\nwant: %q", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q\n got: %q\nwant: %q", i, got[i], want[i], got, want)
		}
	}
}

func bufferPos(row, col int) buffer.Pos {
	return buffer.Pos{Row: row, Col: col}
}

func typeRunes(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(runeKey(r))
	}
	return m
}
