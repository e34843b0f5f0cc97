package capability

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
)

func TestNewTheme(t *testing.T) {
	if got, want := NewTheme("").Name(), DefaultThemeName; got != want {
		t.Fatalf("default theme=%q, want %q", got, want)
	}
	if got, want := NewTheme("dracula").Name(), "dracula"; got != want {
		t.Fatalf("theme=%q, want %q", got, want)
	}
}

func TestTheme_StyleColorsKeywords(t *testing.T) {
	th := NewTheme(DefaultThemeName)

	s := th.Style(chroma.Keyword)
	if _, ok := s.GetForeground().(lipgloss.Color); !ok {
		t.Fatalf("expected a foreground color for keywords")
	}
	if got := s.Render("func"); got == "" {
		t.Fatalf("expected rendered text")
	}
}
