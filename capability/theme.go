package capability

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

const DefaultThemeName = "monokai"

// Theme maps token types to terminal styles through a chroma style.
type Theme struct {
	style *chroma.Style
}

// NewTheme looks up a chroma style by name. An empty name selects the default
// theme; unknown names get chroma's fallback style.
func NewTheme(name string) Theme {
	if name == "" {
		name = DefaultThemeName
	}
	return Theme{style: styles.Get(name)}
}

func (t Theme) Name() string {
	if t.style == nil {
		return ""
	}
	return t.style.Name
}

// Style returns the lipgloss style for a token type.
func (t Theme) Style(tt chroma.TokenType) lipgloss.Style {
	s := lipgloss.NewStyle()
	if t.style == nil {
		return s
	}
	entry := t.style.Get(tt)
	if entry.Colour.IsSet() {
		s = s.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		s = s.Underline(true)
	}
	return s
}
