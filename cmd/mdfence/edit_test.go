package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/mdfence/capability"
	"github.com/iw2rmb/mdfence/internal/config"
	"github.com/iw2rmb/mdfence/internal/logging"
)

func testEnv(t *testing.T) *env {
	t.Helper()
	log, closer, err := logging.New("debug", "")
	if err != nil {
		t.Fatalf("logging: %v", err)
	}
	return &env{
		cfg: &config.Config{
			Editor: config.EditorConfig{LineNumbers: true, TabWidth: 4},
			Theme:  config.ThemeConfig{Style: capability.DefaultThemeName},
		},
		reg:    capability.Default(),
		log:    log,
		closer: closer,
	}
}

func step(a app, msg tea.Msg) app {
	next, _ := a.Update(msg)
	return next.(app)
}

func TestApp_SwapsCapabilitiesWithCursor(t *testing.T) {
	a := newApp("", "intro\n```python\npass\n```", testEnv(t))
	a = step(a, tea.WindowSizeMsg{Width: 40, Height: 10})

	if got := a.editor.Capabilities().Name; got != "prose" {
		t.Fatalf("initial=%q, want prose", got)
	}

	a = step(a, tea.KeyMsg{Type: tea.KeyDown})
	a = step(a, tea.KeyMsg{Type: tea.KeyDown})
	if got := a.editor.Capabilities().Name; got != "fence:python" {
		t.Fatalf("in body=%q, want fence:python", got)
	}
	if !strings.Contains(a.View(), "fence:python") {
		t.Fatalf("status line should show the context:\n%s", a.View())
	}

	a = step(a, tea.KeyMsg{Type: tea.KeyUp})
	if got := a.editor.Capabilities().Name; got != "prose" {
		t.Fatalf("back on opener=%q, want prose", got)
	}
}

func TestApp_TypingAFenceSwitchesContext(t *testing.T) {
	a := newApp("", "", testEnv(t))
	for _, r := range "```go" {
		a = step(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	a = step(a, tea.KeyMsg{Type: tea.KeyEnter})

	if got := a.editor.Capabilities().Name; got != "fence:go" {
		t.Fatalf("after opening fence=%q, want fence:go", got)
	}
}

func TestApp_SaveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	a := newApp(path, "hi", testEnv(t))

	a = step(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})
	if !strings.Contains(a.View(), "[+]") {
		t.Fatalf("expected modified marker after typing:\n%s", a.View())
	}
	a = step(a, tea.KeyMsg{Type: tea.KeyCtrlS})
	if a.status != "saved" {
		t.Fatalf("status=%q, want saved", a.status)
	}
	if strings.Contains(a.View(), "[+]") {
		t.Fatalf("modified marker should clear on save:\n%s", a.View())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := string(data); got != "!hi" {
		t.Fatalf("file=%q, want %q", got, "!hi")
	}
}

func TestApp_QuitKey(t *testing.T) {
	a := newApp("", "", testEnv(t))
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
