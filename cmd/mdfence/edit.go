package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/chroma/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/mdfence/capability"
	"github.com/iw2rmb/mdfence/editor"
	"github.com/iw2rmb/mdfence/session"
)

// inbox collects what the editor reports during editor.Update.
type inbox struct {
	events []editor.CursorEvent
	dirty  bool
	log    *slog.Logger
}

func (c *inbox) push(ev editor.CursorEvent) { c.events = append(c.events, ev) }

func (c *inbox) drain() []editor.CursorEvent {
	evs := c.events
	c.events = nil
	return evs
}

func (c *inbox) changed(ev editor.ChangeEvent) {
	if !ev.Change.TextChanged() {
		return
	}
	c.dirty = true
	if first, last, ok := ev.Change.Rows(); ok {
		c.log.Debug("text changed", "source", ev.Change.Source.String(), "first_row", first+1, "last_row", last+1)
	}
}

type app struct {
	editor editor.Model
	sess   *session.Session
	inbox  *inbox
	log    *slog.Logger

	path   string
	status string
}

func newApp(path, text string, e *env) app {
	in := &inbox{log: e.log}
	sess := session.New(e.reg, session.Options{Theme: e.cfg.Theme.Style, Logger: e.log})

	m := editor.New(editor.Config{
		Text:                  text,
		ShowLineNums:          e.cfg.Editor.LineNumbers,
		TabWidth:              e.cfg.Editor.TabWidth,
		HistoryLimit:          e.cfg.Editor.HistoryLimit,
		AutoComplete:          e.cfg.Editor.AutoComplete,
		Style:                 editor.DefaultStyle(),
		CompletionStyleForKey: completionStyles(sess.Theme()),
		OnChange:              in.changed,
		OnCursorChange:        in.push,
	})
	m = m.ApplyCapabilities(sess.Start(m.CursorEvent()))

	return app{editor: m, sess: sess, inbox: in, log: e.log, path: path}
}

func completionStyles(theme capability.Theme) func(string) (lipgloss.Style, bool) {
	return func(key string) (lipgloss.Style, bool) {
		switch key {
		case session.StyleKeyKeyword:
			return theme.Style(chroma.Keyword), true
		case session.StyleKeyDetail:
			return lipgloss.NewStyle().Faint(true), true
		}
		return lipgloss.Style{}, false
	}
}

func (a app) Init() tea.Cmd { return nil }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.editor = a.editor.SetSize(msg.Width, max(msg.Height-1, 0))
		return a, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q":
			return a, tea.Quit
		case "ctrl+s":
			a.status = a.save()
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	a.observeCursor()
	return a, cmd
}

// observeCursor feeds queued cursor reports to the session and installs the
// capabilities of the final context.
func (a *app) observeCursor() {
	for _, ev := range a.inbox.drain() {
		if caps, ok := a.sess.Observe(ev); ok {
			a.editor = a.editor.ApplyCapabilities(caps)
		}
	}
}

func (a app) save() string {
	if a.path == "" {
		return "no file name"
	}
	if err := os.WriteFile(a.path, []byte(a.editor.Buffer().Text()), 0o644); err != nil {
		a.log.Error("save failed", "path", a.path, "err", err)
		return "save failed: " + err.Error()
	}
	a.inbox.dirty = false
	a.log.Info("saved", "path", a.path)
	return "saved"
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

func (a app) statusLine() string {
	name := a.path
	if name == "" {
		name = "[scratch]"
	}
	cur := a.editor.Buffer().Cursor()
	line := fmt.Sprintf("%s  %d:%d  %s", name, cur.Row+1, cur.Col+1, a.editor.Capabilities().Name)
	if a.inbox.dirty {
		line += "  [+]"
	}
	if a.status != "" {
		line += "  " + a.status
	}
	return statusStyle.Render(line)
}

func (a app) View() string {
	return a.editor.View() + "\n" + a.statusLine()
}

func newEditCmd(withEnv envWrapper) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [FILE]",
		Short: "Open the editor (ctrl+s saves, ctrl+q quits)",
		Args:  cobra.MaximumNArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			var path, text string
			if len(args) == 1 {
				path = args[0]
				data, err := os.ReadFile(path)
				if err != nil && !errors.Is(err, fs.ErrNotExist) {
					return err
				}
				text = normalizeNewlines(string(data))
			}

			p := tea.NewProgram(newApp(path, text, e), tea.WithAltScreen(), tea.WithMouseAllMotion())
			_, err := p.Run()
			return err
		}),
	}
}
