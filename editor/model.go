package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/mdfence/buffer"
)

// Model is a Bubble Tea component that renders and edits a buffer.
//
// Model is a value type; methods that change it return the updated copy. The
// underlying *buffer.Buffer is shared between copies.
type Model struct {
	cfg Config
	buf *buffer.Buffer

	focused bool

	viewport viewport.Model

	completionState CompletionState

	lastBufVersion  uint64
	lastTextVersion uint64
	lastCursor      buffer.Pos

	mouseAnchor   buffer.Pos
	mouseDragging bool
}

func New(cfg Config) Model {
	cfg = normalizeConfig(cfg)
	m := Model{
		cfg:      cfg,
		buf:      buffer.New(cfg.Text, buffer.Options{HistoryLimit: cfg.HistoryLimit}),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.lastBufVersion = m.buf.Version()
	m.lastTextVersion = m.buf.TextVersion()
	m.lastCursor = m.buf.Cursor()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.completionState = CompletionState{}
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

// CursorEvent returns the current cursor report without waiting for a change.
// Hosts use it to seed capability detection at startup.
func (m Model) CursorEvent() CursorEvent { return buildCursorEvent(m.buf) }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
	}
	// Also picks up mutations the host made on the buffer directly.
	m.syncFromBuffer()
	return m, cmd
}

func (m Model) View() string {
	base := m.viewport.View()
	if view, ok := m.overlayCompletion(base); ok {
		return view
	}
	return base
}

// syncFromBuffer re-renders after buffer changes and notifies the host.
func (m *Model) syncFromBuffer() {
	if m.buf == nil {
		return
	}
	ver := m.buf.Version()
	textVer := m.buf.TextVersion()
	cur := m.buf.Cursor()
	if ver == m.lastBufVersion && cur == m.lastCursor {
		return
	}

	cursorMoved := cur != m.lastCursor || textVer != m.lastTextVersion
	m.lastBufVersion = ver
	m.lastTextVersion = textVer
	m.lastCursor = cur

	if m.completionState.Visible {
		m.refreshCompletionQuery()
	}
	m.rebuildContent()
	if cursorMoved {
		m.followCursor()
	}

	if m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.buf))
	}
	if cursorMoved && m.cfg.OnCursorChange != nil {
		m.cfg.OnCursorChange(buildCursorEvent(m.buf))
	}
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

// followCursor scrolls the viewport so the cursor row is visible.
func (m *Model) followCursor() {
	if m.buf == nil {
		return
	}
	cur := m.buf.Cursor()
	h := m.visibleRowCount()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	if cur.Row < y {
		m.viewport.SetYOffset(cur.Row)
		return
	}
	if cur.Row >= y+h {
		m.viewport.SetYOffset(cur.Row - h + 1)
	}
}

func (m Model) visibleRowCount() int {
	return m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
}
