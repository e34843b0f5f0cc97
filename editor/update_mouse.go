package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/mdfence/buffer"
)

// updateMouse moves the cursor on left clicks and extends the selection while
// the button is held. Wheel events only scroll the viewport.
func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	if !m.focused || m.buf == nil {
		return m, cmd
	}

	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && m.mouseInBounds(msg.X, msg.Y) {
			m.press(m.screenToDocPos(msg.X, msg.Y), msg.Shift)
		}
	case tea.MouseActionMotion:
		if m.mouseDragging {
			m.dragTo(m.screenToDocPos(m.clampMouseToBounds(msg.X, msg.Y)))
		}
	case tea.MouseActionRelease:
		m.mouseDragging = false
	}
	return m, cmd
}

func (m *Model) press(p buffer.Pos, extend bool) {
	m.completionState = CompletionState{}
	m.mouseDragging = true
	if !extend {
		m.mouseAnchor = p
		m.buf.SetCursor(p)
		m.buf.ClearSelection()
		return
	}

	m.mouseAnchor = m.buf.Cursor()
	if raw, ok := m.buf.SelectionRaw(); ok {
		m.mouseAnchor = raw.Start
	}
	m.dragTo(p)
}

func (m *Model) dragTo(p buffer.Pos) {
	m.buf.SetCursor(p)
	m.buf.SetSelection(buffer.Range{Start: m.mouseAnchor, End: p})
}

func (m Model) mouseInBounds(x, y int) bool {
	w, h := m.viewport.Width, m.viewport.Height
	return x >= 0 && x < w && y >= 0 && y < h
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if w := m.viewport.Width; w > 0 {
		x = min(max(x, 0), w-1)
	}
	if h := m.viewport.Height; h > 0 {
		y = min(max(y, 0), h-1)
	}
	return x, y
}
