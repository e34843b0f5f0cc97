package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/mdfence/buffer"
)

func (m Model) CompletionState() CompletionState {
	return cloneCompletionState(m.completionState)
}

func (m Model) SetCompletionState(state CompletionState) Model {
	m.completionState = cloneCompletionState(state)
	m.recomputeCompletionFilter(&m.completionState)
	return m
}

func (m Model) ClearCompletion() Model {
	m.completionState = CompletionState{}
	return m
}

// TriggerCompletion asks the active Completer as if the trigger key was
// pressed.
func (m Model) TriggerCompletion() Model {
	m.requestCompletion(true)
	return m
}

// updateCompletionKey handles completion keys. It reports whether msg was
// consumed.
func (m *Model) updateCompletionKey(msg tea.KeyMsg) bool {
	ckm := m.cfg.CompletionKeyMap
	if key.Matches(msg, ckm.Trigger) {
		m.requestCompletion(true)
		return true
	}

	st := &m.completionState
	if !st.Visible {
		return false
	}

	n := len(st.VisibleIndices)
	switch {
	case key.Matches(msg, ckm.Dismiss):
		m.completionState = CompletionState{}
	case key.Matches(msg, ckm.Accept), ckm.AcceptTab && msg.Type == tea.KeyTab:
		m.acceptCompletion()
	case key.Matches(msg, ckm.Next):
		if n > 0 {
			st.Selected = (st.Selected + 1) % n
		}
	case key.Matches(msg, ckm.Prev):
		if n > 0 {
			st.Selected = (st.Selected - 1 + n) % n
		}
	case key.Matches(msg, ckm.PageNext):
		st.Selected = clampCompletionSelected(st.Selected+m.cfg.CompletionMaxVisibleRows, n)
	case key.Matches(msg, ckm.PagePrev):
		st.Selected = clampCompletionSelected(st.Selected-m.cfg.CompletionMaxVisibleRows, n)
	default:
		return false
	}
	m.rebuildContent()
	return true
}

// requestCompletion opens the popup with the active Completer's answer for
// the cursor, or closes it when there is none.
func (m *Model) requestCompletion(explicit bool) {
	m.completionState = CompletionState{}
	c := m.cfg.Capabilities.Completer
	if c == nil || m.buf == nil || m.cfg.ReadOnly {
		return
	}

	snap := m.buf.Snapshot()
	off := m.buf.CursorOffset()
	lineBefore, lineStart, err := snap.LineBefore(off)
	if err != nil {
		return
	}
	cursor := m.buf.Cursor()

	list, ok := c.Complete(CompletionRequest{
		Snapshot:   snap,
		Offset:     off,
		Cursor:     cursor,
		LineBefore: lineBefore,
		LineStart:  lineStart,
		Explicit:   explicit,
	})
	if !ok || len(list.Items) == 0 {
		return
	}

	state := CompletionState{
		Visible:    true,
		Anchor:     list.Anchor,
		QueryStart: cursor,
		Items:      cloneCompletionItems(list.Items),
	}
	m.recomputeCompletionFilter(&state)
	if len(state.VisibleIndices) == 0 {
		return
	}
	m.completionState = state
}

// refreshCompletionQuery narrows the popup to the text typed since it
// opened. Leaving the query range closes the popup; a query that matches
// nothing asks the Completer again.
func (m *Model) refreshCompletionQuery() {
	st := m.completionState
	cur := m.buf.Cursor()
	row := st.QueryStart.Row
	queryRange := buffer.Range{Start: st.QueryStart, End: buffer.Pos{Row: row, Col: len([]rune(m.buf.Line(row)))}}
	if !queryRange.Contains(cur) || buffer.ComparePos(cur, st.Anchor) < 0 {
		m.completionState = CompletionState{}
		return
	}
	if _, ok := m.buf.Selection(); ok {
		m.completionState = CompletionState{}
		return
	}

	line := []rune(m.buf.Line(cur.Row))
	st.Query = string(line[st.QueryStart.Col:min(cur.Col, len(line))])
	m.recomputeCompletionFilter(&st)
	if len(st.VisibleIndices) == 0 {
		m.requestCompletion(false)
		return
	}
	m.completionState = st
}

// acceptCompletion applies the selected item and closes the popup.
func (m *Model) acceptCompletion() {
	st := m.completionState
	m.completionState = CompletionState{}
	if m.cfg.ReadOnly || m.buf == nil || len(st.VisibleIndices) == 0 {
		return
	}
	sel := clampCompletionSelected(st.Selected, len(st.VisibleIndices))
	item := st.Items[st.VisibleIndices[sel]]

	if len(item.Edits) > 0 {
		m.buf.Apply(item.Edits...)
		return
	}

	anchorOff, ok := m.buf.RuneOffsetFromPos(st.Anchor, buffer.ConvertPolicy{ClampMode: buffer.OffsetClamp})
	if !ok {
		return
	}
	m.buf.Apply(buffer.TextEdit{
		Range: buffer.Range{Start: st.Anchor, End: m.buf.Cursor()},
		Text:  item.InsertText,
	})
	if item.Caret > 0 {
		caret := min(item.Caret, len([]rune(item.InsertText)))
		if p, ok := m.buf.PosFromRuneOffset(anchorOff+caret, buffer.ConvertPolicy{ClampMode: buffer.OffsetClamp}); ok {
			m.buf.SetCursor(p)
		}
	}
}
