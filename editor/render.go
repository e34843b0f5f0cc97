package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/mdfence/buffer"
	"github.com/iw2rmb/mdfence/internal/grapheme"
)

// cellStyle tags each rendered cell run.
type cellStyle int

const (
	cellText cellStyle = iota
	cellHighlight
	cellSelection
	cellCursor
)

func (m *Model) renderContent() string {
	if m.buf == nil {
		return ""
	}

	snap := m.buf.Snapshot()
	cursor := m.buf.Cursor()
	sel, selOK := m.buf.Selection()

	digitCount := 0
	if m.cfg.ShowLineNums {
		digitCount = m.gutterWidth() - 1
	}

	// Only visible rows are highlighted.
	hlStart, hlEnd := 0, 0
	if m.cfg.Capabilities.Highlighter != nil {
		if h := m.visibleRowCount(); h > 0 {
			hlStart = clampInt(m.viewport.YOffset, 0, snap.LineCount())
			hlEnd = clampInt(hlStart+h, 0, snap.LineCount())
		}
	}

	out := make([]string, 0, snap.LineCount())
	for row := 0; row < snap.LineCount(); row++ {
		var sb strings.Builder
		if m.cfg.ShowLineNums {
			numStyle := m.cfg.Style.LineNum
			if m.focused && row == cursor.Row {
				numStyle = m.cfg.Style.LineNumActive
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digitCount, row+1)))
			sb.WriteString(m.cfg.Style.Gutter.Render(" "))
		}

		var spans []HighlightSpan
		if row >= hlStart && row < hlEnd {
			spans = m.highlightForLine(snap, row, cursor)
		}
		sb.WriteString(renderLine(m.cfg.Style, []rune(snap.Line(row)), row, cursor, m.focused, sel, selOK, spans, m.cfg.TabWidth))
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

func (m *Model) highlightForLine(snap *buffer.Snapshot, row int, cursor buffer.Pos) []HighlightSpan {
	h := m.cfg.Capabilities.Highlighter
	if h == nil {
		return nil
	}
	text := snap.Line(row)
	lineLen := len([]rune(text))

	ctx := LineContext{
		Row:       row,
		Text:      text,
		Snapshot:  snap,
		LineStart: snap.LineStart(row),
		CursorCol: -1,
	}
	if cursor.Row == row {
		ctx.HasCursor = true
		ctx.CursorCol = clampInt(cursor.Col, 0, lineLen)
	}

	spans, err := h.HighlightLine(ctx)
	if err != nil {
		return nil
	}
	return normalizeHighlightSpans(spans, lineLen)
}

// renderLine renders one document row. Runs of cells sharing a style are
// rendered together. Tabs expand to spaces; a cursor at the end of the line
// is a one-cell placeholder.
func renderLine(
	st Style,
	line []rune,
	row int,
	cursor buffer.Pos,
	focused bool,
	sel buffer.Range,
	selOK bool,
	highlights []HighlightSpan,
	tabWidth int,
) string {
	cursorCol := -1
	if focused && row == cursor.Row {
		cursorCol = clampInt(cursor.Col, 0, len(line))
	}
	selStart, selEnd, hasSel := selectionColsForRow(sel, selOK, row, len(line))

	var sb strings.Builder
	var run strings.Builder
	runKind := cellText
	var runStyle lipgloss.Style

	flush := func() {
		if run.Len() == 0 {
			return
		}
		s := run.String()
		run.Reset()
		switch runKind {
		case cellCursor:
			sb.WriteString(st.Cursor.Render(s))
		case cellSelection:
			sb.WriteString(st.Selection.Render(s))
		case cellHighlight:
			sb.WriteString(runStyle.Inherit(st.Text).Render(s))
		default:
			sb.WriteString(st.Text.Render(s))
		}
	}

	spanIdx := 0
	cell := 0
	for col, r := range line {
		kind := cellText
		var style lipgloss.Style
		switch {
		case col == cursorCol:
			kind = cellCursor
		case hasSel && col >= selStart && col < selEnd:
			kind = cellSelection
		default:
			for spanIdx < len(highlights) && highlights[spanIdx].EndCol <= col {
				spanIdx++
			}
			if spanIdx < len(highlights) && highlights[spanIdx].StartCol <= col {
				kind = cellHighlight
				style = highlights[spanIdx].Style
			}
		}

		// Each cursor cell and each highlight span is its own run.
		if kind != runKind || kind == cellCursor || (kind == cellHighlight && col == highlights[spanIdx].StartCol) {
			flush()
			runKind = kind
			runStyle = style
		}

		w := grapheme.RuneWidth(r, cell, tabWidth)
		if r == '\t' {
			run.WriteString(strings.Repeat(" ", w))
		} else {
			run.WriteRune(r)
		}
		cell += w
		if kind == cellCursor {
			flush()
			runKind = cellText
		}
	}
	flush()

	if cursorCol == len(line) {
		sb.WriteString(st.Cursor.Render(" "))
	}
	return sb.String()
}

// selectionColsForRow returns the selected rune columns on row as [start, end).
func selectionColsForRow(sel buffer.Range, selOK bool, row, lineLen int) (start, end int, ok bool) {
	if !selOK {
		return 0, 0, false
	}
	sel = buffer.NormalizeRange(sel)
	if row < sel.Start.Row || row > sel.End.Row {
		return 0, 0, false
	}
	start, end = 0, lineLen
	if row == sel.Start.Row {
		start = clampInt(sel.Start.Col, 0, lineLen)
	}
	if row == sel.End.Row {
		end = clampInt(sel.End.Col, 0, lineLen)
	}
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}
