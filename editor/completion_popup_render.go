package editor

import (
	"strings"

	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/iw2rmb/mdfence/internal/grapheme"
)

// popupBox is the popup's position inside the viewport content area, the
// window of visible items it shows, and its width in cells.
type popupBox struct {
	x, y  int
	first int
	rows  int
	width int
}

// overlayCompletion draws the completion popup over base next to the
// completion anchor. ok is false when there is nothing to draw or no room.
func (m Model) overlayCompletion(base string) (string, bool) {
	st := m.completionState
	if !st.Visible || m.buf == nil {
		return "", false
	}
	visible := sanitizeCompletionVisibleIndices(st.VisibleIndices, len(st.Items))
	box, ok := m.placeCompletionPopup(st, visible)
	if !ok {
		return "", false
	}

	selected := clampCompletionSelected(st.Selected, len(visible))
	rows := make([]string, 0, box.rows)
	for i := box.first; i < box.first+box.rows; i++ {
		rows = append(rows, m.renderCompletionPopupRow(st.Items[visible[i]], i == selected, box.width))
	}

	vs := m.viewport.Style
	left := vs.GetMarginLeft() + vs.GetBorderLeftSize() + vs.GetPaddingLeft()
	top := vs.GetMarginTop() + vs.GetBorderTopSize() + vs.GetPaddingTop()
	return overlay.Composite(strings.Join(rows, "\n"), base, overlay.Left, overlay.Top, left+box.x, top+box.y), true
}

// placeCompletionPopup opens the popup below the anchor row when it fits,
// above it when that side has more room, and scrolls the item window so the
// selected item is visible.
func (m Model) placeCompletionPopup(st CompletionState, visible []int) (popupBox, bool) {
	width := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()
	height := m.visibleRowCount()
	maxRows := normalizeCompletionMaxVisibleRows(m.cfg.CompletionMaxVisibleRows)
	if width <= 0 || height <= 0 || len(visible) == 0 || maxRows <= 0 {
		return popupBox{}, false
	}
	ax, ay, ok := m.docToScreenPos(st.Anchor)
	if !ok {
		return popupBox{}, false
	}

	rows := min(maxRows, len(visible))
	below, above := max(height-ay-1, 0), max(ay, 0)
	downward := true
	if rows > below {
		switch {
		case above >= rows:
			downward = false
		case above > below:
			downward, rows = false, above
		default:
			rows = below
		}
	}
	if rows <= 0 {
		return popupBox{}, false
	}

	box := popupBox{rows: rows}
	if sel := clampCompletionSelected(st.Selected, len(visible)); sel >= rows {
		box.first = sel - rows + 1
	}

	for _, idx := range visible[box.first : box.first+rows] {
		box.width = max(box.width, completionSegmentsCellWidth(completionItemSegments(st.Items[idx]), m.cfg.TabWidth))
	}
	box.width = min(box.width, normalizeCompletionMaxWidth(m.cfg.CompletionMaxWidth), width)
	if box.width <= 0 {
		return popupBox{}, false
	}

	box.y = ay + 1
	if !downward {
		box.y = ay - rows
	}
	box.y = min(max(box.y, 0), max(height-rows, 0))
	box.x = min(max(ax, 0), max(width-box.width, 0))
	return box, true
}

func (m Model) renderCompletionPopupRow(item CompletionItem, selected bool, width int) string {
	base := completionRowBaseStyle(m.cfg.Style, selected)

	var sb strings.Builder
	used := 0
	for _, seg := range truncateCompletionSegments(completionItemSegments(item), width, m.cfg.TabWidth) {
		style := resolveCompletionSegmentStyle(base, m.cfg.CompletionStyleForKey, item, seg)
		sb.WriteString(style.Render(seg.Text))
		used += completionSegmentCellWidth(seg.Text, used, m.cfg.TabWidth)
	}
	if used < width {
		sb.WriteString(base.Render(strings.Repeat(" ", width-used)))
	}
	return sb.String()
}

// completionItemSegments flattens prefix, label and detail into one row,
// separated by single spaces.
func completionItemSegments(item CompletionItem) []CompletionSegment {
	var out []CompletionSegment
	for _, group := range [][]CompletionSegment{item.Prefix, item.Label, item.Detail} {
		start := len(out)
		for _, seg := range group {
			if text := sanitizeCompletionSegmentText(seg.Text); text != "" {
				out = append(out, CompletionSegment{Text: text, StyleKey: seg.StyleKey})
			}
		}
		if start > 0 && len(out) > start {
			out = append(out[:start], append([]CompletionSegment{{Text: " "}}, out[start:]...)...)
		}
	}
	return out
}

func completionSegmentsCellWidth(segments []CompletionSegment, tabWidth int) int {
	width := 0
	for _, seg := range segments {
		width += completionSegmentCellWidth(seg.Text, width, tabWidth)
	}
	return width
}

func completionSegmentCellWidth(text string, start, tabWidth int) int {
	used := start
	for _, gr := range grapheme.Split(sanitizeCompletionSegmentText(text)) {
		used += max(grapheme.Width(gr, used, tabWidth), 1)
	}
	return used - start
}
