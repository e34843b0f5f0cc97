package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/mdfence/internal/grapheme"
)

func completionRowBaseStyle(st Style, selected bool) lipgloss.Style {
	if selected {
		return st.CompletionSelected
	}
	return st.CompletionItem
}

// resolveCompletionSegmentStyle layers the host style for the segment's key,
// or failing that the item's key, over the row style.
func resolveCompletionSegmentStyle(
	base lipgloss.Style,
	styleForKey func(string) (lipgloss.Style, bool),
	item CompletionItem,
	seg CompletionSegment,
) lipgloss.Style {
	if styleForKey == nil {
		return base
	}
	for _, k := range []string{seg.StyleKey, item.StyleKey} {
		if k == "" {
			continue
		}
		if keyed, ok := styleForKey(k); ok {
			return keyed.Inherit(base)
		}
	}
	return base
}

// truncateCompletionSegments cuts segments to width cells. A wide grapheme
// that would straddle the edge is replaced by padding. Adjacent pieces with the
// same style key are merged.
func truncateCompletionSegments(segments []CompletionSegment, width, tabWidth int) []CompletionSegment {
	var out []CompletionSegment
	used := 0
	emit := func(key, text string) {
		if n := len(out); n > 0 && out[n-1].StyleKey == key {
			out[n-1].Text += text
			return
		}
		out = append(out, CompletionSegment{Text: text, StyleKey: key})
	}

	for _, seg := range segments {
		for _, gr := range grapheme.Split(sanitizeCompletionSegmentText(seg.Text)) {
			if used >= width {
				return out
			}
			w := max(grapheme.Width(gr, used, tabWidth), 1)
			if used+w > width {
				emit(seg.StyleKey, strings.Repeat(" ", width-used))
				return out
			}
			emit(seg.StyleKey, gr)
			used += w
		}
	}
	return out
}

// sanitizeCompletionSegmentText drops line breaks and control characters
// other than tab so a segment renders on one row.
func sanitizeCompletionSegmentText(s string) string {
	return strings.Map(func(r rune) rune {
		if r != '\t' && (r < 0x20 || r == 0x7f) {
			return -1
		}
		return r
	}, s)
}
