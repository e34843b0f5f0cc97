package editor

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// completionSource exposes item labels to fuzzy matching.
type completionSource []CompletionItem

func (s completionSource) String(i int) string { return flattenCompletionItemText(s[i]) }

func (s completionSource) Len() int { return len(s) }

// filterCompletionItems returns the indices of items matching query, best
// match first. An empty query keeps the completer's order.
func filterCompletionItems(query string, items []CompletionItem) []int {
	if len(items) == 0 {
		return nil
	}
	if query == "" {
		out := make([]int, len(items))
		for i := range items {
			out[i] = i
		}
		return out
	}
	matches := fuzzy.FindFrom(query, completionSource(items))
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Index)
	}
	return out
}

func (m *Model) recomputeCompletionFilter(state *CompletionState) {
	if state == nil {
		return
	}
	state.VisibleIndices = sanitizeCompletionVisibleIndices(filterCompletionItems(state.Query, state.Items), len(state.Items))
	state.Selected = clampCompletionSelected(state.Selected, len(state.VisibleIndices))
}

// flattenCompletionItemText is the text matched against the query: the label,
// or the insert text when the item has no label.
func flattenCompletionItemText(item CompletionItem) string {
	var sb strings.Builder
	for _, seg := range item.Label {
		sb.WriteString(seg.Text)
	}
	if sb.Len() == 0 {
		return item.InsertText
	}
	return sb.String()
}
