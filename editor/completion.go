package editor

import (
	"reflect"

	"github.com/charmbracelet/bubbles/key"

	"github.com/iw2rmb/mdfence/buffer"
)

const (
	defaultCompletionMaxVisibleRows = 8
	defaultCompletionMaxWidth       = 60
)

type CompletionSegment struct {
	Text     string
	StyleKey string
}

// CompletionItem is one popup row.
//
// Accepting an item applies Edits when present. Otherwise InsertText replaces
// the text between the popup anchor and the cursor.
type CompletionItem struct {
	ID         string
	InsertText string
	Edits      []buffer.TextEdit

	// Caret, when positive, places the cursor Caret runes into InsertText
	// after acceptance. Zero leaves the cursor after the inserted text.
	Caret int

	Prefix []CompletionSegment
	Label  []CompletionSegment
	Detail []CompletionSegment

	StyleKey string
}

// CompletionState is the popup state. Query is the text typed since the popup
// opened; it narrows Items into VisibleIndices.
type CompletionState struct {
	Visible bool
	// Anchor is where accepted InsertText starts replacing.
	Anchor buffer.Pos
	// QueryStart is the cursor position when the popup opened.
	QueryStart buffer.Pos
	Query      string
	Items      []CompletionItem
	Selected   int

	VisibleIndices []int
}

// CompletionRequest is passed to a Completer.
type CompletionRequest struct {
	Snapshot   *buffer.Snapshot
	Offset     int
	Cursor     buffer.Pos
	LineBefore string
	LineStart  int
	// Explicit is true when the user pressed the trigger key.
	Explicit bool
}

// CompletionList is a Completer's answer. Anchor is where replacement starts.
type CompletionList struct {
	Anchor buffer.Pos
	Items  []CompletionItem
}

// Completer supplies completion items. ok=false means "no suggestions", which
// keeps the popup closed.
type Completer interface {
	Complete(req CompletionRequest) (CompletionList, bool)
}

// CompleterFunc adapts a function to a Completer.
type CompleterFunc func(req CompletionRequest) (CompletionList, bool)

func (f CompleterFunc) Complete(req CompletionRequest) (CompletionList, bool) { return f(req) }

type CompletionKeyMap struct {
	Trigger key.Binding
	Accept  key.Binding

	AcceptTab bool

	Dismiss  key.Binding
	Next     key.Binding
	Prev     key.Binding
	PageNext key.Binding
	PagePrev key.Binding
}

func DefaultCompletionKeyMap() CompletionKeyMap {
	return CompletionKeyMap{
		Trigger:   key.NewBinding(key.WithKeys("ctrl+@", "ctrl+space"), key.WithHelp("ctrl+space", "trigger completion")),
		Accept:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept completion")),
		AcceptTab: true,
		Dismiss:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss completion")),
		Next:      key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("down", "next completion")),
		Prev:      key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("up", "prev completion")),
		PageNext:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "next completion page")),
		PagePrev:  key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev completion page")),
	}
}

func normalizeCompletionKeyMap(km CompletionKeyMap) CompletionKeyMap {
	if reflect.DeepEqual(km, CompletionKeyMap{}) {
		return DefaultCompletionKeyMap()
	}
	return km
}

func normalizeCompletionMaxVisibleRows(rows int) int {
	if rows <= 0 {
		return defaultCompletionMaxVisibleRows
	}
	return rows
}

func normalizeCompletionMaxWidth(width int) int {
	if width <= 0 {
		return defaultCompletionMaxWidth
	}
	return width
}

func cloneCompletionState(state CompletionState) CompletionState {
	state.Items = cloneCompletionItems(state.Items)
	if len(state.VisibleIndices) == 0 {
		state.VisibleIndices = nil
	} else {
		state.VisibleIndices = append([]int(nil), state.VisibleIndices...)
	}
	return state
}

func cloneCompletionItems(items []CompletionItem) []CompletionItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]CompletionItem, len(items))
	copy(out, items)
	for i := range out {
		out[i].Edits = cloneTextEdits(out[i].Edits)
		out[i].Prefix = cloneCompletionSegments(out[i].Prefix)
		out[i].Label = cloneCompletionSegments(out[i].Label)
		out[i].Detail = cloneCompletionSegments(out[i].Detail)
	}
	return out
}

func cloneCompletionSegments(segments []CompletionSegment) []CompletionSegment {
	if len(segments) == 0 {
		return nil
	}
	out := make([]CompletionSegment, len(segments))
	copy(out, segments)
	return out
}

func cloneTextEdits(in []buffer.TextEdit) []buffer.TextEdit {
	if len(in) == 0 {
		return nil
	}
	out := make([]buffer.TextEdit, len(in))
	copy(out, in)
	return out
}

func sanitizeCompletionVisibleIndices(indices []int, itemCount int) []int {
	if len(indices) == 0 || itemCount <= 0 {
		return nil
	}
	out := make([]int, 0, len(indices))
	seen := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= itemCount {
			continue
		}
		if _, exists := seen[idx]; exists {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func clampCompletionSelected(selected, visibleCount int) int {
	if visibleCount <= 0 {
		return 0
	}
	return clampInt(selected, 0, visibleCount-1)
}
