package session

import (
	"github.com/iw2rmb/mdfence/capability"
	"github.com/iw2rmb/mdfence/completion"
	"github.com/iw2rmb/mdfence/editor"
	"github.com/iw2rmb/mdfence/fence"
)

// Style keys used in completion item segments.
const (
	StyleKeyDetail  = "detail"
	StyleKeyKeyword = "keyword"
)

func (s *Session) structuralCompleter(ctx fence.Context) editor.Completer {
	return editor.CompleterFunc(func(req editor.CompletionRequest) (editor.CompletionList, bool) {
		res, src := s.engine.CompleteIn(ctx, req.LineBefore, req.LineStart, req.Offset)
		if src != completion.SourceStructural {
			return editor.CompletionList{}, false
		}
		return completionList(req, res)
	})
}

func keywordCompleter(b *capability.Bundle) editor.Completer {
	return editor.CompleterFunc(func(req editor.CompletionRequest) (editor.CompletionList, bool) {
		return completionList(req, completion.Keywords(b, req.LineBefore, req.Offset))
	})
}

// completionList converts a completion result into popup items anchored at
// the start of its replace span.
func completionList(req editor.CompletionRequest, res *completion.Result) (editor.CompletionList, bool) {
	if res == nil || len(res.Candidates) == 0 || req.Snapshot == nil {
		return editor.CompletionList{}, false
	}
	anchor, err := req.Snapshot.PosFromOffset(res.From)
	if err != nil {
		return editor.CompletionList{}, false
	}

	items := make([]editor.CompletionItem, 0, len(res.Candidates))
	for _, c := range res.Candidates {
		item := editor.CompletionItem{
			ID:         c.Kind.String() + ":" + c.Label,
			InsertText: c.InsertText,
			Label:      []editor.CompletionSegment{{Text: c.Label}},
			Detail:     []editor.CompletionSegment{{Text: c.Kind.String(), StyleKey: StyleKeyDetail}},
		}
		if c.Cursor < len([]rune(c.InsertText)) {
			item.Caret = c.Cursor
		}
		if c.Kind == completion.KindKeyword {
			item.StyleKey = StyleKeyKeyword
		}
		items = append(items, item)
	}
	return editor.CompletionList{Anchor: anchor, Items: items}, true
}
