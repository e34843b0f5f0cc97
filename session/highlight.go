package session

import (
	"github.com/iw2rmb/mdfence/buffer"
	"github.com/iw2rmb/mdfence/capability"
	"github.com/iw2rmb/mdfence/editor"
)

// fenceHighlighter colors body rows of fences whose tag resolves to b. Other
// rows are left plain.
func (s *Session) fenceHighlighter(b *capability.Bundle) editor.Highlighter {
	return editor.HighlighterFunc(func(ctx editor.LineContext) ([]editor.HighlightSpan, error) {
		if ctx.Snapshot == nil || !s.rowInBundleFence(ctx.Snapshot, ctx.Row, b) {
			return nil, nil
		}
		toks := b.Tokens(ctx.Text)
		spans := make([]editor.HighlightSpan, 0, len(toks))
		for _, tok := range toks {
			spans = append(spans, editor.HighlightSpan{
				StartCol: tok.Start,
				EndCol:   tok.End,
				Style:    s.theme.Style(tok.Type),
			})
		}
		return spans, nil
	})
}

// rowInBundleFence reports whether row is a body row of a fence whose tag
// resolves to b. Rows are resolved the way the detector resolves the cursor.
func (s *Session) rowInBundleFence(doc *buffer.Snapshot, row int, b *capability.Bundle) bool {
	start := doc.LineStart(row)
	if start < 0 {
		return false
	}
	f, ok, err := s.scanner.Index(doc).Locate(start)
	return err == nil && ok && s.reg.Resolve(f.Lang) == b
}
