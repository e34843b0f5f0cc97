package completion

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/iw2rmb/mdfence/capability"
	"github.com/iw2rmb/mdfence/fence"
)

// template is a candidate before its replace span is known.
type template struct {
	label  string
	kind   Kind
	insert string
	cursor int // -1: end of insert
}

// rule matches a suffix of the text before the cursor. Group 1 of pattern is
// the trigger text that candidates replace.
type rule struct {
	name    string
	pattern *regexp.Regexp
	build   func(e *Engine, trigger string) []template
}

var rules = []rule{
	{name: "heading", pattern: regexp.MustCompile(`^(#{1,6})$`), build: headingTemplates},
	{name: "list", pattern: regexp.MustCompile(`^([-*+])$`), build: listTemplates},
	{name: "ordered", pattern: regexp.MustCompile(`^(1\.)$`), build: orderedTemplates},
	{name: "link", pattern: regexp.MustCompile(`(?:^|[^!])(\[)$`), build: linkTemplates},
	{name: "image", pattern: regexp.MustCompile(`(!\[)$`), build: imageTemplates},
	{name: "code-block", pattern: regexp.MustCompile("^(```)$"), build: codeBlockTemplates},
	{name: "table", pattern: regexp.MustCompile(`^(\|)$`), build: tableTemplates},
	{name: "quote", pattern: regexp.MustCompile(`^(>)$`), build: quoteTemplates},
	{name: "inline-code", pattern: regexp.MustCompile("(?:^|[^`])(`)$"), build: inlineCodeTemplates},
	{name: "emphasis", pattern: regexp.MustCompile(`([*_])$`), build: emphasisTemplates},
	{name: "strikethrough", pattern: regexp.MustCompile(`(~)$`), build: strikethroughTemplates},
}

// Engine evaluates the trigger rules. It is stateless and safe for
// concurrent use.
type Engine struct {
	reg *capability.Registry
}

// New returns an engine offering reg's fenced languages for code blocks.
func New(reg *capability.Registry) *Engine {
	return &Engine{reg: reg}
}

// Complete returns the candidates of the first matching rule, or nil when no
// rule matches. lineBefore is the current line up to the cursor; lineStart
// and cursor are absolute offsets.
func (e *Engine) Complete(lineBefore string, lineStart, cursor int) *Result {
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(lineBefore)
		if m == nil {
			continue
		}
		trigger := m[1]
		from := cursor - utf8.RuneCountInString(trigger)
		if from < lineStart {
			return nil
		}
		return newResult(from, cursor, r.build(e, trigger))
	}
	return nil
}

// CompleteIn dispatches on the cursor context. Inside a fence whose tag the
// registry recognizes it returns (nil, SourceBundle): the bundle is the only
// source, even when it has no completions of its own.
func (e *Engine) CompleteIn(ctx fence.Context, lineBefore string, lineStart, cursor int) (*Result, Source) {
	if ctx.Kind == fence.InFence && e.reg.Resolve(ctx.Lang) != nil {
		return nil, SourceBundle
	}
	return e.Complete(lineBefore, lineStart, cursor), SourceStructural
}

func newResult(from, to int, templates []template) *Result {
	res := &Result{From: from, To: to, Candidates: make([]Candidate, 0, len(templates))}
	for i, t := range templates {
		cur := t.cursor
		if cur < 0 {
			cur = utf8.RuneCountInString(t.insert)
		}
		res.Candidates = append(res.Candidates, Candidate{
			Label:       t.label,
			Kind:        t.kind,
			InsertText:  t.insert,
			ReplaceFrom: from,
			ReplaceTo:   to,
			Priority:    len(templates) - i,
			Cursor:      cur,
		})
	}
	return res
}

func headingTemplates(_ *Engine, _ string) []template {
	out := make([]template, 0, 6)
	for level := 1; level <= 6; level++ {
		out = append(out, template{
			label:  "Heading " + string(rune('0'+level)),
			kind:   KindHeading,
			insert: strings.Repeat("#", level) + " ",
			cursor: -1,
		})
	}
	return out
}

func listTemplates(_ *Engine, marker string) []template {
	return []template{
		{label: "Bullet list item", kind: KindListItem, insert: marker + " ", cursor: -1},
		{label: "Task (unchecked)", kind: KindTask, insert: marker + " [ ] ", cursor: -1},
		{label: "Task (checked)", kind: KindTask, insert: marker + " [x] ", cursor: -1},
		{label: "Numbered list item", kind: KindOrderedItem, insert: "1. ", cursor: -1},
	}
}

func orderedTemplates(_ *Engine, _ string) []template {
	return []template{{label: "Numbered list item", kind: KindOrderedItem, insert: "1. ", cursor: -1}}
}

func linkTemplates(_ *Engine, _ string) []template {
	return []template{{label: "Link", kind: KindLink, insert: "[](url)", cursor: 1}}
}

func imageTemplates(_ *Engine, _ string) []template {
	return []template{{label: "Image", kind: KindImage, insert: "![](url)", cursor: 2}}
}

func codeBlockTemplates(e *Engine, _ string) []template {
	bundles := e.reg.Fenced()
	if len(bundles) == 0 {
		return []template{codeBlock("")}
	}
	out := make([]template, 0, len(bundles))
	for _, b := range bundles {
		out = append(out, codeBlock(b.Name()))
	}
	return out
}

// codeBlock inserts an empty fenced block with the caret on the body line.
func codeBlock(lang string) template {
	open := "```" + lang + "\n"
	label := "Code block"
	if lang != "" {
		label += " (" + lang + ")"
	}
	return template{
		label:  label,
		kind:   KindCodeBlock,
		insert: open + "\n```",
		cursor: utf8.RuneCountInString(open),
	}
}

func tableTemplates(_ *Engine, _ string) []template {
	return []template{
		{
			label:  "Table (2 columns)",
			kind:   KindTable,
			insert: "| Column 1 | Column 2 |\n| --- | --- |\n|  |  |",
			cursor: 2,
		},
		{
			label:  "Table (3 columns)",
			kind:   KindTable,
			insert: "| Column 1 | Column 2 | Column 3 |\n| --- | --- | --- |\n|  |  |  |",
			cursor: 2,
		},
	}
}

func quoteTemplates(_ *Engine, _ string) []template {
	return []template{{label: "Blockquote", kind: KindQuote, insert: "> ", cursor: -1}}
}

func inlineCodeTemplates(_ *Engine, _ string) []template {
	return []template{{label: "Inline code", kind: KindInlineCode, insert: "``", cursor: 1}}
}

func emphasisTemplates(_ *Engine, marker string) []template {
	return []template{
		{label: "Bold", kind: KindEmphasis, insert: strings.Repeat(marker, 4), cursor: 2},
		{label: "Italic", kind: KindEmphasis, insert: marker + marker, cursor: 1},
	}
}

func strikethroughTemplates(_ *Engine, _ string) []template {
	return []template{{label: "Strikethrough", kind: KindStrikethrough, insert: "~~~~", cursor: 2}}
}
