package completion

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/iw2rmb/mdfence/capability"
	"github.com/iw2rmb/mdfence/fence"
)

func labels(res *Result) []string {
	if res == nil {
		return nil
	}
	out := make([]string, 0, len(res.Candidates))
	for _, c := range res.Candidates {
		out = append(out, c.Label)
	}
	return out
}

func TestEngine_Headings(t *testing.T) {
	e := New(capability.Default())

	// "## " with the cursor at column 2, line starting at offset 10.
	res := e.Complete("##", 10, 12)
	if res == nil {
		t.Fatalf("expected result")
	}
	if res.From != 10 || res.To != 12 {
		t.Fatalf("span=[%d,%d), want [10,12)", res.From, res.To)
	}

	want := []Candidate{
		{Label: "Heading 1", Kind: KindHeading, InsertText: "# ", ReplaceFrom: 10, ReplaceTo: 12, Priority: 6, Cursor: 2},
		{Label: "Heading 2", Kind: KindHeading, InsertText: "## ", ReplaceFrom: 10, ReplaceTo: 12, Priority: 5, Cursor: 3},
		{Label: "Heading 3", Kind: KindHeading, InsertText: "### ", ReplaceFrom: 10, ReplaceTo: 12, Priority: 4, Cursor: 4},
		{Label: "Heading 4", Kind: KindHeading, InsertText: "#### ", ReplaceFrom: 10, ReplaceTo: 12, Priority: 3, Cursor: 5},
		{Label: "Heading 5", Kind: KindHeading, InsertText: "##### ", ReplaceFrom: 10, ReplaceTo: 12, Priority: 2, Cursor: 6},
		{Label: "Heading 6", Kind: KindHeading, InsertText: "###### ", ReplaceFrom: 10, ReplaceTo: 12, Priority: 1, Cursor: 7},
	}
	if diff := cmp.Diff(want, res.Candidates); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_RuleTable(t *testing.T) {
	e := New(capability.Default())

	cases := []struct {
		name       string
		before     string
		wantLabels []string
		wantFrom   int // relative to line start
	}{
		{name: "seven-hashes", before: "#######"},
		{name: "hash-after-text", before: "a #"},
		{name: "dash", before: "-", wantLabels: []string{"Bullet list item", "Task (unchecked)", "Task (checked)", "Numbered list item"}, wantFrom: 0},
		{name: "plus", before: "+", wantLabels: []string{"Bullet list item", "Task (unchecked)", "Task (checked)", "Numbered list item"}, wantFrom: 0},
		{name: "star-at-start-is-list", before: "*", wantLabels: []string{"Bullet list item", "Task (unchecked)", "Task (checked)", "Numbered list item"}, wantFrom: 0},
		{name: "ordered", before: "1.", wantLabels: []string{"Numbered list item"}, wantFrom: 0},
		{name: "ordered-two", before: "2."},
		{name: "link", before: "see [", wantLabels: []string{"Link"}, wantFrom: 4},
		{name: "link-at-start", before: "[", wantLabels: []string{"Link"}, wantFrom: 0},
		{name: "image", before: "see ![", wantLabels: []string{"Image"}, wantFrom: 4},
		{name: "table", before: "|", wantLabels: []string{"Table (2 columns)", "Table (3 columns)"}, wantFrom: 0},
		{name: "table-mid-line", before: "a |"},
		{name: "quote", before: ">", wantLabels: []string{"Blockquote"}, wantFrom: 0},
		{name: "inline-code", before: "use `", wantLabels: []string{"Inline code"}, wantFrom: 4},
		{name: "double-backtick", before: "use ``"},
		{name: "star-mid-line", before: "very *", wantLabels: []string{"Bold", "Italic"}, wantFrom: 5},
		{name: "underscore-at-start", before: "_", wantLabels: []string{"Bold", "Italic"}, wantFrom: 0},
		{name: "tilde", before: "gone ~", wantLabels: []string{"Strikethrough"}, wantFrom: 5},
		{name: "plain-text", before: "hello"},
		{name: "empty", before: ""},
		{name: "backticks-mid-line", before: "x ```"},
	}

	const lineStart = 100
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cursor := lineStart + len([]rune(tc.before))
			res := e.Complete(tc.before, lineStart, cursor)
			if tc.wantLabels == nil {
				if res != nil {
					t.Fatalf("result=%v, want nil", labels(res))
				}
				return
			}
			if res == nil {
				t.Fatalf("result=nil, want %v", tc.wantLabels)
			}
			if diff := cmp.Diff(tc.wantLabels, labels(res)); diff != "" {
				t.Fatalf("labels mismatch (-want +got):\n%s", diff)
			}
			if got, want := res.From, lineStart+tc.wantFrom; got != want {
				t.Fatalf("from=%d, want %d", got, want)
			}
			if got := res.To; got != cursor {
				t.Fatalf("to=%d, want %d", got, cursor)
			}
			for i, c := range res.Candidates {
				if c.ReplaceFrom != res.From || c.ReplaceTo != res.To {
					t.Fatalf("candidate %d span=[%d,%d), want [%d,%d)", i, c.ReplaceFrom, c.ReplaceTo, res.From, res.To)
				}
				if i > 0 && c.Priority >= res.Candidates[i-1].Priority {
					t.Fatalf("candidate %d priority %d not below %d", i, c.Priority, res.Candidates[i-1].Priority)
				}
			}
		})
	}
}

func TestEngine_ListKeepsMarker(t *testing.T) {
	res := New(nil).Complete("*", 0, 1)
	if res == nil {
		t.Fatalf("expected result")
	}
	if got, want := res.Candidates[1].InsertText, "* [ ] "; got != want {
		t.Fatalf("insert=%q, want %q", got, want)
	}
}

func TestEngine_CodeBlockPerFencedLanguage(t *testing.T) {
	reg := capability.Default()
	res := New(reg).Complete("```", 40, 43)
	if res == nil {
		t.Fatalf("expected result")
	}

	fenced := reg.Fenced()
	if got, want := len(res.Candidates), len(fenced); got != want {
		t.Fatalf("candidates=%d, want %d", got, want)
	}
	for i, c := range res.Candidates {
		lang := fenced[i].Name()
		if got, want := c.InsertText, "```"+lang+"\n\n```"; got != want {
			t.Fatalf("candidate %d insert=%q, want %q", i, got, want)
		}
		if got, want := c.Cursor, len("```"+lang+"\n"); got != want {
			t.Fatalf("candidate %d cursor=%d, want %d", i, got, want)
		}
		if c.ReplaceFrom != 40 || c.ReplaceTo != 43 {
			t.Fatalf("candidate %d span=[%d,%d), want [40,43)", i, c.ReplaceFrom, c.ReplaceTo)
		}
	}
}

func TestEngine_CodeBlockWithoutRegistry(t *testing.T) {
	res := New(nil).Complete("```", 0, 3)
	want := []Candidate{{Label: "Code block", Kind: KindCodeBlock, InsertText: "```\n\n```", ReplaceFrom: 0, ReplaceTo: 3, Priority: 1, Cursor: 4}}
	if diff := cmp.Diff(want, res.Candidates); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_UnicodeOffsets(t *testing.T) {
	res := New(nil).Complete("héllo ~", 5, 12)
	if res == nil {
		t.Fatalf("expected result")
	}
	if res.From != 11 || res.To != 12 {
		t.Fatalf("span=[%d,%d), want [11,12)", res.From, res.To)
	}
}

func TestEngine_CompleteIn(t *testing.T) {
	e := New(capability.Default())

	cases := []struct {
		name       string
		ctx        fence.Context
		before     string
		wantSource Source
		wantNil    bool
	}{
		{name: "prose", ctx: fence.Context{}, before: "#", wantSource: SourceStructural},
		{name: "prose-no-trigger", ctx: fence.Context{}, before: "abc", wantSource: SourceStructural, wantNil: true},
		{name: "recognized-fence-defers", ctx: fence.Context{Kind: fence.InFence, Lang: "python"}, before: "#", wantSource: SourceBundle, wantNil: true},
		{name: "recognized-without-keywords-defers", ctx: fence.Context{Kind: fence.InFence, Lang: "md"}, before: "#", wantSource: SourceBundle, wantNil: true},
		{name: "unrecognized-fence", ctx: fence.Context{Kind: fence.InFence, Lang: "nolangxyz"}, before: "#", wantSource: SourceStructural},
		{name: "untagged-fence", ctx: fence.Context{Kind: fence.InFence}, before: ">", wantSource: SourceStructural},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, src := e.CompleteIn(tc.ctx, tc.before, 0, len(tc.before))
			if src != tc.wantSource {
				t.Fatalf("source=%v, want %v", src, tc.wantSource)
			}
			if (res == nil) != tc.wantNil {
				t.Fatalf("result nil=%v, want %v", res == nil, tc.wantNil)
			}
		})
	}
}

func TestKeywords(t *testing.T) {
	b := capability.Default().Resolve("go")

	res := Keywords(b, "\tfu", 13)
	if res == nil {
		t.Fatalf("expected result")
	}
	if res.From != 11 || res.To != 13 {
		t.Fatalf("span=[%d,%d), want [11,13)", res.From, res.To)
	}
	got := res.Candidates[0]
	want := Candidate{Label: "func", Kind: KindKeyword, InsertText: "func", ReplaceFrom: 11, ReplaceTo: 13, Cursor: 4}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Candidate{}, "Priority")); diff != "" {
		t.Fatalf("top candidate mismatch (-want +got):\n%s", diff)
	}

	if res := Keywords(b, "x := ", 5); res != nil {
		t.Fatalf("expected nil without a word, got %v", labels(res))
	}
	if res := Keywords(nil, "fu", 2); res != nil {
		t.Fatalf("expected nil for nil bundle")
	}
}
