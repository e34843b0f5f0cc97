package completion

import "fmt"

// Kind classifies a candidate.
type Kind uint8

const (
	KindHeading Kind = iota
	KindListItem
	KindTask
	KindOrderedItem
	KindLink
	KindImage
	KindCodeBlock
	KindTable
	KindQuote
	KindInlineCode
	KindEmphasis
	KindStrikethrough
	KindKeyword
)

var kindNames = [...]string{
	KindHeading:       "heading",
	KindListItem:      "list",
	KindTask:          "task",
	KindOrderedItem:   "ordered",
	KindLink:          "link",
	KindImage:         "image",
	KindCodeBlock:     "code-block",
	KindTable:         "table",
	KindQuote:         "quote",
	KindInlineCode:    "inline-code",
	KindEmphasis:      "emphasis",
	KindStrikethrough: "strikethrough",
	KindKeyword:       "keyword",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Candidate replaces [ReplaceFrom, ReplaceTo) with InsertText. Offsets are
// absolute rune offsets. Cursor is the caret position, in runes, inside
// InsertText after acceptance.
type Candidate struct {
	Label       string
	Kind        Kind
	InsertText  string
	ReplaceFrom int
	ReplaceTo   int
	Priority    int
	Cursor      int
}

// Result is a ranked candidate list sharing one replace span.
type Result struct {
	From       int
	To         int
	Candidates []Candidate
}

// Source tells the caller who supplies completions at a position.
type Source uint8

const (
	// SourceStructural means the engine's Result is authoritative.
	SourceStructural Source = iota
	// SourceBundle means the active language bundle supplies completions.
	SourceBundle
)

func (s Source) String() string {
	switch s {
	case SourceStructural:
		return "structural"
	case SourceBundle:
		return "bundle"
	default:
		return fmt.Sprintf("Source(%d)", uint8(s))
	}
}
