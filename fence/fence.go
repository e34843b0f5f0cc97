package fence

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/iw2rmb/mdfence/buffer"
)

// Fence is a fenced code region. Rows are 0-based; OpenEnd is the absolute
// offset just past the opening marker line.
type Fence struct {
	StartRow int
	OpenEnd  int
	EndRow   int // valid only when Closed
	Closed   bool
	Lang     string // "" when the opening line has no tag
}

// Kind is the variant of a Context.
type Kind uint8

const (
	Prose Kind = iota
	InFence
)

func (k Kind) String() string {
	switch k {
	case Prose:
		return "prose"
	case InFence:
		return "fence"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Context classifies a cursor position. Contexts compare with ==: same kind
// and, for InFence, the same tag (case-sensitive).
type Context struct {
	Kind Kind
	Lang string
}

// ContextOf derives the context from a Locate result.
func ContextOf(f Fence, ok bool) Context {
	if !ok {
		return Context{Kind: Prose}
	}
	return Context{Kind: InFence, Lang: f.Lang}
}

func (c Context) String() string {
	if c.Kind != InFence {
		return "prose"
	}
	if c.Lang == "" {
		return "fence"
	}
	return "fence:" + c.Lang
}

type markerKind uint8

const (
	notMarker markerKind = iota
	// bare lines are split into openers and closers by classify.
	bareMarker
	taggedMarker
)

var (
	openTightRE = regexp.MustCompile("^```(\\w*)$")
	openSpaceRE = regexp.MustCompile("^```\\s+(\\w+)")
)

const markerPrefix = "```"

// classifyLine reports whether line is a fence marker and the tag it carries.
func classifyLine(line string) (markerKind, string) {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, markerPrefix) {
		return notMarker, ""
	}
	if s == markerPrefix {
		return bareMarker, ""
	}
	if m := openTightRE.FindStringSubmatch(s); m != nil {
		return taggedMarker, m[1]
	}
	if m := openSpaceRE.FindStringSubmatch(s); m != nil {
		return taggedMarker, m[1]
	}
	return notMarker, ""
}

// mayBeMarker is a cheap prefilter used by the scanner cache.
func mayBeMarker(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), markerPrefix)
}

// Locate returns the fence enclosing offset, if any. Offsets outside
// [0, doc.Len()] return an error wrapping buffer.ErrOutOfRange.
func Locate(doc *buffer.Snapshot, offset int) (Fence, bool, error) {
	return NewIndex(doc).Locate(offset)
}
