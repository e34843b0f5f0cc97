package capability

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/sahilm/fuzzy"
)

// Bundle is the capability set of one language.
type Bundle struct {
	name     string
	aliases  []string
	fence    bool
	lexer    chroma.Lexer
	keywords []string
}

func newBundle(spec LanguageSpec) (*Bundle, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return nil, fmt.Errorf("empty name: %w", ErrInvalidSpec)
	}
	lexerName := spec.Lexer
	if lexerName == "" {
		lexerName = name
	}
	lexer, err := lookupLexer(lexerName)
	if err != nil {
		return nil, err
	}
	return &Bundle{
		name:     name,
		aliases:  append([]string(nil), spec.Aliases...),
		fence:    spec.Fence,
		lexer:    lexer,
		keywords: append([]string(nil), spec.Keywords...),
	}, nil
}

// Name is the canonical tag, used when inserting new fenced blocks.
func (b *Bundle) Name() string { return b.name }

func (b *Bundle) Aliases() []string { return append([]string(nil), b.aliases...) }

// HasCompletions reports whether the bundle provides keyword completions.
func (b *Bundle) HasCompletions() bool { return len(b.keywords) > 0 }

// Token is a highlighted span of one line, in rune columns [Start, End).
type Token struct {
	Start int
	End   int
	Type  chroma.TokenType
	Value string
}

// Tokens lexes a single line. Line breaks emitted by the lexer are dropped.
func (b *Bundle) Tokens(line string) []Token {
	it, err := b.lexer.Tokenise(nil, line)
	if err != nil {
		return nil
	}

	var out []Token
	col := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		value := strings.TrimRight(tok.Value, "\n")
		if value == "" {
			continue
		}
		n := utf8.RuneCountInString(value)
		out = append(out, Token{Start: col, End: col + n, Type: tok.Type, Value: value})
		col += n
	}
	return out
}

// Match is one ranked keyword completion.
type Match struct {
	Keyword string
	Indexes []int // matched byte indexes in Keyword
}

type keywordSource []string

func (s keywordSource) String(i int) string { return s[i] }

func (s keywordSource) Len() int { return len(s) }

// Complete ranks the bundle's keywords against word. An empty word returns
// every keyword in declared order.
func (b *Bundle) Complete(word string) []Match {
	if len(b.keywords) == 0 {
		return nil
	}
	if word == "" {
		out := make([]Match, 0, len(b.keywords))
		for _, k := range b.keywords {
			out = append(out, Match{Keyword: k})
		}
		return out
	}

	matches := fuzzy.FindFrom(word, keywordSource(b.keywords))
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Str == word {
			continue
		}
		out = append(out, Match{Keyword: m.Str, Indexes: m.MatchedIndexes})
	}
	return out
}
