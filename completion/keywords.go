package completion

import (
	"unicode"
	"unicode/utf8"

	"github.com/iw2rmb/mdfence/capability"
)

// Keywords completes the identifier before the cursor from b's keyword list.
// It returns nil when b is nil, the cursor is not after a word, or nothing
// matches.
func Keywords(b *capability.Bundle, lineBefore string, cursor int) *Result {
	if b == nil {
		return nil
	}
	word := trailingWord(lineBefore)
	if word == "" {
		return nil
	}
	matches := b.Complete(word)
	if len(matches) == 0 {
		return nil
	}

	from := cursor - utf8.RuneCountInString(word)
	templates := make([]template, 0, len(matches))
	for _, m := range matches {
		templates = append(templates, template{
			label:  m.Keyword,
			kind:   KindKeyword,
			insert: m.Keyword,
			cursor: -1,
		})
	}
	return newResult(from, cursor, templates)
}

func trailingWord(s string) string {
	i := len(s)
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		if !isWordRune(r) {
			break
		}
		i -= size
	}
	return s[i:]
}

func isWordRune(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
