// Package completion suggests markdown structure from the text before the
// cursor.
//
// The Engine checks an ordered rule table against the current line up to the
// cursor; the first rule whose trigger matches supplies the candidates. A nil
// Result means no rule matched, which is different from an empty list.
// Inside a fence with a recognized language the engine defers to the
// language bundle instead.
package completion
