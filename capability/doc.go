// Package capability maps fence language tags to capability bundles.
//
// A Bundle carries the language-specific behaviors an editor activates inside
// a fence: a chroma lexer for highlighting and a keyword completer ranked with
// fuzzy matching. The Registry is built once and is read-only afterwards.
package capability
