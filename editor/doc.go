// Package editor provides a Bubble Tea text editor component backed by the
// buffer package.
//
// The editor owns input handling, scrolling and rendering. Syntax
// highlighting and completion come from a swappable Capabilities set that
// hosts replace with ApplyCapabilities, typically in response to the
// CursorEvent reported through Config.OnCursorChange.
package editor
