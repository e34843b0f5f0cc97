// Package session connects the editor to fence detection: it turns cursor
// reports into capability swaps and supplies the highlighter and completer
// of each context.
package session

import (
	"log/slog"

	"github.com/iw2rmb/mdfence/capability"
	"github.com/iw2rmb/mdfence/completion"
	"github.com/iw2rmb/mdfence/detector"
	"github.com/iw2rmb/mdfence/editor"
	"github.com/iw2rmb/mdfence/fence"
)

type Options struct {
	// Theme is a chroma style name. Empty selects capability.DefaultThemeName.
	Theme  string
	Logger *slog.Logger // default: slog.Default()
}

// Session holds the detection state of one editing session. It is meant to be
// driven from the host's update loop.
type Session struct {
	reg     *capability.Registry
	scanner *fence.Scanner
	det     *detector.Detector
	engine  *completion.Engine
	theme   capability.Theme
	log     *slog.Logger
}

// New returns a session resolving languages through reg. A nil reg selects
// capability.Default().
func New(reg *capability.Registry, opts Options) *Session {
	if reg == nil {
		reg = capability.Default()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	sc := fence.NewScanner()
	return &Session{
		reg:     reg,
		scanner: sc,
		det:     detector.New(detector.Options{Registry: reg, Locator: sc, Logger: opts.Logger}),
		engine:  completion.New(reg),
		theme:   capability.NewTheme(opts.Theme),
		log:     opts.Logger,
	}
}

// Start resets the session and returns the capabilities for ev, whether or
// not they differ from prose.
func (s *Session) Start(ev editor.CursorEvent) editor.Capabilities {
	s.det.Reset()
	if caps, ok := s.Observe(ev); ok {
		return caps
	}
	return s.Capabilities(detector.Command(s.reg, s.det.Last()))
}

// Observe reports a cursor change. ok is true when the context changed and
// the returned capabilities must replace the editor's current set.
func (s *Session) Observe(ev editor.CursorEvent) (editor.Capabilities, bool) {
	if ev.Snapshot == nil {
		return editor.Capabilities{}, false
	}
	if first, last, ok := ev.Change.Rows(); ok {
		s.scanner.IndexEdited(ev.Snapshot, first, last)
	}
	cmd, changed, err := s.det.OnPositionChanged(ev.Snapshot, ev.Offset)
	if err != nil {
		s.log.Warn("observe cursor", "offset", ev.Offset, "err", err)
		return editor.Capabilities{}, false
	}
	if !changed {
		return editor.Capabilities{}, false
	}
	return s.Capabilities(cmd), true
}

// Context returns the last detected context.
func (s *Session) Context() fence.Context { return s.det.Last() }

func (s *Session) Theme() capability.Theme { return s.theme }

// Capabilities converts a swap command into an editor capability set.
func (s *Session) Capabilities(cmd detector.SwapCommand) editor.Capabilities {
	caps := editor.Capabilities{Name: cmd.Context.String()}
	if cmd.Bundle != nil {
		caps.Highlighter = s.fenceHighlighter(cmd.Bundle)
		if cmd.Bundle.HasCompletions() {
			caps.Completer = keywordCompleter(cmd.Bundle)
		}
	}
	if cmd.Structural {
		caps.Completer = s.structuralCompleter(cmd.Context)
	}
	return caps
}
