package editor

// Capabilities is the declarative capability set of the editor: the syntax
// highlighter and the completion source. A nil field disables that
// capability.
type Capabilities struct {
	// Name identifies the set, e.g. "prose" or "fence:go". Informational.
	Name        string
	Highlighter Highlighter
	Completer   Completer
}

// ApplyCapabilities replaces the active capability set wholesale. Any open
// completion popup is dismissed since it belongs to the previous set. Text,
// cursor, selection and history are untouched.
func (m Model) ApplyCapabilities(c Capabilities) Model {
	m.cfg.Capabilities = c
	m.completionState = CompletionState{}
	m.rebuildContent()
	return m
}

// Capabilities returns the active capability set.
func (m Model) Capabilities() Capabilities { return m.cfg.Capabilities }
