package editor

import (
	"reflect"

	"github.com/charmbracelet/lipgloss"
)

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer.
	Text string

	// Rendering options.
	ShowLineNums bool
	TabWidth     int // default: 4
	Style        Style

	// Forwarded to buffer.Options.
	HistoryLimit int

	ReadOnly  bool
	KeyMap    KeyMap
	Clipboard Clipboard

	// Capabilities installed at construction. ApplyCapabilities replaces them.
	Capabilities Capabilities

	// AutoComplete asks the active Completer after every typed rune.
	AutoComplete bool

	CompletionKeyMap         CompletionKeyMap
	CompletionMaxVisibleRows int // default: 8
	CompletionMaxWidth       int // default: 60
	// CompletionStyleForKey resolves CompletionSegment.StyleKey values.
	CompletionStyleForKey func(key string) (lipgloss.Style, bool)

	// OnChange fires after an Update that changed the buffer version.
	OnChange func(ChangeEvent)
	// OnCursorChange fires after an Update that moved the cursor or edited text.
	OnCursorChange func(CursorEvent)
}

const defaultTabWidth = 4

func normalizeConfig(cfg Config) Config {
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = defaultTabWidth
	}
	if reflect.DeepEqual(cfg.Style, Style{}) {
		cfg.Style = DefaultStyle()
	}
	if keyMapIsZero(cfg.KeyMap) {
		cfg.KeyMap = DefaultKeyMap()
	}
	cfg.CompletionKeyMap = normalizeCompletionKeyMap(cfg.CompletionKeyMap)
	cfg.CompletionMaxVisibleRows = normalizeCompletionMaxVisibleRows(cfg.CompletionMaxVisibleRows)
	cfg.CompletionMaxWidth = normalizeCompletionMaxWidth(cfg.CompletionMaxWidth)
	return cfg
}
