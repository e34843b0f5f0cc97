package capability

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidSpec  = errors.New("capability: invalid language spec")
	ErrDuplicateTag = errors.New("capability: duplicate language tag")
	ErrUnknownLexer = errors.New("capability: unknown lexer")
)

//go:embed languages.yaml
var defaultLanguagesYAML []byte

// LanguageSpec declares one bundle.
type LanguageSpec struct {
	Name     string   `yaml:"name" mapstructure:"name"`
	Aliases  []string `yaml:"aliases" mapstructure:"aliases"`
	Lexer    string   `yaml:"lexer" mapstructure:"lexer"`
	Fence    bool     `yaml:"fence" mapstructure:"fence"`
	Keywords []string `yaml:"keywords" mapstructure:"keywords"`
}

type languagesFile struct {
	Languages []LanguageSpec `yaml:"languages"`
}

// ParseSpecs decodes a YAML document with a top-level "languages" list.
func ParseSpecs(data []byte) ([]LanguageSpec, error) {
	var f languagesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("capability: parse languages: %w", err)
	}
	return f.Languages, nil
}

// DefaultSpecs returns the built-in language list.
func DefaultSpecs() []LanguageSpec {
	specs, err := ParseSpecs(defaultLanguagesYAML)
	if err != nil {
		panic(err)
	}
	return specs
}

// Merge overlays extra on base by name (case-insensitive). Replaced specs keep
// their position; new ones are appended in order.
func Merge(base, extra []LanguageSpec) []LanguageSpec {
	out := append([]LanguageSpec(nil), base...)
	pos := make(map[string]int, len(out))
	for i, s := range out {
		pos[normalizeTag(s.Name)] = i
	}
	for _, s := range extra {
		key := normalizeTag(s.Name)
		if i, ok := pos[key]; ok {
			out[i] = s
			continue
		}
		pos[key] = len(out)
		out = append(out, s)
	}
	return out
}

// Registry resolves language tags to bundles.
type Registry struct {
	bundles []*Bundle
	byTag   map[string]*Bundle
}

// NewRegistry builds a registry from specs. Tags (names and aliases) must be
// unique after normalization.
func NewRegistry(specs []LanguageSpec) (*Registry, error) {
	r := &Registry{byTag: make(map[string]*Bundle)}
	for i, spec := range specs {
		b, err := newBundle(spec)
		if err != nil {
			return nil, fmt.Errorf("language %d (%q): %w", i, spec.Name, err)
		}
		for _, tag := range append([]string{spec.Name}, spec.Aliases...) {
			key := normalizeTag(tag)
			if key == "" {
				continue
			}
			if prev, ok := r.byTag[key]; ok {
				return nil, fmt.Errorf("tag %q used by %q and %q: %w", key, prev.name, b.name, ErrDuplicateTag)
			}
			r.byTag[key] = b
		}
		r.bundles = append(r.bundles, b)
	}
	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the embedded language list.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(DefaultSpecs())
		if err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Resolve returns the bundle for tag, or nil for empty and unknown tags.
func (r *Registry) Resolve(tag string) *Bundle {
	if r == nil {
		return nil
	}
	return r.byTag[normalizeTag(tag)]
}

// Bundles returns every bundle in declared order.
func (r *Registry) Bundles() []*Bundle {
	if r == nil {
		return nil
	}
	return append([]*Bundle(nil), r.bundles...)
}

// Fenced returns the bundles offered for new fenced blocks, in priority order.
func (r *Registry) Fenced() []*Bundle {
	if r == nil {
		return nil
	}
	var out []*Bundle
	for _, b := range r.bundles {
		if b.fence {
			out = append(out, b)
		}
	}
	return out
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func lookupLexer(name string) (chroma.Lexer, error) {
	lexer := lexers.Get(name)
	if lexer == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownLexer)
	}
	return chroma.Coalesce(lexer), nil
}
