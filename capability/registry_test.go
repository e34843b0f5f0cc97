package capability

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault_ResolveCaseInsensitiveAndAliases(t *testing.T) {
	r := Default()

	cases := []struct {
		tag  string
		want string
	}{
		{tag: "python", want: "python"},
		{tag: "PY", want: "python"},
		{tag: " Python3 ", want: "python"},
		{tag: "golang", want: "go"},
		{tag: "Go", want: "go"},
		{tag: "cxx", want: "cpp"},
		{tag: "yml", want: "yaml"},
		{tag: "sh", want: "bash"},
	}
	for _, tc := range cases {
		t.Run(tc.tag, func(t *testing.T) {
			b := r.Resolve(tc.tag)
			if b == nil {
				t.Fatalf("Resolve(%q)=nil", tc.tag)
			}
			if got := b.Name(); got != tc.want {
				t.Fatalf("name=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestDefault_AliasesShareBundle(t *testing.T) {
	r := Default()
	if r.Resolve("ts") != r.Resolve("typescript") {
		t.Fatalf("expected alias and name to resolve to the same bundle")
	}
}

func TestResolve_UnknownAndEmpty(t *testing.T) {
	r := Default()
	for _, tag := range []string{"", "  ", "nolangxyz"} {
		if b := r.Resolve(tag); b != nil {
			t.Fatalf("Resolve(%q)=%q, want nil", tag, b.Name())
		}
	}

	var nilRegistry *Registry
	if b := nilRegistry.Resolve("go"); b != nil {
		t.Fatalf("nil registry resolved a bundle")
	}
}

func TestDefault_FencedOrder(t *testing.T) {
	var got []string
	for _, b := range Default().Fenced() {
		got = append(got, b.Name())
	}
	want := []string{"javascript", "typescript", "python", "go", "rust", "java", "cpp", "html", "css", "json", "yaml", "sql", "bash"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fenced order mismatch (-want +got):\n%s", diff)
	}
	if got, want := len(Default().Bundles()), len(want)+1; got != want {
		t.Fatalf("bundles=%d, want %d", got, want)
	}
}

func TestNewRegistry_Errors(t *testing.T) {
	cases := []struct {
		name  string
		specs []LanguageSpec
		want  error
	}{
		{
			name:  "empty-name",
			specs: []LanguageSpec{{Name: " ", Lexer: "go"}},
			want:  ErrInvalidSpec,
		},
		{
			name: "duplicate-alias",
			specs: []LanguageSpec{
				{Name: "go", Aliases: []string{"g"}},
				{Name: "groovy", Aliases: []string{"G"}},
			},
			want: ErrDuplicateTag,
		},
		{
			name:  "unknown-lexer",
			specs: []LanguageSpec{{Name: "klingon", Lexer: "no-such-lexer-xyz"}},
			want:  ErrUnknownLexer,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRegistry(tc.specs)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err=%v, want %v", err, tc.want)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := []LanguageSpec{
		{Name: "go", Lexer: "go", Fence: true},
		{Name: "python", Lexer: "python", Fence: true},
	}
	extra := []LanguageSpec{
		{Name: "Python", Lexer: "python", Fence: false, Keywords: []string{"def"}},
		{Name: "lua", Lexer: "lua", Fence: true},
	}

	got := Merge(base, extra)
	want := []LanguageSpec{
		{Name: "go", Lexer: "go", Fence: true},
		{Name: "Python", Lexer: "python", Fence: false, Keywords: []string{"def"}},
		{Name: "lua", Lexer: "lua", Fence: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}

	r, err := NewRegistry(got)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if b := r.Resolve("lua"); b == nil {
		t.Fatalf("expected lua bundle")
	}
	if got, want := len(r.Fenced()), 2; got != want {
		t.Fatalf("fenced=%d, want %d", got, want)
	}
}

func TestParseSpecs(t *testing.T) {
	data := []byte(`
languages:
  - name: lua
    aliases: [luajit]
    fence: true
    keywords: [local, function]
`)
	got, err := ParseSpecs(data)
	if err != nil {
		t.Fatalf("ParseSpecs: %v", err)
	}
	want := []LanguageSpec{{Name: "lua", Aliases: []string{"luajit"}, Fence: true, Keywords: []string{"local", "function"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("specs mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseSpecs([]byte("languages: [")); err == nil {
		t.Fatalf("expected parse error")
	}
}
