package slug

import "testing"

// TestGenerate exercises the slug generator with typical titles, special
// characters, Unicode scripts, and edge cases.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal titles ---
		{
			name:  "simple two words",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "title with year",
			input: "Hello World 2026",
			want:  "hello-world-2026",
		},
		{
			name:  "already lowercase",
			input: "already lowercase",
			want:  "already-lowercase",
		},
		{
			name:  "single word",
			input: "GoLang",
			want:  "golang",
		},

		// --- Special characters ---
		{
			name:  "punctuation marks",
			input: "Hello, World! How's it going?",
			want:  "hello-world-hows-it-going",
		},
		{
			name:  "ampersand and at sign",
			input: "Rock & Roll @ the Arena",
			want:  "rock-roll-the-arena",
		},
		{
			name:  "parentheses and brackets",
			input: "Version (2.0) [Beta]",
			want:  "version-20-beta",
		},
		{
			name:  "hash and dollar",
			input: "Issue #42 costs $100",
			want:  "issue-42-costs-100",
		},

		// --- Unicode ---
		{
			name:  "accented latin preserved",
			input: "Café Déjà Vu",
			want:  "café-déjà-vu",
		},
		{
			name:  "persian title preserved",
			input: "آموزش برنامه نویسی",
			want:  "آموزش-برنامه-نویسی",
		},
		{
			name:  "cjk preserved",
			input: "你好 世界",
			want:  "你好-世界",
		},
		{
			name:  "mixed scripts",
			input: "Go 言語 Tutorial",
			want:  "go-言語-tutorial",
		},

		// --- Edge cases ---
		{
			name:  "leading and trailing spaces",
			input: "   padded title   ",
			want:  "padded-title",
		},
		{
			name:  "multiple internal spaces",
			input: "too    many     spaces",
			want:  "too-many-spaces",
		},
		{
			name:  "existing hyphens kept and collapsed",
			input: "pre-built -- components",
			want:  "pre-built-components",
		},
		{
			name:  "only punctuation",
			input: "!!! ??? ...",
			want:  "",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "tabs and newlines",
			input: "line\tone\nline two",
			want:  "line-one-line-two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
