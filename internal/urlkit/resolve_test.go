package urlkit_test

import (
	"testing"

	"github.com/jonesrussell/vaultcrawl/internal/urlkit"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	base := "https://example.com/docs/guide/"

	tests := []struct {
		name      string
		candidate string
		base      string
		want      string
		wantOK    bool
	}{
		{
			name:      "relative path",
			candidate: "intro",
			base:      base,
			want:      "https://example.com/docs/guide/intro",
			wantOK:    true,
		},
		{
			name:      "parent relative path",
			candidate: "../api/",
			base:      base,
			want:      "https://example.com/docs/api/",
			wantOK:    true,
		},
		{
			name:      "root relative path",
			candidate: "/pricing",
			base:      base,
			want:      "https://example.com/pricing",
			wantOK:    true,
		},
		{
			name:      "absolute URL ignores base",
			candidate: "https://other.com/b",
			base:      base,
			want:      "https://other.com/b",
			wantOK:    true,
		},
		{
			name:      "protocol relative URL",
			candidate: "//cdn.example.com/lib.js",
			base:      base,
			want:      "https://cdn.example.com/lib.js",
			wantOK:    true,
		},
		{
			name:      "query preserved",
			candidate: "search?q=go",
			base:      base,
			want:      "https://example.com/docs/guide/search?q=go",
			wantOK:    true,
		},
		{
			name:      "malformed candidate",
			candidate: "http://exa mple.com/%zz",
			base:      base,
			wantOK:    false,
		},
		{
			name:      "malformed base",
			candidate: "intro",
			base:      "://not-a-url",
			wantOK:    false,
		},
		{
			name:      "scheme-less result",
			candidate: "mailto:hi@example.com",
			base:      base,
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := urlkit.Resolve(tt.candidate, tt.base)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q, %q) ok = %v, want %v", tt.candidate, tt.base, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.candidate, tt.base, got, tt.want)
			}
		})
	}
}

func TestResolveKeepsDistinctForms(t *testing.T) {
	t.Parallel()

	// No normalization means these all stay distinct result strings.
	base := "https://example.com/"
	variants := []string{
		"/Docs/Web",
		"/docs/web",
		"/docs/web/",
		"/docs/web?a=1&b=2",
		"/docs/web?b=2&a=1",
	}

	seen := make(map[string]struct{})
	for _, v := range variants {
		got, ok := urlkit.Resolve(v, base)
		if !ok {
			t.Fatalf("Resolve(%q) failed unexpectedly", v)
		}
		if _, dup := seen[got]; dup {
			t.Errorf("Resolve(%q) collapsed into an earlier variant: %q", v, got)
		}
		seen[got] = struct{}{}
	}
}
