package urlkit_test

import (
	"reflect"
	"testing"

	"github.com/jonesrussell/vaultcrawl/internal/urlkit"
)

const linkPageHTML = `<!DOCTYPE html>
<html>
<body>
  <nav><a href="/docs/a">Guide A</a></nav>
  <article>
    <a href="#top">Back to top</a>
    <a href="https://other.com/b">External</a>
    <a href="/docs/a">Guide A again</a>
    <a href="">Empty</a>
    <a name="anchor-only">No href</a>
    <a href="relative/page">Relative</a>
  </article>
</body>
</html>`

func TestExtractLinks(t *testing.T) {
	t.Parallel()

	links, err := urlkit.ExtractLinks(linkPageHTML, "https://example.com/docs/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"https://example.com/docs/a",
		"https://other.com/b",
		"https://example.com/docs/a",
		"https://example.com/docs/relative/page",
	}
	if !reflect.DeepEqual(links, want) {
		t.Errorf("ExtractLinks = %v, want %v", links, want)
	}
}

func TestExtractLinksNoAnchors(t *testing.T) {
	t.Parallel()

	links, err := urlkit.ExtractLinks("<html><body><p>plain text</p></body></html>", "https://example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("expected no links, got %v", links)
	}
}

func TestExtractLinksMalformedHTML(t *testing.T) {
	t.Parallel()

	// The HTML5 parser repairs broken markup rather than failing, so
	// link extraction still succeeds on truncated documents.
	links, err := urlkit.ExtractLinks(`<html><body><a href="/x">broken`, "https://example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"https://example.com/x"}
	if !reflect.DeepEqual(links, want) {
		t.Errorf("ExtractLinks = %v, want %v", links, want)
	}
}
