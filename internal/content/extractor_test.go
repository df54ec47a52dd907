package content_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/vaultcrawl/internal/content"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Installing the Toolchain</title></head>
<body>
  <nav><a href="/docs">Docs home</a></nav>
  <article>
    <h1>Installing the Toolchain</h1>
    <p>This guide walks through installing the toolchain on a fresh machine.
    Download the archive for your platform, verify the checksum against the
    published list, and unpack it into a directory on your path.</p>
    <p>Once the binaries are unpacked, run the version command to confirm the
    installation works. If the command is not found, check that the install
    directory is listed in your shell profile and restart the shell.</p>
    <p>Upgrading later follows the same steps. The installer never touches
    your project files, so an upgrade is safe to run at any time without
    backing anything up first.</p>
  </article>
  <footer>Copyright notice</footer>
</body>
</html>`

func TestExtract(t *testing.T) {
	t.Parallel()

	e := content.NewExtractor()

	note, err := e.Extract("https://example.com/docs/install", articleHTML)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/docs/install", note.URL)
	assert.Equal(t, "Installing the Toolchain", note.Title)
	assert.Contains(t, note.Markdown, "verify the checksum")
	assert.Contains(t, note.Markdown, "run the version command")
	assert.Positive(t, note.WordCount)
}

func TestExtractEmptyDocument(t *testing.T) {
	t.Parallel()

	e := content.NewExtractor()

	tests := []struct {
		name string
		html string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := e.Extract("https://example.com/docs", tt.html)
			require.Error(t, err)
			assert.True(t, errors.Is(err, content.ErrNoContent))
		})
	}
}

func TestExtractInvalidPageURL(t *testing.T) {
	t.Parallel()

	e := content.NewExtractor()

	_, err := e.Extract("http://exa mple.com/docs", articleHTML)
	require.Error(t, err)
}

func TestExtractTitleFallsBackToURL(t *testing.T) {
	t.Parallel()

	e := content.NewExtractor()

	html := strings.Replace(articleHTML,
		"<head><title>Installing the Toolchain</title></head>", "<head></head>", 1)
	html = strings.Replace(html, "<h1>Installing the Toolchain</h1>", "", 1)

	note, err := e.Extract("https://example.com/docs/install", html)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/docs/install", note.Title)
}
