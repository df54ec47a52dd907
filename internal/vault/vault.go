// Package vault persists extracted pages as markdown notes in an
// Obsidian-style vault directory.
package vault

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kennygrant/sanitize"
)

const (
	pagesDir   = "Pages"
	journalDir = "Journal"

	dirPerm  = 0o755
	filePerm = 0o644
)

// Page is the persisted representation of one extracted page.
type Page struct {
	URL      string
	Title    string
	Markdown string
	Excerpt  string
	Tags     []string
}

// Vault writes and reads notes under a root directory.
type Vault struct {
	root string
	// now is swappable in tests.
	now func() time.Time
}

// New creates a vault rooted at dir. The directory is created when
// missing; failure is a configuration error for the caller.
func New(dir string) (*Vault, error) {
	if dir == "" {
		return nil, fmt.Errorf("vault directory is required")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create vault directory: %w", err)
	}
	return &Vault{root: dir, now: time.Now}, nil
}

// Root returns the vault root directory.
func (v *Vault) Root() string {
	return v.root
}

// NotePath maps a page URL to its note path inside the vault. The
// scheme, host, and path segments become directories under Pages/,
// each sanitized for the filesystem, so the http and https versions
// of a page get distinct notes; a trailing slash or empty path maps
// to index.md.
func (v *Vault) NotePath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse note URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("note URL %q needs a scheme and host", rawURL)
	}

	segments := []string{v.root, pagesDir, sanitize.BaseName(u.Scheme), sanitize.BaseName(u.Host)}
	for _, seg := range strings.Split(strings.Trim(u.Path, "/"), "/") {
		if seg == "" {
			continue
		}
		segments = append(segments, sanitize.BaseName(seg))
	}

	path := filepath.Join(segments...)
	if strings.HasSuffix(u.Path, "/") || u.Path == "" || u.Path == "/" {
		path = filepath.Join(path, "index")
	}

	return path + ".md", nil
}

// WritePage renders and persists one page note, returning the note
// path. An existing note for the same URL is overwritten.
func (v *Vault) WritePage(page Page) (string, error) {
	path, err := v.NotePath(page.URL)
	if err != nil {
		return "", err
	}

	front := Frontmatter{
		URL:     page.URL,
		Title:   page.Title,
		Crawled: v.now().UTC(),
		Tags:    page.Tags,
	}
	header, err := front.Render()
	if err != nil {
		return "", err
	}

	body := RenderTemplate(defaultNoteTemplate, map[string]string{
		"title":   page.Title,
		"excerpt": page.Excerpt,
		"content": page.Markdown,
		"url":     page.URL,
	})

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return "", fmt.Errorf("create note directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(header+"\n"+body), filePerm); err != nil {
		return "", fmt.Errorf("write note: %w", err)
	}

	return path, nil
}

// Lookup returns the stored note content for a URL, or ok=false when
// the page has not been persisted.
func (v *Vault) Lookup(rawURL string) (string, bool, error) {
	path, err := v.NotePath(rawURL)
	if err != nil {
		return "", false, err
	}

	body, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read note: %w", err)
	}

	return string(body), true, nil
}

// AppendJournal appends one entry to today's journal note, creating it
// when missing.
func (v *Vault) AppendJournal(entry string) error {
	day := v.now().Format("2006-01-02")
	path := filepath.Join(v.root, journalDir, day+".md")

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create journal directory: %w", err)
	}

	content := ""
	if existing, err := os.ReadFile(path); err == nil {
		content = strings.TrimRight(string(existing), "\n") + "\n"
	}
	content += strings.TrimRight(entry, "\n") + "\n"

	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}
