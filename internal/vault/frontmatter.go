package vault

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---\n"

// Frontmatter is the YAML metadata block at the top of a page note.
type Frontmatter struct {
	URL     string    `yaml:"url"`
	Title   string    `yaml:"title"`
	Crawled time.Time `yaml:"crawled"`
	Tags    []string  `yaml:"tags,omitempty"`
}

// Render serializes the frontmatter between `---` delimiters.
func (f Frontmatter) Render() (string, error) {
	body, err := yaml.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	return frontmatterDelimiter + string(body) + "---\n", nil
}

// ParseFrontmatter splits a note into its YAML frontmatter and the
// remaining markdown content. Notes without a leading frontmatter
// block, with an unterminated block, or with invalid YAML yield an
// empty map and the full content unchanged.
func ParseFrontmatter(note string) (map[string]any, string) {
	if !strings.HasPrefix(note, frontmatterDelimiter) {
		return map[string]any{}, note
	}

	rest := note[len(frontmatterDelimiter):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		return map[string]any{}, note
	}

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(rest[:end]), &meta); err != nil || meta == nil {
		return map[string]any{}, note
	}

	return meta, rest[end+len("\n---\n"):]
}
