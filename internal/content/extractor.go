// Package content turns fetched page HTML into markdown notes ready
// for vault persistence.
package content

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	readability "github.com/go-shiori/go-readability"
)

// ErrNoContent is returned when readability yields nothing usable.
var ErrNoContent = errors.New("no readable content extracted")

// Note is the extracted representation of one page.
type Note struct {
	URL      string
	Title    string
	Markdown string
	Excerpt  string
	// WordCount is a rough size measure of the extracted text.
	WordCount int
}

// Extractor converts page HTML into markdown notes.
type Extractor struct{}

// NewExtractor creates a content extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract runs readability-style article extraction over the document
// and converts the result to markdown. The page URL is used to resolve
// relative references inside the article body.
func (e *Extractor) Extract(pageURL, documentHTML string) (*Note, error) {
	documentHTML = strings.TrimSpace(documentHTML)
	if documentHTML == "" {
		return nil, ErrNoContent
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page URL: %w", err)
	}

	article, err := readability.FromReader(strings.NewReader(documentHTML), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("readability extraction: %w", err)
	}

	articleHTML := strings.TrimSpace(article.Content)
	if articleHTML == "" {
		return nil, ErrNoContent
	}

	markdown, err := htmltomarkdown.ConvertString(articleHTML)
	if err != nil {
		return nil, fmt.Errorf("markdown conversion: %w", err)
	}

	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return nil, ErrNoContent
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = pageURL
	}

	return &Note{
		URL:       pageURL,
		Title:     title,
		Markdown:  markdown,
		Excerpt:   strings.TrimSpace(article.Excerpt),
		WordCount: len(strings.Fields(article.TextContent)),
	}, nil
}
