// Package harvest wires crawl discovery, batch orchestration, content
// extraction, and vault persistence into one pipeline.
package harvest

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonesrussell/vaultcrawl/internal/batch"
	"github.com/jonesrussell/vaultcrawl/internal/content"
	"github.com/jonesrussell/vaultcrawl/internal/logger"
	"github.com/jonesrussell/vaultcrawl/internal/vault"
)

// Fetcher retrieves one URL's HTML.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor turns page HTML into a markdown note.
type Extractor interface {
	Extract(pageURL, documentHTML string) (*content.Note, error)
}

// NoteStore persists extracted pages and serves them back.
type NoteStore interface {
	WritePage(page vault.Page) (string, error)
	Lookup(url string) (content string, ok bool, err error)
	AppendJournal(entry string) error
}

// Stats counts per-URL outcomes across one stage's lifetime.
type Stats struct {
	Attempted int
	Succeeded int
	Failed    int
}

// Stage processes one batch at a time: fetch, extract, persist. A
// per-URL failure is logged and counted; only a persistence failure
// (the vault itself unwritable) fails the whole batch.
type Stage struct {
	fetcher   Fetcher
	extractor Extractor
	store     NoteStore
	logger    logger.Interface

	mu    sync.Mutex
	stats Stats
}

// NewStage creates a harvest stage.
func NewStage(fetcher Fetcher, extractor Extractor, store NoteStore, log logger.Interface) *Stage {
	return &Stage{
		fetcher:   fetcher,
		extractor: extractor,
		store:     store,
		logger:    log,
	}
}

// ProcessBatch implements batch.Processor.
func (s *Stage) ProcessBatch(ctx context.Context, b batch.Batch) error {
	for _, pageURL := range b.URLs {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.record(func(st *Stats) { st.Attempted++ })

		note, err := s.extractPage(ctx, pageURL)
		if err != nil {
			s.record(func(st *Stats) { st.Failed++ })
			s.logger.Warn("Skipping page",
				"url", pageURL,
				"batch", b.Index,
				"error", err)
			continue
		}

		path, err := s.store.WritePage(vaultPage(note))
		if err != nil {
			s.record(func(st *Stats) { st.Failed++ })
			return fmt.Errorf("persist %s: %w", pageURL, err)
		}

		s.record(func(st *Stats) { st.Succeeded++ })
		s.logger.Debug("Persisted page", "url", pageURL, "path", path)
	}

	return nil
}

// extractPage fetches and extracts one URL.
func (s *Stage) extractPage(ctx context.Context, pageURL string) (*content.Note, error) {
	documentHTML, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	note, err := s.extractor.Extract(pageURL, documentHTML)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	return note, nil
}

// vaultPage maps an extracted note onto its persisted form.
func vaultPage(note *content.Note) vault.Page {
	return vault.Page{
		URL:      note.URL,
		Title:    note.Title,
		Markdown: note.Markdown,
		Excerpt:  note.Excerpt,
	}
}

// Stats returns a snapshot of the per-URL tallies.
func (s *Stage) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Stage) record(update func(*Stats)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	update(&s.stats)
}
