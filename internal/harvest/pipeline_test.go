package harvest_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/vaultcrawl/internal/batch"
	"github.com/jonesrussell/vaultcrawl/internal/crawler"
	"github.com/jonesrussell/vaultcrawl/internal/harvest"
	"github.com/jonesrussell/vaultcrawl/internal/logger"
)

const seedURL = "https://example.com/docs/"

// docsSite is a small crawlable site: the seed links to two pages.
func docsSite() map[string]string {
	return map[string]string{
		seedURL: `<html><body>
			<a href="/docs/a">A</a>
			<a href="/docs/b">B</a>
		</body></html>`,
		"https://example.com/docs/a": "<html><body>page a</body></html>",
		"https://example.com/docs/b": "<html><body>page b</body></html>",
	}
}

func newPipeline(pages map[string]string, store *memoryStore) *harvest.Pipeline {
	log := logger.NewNoOp()
	f := &fakeFetcher{pages: pages}
	scheduler := crawler.New(f, log, nil)
	stage := harvest.NewStage(f, &passthroughExtractor{}, store, log)
	orchestrator := batch.New(batch.Config{Size: 2, Delay: time.Millisecond}, log)
	return harvest.NewPipeline(scheduler, orchestrator, stage, store, log)
}

func TestPipelineRun(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	p := newPipeline(docsSite(), store)

	opts := crawler.Options{Depth: 2, MaxURLs: 100, ScopeRestricted: true}
	report, err := p.Run(context.Background(), seedURL, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{
		seedURL,
		"https://example.com/docs/a",
		"https://example.com/docs/b",
	}, report.Crawl.Collected)

	assert.Equal(t, 2, report.Batches.Succeeded)
	assert.Zero(t, report.Batches.Failed)
	assert.Equal(t, harvest.Stats{Attempted: 3, Succeeded: 3}, report.Pages)
	assert.Len(t, store.notes, 3)

	require.Len(t, store.journal, 1)
	assert.Contains(t, store.journal[0], "Harvested 3 of 3 pages")
	assert.Contains(t, store.journal[0], seedURL)
}

func TestPipelineRunInvalidOptions(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	p := newPipeline(docsSite(), store)

	_, err := p.Run(context.Background(), seedURL, crawler.Options{Depth: 0, MaxURLs: 10})
	require.Error(t, err)
	assert.Empty(t, store.journal, "a failed run writes no journal entry")
}

func TestPipelineDiscoverLinksDoesNotHarvest(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	p := newPipeline(docsSite(), store)

	opts := crawler.Options{Depth: 2, MaxURLs: 100, ScopeRestricted: true}
	result, err := p.DiscoverLinks(context.Background(), seedURL, opts)
	require.NoError(t, err)

	assert.Len(t, result.Collected, 3)
	assert.Empty(t, store.notes, "discovery alone persists nothing")
}

func TestPipelineFetchPage(t *testing.T) {
	t.Parallel()

	pageURL := "https://example.com/docs/a"
	store := newMemoryStore()
	p := newPipeline(docsSite(), store)

	note, err := p.FetchPage(context.Background(), pageURL)
	require.NoError(t, err)
	assert.Contains(t, note, "page a")
	assert.Contains(t, store.notes, pageURL, "a fetched page is persisted")
}

func TestPipelineFetchPageServesStoredNote(t *testing.T) {
	t.Parallel()

	pageURL := "https://example.com/docs/cached"
	store := newMemoryStore()
	store.notes[pageURL] = "stored note content"

	// No canned pages: any network fetch would fail loudly.
	p := newPipeline(nil, store)

	note, err := p.FetchPage(context.Background(), pageURL)
	require.NoError(t, err)
	assert.Equal(t, "stored note content", note)
}

func TestPipelineFetchPageFailure(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	p := newPipeline(nil, store)

	_, err := p.FetchPage(context.Background(), "https://example.com/docs/missing")
	require.Error(t, err)
	assert.Empty(t, store.notes)
}

func TestPipelineRunEmptyCrawl(t *testing.T) {
	t.Parallel()

	seed := "https://example.com/empty"
	store := newMemoryStore()
	p := newPipeline(map[string]string{
		seed: "<html><body>no links here</body></html>",
	}, store)

	opts := crawler.Options{Depth: 2, MaxURLs: 100, ScopeRestricted: true}
	report, err := p.Run(context.Background(), seed, opts)
	require.NoError(t, err)

	assert.True(t, report.Crawl.Empty())
	// The seed itself is still harvested.
	assert.Equal(t, harvest.Stats{Attempted: 1, Succeeded: 1}, report.Pages)
}

func TestPipelineRunIsolatesBatchFailures(t *testing.T) {
	t.Parallel()

	// Five pages with batch size 2: the middle batch's pages are
	// unfetchable, the others succeed.
	seed := "https://example.com/docs/"
	pages := map[string]string{seed: ""}
	var links string
	for i := range 4 {
		links += fmt.Sprintf(`<a href="/docs/p%d">p</a>`, i)
	}
	pages[seed] = "<html><body>" + links + "</body></html>"
	pages["https://example.com/docs/p0"] = "<html><body>p0</body></html>"
	pages["https://example.com/docs/p3"] = "<html><body>p3</body></html>"

	store := newMemoryStore()
	p := newPipeline(pages, store)

	opts := crawler.Options{Depth: 2, MaxURLs: 100, ScopeRestricted: true}
	report, err := p.Run(context.Background(), seed, opts)
	require.NoError(t, err)

	// Batches: [seed p0] [p1 p2] [p3]. Fetch failures are per-URL
	// skips, so every batch still succeeds as a unit.
	assert.Equal(t, 3, report.Batches.Succeeded)
	assert.Equal(t, harvest.Stats{Attempted: 5, Succeeded: 3, Failed: 2}, report.Pages)
}
