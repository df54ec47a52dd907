package harvest

import (
	"context"
	"fmt"

	"github.com/jonesrussell/vaultcrawl/internal/batch"
	"github.com/jonesrussell/vaultcrawl/internal/crawler"
	"github.com/jonesrussell/vaultcrawl/internal/logger"
)

// Report is the outcome of one end-to-end harvest run.
type Report struct {
	Crawl   *crawler.Result
	Batches batch.Summary
	Pages   Stats
}

// Pipeline runs discovery and feeds the collected URL list through the
// batch orchestrator into the harvest stage.
type Pipeline struct {
	scheduler    *crawler.Scheduler
	orchestrator *batch.Orchestrator
	stage        *Stage
	journal      NoteStore
	logger       logger.Interface
}

// NewPipeline composes a harvest pipeline.
func NewPipeline(
	scheduler *crawler.Scheduler,
	orchestrator *batch.Orchestrator,
	stage *Stage,
	journal NoteStore,
	log logger.Interface,
) *Pipeline {
	return &Pipeline{
		scheduler:    scheduler,
		orchestrator: orchestrator,
		stage:        stage,
		journal:      journal,
		logger:       log,
	}
}

// Run crawls from seedURL and harvests every collected page. Per-URL
// and per-batch failures are contained; only configuration errors and
// context cancellation abort the run.
func (p *Pipeline) Run(ctx context.Context, seedURL string, opts crawler.Options) (*Report, error) {
	crawlResult, err := p.scheduler.Crawl(ctx, seedURL, opts)
	if err != nil {
		return nil, err
	}

	if crawlResult.Empty() {
		p.logger.Warn("Crawl produced no results beyond the seed", "seed", seedURL)
	}

	summary := p.orchestrator.Run(ctx, crawlResult.Collected, p.stage)
	stats := p.stage.Stats()

	entry := fmt.Sprintf("- Harvested %d of %d pages from %s (%d batches, %d failed)",
		stats.Succeeded, stats.Attempted, seedURL, len(summary.Batches), summary.Failed)
	if journalErr := p.journal.AppendJournal(entry); journalErr != nil {
		p.logger.Warn("Failed to write journal entry", "error", journalErr)
	}

	return &Report{
		Crawl:   crawlResult,
		Batches: summary,
		Pages:   stats,
	}, nil
}

// DiscoverLinks runs the discovery stage alone.
func (p *Pipeline) DiscoverLinks(ctx context.Context, seedURL string, opts crawler.Options) (*crawler.Result, error) {
	return p.scheduler.Crawl(ctx, seedURL, opts)
}

// CrawlDocs runs the full pipeline. It exists so the pipeline satisfies
// the MCP service contract under the tool's name.
func (p *Pipeline) CrawlDocs(ctx context.Context, seedURL string, opts crawler.Options) (*Report, error) {
	return p.Run(ctx, seedURL, opts)
}

// FetchPage returns one page's note content, serving the stored note
// when present and otherwise fetching, extracting, and persisting it.
func (p *Pipeline) FetchPage(ctx context.Context, pageURL string) (string, error) {
	cached, ok, err := p.journal.Lookup(pageURL)
	if err != nil {
		return "", err
	}
	if ok {
		return cached, nil
	}

	note, err := p.stage.extractPage(ctx, pageURL)
	if err != nil {
		return "", err
	}

	if _, err := p.journal.WritePage(vaultPage(note)); err != nil {
		return "", err
	}

	stored, _, err := p.journal.Lookup(pageURL)
	if err != nil {
		return "", err
	}
	return stored, nil
}
