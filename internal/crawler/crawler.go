// Package crawler implements the breadth-first, depth-bounded link
// discovery engine. One Scheduler invocation owns its crawl state
// exclusively, so multiple crawls can run concurrently in the same
// process without interference.
package crawler

import (
	"context"
	"regexp"

	"github.com/jonesrussell/vaultcrawl/internal/crawler/events"
	"github.com/jonesrussell/vaultcrawl/internal/logger"
	"github.com/jonesrussell/vaultcrawl/internal/urlkit"
)

// Fetcher retrieves one URL's HTML.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Options configures one crawl invocation. Options are immutable per
// run; pattern lists are compiled ahead of time so a bad expression is
// a configuration error, never a per-URL failure.
type Options struct {
	// Depth is the number of BFS levels to traverse. Must be >= 1.
	Depth int
	// MaxURLs is the hard cap on the collected result length. Must be >= 1.
	MaxURLs int
	// ScopeRestricted applies the origin/path scope policy to
	// discovered links when set.
	ScopeRestricted bool
	// ExcludePatterns drop any matching link. Exclude is evaluated
	// first and is authoritative.
	ExcludePatterns []*regexp.Regexp
	// IncludePatterns, when non-empty, keep only matching links.
	IncludePatterns []*regexp.Regexp
}

// Result is the outcome of one crawl invocation.
type Result struct {
	// Collected holds the accepted URLs in first-discovery order,
	// truncated to MaxURLs.
	Collected []string
	// Fetched is the number of pages retrieved successfully.
	Fetched int
	// FetchErrors is the number of pages whose retrieval failed.
	FetchErrors int
	// UniqueDiscovered is the number of distinct valid URLs extracted
	// from fetched pages, including ones excluded by policy.
	UniqueDiscovered int
	// SeedFetchFailed records that the seed page itself could not be
	// retrieved. The seed still appears in Collected.
	SeedFetchFailed bool
}

// Empty reports the distinct empty-result condition: nothing was
// collected beyond the seed itself.
func (r *Result) Empty() bool {
	return len(r.Collected) <= 1
}

// Scheduler drives breadth-first, level-synchronous link discovery.
type Scheduler struct {
	fetcher Fetcher
	logger  logger.Interface
	bus     *events.Bus
}

// New creates a crawl scheduler.
func New(fetcher Fetcher, log logger.Interface, bus *events.Bus) *Scheduler {
	if bus == nil {
		bus = events.NewBus()
	}
	return &Scheduler{
		fetcher: fetcher,
		logger:  log,
		bus:     bus,
	}
}

// Subscribe adds a handler for crawl progress events.
func (s *Scheduler) Subscribe(handler events.Handler) {
	s.bus.Subscribe(handler)
}

// state is the mutable crawl state exclusively owned by one Crawl call.
// It is created at the start of the invocation and discarded when the
// collected list is returned; nothing persists across runs.
type state struct {
	visited    map[string]struct{}
	discovered map[string]struct{}
	frontier   []string
	collected  []string
}

func newState(seed string) *state {
	return &state{
		visited:    make(map[string]struct{}),
		discovered: make(map[string]struct{}),
		frontier:   []string{seed},
	}
}

// Crawl discovers the set of pages reachable from seedURL within
// opts.Depth levels and returns them in first-discovery order, capped
// at opts.MaxURLs.
//
// The seed is never subjected to scope or pattern filtering. Fetch
// failures contribute zero outbound links and never abort the run. The
// cap is only checked between levels, so a level may temporarily
// overshoot MaxURLs before the final truncation.
//
// Context cancellation stops the crawl at the next fetch boundary and
// returns the URLs collected so far along with ctx.Err().
func (s *Scheduler) Crawl(ctx context.Context, seedURL string, opts Options) (*Result, error) {
	if err := validateOptions(seedURL, opts); err != nil {
		return nil, err
	}

	st := newState(seedURL)
	result := &Result{}

	s.logger.Info("Starting crawl",
		"seed", seedURL,
		"depth", opts.Depth,
		"max_urls", opts.MaxURLs,
		"scope_restricted", opts.ScopeRestricted)

	for level := 0; level < opts.Depth; level++ {
		currentLevel := st.frontier
		st.frontier = nil
		finalLevel := level == opts.Depth-1

		for _, target := range currentLevel {
			if _, seen := st.visited[target]; seen {
				continue
			}
			st.visited[target] = struct{}{}

			// Admission to the result is unconditional on first dequeue,
			// independent of whether the page's own links get filtered.
			st.collected = append(st.collected, target)

			if finalLevel {
				continue
			}

			if err := ctx.Err(); err != nil {
				s.finish(seedURL, st, opts, result)
				return result, err
			}

			s.expand(ctx, st, target, seedURL, level, opts, result)
		}

		s.bus.PublishLevelCompleted(events.LevelCompleted{
			Level:        level,
			Collected:    len(st.collected),
			NextFrontier: len(st.frontier),
		})

		if len(st.collected) >= opts.MaxURLs {
			break
		}
	}

	s.finish(seedURL, st, opts, result)
	return result, nil
}

// expand fetches one page and feeds its surviving links into the next
// frontier.
func (s *Scheduler) expand(
	ctx context.Context,
	st *state,
	target, seedURL string,
	level int,
	opts Options,
	result *Result,
) {
	htmlContent, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		result.FetchErrors++
		if target == seedURL {
			result.SeedFetchFailed = true
		}
		s.bus.PublishFetchFailed(events.FetchFailed{URL: target, Level: level, Err: err})
		return
	}
	result.Fetched++

	links, err := urlkit.ExtractLinks(htmlContent, target)
	if err != nil {
		// Unparseable HTML is treated the same as a page with no links.
		s.logger.Debug("Failed to parse page HTML", "url", target, "error", err)
		links = nil
	}

	for _, link := range links {
		st.discovered[link] = struct{}{}

		if _, seen := st.visited[link]; seen {
			continue
		}
		if opts.ScopeRestricted && !urlkit.InScope(link, seedURL) {
			continue
		}
		if urlkit.MatchesAny(link, opts.ExcludePatterns) {
			continue
		}
		if len(opts.IncludePatterns) > 0 && !urlkit.MatchesAny(link, opts.IncludePatterns) {
			continue
		}

		st.frontier = append(st.frontier, link)
	}

	s.bus.PublishPageFetched(events.PageFetched{
		URL:        target,
		Level:      level,
		LinksFound: len(links),
	})
}

// finish caps the collected list, copies the final tallies into the
// result, and publishes the crawl-finished event. Every exit path of
// Crawl goes through here so the MaxURLs cap holds on cancellation too.
func (s *Scheduler) finish(seedURL string, st *state, opts Options, result *Result) {
	if len(st.collected) > opts.MaxURLs {
		st.collected = st.collected[:opts.MaxURLs]
	}
	result.Collected = st.collected
	result.UniqueDiscovered = len(st.discovered)

	s.bus.PublishCrawlFinished(events.CrawlFinished{
		Seed:             seedURL,
		Fetched:          result.Fetched,
		FetchErrors:      result.FetchErrors,
		UniqueDiscovered: result.UniqueDiscovered,
		Collected:        len(result.Collected),
	})
}
