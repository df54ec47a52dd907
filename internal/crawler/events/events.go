// Package events provides the event types and bus used to surface
// crawl progress to operator-visible channels, separate from the
// primary URL-list output.
package events

// PageFetched is published after a page has been retrieved and its
// links extracted.
type PageFetched struct {
	URL        string
	Level      int
	LinksFound int
}

// FetchFailed is published when a page retrieval fails. The node
// contributes zero outbound links; the crawl continues.
type FetchFailed struct {
	URL   string
	Level int
	Err   error
}

// LevelCompleted is published after every URL at a level has been
// processed.
type LevelCompleted struct {
	Level        int
	Collected    int
	NextFrontier int
}

// CrawlFinished is published once per run with the final tallies.
type CrawlFinished struct {
	Seed             string
	Fetched          int
	FetchErrors      int
	UniqueDiscovered int
	Collected        int
}

// Handler receives crawl progress events. Implementations must be safe
// for concurrent use if the scheduler is run with a worker pool.
type Handler interface {
	HandlePageFetched(e PageFetched)
	HandleFetchFailed(e FetchFailed)
	HandleLevelCompleted(e LevelCompleted)
	HandleCrawlFinished(e CrawlFinished)
}
