package events

import "github.com/jonesrussell/vaultcrawl/internal/logger"

// LoggingHandler is the default event handler. It reports crawl
// progress through the structured logger.
type LoggingHandler struct {
	logger logger.Interface
}

// NewLoggingHandler creates a handler that logs all crawl events.
func NewLoggingHandler(log logger.Interface) *LoggingHandler {
	return &LoggingHandler{logger: log}
}

// HandlePageFetched logs a fetched page and its link count.
func (h *LoggingHandler) HandlePageFetched(e PageFetched) {
	h.logger.Info("Fetched page",
		"url", e.URL,
		"level", e.Level,
		"links_found", e.LinksFound)
}

// HandleFetchFailed logs a failed fetch.
func (h *LoggingHandler) HandleFetchFailed(e FetchFailed) {
	h.logger.Warn("Fetch failed, continuing",
		"url", e.URL,
		"level", e.Level,
		"error", e.Err)
}

// HandleLevelCompleted logs level progress.
func (h *LoggingHandler) HandleLevelCompleted(e LevelCompleted) {
	h.logger.Info("Level completed",
		"level", e.Level,
		"collected", e.Collected,
		"next_frontier", e.NextFrontier)
}

// HandleCrawlFinished logs the final crawl tallies.
func (h *LoggingHandler) HandleCrawlFinished(e CrawlFinished) {
	h.logger.Info("Crawl finished",
		"seed", e.Seed,
		"fetched", e.Fetched,
		"fetch_errors", e.FetchErrors,
		"unique_discovered", e.UniqueDiscovered,
		"collected", e.Collected)
}
