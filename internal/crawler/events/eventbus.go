package events

import "sync"

// Bus distributes crawl progress events to subscribed handlers.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{handlers: make([]Handler, 0)}
}

// Subscribe adds an event handler to the bus.
func (b *Bus) Subscribe(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

// snapshot copies the handler list under read lock so dispatch happens
// without holding it.
func (b *Bus) snapshot() []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	return handlers
}

// PublishPageFetched publishes a page-fetched event to all handlers.
func (b *Bus) PublishPageFetched(e PageFetched) {
	for _, h := range b.snapshot() {
		h.HandlePageFetched(e)
	}
}

// PublishFetchFailed publishes a fetch-failed event to all handlers.
func (b *Bus) PublishFetchFailed(e FetchFailed) {
	for _, h := range b.snapshot() {
		h.HandleFetchFailed(e)
	}
}

// PublishLevelCompleted publishes a level-completed event to all handlers.
func (b *Bus) PublishLevelCompleted(e LevelCompleted) {
	for _, h := range b.snapshot() {
		h.HandleLevelCompleted(e)
	}
}

// PublishCrawlFinished publishes a crawl-finished event to all handlers.
func (b *Bus) PublishCrawlFinished(e CrawlFinished) {
	for _, h := range b.snapshot() {
		h.HandleCrawlFinished(e)
	}
}
