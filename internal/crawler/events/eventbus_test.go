package events_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/vaultcrawl/internal/crawler/events"
)

// recordingHandler counts received events.
type recordingHandler struct {
	mu       sync.Mutex
	fetched  []events.PageFetched
	failed   []events.FetchFailed
	levels   []events.LevelCompleted
	finished []events.CrawlFinished
}

func (h *recordingHandler) HandlePageFetched(e events.PageFetched) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fetched = append(h.fetched, e)
}

func (h *recordingHandler) HandleFetchFailed(e events.FetchFailed) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failed = append(h.failed, e)
}

func (h *recordingHandler) HandleLevelCompleted(e events.LevelCompleted) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.levels = append(h.levels, e)
}

func (h *recordingHandler) HandleCrawlFinished(e events.CrawlFinished) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.finished = append(h.finished, e)
}

func TestBusDispatchesToAllHandlers(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	first := &recordingHandler{}
	second := &recordingHandler{}
	bus.Subscribe(first)
	bus.Subscribe(second)

	bus.PublishPageFetched(events.PageFetched{URL: "https://example.com", LinksFound: 3})
	bus.PublishFetchFailed(events.FetchFailed{URL: "https://example.com/x", Err: errors.New("boom")})
	bus.PublishLevelCompleted(events.LevelCompleted{Level: 1, Collected: 4})
	bus.PublishCrawlFinished(events.CrawlFinished{Seed: "https://example.com", Collected: 4})

	for _, h := range []*recordingHandler{first, second} {
		assert.Len(t, h.fetched, 1)
		assert.Len(t, h.failed, 1)
		assert.Len(t, h.levels, 1)
		assert.Len(t, h.finished, 1)
	}
	assert.Equal(t, 3, first.fetched[0].LinksFound)
}

func TestBusWithoutHandlers(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	// Publishing with no subscribers must not panic.
	bus.PublishPageFetched(events.PageFetched{})
	bus.PublishCrawlFinished(events.CrawlFinished{})
}

func TestBusConcurrentSubscribeAndPublish(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			bus.Subscribe(&recordingHandler{})
		}()
		go func() {
			defer wg.Done()
			bus.PublishLevelCompleted(events.LevelCompleted{})
		}()
	}
	wg.Wait()
}
