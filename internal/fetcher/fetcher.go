// Package fetcher performs single-attempt HTML retrieval for the crawl
// scheduler and the harvest stage.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// defaultUserAgent identifies as a current desktop browser so basic
	// bot filters do not reject the request outright.
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

	// acceptHeader asks explicitly for HTML content.
	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

	// DefaultTimeout bounds one request. A hung fetch would otherwise
	// block the whole crawl at that point.
	DefaultTimeout = 30 * time.Second

	// maxResponseBodyBytes limits the size of fetched page responses.
	maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB
)

// Config configures the HTTP client.
type Config struct {
	UserAgent string
	Timeout   time.Duration
	// RequestDelay, when positive, paces consecutive requests so the
	// origin never sees a burst from one crawl run.
	RequestDelay time.Duration
}

// WithDefaults fills unset fields with defaults.
func (c Config) WithDefaults() Config {
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Client fetches pages over HTTP. One attempt per URL per run; failures
// are returned to the caller, never retried here.
type Client struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
}

// New creates a fetch client.
func New(cfg Config) *Client {
	cfg = cfg.WithDefaults()
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
	}
	if cfg.RequestDelay > 0 {
		c.limiter = rate.NewLimiter(rate.Every(cfg.RequestDelay), 1)
	}
	return c
}

// Fetch retrieves the HTML of one URL. Non-2xx responses and non-HTML
// content types are errors. The response body is capped at 10 MB.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("request pacing: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, rawURL)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !isHTMLContentType(ct) {
		return "", fmt.Errorf("unsupported content type %q for %s", ct, rawURL)
	}

	limited := io.LimitReader(resp.Body, maxResponseBodyBytes)
	body, err := io.ReadAll(limited)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	return string(body), nil
}

func isHTMLContentType(contentType string) bool {
	return strings.Contains(contentType, "text/html") ||
		strings.Contains(contentType, "application/xhtml+xml")
}
