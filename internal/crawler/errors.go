package crawler

import (
	"errors"
	"fmt"
	"net/url"
)

var (
	// ErrMissingSeed is returned when no seed URL is provided.
	ErrMissingSeed = errors.New("seed URL is required")
	// ErrInvalidSeed is returned when the seed URL is not absolute.
	ErrInvalidSeed = errors.New("seed URL must be absolute with a scheme and host")
	// ErrInvalidDepth is returned when the configured depth is below 1.
	ErrInvalidDepth = errors.New("depth must be at least 1")
	// ErrInvalidMaxURLs is returned when the URL cap is below 1.
	ErrInvalidMaxURLs = errors.New("max URLs must be at least 1")
)

// validateOptions rejects configuration errors before any crawling
// begins. These are the only errors fatal to a whole run.
func validateOptions(seedURL string, opts Options) error {
	if seedURL == "" {
		return ErrMissingSeed
	}

	u, err := url.Parse(seedURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return ErrInvalidSeed
	}

	if opts.Depth < 1 {
		return ErrInvalidDepth
	}
	if opts.MaxURLs < 1 {
		return ErrInvalidMaxURLs
	}

	return nil
}
