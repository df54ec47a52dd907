// Package urlkit provides URL resolution, link extraction, and the
// scope and pattern policies that decide which discovered links are
// eligible for crawling.
package urlkit

import "net/url"

// Resolve resolves candidate as a relative-or-absolute reference against
// base and returns the absolute URL string. It reports ok=false on any
// malformed input; callers must treat that as "silently skip this link".
// No normalization is applied beyond standard URL reference resolution,
// so URLs differing only in case, trailing slashes, or query-parameter
// order remain distinct.
func Resolve(candidate, base string) (string, bool) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", false
	}

	ref, err := url.Parse(candidate)
	if err != nil {
		return "", false
	}

	resolved := baseURL.ResolveReference(ref)
	if resolved.Scheme == "" || resolved.Host == "" {
		return "", false
	}

	return resolved.String(), true
}
