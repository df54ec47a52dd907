package urlkit

import (
	"net/url"
	"strings"
)

// MDN's link graph points heavily at site sections (blog, play, plus,
// curriculum) that must never be crawled from a documentation seed, so
// scope on that host is narrowed to the documentation section itself.
// Legacy MDN URLs capitalized the section segment, hence the sibling
// spelling.
const (
	mdnHost          = "developer.mozilla.org"
	docsMarker       = "/docs/"
	docsMarkerLegacy = "/Docs/"
)

// InScope reports whether rawURL is in crawl scope relative to seedURL.
//
// A URL on a different host is never in scope. On the MDN documentation
// host, when the seed path contains the documentation-section marker,
// scope is narrowed to URLs whose path contains the marker (or its
// legacy spelling) and which carry no query string and no fragment.
// For every other same-host case, a URL is in scope iff its path starts
// with the seed's path and it carries no query string; fragments are
// not checked in this case.
//
// Any parse failure on either URL yields false.
func InScope(rawURL, seedURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	seed, err := url.Parse(seedURL)
	if err != nil {
		return false
	}

	if u.Host != seed.Host {
		return false
	}

	if seed.Host == mdnHost && containsDocsMarker(seed.Path) {
		return containsDocsMarker(u.Path) && u.RawQuery == "" && u.Fragment == ""
	}

	return strings.HasPrefix(u.Path, seed.Path) && u.RawQuery == ""
}

func containsDocsMarker(path string) bool {
	return strings.Contains(path, docsMarker) || strings.Contains(path, docsMarkerLegacy)
}
