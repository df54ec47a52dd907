package urlkit

import (
	"fmt"
	"regexp"
	"strings"
)

// CompilePatterns compiles a list of user-supplied regular expressions.
// A compilation failure is a configuration error and must abort the run
// before any crawling starts.
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// SplitPatternList splits a comma-separated pattern list into its
// elements, dropping empty entries.
func SplitPatternList(list string) []string {
	if list == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MatchesAny reports whether any pattern matches the raw URL string.
// An empty pattern list matches nothing.
func MatchesAny(rawURL string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(rawURL) {
			return true
		}
	}
	return false
}
