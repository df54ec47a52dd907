package common

import (
	"github.com/spf13/cobra"

	"github.com/jonesrussell/vaultcrawl/internal/config"
	"github.com/jonesrussell/vaultcrawl/internal/crawler"
	"github.com/jonesrussell/vaultcrawl/internal/urlkit"
)

// CrawlFlags are the per-command overrides for the crawl options.
type CrawlFlags struct {
	Depth   int
	MaxURLs int
	Scope   bool
	Exclude string
	Include string
}

// Register adds the crawl flags to a command.
func (f *CrawlFlags) Register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.Depth, "depth", config.DefaultDepth,
		"number of breadth-first levels to traverse")
	cmd.Flags().IntVar(&f.MaxURLs, "max-urls", config.DefaultMaxURLs,
		"hard cap on the number of collected URLs")
	cmd.Flags().BoolVar(&f.Scope, "scope", true,
		"restrict discovery to the seed's host and path")
	cmd.Flags().StringVar(&f.Exclude, "exclude", "",
		"comma-separated regular expressions; matching URLs are dropped")
	cmd.Flags().StringVar(&f.Include, "include", "",
		"comma-separated regular expressions; when set, only matching URLs are kept")
}

// Options merges the configured crawl options with any flags the user
// changed on this invocation. Pattern compilation failures are fatal
// configuration errors.
func (f *CrawlFlags) Options(cmd *cobra.Command, cfg *config.Config) (crawler.Options, error) {
	opts, err := cfg.CrawlerOptions()
	if err != nil {
		return crawler.Options{}, err
	}

	if cmd.Flags().Changed("depth") {
		opts.Depth = f.Depth
	}
	if cmd.Flags().Changed("max-urls") {
		opts.MaxURLs = f.MaxURLs
	}
	if cmd.Flags().Changed("scope") {
		opts.ScopeRestricted = f.Scope
	}
	if cmd.Flags().Changed("exclude") {
		exclude, compileErr := urlkit.CompilePatterns(urlkit.SplitPatternList(f.Exclude))
		if compileErr != nil {
			return crawler.Options{}, compileErr
		}
		opts.ExcludePatterns = exclude
	}
	if cmd.Flags().Changed("include") {
		include, compileErr := urlkit.CompilePatterns(urlkit.SplitPatternList(f.Include))
		if compileErr != nil {
			return crawler.Options{}, compileErr
		}
		opts.IncludePatterns = include
	}

	return opts, nil
}
