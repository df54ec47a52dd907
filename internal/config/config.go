// Package config loads and validates application configuration from
// config files, environment variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/vaultcrawl/internal/batch"
	"github.com/jonesrussell/vaultcrawl/internal/crawler"
	"github.com/jonesrussell/vaultcrawl/internal/fetcher"
	"github.com/jonesrussell/vaultcrawl/internal/logger"
	"github.com/jonesrussell/vaultcrawl/internal/urlkit"
)

// Default configuration values.
const (
	DefaultDepth        = 2
	DefaultMaxURLs      = 200
	DefaultBatchSize    = batch.DefaultSize
	DefaultBatchDelay   = batch.DefaultDelay
	DefaultRequestDelay = 500 * time.Millisecond
	DefaultVaultDir     = "vault"
)

// CrawlConfig configures the discovery engine.
type CrawlConfig struct {
	Depth           int           `mapstructure:"depth" yaml:"depth"`
	MaxURLs         int           `mapstructure:"max_urls" yaml:"max_urls"`
	ScopeRestricted bool          `mapstructure:"scope_restricted" yaml:"scope_restricted"`
	ExcludePatterns []string      `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
	IncludePatterns []string      `mapstructure:"include_patterns" yaml:"include_patterns"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	RequestDelay    time.Duration `mapstructure:"request_delay" yaml:"request_delay"`
	UserAgent       string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// BatchConfig configures the batch orchestrator.
type BatchConfig struct {
	Size       int           `mapstructure:"size" yaml:"size"`
	Delay      time.Duration `mapstructure:"delay" yaml:"delay"`
	ScratchDir string        `mapstructure:"scratch_dir" yaml:"scratch_dir"`
}

// VaultConfig configures note persistence.
type VaultConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// Config is the full application configuration.
type Config struct {
	Logger logger.Config `mapstructure:"logger" yaml:"logger"`
	Crawl  CrawlConfig   `mapstructure:"crawl" yaml:"crawl"`
	Batch  BatchConfig   `mapstructure:"batch" yaml:"batch"`
	Vault  VaultConfig   `mapstructure:"vault" yaml:"vault"`
}

// Load reads the configuration from viper's current state and
// validates it. Any validation failure is a configuration error and
// must abort the run before crawling begins.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults registers default values on viper.
func SetDefaults() {
	viper.SetDefault("logger", map[string]any{
		"level":        "info",
		"development":  false,
		"encoding":     "console",
		"output_paths": []string{"stderr"},
	})

	viper.SetDefault("crawl", map[string]any{
		"depth":            DefaultDepth,
		"max_urls":         DefaultMaxURLs,
		"scope_restricted": true,
		"request_timeout":  fetcher.DefaultTimeout.String(),
		"request_delay":    DefaultRequestDelay.String(),
	})

	viper.SetDefault("batch", map[string]any{
		"size":  DefaultBatchSize,
		"delay": DefaultBatchDelay.String(),
	})

	viper.SetDefault("vault", map[string]any{
		"dir": DefaultVaultDir,
	})
}

// BindEnv maps environment variables to config keys.
func BindEnv() error {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindings := map[string]string{
		"logger.level":    "LOG_LEVEL",
		"logger.encoding": "LOG_FORMAT",
		"vault.dir":       "VAULTCRAWL_VAULT_DIR",
		"crawl.depth":     "VAULTCRAWL_DEPTH",
		"crawl.max_urls":  "VAULTCRAWL_MAX_URLS",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s: %w", env, err)
		}
	}
	return nil
}

// Validate checks configuration bounds and compiles pattern lists so a
// bad regular expression surfaces here, not per URL.
func (c *Config) Validate() error {
	var errs []error

	if c.Crawl.Depth < 1 {
		errs = append(errs, crawler.ErrInvalidDepth)
	}
	if c.Crawl.MaxURLs < 1 {
		errs = append(errs, crawler.ErrInvalidMaxURLs)
	}
	if c.Batch.Size < 1 {
		errs = append(errs, errors.New("batch size must be at least 1"))
	}
	if c.Vault.Dir == "" {
		errs = append(errs, errors.New("vault directory is required"))
	}

	if _, err := urlkit.CompilePatterns(c.Crawl.ExcludePatterns); err != nil {
		errs = append(errs, fmt.Errorf("exclude patterns: %w", err))
	}
	if _, err := urlkit.CompilePatterns(c.Crawl.IncludePatterns); err != nil {
		errs = append(errs, fmt.Errorf("include patterns: %w", err))
	}

	return errors.Join(errs...)
}

// CrawlerOptions compiles the crawl configuration into scheduler
// options.
func (c *Config) CrawlerOptions() (crawler.Options, error) {
	exclude, err := urlkit.CompilePatterns(c.Crawl.ExcludePatterns)
	if err != nil {
		return crawler.Options{}, fmt.Errorf("exclude patterns: %w", err)
	}
	include, err := urlkit.CompilePatterns(c.Crawl.IncludePatterns)
	if err != nil {
		return crawler.Options{}, fmt.Errorf("include patterns: %w", err)
	}

	return crawler.Options{
		Depth:           c.Crawl.Depth,
		MaxURLs:         c.Crawl.MaxURLs,
		ScopeRestricted: c.Crawl.ScopeRestricted,
		ExcludePatterns: exclude,
		IncludePatterns: include,
	}, nil
}

// FetcherConfig maps the crawl configuration onto the HTTP client.
func (c *Config) FetcherConfig() fetcher.Config {
	return fetcher.Config{
		UserAgent:    c.Crawl.UserAgent,
		Timeout:      c.Crawl.RequestTimeout,
		RequestDelay: c.Crawl.RequestDelay,
	}
}

// BatchConfigValue maps the batch configuration onto the orchestrator.
func (c *Config) BatchConfigValue() batch.Config {
	return batch.Config{
		Size:       c.Batch.Size,
		Delay:      c.Batch.Delay,
		ScratchDir: c.Batch.ScratchDir,
	}
}
