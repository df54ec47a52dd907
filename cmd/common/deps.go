// Package common provides shared dependency construction for the
// vaultcrawl commands.
package common

import (
	"fmt"

	"github.com/jonesrussell/vaultcrawl/internal/batch"
	"github.com/jonesrussell/vaultcrawl/internal/config"
	"github.com/jonesrussell/vaultcrawl/internal/content"
	"github.com/jonesrussell/vaultcrawl/internal/crawler"
	"github.com/jonesrussell/vaultcrawl/internal/crawler/events"
	"github.com/jonesrussell/vaultcrawl/internal/fetcher"
	"github.com/jonesrussell/vaultcrawl/internal/harvest"
	"github.com/jonesrussell/vaultcrawl/internal/logger"
	"github.com/jonesrussell/vaultcrawl/internal/vault"
)

// Deps holds the dependencies shared by all commands.
type Deps struct {
	Config    *config.Config
	Logger    logger.Interface
	Scheduler *crawler.Scheduler
}

// NewCommandDeps loads configuration and constructs the logger and the
// crawl scheduler. Configuration errors are fatal here, before any
// crawling begins.
func NewCommandDeps() (*Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	client := fetcher.New(cfg.FetcherConfig())
	scheduler := crawler.New(client, log, events.NewBus())
	scheduler.Subscribe(events.NewLoggingHandler(log))

	return &Deps{
		Config:    cfg,
		Logger:    log,
		Scheduler: scheduler,
	}, nil
}

// NewPipeline constructs the full harvest pipeline on top of the
// shared dependencies. vaultDir overrides the configured vault
// directory when non-empty.
func (d *Deps) NewPipeline(vaultDir string) (*harvest.Pipeline, error) {
	if vaultDir == "" {
		vaultDir = d.Config.Vault.Dir
	}

	store, err := vault.New(vaultDir)
	if err != nil {
		return nil, err
	}

	client := fetcher.New(d.Config.FetcherConfig())
	stage := harvest.NewStage(client, content.NewExtractor(), store, d.Logger)
	orchestrator := batch.New(d.Config.BatchConfigValue(), d.Logger)

	return harvest.NewPipeline(d.Scheduler, orchestrator, stage, store, d.Logger), nil
}
