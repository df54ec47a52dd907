// Package batch partitions a discovered URL list into bounded-size work
// units and drives the downstream extraction stage per batch, with
// inter-batch pacing and per-batch fault isolation.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/vaultcrawl/internal/logger"
)

const (
	// DefaultSize is the documented default batch size.
	DefaultSize = 100
	// DefaultDelay is the pacing delay between non-final batches.
	DefaultDelay = 1 * time.Second
)

// Batch is one contiguous slice of the URL list handed to the
// downstream stage as a unit of fault isolation.
type Batch struct {
	// Index is the zero-based position of this batch.
	Index int
	// URLs are the batch members, in list order.
	URLs []string
	// ManifestPath is the scratch file listing the batch's URLs, one
	// per line. Empty when no scratch directory is configured. The
	// file is deleted as soon as the downstream call returns.
	ManifestPath string
}

// Processor consumes one batch. An error fails that batch only.
type Processor interface {
	ProcessBatch(ctx context.Context, b Batch) error
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(ctx context.Context, b Batch) error

// ProcessBatch calls f.
func (f ProcessorFunc) ProcessBatch(ctx context.Context, b Batch) error {
	return f(ctx, b)
}

// BatchResult records the outcome of one batch.
type BatchResult struct {
	Index int
	Size  int
	Err   error
}

// Summary reports a whole orchestrator run.
type Summary struct {
	Batches   []BatchResult
	Succeeded int
	Failed    int
}

// Config configures the orchestrator.
type Config struct {
	// Size is the maximum batch size. Defaults to DefaultSize.
	Size int
	// Delay is the fixed pause between non-final batches. Defaults to
	// DefaultDelay.
	Delay time.Duration
	// ScratchDir, when set, receives an ephemeral manifest file per
	// batch for downstream stages that consume file listings.
	ScratchDir string
}

// WithDefaults fills unset fields with defaults.
func (c Config) WithDefaults() Config {
	if c.Size <= 0 {
		c.Size = DefaultSize
	}
	if c.Delay <= 0 {
		c.Delay = DefaultDelay
	}
	return c
}

// Orchestrator slices a URL list into batches and runs them in order.
// It holds no state beyond the current batch boundary.
type Orchestrator struct {
	cfg    Config
	logger logger.Interface
}

// New creates a batch orchestrator.
func New(cfg Config, log logger.Interface) *Orchestrator {
	return &Orchestrator{
		cfg:    cfg.WithDefaults(),
		logger: log,
	}
}

// Partition splits urls into contiguous batches of at most size
// elements. The last batch may be smaller.
func Partition(urls []string, size int) [][]string {
	if size <= 0 || len(urls) == 0 {
		return nil
	}
	batches := make([][]string, 0, (len(urls)+size-1)/size)
	for start := 0; start < len(urls); start += size {
		end := min(start+size, len(urls))
		batches = append(batches, urls[start:end])
	}
	return batches
}

// Run partitions urls and invokes the processor per batch, in order.
// A batch's failure is recorded and the orchestrator proceeds to the
// next batch; only context cancellation stops the run early.
func (o *Orchestrator) Run(ctx context.Context, urls []string, processor Processor) Summary {
	groups := Partition(urls, o.cfg.Size)
	summary := Summary{Batches: make([]BatchResult, 0, len(groups))}

	for i, group := range groups {
		if i > 0 {
			// Fixed pacing delay between any two batches.
			if err := o.pause(ctx); err != nil {
				o.logger.Warn("Batch run cancelled", "batches_remaining", len(groups)-i)
				return summary
			}
		}

		err := o.runBatch(ctx, Batch{Index: i, URLs: group}, processor)

		result := BatchResult{Index: i, Size: len(group), Err: err}
		summary.Batches = append(summary.Batches, result)
		if err != nil {
			summary.Failed++
			o.logger.Error("Batch failed, continuing with next batch",
				"batch", i,
				"size", len(group),
				"error", err)
			continue
		}
		summary.Succeeded++
		o.logger.Info("Batch completed", "batch", i, "size", len(group))
	}

	return summary
}

// pause waits the configured inter-batch delay or until ctx is done.
func (o *Orchestrator) pause(ctx context.Context) error {
	timer := time.NewTimer(o.cfg.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runBatch prepares the scratch manifest, invokes the processor, and
// deletes the manifest whether or not the batch succeeded.
func (o *Orchestrator) runBatch(ctx context.Context, b Batch, processor Processor) error {
	if o.cfg.ScratchDir != "" {
		path, err := o.writeManifest(b)
		if err != nil {
			return fmt.Errorf("write batch manifest: %w", err)
		}
		b.ManifestPath = path
		defer func() {
			if removeErr := os.Remove(path); removeErr != nil {
				o.logger.Warn("Failed to remove batch manifest", "path", path, "error", removeErr)
			}
		}()
	}

	return processor.ProcessBatch(ctx, b)
}

// writeManifest writes the batch's URLs to a uniquely named scratch
// file, one URL per line.
func (o *Orchestrator) writeManifest(b Batch) (string, error) {
	if err := os.MkdirAll(o.cfg.ScratchDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(o.cfg.ScratchDir, fmt.Sprintf("batch-%s.txt", uuid.NewString()))
	content := strings.Join(b.URLs, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
