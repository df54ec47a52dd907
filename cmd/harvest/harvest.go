// Package harvest implements the harvest command: discovery plus
// batched extraction into the vault.
package harvest

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/vaultcrawl/cmd/common"
	"github.com/jonesrussell/vaultcrawl/internal/batch"
)

// Command returns the harvest command for use in the root command.
func Command() *cobra.Command {
	var (
		flags      common.CrawlFlags
		vaultDir   string
		batchSize  int
		batchDelay time.Duration
	)

	cmd := &cobra.Command{
		Use:   "harvest <seed-url>",
		Short: "Crawl a documentation site into the vault",
		Long: `Harvest discovers every page reachable from the seed URL, partitions
the collected list into batches, and converts each page into a markdown
note in the vault. A failed page or batch is reported and skipped; it
never aborts the rest of the run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			defer func() { _ = deps.Logger.Sync() }()

			if cmd.Flags().Changed("batch-size") {
				deps.Config.Batch.Size = batchSize
			}
			if cmd.Flags().Changed("batch-delay") {
				deps.Config.Batch.Delay = batchDelay
			}

			opts, err := flags.Options(cmd, deps.Config)
			if err != nil {
				return err
			}

			pipeline, err := deps.NewPipeline(vaultDir)
			if err != nil {
				return err
			}

			report, err := pipeline.Run(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			common.RenderHarvestSummary(os.Stderr, report)
			return nil
		},
	}

	flags.Register(cmd)
	cmd.Flags().StringVar(&vaultDir, "vault", "", "vault directory (overrides config)")
	cmd.Flags().IntVar(&batchSize, "batch-size", batch.DefaultSize,
		"maximum URLs per extraction batch")
	cmd.Flags().DurationVar(&batchDelay, "batch-delay", batch.DefaultDelay,
		"pause between extraction batches")

	return cmd
}
