// Package discover implements the discover command: link discovery
// without harvesting.
package discover

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/vaultcrawl/cmd/common"
)

// Command returns the discover command for use in the root command.
func Command() *cobra.Command {
	var (
		flags  common.CrawlFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "discover <seed-url>",
		Short: "Discover the pages reachable from a seed URL",
		Long: `Discover runs breadth-first, depth-bounded link discovery from the seed
URL and writes the collected URL list, one per line in discovery order,
to the output file or stdout. Nothing is fetched beyond what discovery
itself requires; no notes are written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			defer func() { _ = deps.Logger.Sync() }()

			opts, err := flags.Options(cmd, deps.Config)
			if err != nil {
				return err
			}

			result, err := deps.Scheduler.Crawl(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			list := strings.Join(result.Collected, "\n") + "\n"
			if output == "" || output == "-" {
				fmt.Fprint(os.Stdout, list)
			} else if writeErr := os.WriteFile(output, []byte(list), 0o644); writeErr != nil {
				return fmt.Errorf("write URL list: %w", writeErr)
			}

			common.RenderCrawlSummary(os.Stderr, result)
			return nil
		},
	}

	flags.Register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "",
		"file to write the URL list to (default stdout)")

	return cmd
}
