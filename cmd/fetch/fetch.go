// Package fetch implements the fetch command for retrieving a single
// page as markdown.
package fetch

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/vaultcrawl/cmd/common"
)

// Command returns the fetch command for use in the root command.
func Command() *cobra.Command {
	var vaultDir string

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a single page as a markdown note",
		Long: `Fetch retrieves one page, extracts its readable content, and prints
the resulting markdown note to stdout. Pages already present in the
vault are served from it without a network request.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			defer func() { _ = deps.Logger.Sync() }()

			pipeline, err := deps.NewPipeline(vaultDir)
			if err != nil {
				return err
			}

			note, err := pipeline.FetchPage(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout, note)
			return nil
		},
	}

	cmd.Flags().StringVar(&vaultDir, "vault", "", "vault directory (overrides config)")

	return cmd
}
