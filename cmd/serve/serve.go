// Package serve implements the serve command, exposing the crawl and
// harvest operations as MCP tools over stdio.
package serve

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/vaultcrawl/cmd/common"
	"github.com/jonesrussell/vaultcrawl/internal/mcp"
)

// Command returns the serve command for use in the root command.
func Command() *cobra.Command {
	var vaultDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP stdio server",
		Long: `Serve speaks the Model Context Protocol on stdin/stdout so that MCP
clients can call the crawl_docs, discover_links, and fetch_page tools.
All diagnostics go to stderr; stdout carries protocol frames only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			defer func() { _ = deps.Logger.Sync() }()

			pipeline, err := deps.NewPipeline(vaultDir)
			if err != nil {
				return err
			}

			defaults, err := deps.Config.CrawlerOptions()
			if err != nil {
				return err
			}

			server := mcp.NewServer(pipeline, defaults, deps.Logger)
			return server.Serve(cmd.Context(), os.Stdin, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&vaultDir, "vault", "", "vault directory (overrides config)")

	return cmd
}
