// Package cmd implements the command-line interface for vaultcrawl.
// It provides the root command and subcommands for crawling
// documentation sites into a markdown vault.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/vaultcrawl/cmd/discover"
	"github.com/jonesrussell/vaultcrawl/cmd/fetch"
	"github.com/jonesrussell/vaultcrawl/cmd/harvest"
	"github.com/jonesrussell/vaultcrawl/cmd/serve"
	"github.com/jonesrussell/vaultcrawl/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "vaultcrawl",
		Short: "Crawl documentation sites into a markdown vault",
		Long: `vaultcrawl discovers the pages reachable from a seed URL within a
bounded link distance, filters them against scope and pattern rules,
and harvests the result into an Obsidian-style markdown vault.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	_ = godotenv.Load()

	// Parse flags early so --debug reaches the logger configuration.
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("vaultcrawl version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(discover.Command())
	rootCmd.AddCommand(harvest.Command())
	rootCmd.AddCommand(fetch.Command())
	rootCmd.AddCommand(serve.Command())
}

// initConfig reads in the config file and environment variables.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	if err := config.BindEnv(); err != nil {
		return err
	}

	config.SetDefaults()

	// The config file is optional; defaults and environment variables
	// cover every setting.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	if debug {
		viper.Set("logger.level", "debug")
		viper.Set("logger.development", true)
	}

	return nil
}
