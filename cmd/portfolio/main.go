// Package main provides the portfolio CLI: it lists, renders and exports the site's
// content and serves it over a read-only HTTP API.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonathan/portfolio/internal/config"
	"github.com/jonathan/portfolio/internal/content"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath string
	contentDir string
	verbose    bool

	appConfig *config.Config
	logger    = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio content resolution and metadata derivation",
	Long: `portfolio reads case studies and writing from a content directory, validates and
normalizes their frontmatter, and derives the sitemap, structured data and page
metadata the site publishes.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ./portfolio.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&contentDir, "content", "", "Content directory holding case-studies/ and writing/")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initializeConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	overrides := config.Config{ContentDir: contentDir, Verbose: verbose}
	merged := overrides.MergeWithDefaults(*loaded)
	appConfig = &merged

	logger = newLogger(cmd.ErrOrStderr(), appConfig.Verbose)
	logger.Debug().Str("content_dir", appConfig.ContentDir).Msg("configuration loaded")
	return nil
}

func newLogger(out io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// newStore opens the configured content directory
func newStore() *content.Store {
	return content.NewDirStore(appConfig.ContentDir,
		content.WithWorkers(appConfig.Workers),
		content.WithLogger(logger),
	)
}

// requireSite validates the configuration for commands that publish site metadata
func requireSite() error {
	if err := appConfig.Validate(); err != nil {
		return fmt.Errorf("%w (set it in portfolio.yaml or the PORTFOLIO_ environment)", err)
	}
	return nil
}
