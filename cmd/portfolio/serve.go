package main

import (
	"os/signal"
	"syscall"

	"github.com/jonathan/portfolio/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts an HTTP server exposing the resolved content and derived metadata.

Documents are read from the content directory on every request, so edits are
visible without a restart.

Endpoints:
  GET /health                          Health check
  GET /api/person                      Person structured data
  GET /api/case-studies                Case studies in display order
  GET /api/case-studies/{slug}         Case study with rendered body and metadata
  GET /api/case-studies/{slug}/page    Rendered HTML page
  GET /api/writing                     Writing entries, newest first
  GET /api/writing/{slug}              Writing entry with rendered body
  GET /sitemap.xml                     Sitemap`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if servePort != 0 {
		appConfig.Port = servePort
	}
	if err := requireSite(); err != nil {
		return err
	}
	sitemapOpts, err := appConfig.Site.SitemapOptions()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(newStore(), server.Config{
		Port:      appConfig.Port,
		Identity:  appConfig.Site.Identity(),
		Sitemap:   sitemapOpts,
		RateLimit: appConfig.RateLimit,
		Logger:    logger,
	})

	logger.Info().Int("port", appConfig.Port).Str("content_dir", appConfig.ContentDir).Msg("starting server")
	return srv.Start(ctx)
}
