package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/portfolio/internal/build"
	"github.com/spf13/cobra"
)

var (
	buildOutput string
	buildWatch  bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the sitemap, structured data, pages and JSON collections",
	Long: `Resolves every document, derives all artifacts and writes them to the output
directory. Nothing is written if any document fails to resolve. With --watch the
export is rebuilt whenever the content directory changes.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output directory (default from config)")
	buildCmd.Flags().BoolVar(&buildWatch, "watch", false, "Rebuild when content changes")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	if err := requireSite(); err != nil {
		return err
	}
	sitemapOpts, err := appConfig.Site.SitemapOptions()
	if err != nil {
		return err
	}

	outDir := buildOutput
	if outDir == "" {
		outDir = appConfig.OutputDir
	}

	store := newStore()
	opts := build.Options{
		OutputDir: outDir,
		Identity:  appConfig.Site.Identity(),
		Sitemap:   sitemapOpts,
		Logger:    logger,
		OnProgress: func(event build.ProgressEvent) {
			logger.Debug().Str("step", event.Step).Str("path", event.Path).Msg(event.Message)
		},
	}

	rebuild := func(ctx context.Context) error {
		result, err := build.Run(ctx, store, opts)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Built %d case studies and %d writing entries into %s (%d files, %s)\n",
			result.CaseStudies, result.Writing, outDir, len(result.Files), result.Duration.Round(time.Millisecond))
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rebuild(ctx); err != nil {
		if !buildWatch {
			return err
		}
		logger.Error().Err(err).Msg("initial build failed")
	}
	if !buildWatch {
		return nil
	}

	return build.Watch(ctx, appConfig.ContentDir, build.WatchOptions{Logger: logger}, rebuild)
}
