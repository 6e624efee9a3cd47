package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jonathan/portfolio/internal/observability"
	"github.com/jonathan/portfolio/internal/sitemap"
	"github.com/spf13/cobra"
)

var (
	sitemapOutput string
	sitemapTable  bool
)

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Generate sitemap.xml from the case studies",
	Long:  "Derives the sitemap entries (root, index, about and one per case study) and writes them as sitemap XML to stdout or a file.",
	Args:  cobra.NoArgs,
	RunE:  runSitemap,
}

func init() {
	sitemapCmd.Flags().StringVarP(&sitemapOutput, "output", "o", "", "Write the XML to this file instead of stdout")
	sitemapCmd.Flags().BoolVar(&sitemapTable, "table", false, "Print a summary table instead of XML")
	rootCmd.AddCommand(sitemapCmd)
}

func runSitemap(cmd *cobra.Command, _ []string) error {
	if err := requireSite(); err != nil {
		return err
	}
	opts, err := appConfig.Site.SitemapOptions()
	if err != nil {
		return err
	}

	studies, err := newStore().CaseStudies()
	if err != nil {
		return fmt.Errorf("failed to load case studies: %w", err)
	}
	entries, err := sitemap.Entries(appConfig.Site.BaseURL, studies, opts)
	if err != nil {
		return err
	}

	if sitemapTable {
		observability.NewPrinter(cmd.OutOrStdout()).PrintSitemap(entries)
		return nil
	}

	var buf bytes.Buffer
	if err := sitemap.WriteXML(&buf, entries); err != nil {
		return err
	}
	if sitemapOutput == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(sitemapOutput, buf.Bytes(), 0o644); err != nil { //nolint:gosec // published artifact
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	logger.Info().Str("path", sitemapOutput).Int("urls", len(entries)).Msg("sitemap written")
	return nil
}
