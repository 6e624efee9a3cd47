package main

import (
	"fmt"

	"github.com/jonathan/portfolio/internal/build"
	"github.com/jonathan/portfolio/internal/observability"
	"github.com/spf13/cobra"
)

var (
	showWriting bool
	showHTML    bool
	showRaw     bool
)

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Render one case study (or writing entry) in the terminal",
	Long:  "Resolves a single document and renders its body as markdown in the terminal, or as the full HTML page with --html.",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVarP(&showWriting, "writing", "w", false, "Look the slug up in writing instead of case studies")
	showCmd.Flags().BoolVar(&showHTML, "html", false, "Print the rendered HTML page of a case study")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the source file verbatim, frontmatter included")
	showCmd.MarkFlagsMutuallyExclusive("raw", "html")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	slug := args[0]
	store := newStore()
	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)

	if showRaw {
		source := store.CaseStudySource
		if showWriting {
			source = store.WritingSource
		}
		text, err := source(slug)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(out, text)
		return nil
	}

	if showWriting {
		meta, err := store.WritingEntry(slug)
		if err != nil {
			return err
		}
		body, err := store.WritingBody(slug)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "%s\n%s · %s\n\n", meta.Title, meta.Date, meta.ReadingTime)
		if meta.External {
			_, _ = fmt.Fprintf(out, "Published at %s\n\n", meta.ExternalURL)
		}
		printer.PrintBody(body)
		return nil
	}

	if showHTML {
		if err := requireSite(); err != nil {
			return err
		}
		page, err := build.AssembleCaseStudy(store, appConfig.Site.Identity(), slug)
		if err != nil {
			return err
		}
		doc, err := page.Document()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(out, doc)
		return nil
	}

	meta, err := store.CaseStudy(slug)
	if err != nil {
		return err
	}
	body, err := store.CaseStudyBody(slug)
	if err != nil {
		return err
	}
	printer.PrintCaseStudyHeader(meta)
	printer.PrintBody(body)
	return nil
}
