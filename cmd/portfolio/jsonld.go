package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/portfolio/internal/jsonld"
	"github.com/spf13/cobra"
)

var jsonldCmd = &cobra.Command{
	Use:   "jsonld person | article <slug> | breadcrumbs <slug>",
	Short: "Print a JSON-LD structured data descriptor",
	Long: `Prints one of the schema.org descriptors the site embeds:

  person               the site owner's Person record
  article <slug>       the Article for a case study
  breadcrumbs <slug>   the BreadcrumbList for a case study page`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runJSONLD,
}

func init() {
	rootCmd.AddCommand(jsonldCmd)
}

func runJSONLD(cmd *cobra.Command, args []string) error {
	if err := requireSite(); err != nil {
		return err
	}
	id := appConfig.Site.Identity()

	var descriptor any
	switch args[0] {
	case "person":
		if len(args) != 1 {
			return errors.New("person takes no slug")
		}
		descriptor = jsonld.Person(id)
	case "article", "breadcrumbs":
		if len(args) != 2 {
			return fmt.Errorf("%s requires a case study slug", args[0])
		}
		meta, err := newStore().CaseStudy(args[1])
		if err != nil {
			return err
		}
		if args[0] == "article" {
			article, err := jsonld.Article(id, meta)
			if err != nil {
				return err
			}
			descriptor = article
		} else {
			descriptor = jsonld.Breadcrumbs(jsonld.CaseStudyTrail(id, meta))
		}
	default:
		return fmt.Errorf("unknown descriptor %q (want person, article or breadcrumbs)", args[0])
	}

	return printJSON(cmd, descriptor)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
