package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/jonathan/portfolio/internal/jsonld"
	"github.com/jonathan/portfolio/internal/observability"
	"github.com/jonathan/portfolio/internal/rendering"
	"github.com/jonathan/portfolio/internal/schemas"
	"github.com/jonathan/portfolio/internal/types"
	"github.com/spf13/cobra"
)

var (
	checkDir    string
	checkSchema string
	checkFile   string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate content and structured data",
	Long: `Resolves every document and validates each derived JSON-LD descriptor against
its schema. With --dir the ld+json blocks of an exported site's case study pages
are validated too. --schema with --file validates an arbitrary JSON document, read from
stdin when --file is -.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkDir, "dir", "", "Exported site directory whose pages to check")
	checkCmd.Flags().StringVar(&checkSchema, "schema", "", "JSON Schema file for --file")
	checkCmd.Flags().StringVar(&checkFile, "file", "", "JSON file to validate against --schema (- for stdin)")
	checkCmd.MarkFlagsRequiredTogether("schema", "file")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	var results []observability.CheckResult
	add := func(name string, err error) {
		results = append(results, observability.CheckResult{Name: name, Err: err})
	}

	if checkSchema != "" {
		add(fmt.Sprintf("%s matches %s", checkFile, checkSchema), checkDocument(cmd.InOrStdin()))
	} else {
		results = append(results, checkContent()...)
		if checkDir != "" {
			results = append(results, checkPages(checkDir)...)
		}
	}

	failed := observability.NewPrinter(cmd.OutOrStdout()).PrintCheckResults(results)
	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(results))
	}
	return nil
}

// checkDocument validates --file against --schema; "-" reads the document from stdin
func checkDocument(stdin io.Reader) error {
	if checkFile != "-" {
		return schemas.ValidateJSON(checkSchema, checkFile)
	}

	schema, err := os.ReadFile(checkSchema)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}
	doc, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	return schemas.ValidateJSONString(string(schema), string(doc))
}

// checkContent resolves both collections and validates every descriptor derived from them
func checkContent() []observability.CheckResult {
	var results []observability.CheckResult
	add := func(name string, err error) {
		results = append(results, observability.CheckResult{Name: name, Err: err})
	}

	configErr := requireSite()
	add("configuration", configErr)

	store := newStore()
	studies, err := store.CaseStudies()
	add("case studies resolve", err)

	posts, err := store.Writing()
	add(fmt.Sprintf("writing resolves (%d entries)", len(posts)), err)

	if configErr != nil {
		return results
	}
	id := appConfig.Site.Identity()
	add("person descriptor", validateDescriptor(schemas.KindPerson, jsonld.Person(id)))

	for _, meta := range studies {
		article, err := jsonld.Article(id, meta)
		if err == nil {
			err = validateDescriptor(schemas.KindArticle, article)
		}
		add(fmt.Sprintf("article descriptor: %s", meta.Slug), err)

		trail := jsonld.Breadcrumbs(jsonld.CaseStudyTrail(id, meta))
		add(fmt.Sprintf("breadcrumbs descriptor: %s", meta.Slug), validateDescriptor(schemas.KindBreadcrumbList, trail))
	}
	return results
}

// checkPages validates the ld+json blocks embedded in exported case study pages
func checkPages(dir string) []observability.CheckResult {
	pattern := filepath.Join(dir, types.CategoryCaseStudies.String(), "*.html")
	paths, err := filepath.Glob(pattern)
	if err == nil && len(paths) == 0 {
		err = fmt.Errorf("no pages match %s", pattern)
	}
	if err != nil {
		return []observability.CheckResult{{Name: "exported pages", Err: err}}
	}
	sort.Strings(paths)

	results := make([]observability.CheckResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, observability.CheckResult{
			Name: fmt.Sprintf("page structured data: %s", filepath.Base(path)),
			Err:  checkPage(path),
		})
	}
	return results
}

func checkPage(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from a glob under the export dir
	if err != nil {
		return err
	}
	blocks, err := rendering.ExtractJSONLD(string(data))
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		return errors.New("page has no ld+json blocks")
	}

	var errs []error
	for _, block := range blocks {
		kind, ok := schemas.KindForType(block.Type)
		if !ok {
			errs = append(errs, fmt.Errorf("unexpected @type %q", block.Type))
			continue
		}
		if err := schemas.ValidateDescriptor(kind, block.Raw); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func validateDescriptor(kind schemas.Kind, descriptor any) error {
	data, err := jsonld.Marshal(descriptor)
	if err != nil {
		return err
	}
	return schemas.ValidateDescriptor(kind, data)
}
