// Package build exports the site's derived artifacts (sitemap, structured data, rendered
// case study pages and JSON collections) into an output directory.
package build

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jonathan/portfolio/internal/content"
	"github.com/jonathan/portfolio/internal/jsonld"
	"github.com/jonathan/portfolio/internal/schemas"
	"github.com/jonathan/portfolio/internal/sitemap"
	"github.com/jonathan/portfolio/internal/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Steps reported through ProgressCallback
const (
	StepLoad      = "load"
	StepSitemap   = "sitemap"
	StepPerson    = "person"
	StepCaseStudy = "case_study"
	StepAPI       = "api"
	StepComplete  = "complete"
)

const (
	outputFileMode = 0o644
	outputDirMode  = 0o755
)

// managedDirs are recreated on every build so removed documents disappear
var managedDirs = []string{"api", "case-studies", "jsonld"}

// ProgressEvent represents a progress update during a build
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// ProgressCallback is called when build progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for a build
type Options struct {
	OutputDir  string
	Identity   types.SiteIdentity
	Sitemap    sitemap.Options
	Logger     zerolog.Logger
	OnProgress ProgressCallback
}

// Result summarizes a completed build
type Result struct {
	CaseStudies int
	Writing     int
	Files       []string // relative to the output directory, in write order
	Duration    time.Duration
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *Options, step, message, path string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message, Path: path})
	}
}

type writer struct {
	root  string
	files []string
}

func (w *writer) write(rel string, data []byte) error {
	path := filepath.Join(w.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), outputDirMode); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(path, data, outputFileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	w.files = append(w.files, rel)
	return nil
}

func (w *writer) writeJSON(rel string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", rel, err)
	}
	return w.write(rel, append(data, '\n'))
}

// writeDescriptor validates a JSON-LD descriptor against its schema before writing it
func (w *writer) writeDescriptor(rel string, kind schemas.Kind, descriptor any) error {
	data, err := jsonld.Marshal(descriptor)
	if err != nil {
		return err
	}
	if err := schemas.ValidateDescriptor(kind, data); err != nil {
		return fmt.Errorf("%s: %w", rel, err)
	}
	return w.writeJSON(rel, descriptor)
}

// Run resolves every collection and writes the site's artifacts. Any resolution,
// validation or write error fails the build.
func Run(ctx context.Context, store *content.Store, opts Options) (*Result, error) {
	start := time.Now()
	logger := opts.Logger

	if opts.OutputDir == "" {
		return nil, fmt.Errorf("output directory is empty")
	}

	emitProgress(&opts, StepLoad, "Loading collections", "")
	g, _ := errgroup.WithContext(ctx)

	var studies []types.CaseStudyMeta
	var writing []types.WritingMeta
	var mu sync.Mutex

	g.Go(func() error {
		result, err := store.CaseStudies()
		if err != nil {
			return fmt.Errorf("failed to load case studies: %w", err)
		}
		mu.Lock()
		studies = result
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		result, err := store.Writing()
		if err != nil {
			return fmt.Errorf("failed to load writing: %w", err)
		}
		mu.Lock()
		writing = result
		mu.Unlock()
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug().Int("case_studies", len(studies)).Int("writing", len(writing)).Msg("collections loaded")

	pages := make([]*CaseStudyPage, 0, len(studies))
	for _, meta := range studies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := assemble(store, opts.Identity, meta)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	entries, err := sitemap.Entries(opts.Identity.BaseURL, studies, opts.Sitemap)
	if err != nil {
		return nil, err
	}

	// everything is resolved; only now touch the output directory
	for _, dir := range managedDirs {
		if err := os.RemoveAll(filepath.Join(opts.OutputDir, dir)); err != nil {
			return nil, fmt.Errorf("failed to clean %s: %w", dir, err)
		}
	}
	w := &writer{root: opts.OutputDir}

	emitProgress(&opts, StepSitemap, fmt.Sprintf("Writing sitemap with %d URLs", len(entries)), "sitemap.xml")
	var xmlBuf bytes.Buffer
	if err := sitemap.WriteXML(&xmlBuf, entries); err != nil {
		return nil, err
	}
	if err := w.write("sitemap.xml", xmlBuf.Bytes()); err != nil {
		return nil, err
	}

	emitProgress(&opts, StepPerson, "Writing person descriptor", "jsonld/person.json")
	if err := w.writeDescriptor("jsonld/person.json", schemas.KindPerson, jsonld.Person(opts.Identity)); err != nil {
		return nil, err
	}

	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		slug := page.Meta.Slug
		emitProgress(&opts, StepCaseStudy, "Writing case study "+slug, "case-studies/"+slug+".html")

		if err := w.writeDescriptor("jsonld/case-studies/"+slug+".json", schemas.KindArticle, page.Article); err != nil {
			return nil, err
		}
		if err := w.writeDescriptor("jsonld/case-studies/"+slug+".breadcrumbs.json", schemas.KindBreadcrumbList, page.Breadcrumbs); err != nil {
			return nil, err
		}
		doc, err := page.Document()
		if err != nil {
			return nil, fmt.Errorf("failed to render case study %s: %w", slug, err)
		}
		if err := w.write("case-studies/"+slug+".html", []byte(doc)); err != nil {
			return nil, err
		}
		logger.Debug().Str("slug", slug).Msg("case study written")
	}

	emitProgress(&opts, StepAPI, "Writing collections", "api/")
	if err := w.writeJSON("api/case-studies.json", studies); err != nil {
		return nil, err
	}
	if err := w.writeJSON("api/writing.json", writing); err != nil {
		return nil, err
	}

	result := &Result{
		CaseStudies: len(studies),
		Writing:     len(writing),
		Files:       w.files,
		Duration:    time.Since(start),
	}
	emitProgress(&opts, StepComplete, fmt.Sprintf("Wrote %d files", len(result.Files)), "")
	logger.Info().
		Int("case_studies", result.CaseStudies).
		Int("writing", result.Writing).
		Int("files", len(result.Files)).
		Dur("duration", result.Duration).
		Msg("build complete")
	return result, nil
}
