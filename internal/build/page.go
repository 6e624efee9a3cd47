package build

import (
	"fmt"

	"github.com/jonathan/portfolio/internal/content"
	"github.com/jonathan/portfolio/internal/jsonld"
	"github.com/jonathan/portfolio/internal/rendering"
	"github.com/jonathan/portfolio/internal/seo"
	"github.com/jonathan/portfolio/internal/types"
)

// CaseStudyPage is everything needed to render one case study
type CaseStudyPage struct {
	Meta        types.CaseStudyMeta    `json:"meta"`
	HTML        string                 `json:"html"`
	Article     types.ArticleLD        `json:"article"`
	Breadcrumbs types.BreadcrumbListLD `json:"breadcrumbs"`
	Metadata    seo.Metadata           `json:"metadata"`
}

// StructuredData returns the page's JSON-LD descriptors in head order
func (p *CaseStudyPage) StructuredData() []any {
	return []any{p.Article, p.Breadcrumbs}
}

// Document renders the full HTML document of the page
func (p *CaseStudyPage) Document() (string, error) {
	return rendering.Page(p.Metadata, p.HTML, p.StructuredData()...)
}

// AssembleCaseStudy resolves a case study and derives its body, structured data and metadata
func AssembleCaseStudy(store *content.Store, id types.SiteIdentity, slug string) (*CaseStudyPage, error) {
	meta, err := store.CaseStudy(slug)
	if err != nil {
		return nil, err
	}
	return assemble(store, id, meta)
}

func assemble(store *content.Store, id types.SiteIdentity, meta types.CaseStudyMeta) (*CaseStudyPage, error) {
	body, err := store.CaseStudyBody(meta.Slug)
	if err != nil {
		return nil, err
	}

	html, err := rendering.Markdown(body)
	if err != nil {
		return nil, fmt.Errorf("failed to render case study %s: %w", meta.Slug, err)
	}

	article, err := jsonld.Article(id, meta)
	if err != nil {
		return nil, err
	}

	return &CaseStudyPage{
		Meta:        meta,
		HTML:        html,
		Article:     article,
		Breadcrumbs: jsonld.Breadcrumbs(jsonld.CaseStudyTrail(id, meta)),
		Metadata:    seo.SiteMetadata(id).Merge(seo.CaseStudyMetadata(id, meta)),
	}, nil
}
