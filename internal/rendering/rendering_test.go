package rendering

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/jonathan/portfolio/internal/jsonld"
	"github.com/jonathan/portfolio/internal/seo"
	"github.com/jonathan/portfolio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIdentity() types.SiteIdentity {
	return types.SiteIdentity{
		BaseURL:     "https://example.com",
		Name:        "Jane Doe",
		JobTitle:    "AI Product Manager",
		Description: "I build AI products.",
	}
}

func TestMarkdown(t *testing.T) {
	html, err := Markdown("## Results & Impact\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n~~old~~ **new**\n")
	require.NoError(t, err)

	assert.Contains(t, html, `<h2 id="results--impact">Results &amp; Impact</h2>`)
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<del>old</del>")
	assert.Contains(t, html, "<strong>new</strong>")
}

func TestMarkdown_InlineHTML(t *testing.T) {
	html, err := Markdown("<aside>note</aside>\n")
	require.NoError(t, err)
	assert.Contains(t, html, "<aside>note</aside>")
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Case Studies", Humanize(string(types.CategoryCaseStudies)))
	assert.Equal(t, "Writing", Humanize(string(types.CategoryWriting)))
	assert.Equal(t, "Field Notes", Humanize("field_notes"))
}

func TestHeadTags(t *testing.T) {
	id := testIdentity()
	study := types.CaseStudyMeta{Slug: "robots", Title: "Robots <in> Aisles", Summary: "Perception", Date: "2024-05-01"}
	meta := seo.SiteMetadata(id).Merge(seo.CaseStudyMetadata(id, study))

	head, err := HeadTags(meta, jsonld.Person(id))
	require.NoError(t, err)

	assert.Contains(t, head, "<title>Robots &lt;in&gt; Aisles | Jane Doe</title>")
	assert.Contains(t, head, `<link rel="canonical" href="https://example.com/case-studies/robots">`)
	assert.Contains(t, head, `<meta property="og:type" content="article">`)
	assert.Contains(t, head, `<meta name="twitter:card" content="summary_large_image">`)
	assert.Contains(t, head, `<meta name="robots" content="index, follow">`)
	assert.Contains(t, head, `<script type="application/ld+json">`)
}

func TestHeadTags_DefaultTitle(t *testing.T) {
	head, err := HeadTags(seo.SiteMetadata(testIdentity()))
	require.NoError(t, err)
	assert.Contains(t, head, "<title>Jane Doe | AI Product Manager</title>")
	assert.NotContains(t, head, "ld+json")
}

func TestPage_RoundTripsStructuredData(t *testing.T) {
	id := testIdentity()
	study := types.CaseStudyMeta{Slug: "robots", Title: "Robots", Summary: "S", Date: "2023-2024"}
	article, err := jsonld.Article(id, study)
	require.NoError(t, err)
	crumbs := jsonld.Breadcrumbs(jsonld.CaseStudyTrail(id, study))

	body, err := Markdown("Shipped it.")
	require.NoError(t, err)
	page, err := Page(seo.SiteMetadata(id).Merge(seo.CaseStudyMetadata(id, study)), body, article, crumbs)
	require.NoError(t, err)

	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Contains(t, page, "<p>Shipped it.</p>")

	blocks, err := ExtractJSONLD(page)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "Article", blocks[0].Type)
	assert.Equal(t, "BreadcrumbList", blocks[1].Type)

	var decoded types.ArticleLD
	require.NoError(t, json.Unmarshal(blocks[0].Raw, &decoded))
	assert.Equal(t, article, decoded)
}

func TestExtractJSONLD_NoBlocks(t *testing.T) {
	blocks, err := ExtractJSONLD("<html><head></head><body><script>var x = 1;</script></body></html>")
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestExtractJSONLD_InvalidBlock(t *testing.T) {
	_, err := ExtractJSONLD(`<script type="application/ld+json">{not json</script>`)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Contains(t, renderErr.Message, "block 1")
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	assert.ErrorIs(t, &RenderError{Message: "m", Cause: cause}, cause)
	assert.ErrorIs(t, &TemplateError{Message: "m", Cause: cause}, cause)
	assert.Equal(t, "template error: m", (&TemplateError{Message: "m"}).Error())
}
