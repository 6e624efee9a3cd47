package rendering

import (
	"bytes"
	"html/template"

	"github.com/jonathan/portfolio/internal/seo"
)

const headTemplate = `{{define "head"}}<title>{{.Title}}</title>
<meta name="description" content="{{.Meta.Description}}">
{{- with .Meta.Canonical}}
<link rel="canonical" href="{{.}}">
{{- end}}
{{- with .Meta.Robots}}
<meta name="robots" content="{{.String}}">
{{- end}}
<meta property="og:title" content="{{.Meta.OpenGraph.Title}}">
<meta property="og:description" content="{{.Meta.OpenGraph.Description}}">
<meta property="og:type" content="{{.Meta.OpenGraph.Type}}">
<meta property="og:url" content="{{.Meta.OpenGraph.URL}}">
{{- with .Meta.OpenGraph.SiteName}}
<meta property="og:site_name" content="{{.}}">
{{- end}}
{{- with .Meta.OpenGraph.Locale}}
<meta property="og:locale" content="{{.}}">
{{- end}}
{{- range .Meta.OpenGraph.Images}}
<meta property="og:image" content="{{.URL}}">
{{- end}}
<meta name="twitter:card" content="{{.Meta.Twitter.Card}}">
<meta name="twitter:title" content="{{.Meta.Twitter.Title}}">
<meta name="twitter:description" content="{{.Meta.Twitter.Description}}">
{{- range .JSONLD}}
<script type="application/ld+json">{{.}}</script>
{{- end}}
{{end}}`

const pageTemplate = `{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{template "head" .}}</head>
<body>
<article>
{{.Body}}
</article>
</body>
</html>
{{end}}`

var pages = template.Must(template.New("pages").Parse(headTemplate + pageTemplate))

type headData struct {
	Title  string
	Meta   seo.Metadata
	JSONLD []any
	Body   template.HTML
}

// HeadTags renders the title, meta tags and ld+json script blocks of a page. Descriptors
// are serialized to JSON by the template engine.
func HeadTags(meta seo.Metadata, descriptors ...any) (string, error) {
	var buf bytes.Buffer
	data := headData{Title: meta.Title(meta.PageTitle), Meta: meta, JSONLD: descriptors}
	if err := pages.ExecuteTemplate(&buf, "head", data); err != nil {
		return "", &TemplateError{Message: "failed to render head tags", Cause: err}
	}
	return buf.String(), nil
}

// Page renders a full HTML document around an already rendered body
func Page(meta seo.Metadata, bodyHTML string, descriptors ...any) (string, error) {
	var buf bytes.Buffer
	data := headData{
		Title:  meta.Title(meta.PageTitle),
		Meta:   meta,
		JSONLD: descriptors,
		// produced by Markdown from trusted content
		Body: template.HTML(bodyHTML), //nolint:gosec
	}
	if err := pages.ExecuteTemplate(&buf, "page", data); err != nil {
		return "", &TemplateError{Message: "failed to render page", Cause: err}
	}
	return buf.String(), nil
}
