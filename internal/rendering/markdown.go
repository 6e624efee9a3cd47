package rendering

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		// bodies are authored by the site owner and may carry inline HTML
		gmhtml.WithUnsafe(),
	),
)

// Markdown converts a document body to HTML
func Markdown(body string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return "", &RenderError{Message: "failed to convert markdown", Cause: err}
	}
	return buf.String(), nil
}

// Humanize turns a slug-like name such as "case-studies" into "Case Studies"
func Humanize(name string) string {
	spaced := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(spaced)
}
