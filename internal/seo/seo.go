// Package seo derives the page metadata (title, description, canonical URL, OpenGraph and
// Twitter cards, robots directives) rendered into the head of each page.
package seo

import (
	"strings"

	"github.com/jonathan/portfolio/internal/types"
)

// Card types and OpenGraph object types
const (
	TwitterCardLarge = "summary_large_image"
	OGTypeWebsite    = "website"
	OGTypeArticle    = "article"
	DefaultLocale    = "en_US"
	DefaultOGImage   = "/og-image.png"
)

// Image is an OpenGraph image reference
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// OpenGraph holds the og:* properties of a page
type OpenGraph struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	SiteName    string  `json:"siteName,omitempty"`
	Locale      string  `json:"locale,omitempty"`
	Type        string  `json:"type"`
	Images      []Image `json:"images,omitempty"`
}

// Twitter holds the twitter:* properties of a page
type Twitter struct {
	Card        string `json:"card"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Robots holds crawler directives
type Robots struct {
	Index  bool `json:"index"`
	Follow bool `json:"follow"`
}

// String renders the robots meta content
func (r Robots) String() string {
	parts := []string{"noindex", "nofollow"}
	if r.Index {
		parts[0] = "index"
	}
	if r.Follow {
		parts[1] = "follow"
	}
	return strings.Join(parts, ", ")
}

// Metadata is everything rendered into a page head
type Metadata struct {
	DefaultTitle  string    `json:"defaultTitle,omitempty"`
	TitleTemplate string    `json:"titleTemplate,omitempty"`
	PageTitle     string    `json:"title,omitempty"`
	Description   string    `json:"description"`
	Canonical     string    `json:"canonical,omitempty"`
	OpenGraph     OpenGraph `json:"openGraph"`
	Twitter       Twitter   `json:"twitter"`
	Robots        *Robots   `json:"robots,omitempty"`
}

// Title returns the document title for a page title. An empty page title yields the
// site default; otherwise the template's %s is replaced.
func (m Metadata) Title(page string) string {
	if page == "" {
		return m.DefaultTitle
	}
	if m.TitleTemplate == "" {
		return page
	}
	return strings.Replace(m.TitleTemplate, "%s", page, 1)
}

// Merge layers page metadata over the site metadata
func (m Metadata) Merge(page Metadata) Metadata {
	out := m
	if page.PageTitle != "" {
		out.PageTitle = page.PageTitle
	}
	if page.Description != "" {
		out.Description = page.Description
	}
	if page.Canonical != "" {
		out.Canonical = page.Canonical
	}
	if page.OpenGraph.Type != "" {
		og := page.OpenGraph
		if og.SiteName == "" {
			og.SiteName = m.OpenGraph.SiteName
		}
		if og.Locale == "" {
			og.Locale = m.OpenGraph.Locale
		}
		if len(og.Images) == 0 {
			og.Images = m.OpenGraph.Images
		}
		out.OpenGraph = og
	}
	if page.Twitter.Card != "" {
		out.Twitter = page.Twitter
	}
	if page.Robots != nil {
		out.Robots = page.Robots
	}
	return out
}

// SiteMetadata is the default metadata of every page
func SiteMetadata(id types.SiteIdentity) Metadata {
	title := id.Name + " | " + id.JobTitle
	locale := id.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	tagline := firstSentence(id.Description)

	return Metadata{
		DefaultTitle:  title,
		TitleTemplate: "%s | " + id.Name,
		Description:   id.Description,
		Canonical:     id.URL(""),
		OpenGraph: OpenGraph{
			Title:       title,
			Description: tagline,
			URL:         id.URL(""),
			SiteName:    id.Name,
			Locale:      locale,
			Type:        OGTypeWebsite,
			Images:      []Image{{URL: id.URL(DefaultOGImage), Width: 1200, Height: 630}},
		},
		Twitter: Twitter{
			Card:        TwitterCardLarge,
			Title:       title,
			Description: tagline,
		},
		Robots: &Robots{Index: true, Follow: true},
	}
}

// CaseStudyMetadata is the page metadata of a case study
func CaseStudyMetadata(id types.SiteIdentity, meta types.CaseStudyMeta) Metadata {
	pageURL := id.CaseStudyURL(meta.Slug)
	return Metadata{
		PageTitle:   meta.Title,
		Description: meta.Summary,
		Canonical:   pageURL,
		OpenGraph: OpenGraph{
			Title:       meta.Title,
			Description: meta.Summary,
			URL:         pageURL,
			Type:        OGTypeArticle,
		},
		Twitter: Twitter{
			Card:        TwitterCardLarge,
			Title:       meta.Title,
			Description: meta.Summary,
		},
	}
}

func firstSentence(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, ". "); i >= 0 {
		return s[:i+1]
	}
	return s
}
