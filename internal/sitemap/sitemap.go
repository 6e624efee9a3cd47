// Package sitemap derives the site's sitemap entries from the case study collection
// and renders them as sitemaps.org XML.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jonathan/portfolio/internal/daterange"
	"github.com/jonathan/portfolio/internal/types"
)

// Page priorities
const (
	PriorityRoot      = 1.0
	PriorityIndex     = 0.9
	PriorityCaseStudy = 0.8
	PriorityAbout     = 0.7
)

// DefaultFloor is the lastModified of the root and index pages when no case study exists
var DefaultFloor = time.Unix(0, 0).UTC()

// DefaultAboutUpdated is the fixed lastModified of the About page
var DefaultAboutUpdated = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// Options controls the static dates of the sitemap
type Options struct {
	AboutUpdated time.Time
	Floor        time.Time
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{AboutUpdated: DefaultAboutUpdated, Floor: DefaultFloor}
}

// Entries builds the sitemap: the root, the case study index, the About page and one
// entry per case study in collection order.
func Entries(baseURL string, studies []types.CaseStudyMeta, opts Options) ([]types.SitemapEntry, error) {
	if opts.Floor.IsZero() {
		opts.Floor = DefaultFloor
	}
	if opts.AboutUpdated.IsZero() {
		opts.AboutUpdated = DefaultAboutUpdated
	}

	site := types.SiteIdentity{BaseURL: baseURL}

	studyEntries := make([]types.SitemapEntry, 0, len(studies))
	dates := make([]time.Time, 0, len(studies))
	for _, study := range studies {
		resolved, err := daterange.Resolve(study.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve date of case study %s: %w", study.Slug, err)
		}
		dates = append(dates, resolved)
		studyEntries = append(studyEntries, types.SitemapEntry{
			URL:             site.CaseStudyURL(study.Slug),
			LastModified:    resolved,
			ChangeFrequency: types.ChangeMonthly,
			Priority:        PriorityCaseStudy,
		})
	}

	latest, ok := daterange.Latest(dates...)
	if !ok {
		latest = opts.Floor
	}

	entries := []types.SitemapEntry{
		{URL: site.URL(""), LastModified: latest, ChangeFrequency: types.ChangeMonthly, Priority: PriorityRoot},
		{URL: site.URL("/case-studies"), LastModified: latest, ChangeFrequency: types.ChangeMonthly, Priority: PriorityIndex},
		{URL: site.URL("/about"), LastModified: opts.AboutUpdated, ChangeFrequency: types.ChangeMonthly, Priority: PriorityAbout},
	}
	return append(entries, studyEntries...), nil
}

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []urlXML `xml:"url"`
}

type urlXML struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// WriteXML renders entries as a sitemaps.org urlset document
func WriteXML(w io.Writer, entries []types.SitemapEntry) error {
	set := urlSet{Xmlns: xmlns, URLs: make([]urlXML, 0, len(entries))}
	for _, entry := range entries {
		set.URLs = append(set.URLs, urlXML{
			Loc:        entry.URL,
			LastMod:    entry.LastModified.UTC().Format(time.RFC3339),
			ChangeFreq: string(entry.ChangeFrequency),
			Priority:   strconv.FormatFloat(entry.Priority, 'f', 1, 64),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("failed to encode sitemap: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	return nil
}
