package types

import "time"

// ChangeFrequency is the sitemaps.org changefreq value
type ChangeFrequency string

// ChangeMonthly is the only change frequency the site publishes
const ChangeMonthly ChangeFrequency = "monthly"

// SitemapEntry is one URL of the sitemap
type SitemapEntry struct {
	URL             string          `json:"url"`
	LastModified    time.Time       `json:"lastModified"`
	ChangeFrequency ChangeFrequency `json:"changeFrequency"`
	Priority        float64         `json:"priority"`
}
