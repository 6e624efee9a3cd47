// Package types provides type definitions for structured data used throughout the portfolio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Category names a directory of documents on the content store
type Category string

const (
	// CategoryCaseStudies holds long-form case studies
	CategoryCaseStudies Category = "case-studies"
	// CategoryWriting holds essays and links to externally published writing
	CategoryWriting Category = "writing"
)

// String returns the category directory name
func (c Category) String() string {
	return string(c)
}

// DefaultOrder is the sort precedence given to case studies that declare no order
const DefaultOrder = 99

// Document is a single content file split into frontmatter fields and body
type Document struct {
	Category Category       `json:"category"`
	Slug     string         `json:"slug"`
	Path     string         `json:"path"`
	Fields   map[string]any `json:"fields"`
	Body     string         `json:"body"`
}

// CaseStudyMeta is the normalized metadata of a case study document
type CaseStudyMeta struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Role        string `json:"role"`
	Company     string `json:"company"`
	Date        string `json:"date"` // YYYY-MM-DD or YYYY-YYYY, displayed verbatim
	Takeaway    string `json:"takeaway,omitempty"`
	Summary     string `json:"summary"`
	ReadingTime string `json:"readingTime"`
	Order       int    `json:"order"`
}

// WritingMeta is the normalized metadata of a writing entry
type WritingMeta struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Summary     string   `json:"summary"`
	ReadingTime string   `json:"readingTime"`
	External    bool     `json:"external"`
	ExternalURL string   `json:"externalUrl,omitempty"`
	Tags        []string `json:"tags"`
}

// Href returns where a listing should link to: the external URL for external
// entries, the site-relative writing page otherwise.
func (w WritingMeta) Href() string {
	if w.External {
		return w.ExternalURL
	}
	return "/writing/" + w.Slug
}
