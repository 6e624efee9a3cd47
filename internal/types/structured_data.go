package types

// SchemaContext is the linked-data vocabulary every descriptor refers to
const SchemaContext = "https://schema.org"

// PersonLD is a schema.org Person descriptor
type PersonLD struct {
	Context  string          `json:"@context,omitempty"`
	Type     string          `json:"@type"`
	Name     string          `json:"name"`
	JobTitle string          `json:"jobTitle,omitempty"`
	URL      string          `json:"url,omitempty"`
	SameAs   []string        `json:"sameAs,omitempty"`
	Email    string          `json:"email,omitempty"`
	AlumniOf *OrganizationLD `json:"alumniOf,omitempty"`
}

// OrganizationLD is a schema.org organization reference
type OrganizationLD struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// ArticleLD is a schema.org Article descriptor
type ArticleLD struct {
	Context          string   `json:"@context"`
	Type             string   `json:"@type"`
	Headline         string   `json:"headline"`
	Description      string   `json:"description"`
	Author           PersonLD `json:"author"`
	Publisher        PersonLD `json:"publisher"`
	DatePublished    string   `json:"datePublished"`
	URL              string   `json:"url"`
	MainEntityOfPage string   `json:"mainEntityOfPage"`
}

// BreadcrumbListLD is a schema.org BreadcrumbList descriptor
type BreadcrumbListLD struct {
	Context         string       `json:"@context"`
	Type            string       `json:"@type"`
	ItemListElement []ListItemLD `json:"itemListElement"`
}

// ListItemLD is one position in a breadcrumb trail
type ListItemLD struct {
	Type     string `json:"@type"`
	Position int    `json:"position"` // 1-indexed
	Name     string `json:"name"`
	Item     string `json:"item"`
}

// Crumb is a named link used to build a breadcrumb trail
type Crumb struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
