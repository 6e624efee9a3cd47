package types

// SiteIdentity holds the fixed facts about the site owner used by structured data,
// page metadata and the sitemap
type SiteIdentity struct {
	BaseURL     string `json:"base_url" mapstructure:"base_url" validate:"required,url"`
	Name        string `json:"name" mapstructure:"name" validate:"required"`
	JobTitle    string `json:"job_title" mapstructure:"job_title" validate:"required"`
	Description string `json:"description,omitempty" mapstructure:"description"`
	ProfileURL  string `json:"profile_url,omitempty" mapstructure:"profile_url" validate:"omitempty,url"`
	Email       string `json:"email,omitempty" mapstructure:"email" validate:"omitempty,email"`
	AlumniOf    string `json:"alumni_of,omitempty" mapstructure:"alumni_of"`
	Locale      string `json:"locale,omitempty" mapstructure:"locale"`
}

// URL joins a site-relative path onto the base URL
func (s SiteIdentity) URL(path string) string {
	base := s.BaseURL
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	if path == "" || path == "/" {
		return base
	}
	if path[0] != '/' {
		path = "/" + path
	}
	return base + path
}

// CaseStudyURL returns the absolute URL of a case study page
func (s SiteIdentity) CaseStudyURL(slug string) string {
	return s.URL("/case-studies/" + slug)
}
