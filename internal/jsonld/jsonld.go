// Package jsonld builds schema.org structured data descriptors for the site.
package jsonld

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/portfolio/internal/daterange"
	"github.com/jonathan/portfolio/internal/types"
)

// Person describes the site owner
func Person(id types.SiteIdentity) types.PersonLD {
	person := types.PersonLD{
		Context:  types.SchemaContext,
		Type:     "Person",
		Name:     id.Name,
		JobTitle: id.JobTitle,
		URL:      id.URL(""),
		Email:    id.Email,
	}
	if id.ProfileURL != "" {
		person.SameAs = []string{id.ProfileURL}
	}
	if id.AlumniOf != "" {
		person.AlumniOf = &types.OrganizationLD{
			Type: "EducationalOrganization",
			Name: id.AlumniOf,
		}
	}
	return person
}

// Article describes a case study page. datePublished is the resolved date of the
// case study, so a year range publishes as January 1 of its end year.
func Article(id types.SiteIdentity, meta types.CaseStudyMeta) (types.ArticleLD, error) {
	published, err := daterange.Resolve(meta.Date)
	if err != nil {
		return types.ArticleLD{}, fmt.Errorf("failed to resolve date of case study %s: %w", meta.Slug, err)
	}

	owner := personRef(id)
	pageURL := id.CaseStudyURL(meta.Slug)

	return types.ArticleLD{
		Context:          types.SchemaContext,
		Type:             "Article",
		Headline:         meta.Title,
		Description:      meta.Summary,
		Author:           owner,
		Publisher:        owner,
		DatePublished:    daterange.FormatISO(published),
		URL:              pageURL,
		MainEntityOfPage: pageURL,
	}, nil
}

// Breadcrumbs turns an ordered trail into a BreadcrumbList with 1-indexed positions
func Breadcrumbs(items []types.Crumb) types.BreadcrumbListLD {
	list := types.BreadcrumbListLD{
		Context:         types.SchemaContext,
		Type:            "BreadcrumbList",
		ItemListElement: make([]types.ListItemLD, 0, len(items)),
	}
	for i, item := range items {
		list.ItemListElement = append(list.ItemListElement, types.ListItemLD{
			Type:     "ListItem",
			Position: i + 1,
			Name:     item.Name,
			Item:     item.URL,
		})
	}
	return list
}

// CaseStudyTrail is the Home / Case Studies / <title> trail of a case study page
func CaseStudyTrail(id types.SiteIdentity, meta types.CaseStudyMeta) []types.Crumb {
	return []types.Crumb{
		{Name: "Home", URL: id.URL("")},
		{Name: "Case Studies", URL: id.URL("/case-studies")},
		{Name: meta.Title, URL: id.CaseStudyURL(meta.Slug)},
	}
}

// Marshal renders a descriptor as the JSON embedded in a ld+json script block
func Marshal(descriptor any) ([]byte, error) {
	data, err := json.Marshal(descriptor)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal structured data: %w", err)
	}
	return data, nil
}

func personRef(id types.SiteIdentity) types.PersonLD {
	return types.PersonLD{
		Type: "Person",
		Name: id.Name,
		URL:  id.URL(""),
	}
}
