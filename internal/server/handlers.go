package server

import (
	"bytes"
	"net/http"

	"github.com/jonathan/portfolio/internal/build"
	"github.com/jonathan/portfolio/internal/jsonld"
	"github.com/jonathan/portfolio/internal/rendering"
	"github.com/jonathan/portfolio/internal/sitemap"
	"github.com/jonathan/portfolio/internal/types"
)

const (
	contentTypeJSON   = "application/json"
	contentTypeLDJSON = "application/ld+json"
)

// CollectionResponse wraps a list endpoint's items
type CollectionResponse[T any] struct {
	Count int `json:"count"`
	Items []T `json:"items"`
}

// WritingResponse is a writing entry with its rendered body
type WritingResponse struct {
	Meta types.WritingMeta `json:"meta"`
	HTML string            `json:"html"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, r, http.StatusOK, contentTypeJSON, map[string]string{"status": "ok"})
}

func (s *Server) handlePerson(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, r, http.StatusOK, contentTypeLDJSON, jsonld.Person(s.identity))
}

func (s *Server) handleListCaseStudies(w http.ResponseWriter, r *http.Request) {
	studies, err := s.store.CaseStudies()
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, contentTypeJSON, CollectionResponse[types.CaseStudyMeta]{Count: len(studies), Items: studies})
}

func (s *Server) handleGetCaseStudy(w http.ResponseWriter, r *http.Request) {
	page, err := build.AssembleCaseStudy(s.store, s.identity, r.PathValue("slug"))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, contentTypeJSON, page)
}

func (s *Server) handleCaseStudyPage(w http.ResponseWriter, r *http.Request) {
	page, err := build.AssembleCaseStudy(s.store, s.identity, r.PathValue("slug"))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	doc, err := page.Document()
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(doc))
}

func (s *Server) handleListWriting(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.Writing()
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, contentTypeJSON, CollectionResponse[types.WritingMeta]{Count: len(posts), Items: posts})
}

func (s *Server) handleGetWriting(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	meta, err := s.store.WritingEntry(slug)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	body, err := s.store.WritingBody(slug)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	html, err := rendering.Markdown(body)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, contentTypeJSON, WritingResponse{Meta: meta, HTML: html})
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	studies, err := s.store.CaseStudies()
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	entries, err := sitemap.Entries(s.identity.BaseURL, studies, s.sitemap)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := sitemap.WriteXML(&buf, entries); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
