package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/jonathan/portfolio/internal/types"
	"github.com/rs/zerolog"
)

// Extensions lists the recognized document file extensions in lookup precedence order
var Extensions = []string{".mdx", ".md"}

// DefaultWorkers bounds how many documents a collection load reads concurrently
const DefaultWorkers = 8

// Store reads documents from a content tree laid out as one directory per category
// and one file per document. Nothing is cached: every call reads storage again.
type Store struct {
	fsys    fs.FS
	workers int
	logger  zerolog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithWorkers sets the read concurrency of collection loads
func WithWorkers(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the logger used for scan and load diagnostics
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a Store over any file system, e.g. os.DirFS or fstest.MapFS
func NewStore(fsys fs.FS, opts ...Option) *Store {
	s := &Store{
		fsys:    fsys,
		workers: DefaultWorkers,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDirStore creates a Store rooted at a directory on disk
func NewDirStore(dir string, opts ...Option) *Store {
	return NewStore(os.DirFS(dir), opts...)
}

// Slugs returns the slugs of the documents in a category in the file system's
// enumeration order. A missing category directory yields an empty list.
func (s *Store) Slugs(category types.Category) ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, category.String())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug().Str("category", category.String()).Msg("category directory not found")
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to scan category %s: %w", category, err)
	}

	slugs := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		slug, ok := slugFromFilename(entry.Name())
		if !ok {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		slugs = append(slugs, slug)
	}

	s.logger.Debug().Str("category", category.String()).Int("count", len(slugs)).Msg("scanned category")
	return slugs, nil
}

// Document reads and parses one document
func (s *Store) Document(category types.Category, slug string) (*types.Document, error) {
	raw, docPath, err := s.readRaw(category, slug)
	if err != nil {
		return nil, err
	}

	fields, body, err := ParseDocument(raw)
	if err != nil {
		var malformed *MalformedDocumentError
		if errors.As(err, &malformed) {
			malformed.Path = docPath
		}
		return nil, err
	}

	return &types.Document{
		Category: category,
		Slug:     slug,
		Path:     docPath,
		Fields:   fields,
		Body:     body,
	}, nil
}

// Body returns the text of a document that follows its frontmatter block
func (s *Store) Body(category types.Category, slug string) (string, error) {
	doc, err := s.Document(category, slug)
	if err != nil {
		return "", err
	}
	return doc.Body, nil
}

// Source returns the raw text of a document, frontmatter included
func (s *Store) Source(category types.Category, slug string) (string, error) {
	raw, _, err := s.readRaw(category, slug)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (s *Store) readRaw(category types.Category, slug string) ([]byte, string, error) {
	if !validSlug(slug) {
		return nil, "", &DocumentNotFoundError{Category: category, Slug: slug}
	}

	for _, ext := range Extensions {
		docPath := path.Join(category.String(), slug+ext)
		raw, err := fs.ReadFile(s.fsys, docPath)
		if err == nil {
			return raw, docPath, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("failed to read %s: %w", docPath, err)
		}
	}

	return nil, "", &DocumentNotFoundError{Category: category, Slug: slug}
}

func slugFromFilename(name string) (string, bool) {
	for _, ext := range Extensions {
		if strings.HasSuffix(name, ext) {
			slug := strings.TrimSuffix(name, ext)
			return slug, slug != ""
		}
	}
	return "", false
}

// validSlug rejects anything that could address a file outside the category directory
func validSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	if strings.ContainsAny(slug, `/\`) {
		return false
	}
	return fs.ValidPath(slug)
}
