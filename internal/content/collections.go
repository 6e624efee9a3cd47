package content

import (
	"cmp"
	"slices"
	"time"

	"github.com/jonathan/portfolio/internal/daterange"
	"github.com/jonathan/portfolio/internal/types"
	"golang.org/x/sync/errgroup"
)

// CaseStudy resolves the metadata of one case study
func (s *Store) CaseStudy(slug string) (types.CaseStudyMeta, error) {
	doc, err := s.Document(types.CategoryCaseStudies, slug)
	if err != nil {
		return types.CaseStudyMeta{}, err
	}
	return NormalizeCaseStudy(slug, doc.Fields, doc.Body)
}

// CaseStudyBody returns the prose of one case study without its frontmatter
func (s *Store) CaseStudyBody(slug string) (string, error) {
	return s.Body(types.CategoryCaseStudies, slug)
}

// CaseStudySource returns the raw text of one case study
func (s *Store) CaseStudySource(slug string) (string, error) {
	return s.Source(types.CategoryCaseStudies, slug)
}

// CaseStudies loads every case study ordered by ascending order.
// Case studies sharing an order keep their discovery order.
func (s *Store) CaseStudies() ([]types.CaseStudyMeta, error) {
	studies, err := loadAll(s, types.CategoryCaseStudies, s.CaseStudy)
	if err != nil {
		return nil, err
	}
	SortCaseStudies(studies)
	return studies, nil
}

// WritingEntry resolves the metadata of one writing entry
func (s *Store) WritingEntry(slug string) (types.WritingMeta, error) {
	doc, err := s.Document(types.CategoryWriting, slug)
	if err != nil {
		return types.WritingMeta{}, err
	}
	return NormalizeWriting(slug, doc.Fields, doc.Body)
}

// WritingBody returns the prose of one writing entry without its frontmatter
func (s *Store) WritingBody(slug string) (string, error) {
	return s.Body(types.CategoryWriting, slug)
}

// WritingSource returns the raw text of one writing entry
func (s *Store) WritingSource(slug string) (string, error) {
	return s.Source(types.CategoryWriting, slug)
}

// Writing loads every writing entry, most recent first
func (s *Store) Writing() ([]types.WritingMeta, error) {
	posts, err := loadAll(s, types.CategoryWriting, s.WritingEntry)
	if err != nil {
		return nil, err
	}
	if err := SortWriting(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// SortCaseStudies stable-sorts case studies by ascending order
func SortCaseStudies(studies []types.CaseStudyMeta) {
	slices.SortStableFunc(studies, func(a, b types.CaseStudyMeta) int {
		return cmp.Compare(a.Order, b.Order)
	})
}

// SortWriting stable-sorts writing entries by descending resolved date.
// It fails without reordering if any date cannot be resolved.
func SortWriting(posts []types.WritingMeta) error {
	type dated struct {
		meta types.WritingMeta
		at   time.Time
	}

	items := make([]dated, len(posts))
	for i, post := range posts {
		at, err := daterange.Resolve(post.Date)
		if err != nil {
			return err
		}
		items[i] = dated{meta: post, at: at}
	}

	slices.SortStableFunc(items, func(a, b dated) int {
		return b.at.Compare(a.at)
	})

	for i, item := range items {
		posts[i] = item.meta
	}
	return nil
}

// loadAll resolves every document of a category concurrently. Results keep discovery
// order, and a failure reports the first offending document in that order.
func loadAll[T any](s *Store, category types.Category, load func(slug string) (T, error)) ([]T, error) {
	slugs, err := s.Slugs(category)
	if err != nil {
		return nil, err
	}

	records := make([]T, len(slugs))
	errs := make([]error, len(slugs))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, slug := range slugs {
		g.Go(func() error {
			records[i], errs[i] = load(slug)
			return errs[i]
		})
	}

	if err := g.Wait(); err != nil {
		for _, loadErr := range errs {
			if loadErr != nil {
				s.logger.Debug().Err(loadErr).Str("category", category.String()).Msg("collection load failed")
				return nil, loadErr
			}
		}
		return nil, err
	}

	s.logger.Debug().Str("category", category.String()).Int("count", len(records)).Msg("loaded collection")
	return records, nil
}
