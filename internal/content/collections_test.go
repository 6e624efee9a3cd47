package content

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jonathan/portfolio/internal/daterange"
	"github.com/jonathan/portfolio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func slugsOf[T any](records []T, slug func(T) string) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = slug(r)
	}
	return out
}

func caseStudySlug(m types.CaseStudyMeta) string { return m.Slug }
func writingSlug(m types.WritingMeta) string     { return m.Slug }

func TestCaseStudies_SortedByOrder(t *testing.T) {
	defer goleak.VerifyNone(t)
	store := NewStore(mapFS(map[string]string{
		"case-studies/a.mdx": caseStudyDoc("A", "2024-01-01", "3", ""),
		"case-studies/b.mdx": caseStudyDoc("B", "2024-01-01", "", ""),
		"case-studies/c.mdx": caseStudyDoc("C", "2024-01-01", "1", ""),
		"case-studies/d.mdx": caseStudyDoc("D", "2024-01-01", "2", ""),
	}))

	studies, err := store.CaseStudies()
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d", "a", "b"}, slugsOf(studies, caseStudySlug))
	assert.Equal(t, types.DefaultOrder, studies[3].Order)
}

func TestCaseStudies_StableForEqualOrder(t *testing.T) {
	files := map[string]string{
		"case-studies/first.mdx": caseStudyDoc("First", "2024-01-01", "1", ""),
	}
	// Enough unordered documents that concurrent loading would expose an unstable result
	var want []string
	want = append(want, "first")
	for i := range 20 {
		slug := fmt.Sprintf("n%02d", i)
		files["case-studies/"+slug+".mdx"] = caseStudyDoc(slug, "2024-01-01", "", words(i))
		want = append(want, slug)
	}

	store := NewStore(mapFS(files), WithWorkers(4))
	studies, err := store.CaseStudies()
	require.NoError(t, err)
	assert.Equal(t, want, slugsOf(studies, caseStudySlug))
}

func TestCaseStudies_EmptyWhenNoDirectory(t *testing.T) {
	store := NewStore(mapFS(map[string]string{}))

	studies, err := store.CaseStudies()
	require.NoError(t, err)
	assert.Empty(t, studies)
}

func TestCaseStudies_FailsOnFirstOffendingDocument(t *testing.T) {
	store := NewStore(mapFS(map[string]string{
		"case-studies/a.mdx": caseStudyDoc("A", "2024-01-01", "", ""),
		"case-studies/b.mdx": caseStudyDoc("", "2024-01-01", "", ""),
		"case-studies/c.mdx": "no frontmatter",
	}))

	studies, err := store.CaseStudies()
	require.Error(t, err)
	assert.Nil(t, studies)

	var missing *MissingRequiredFieldError
	require.True(t, errors.As(err, &missing), "b precedes c in discovery order")
	assert.Equal(t, "b", missing.Slug)
}

func TestWriting_SortedMostRecentFirst(t *testing.T) {
	store := NewStore(mapFS(map[string]string{
		"writing/old.mdx":    writingDoc("Old", "2023-06-01", ""),
		"writing/new.mdx":    writingDoc("New", "2025-02-01", ""),
		"writing/middle.mdx": writingDoc("Middle", "2024-11-15", ""),
		"writing/range.mdx":  writingDoc("Range", "2023-2024", ""),
	}))

	posts, err := store.Writing()
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "middle", "range", "old"}, slugsOf(posts, writingSlug))
}

func TestWriting_InvalidDateFailsCollection(t *testing.T) {
	store := NewStore(mapFS(map[string]string{
		"writing/good.mdx": writingDoc("Good", "2025-01-01", ""),
		"writing/bad.mdx":  writingDoc("Bad", "someday", ""),
	}))

	_, err := store.Writing()
	var dateErr *daterange.InvalidDateFormatError
	require.True(t, errors.As(err, &dateErr))
	assert.Equal(t, "someday", dateErr.Value)
}

func TestWritingEntry_External(t *testing.T) {
	store := NewStore(mapFS(map[string]string{
		"writing/guest.mdx": writingDoc("Guest", "2025-01-01", "external: true\nexternalUrl: https://example.com/guest\ntags: [ai, ops]\n"),
	}))

	post, err := store.WritingEntry("guest")
	require.NoError(t, err)
	assert.True(t, post.External)
	assert.Equal(t, "https://example.com/guest", post.ExternalURL)
	assert.Equal(t, []string{"ai", "ops"}, post.Tags)
}

func TestSortWriting_LeavesInputOnError(t *testing.T) {
	posts := []types.WritingMeta{{Slug: "a", Date: "2020-01-01"}, {Slug: "b", Date: "bad"}}
	err := SortWriting(posts)
	require.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, slugsOf(posts, writingSlug))
}

func TestSortWriting_StableForSameDate(t *testing.T) {
	posts := []types.WritingMeta{
		{Slug: "x", Date: "2024-01-01"},
		{Slug: "y", Date: "2025-01-01"},
		{Slug: "z", Date: "2024-01-01"},
	}
	require.NoError(t, SortWriting(posts))
	assert.Equal(t, []string{"y", "x", "z"}, slugsOf(posts, writingSlug))
}
