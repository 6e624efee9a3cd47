package content

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/portfolio/internal/types"
	"github.com/spf13/cast"
)

// NormalizeCaseStudy validates case study frontmatter and derives its metadata record.
// title, role, company, date and summary are required; order defaults to types.DefaultOrder.
func NormalizeCaseStudy(slug string, fields map[string]any, body string) (types.CaseStudyMeta, error) {
	req := requiredFields{category: types.CategoryCaseStudies, slug: slug, fields: fields}

	meta := types.CaseStudyMeta{
		Slug:        slug,
		Title:       req.get("title"),
		Role:        req.get("role"),
		Company:     req.get("company"),
		Date:        req.get("date"),
		Summary:     req.get("summary"),
		Takeaway:    optionalString(fields, "takeaway"),
		ReadingTime: ReadingTime(body),
		Order:       orderValue(fields["order"]),
	}
	if req.err != nil {
		return types.CaseStudyMeta{}, req.err
	}
	return meta, nil
}

// NormalizeWriting validates writing frontmatter and derives its metadata record.
// title, date and summary are required, and externalUrl is required for external entries.
func NormalizeWriting(slug string, fields map[string]any, body string) (types.WritingMeta, error) {
	req := requiredFields{category: types.CategoryWriting, slug: slug, fields: fields}

	meta := types.WritingMeta{
		Slug:        slug,
		Title:       req.get("title"),
		Date:        req.get("date"),
		Summary:     req.get("summary"),
		ReadingTime: ReadingTime(body),
		External:    boolValue(fields["external"]),
		Tags:        tagsValue(fields["tags"]),
	}
	if meta.External {
		meta.ExternalURL = req.get("externalUrl")
	}
	if req.err != nil {
		return types.WritingMeta{}, req.err
	}
	return meta, nil
}

// requiredFields reads required strings and remembers the first one that is missing
type requiredFields struct {
	category types.Category
	slug     string
	fields   map[string]any
	err      error
}

func (r *requiredFields) get(name string) string {
	if r.err != nil {
		return ""
	}
	value, ok := stringValue(r.fields[name])
	if !ok {
		r.err = &MissingRequiredFieldError{Category: r.category, Slug: r.slug, Field: name}
	}
	return value
}

// stringValue accepts non-blank strings. YAML timestamps are rendered back as dates so
// an unquoted date is treated the same as a quoted one.
func stringValue(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return "", false
		}
		return val, true
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02"), true
		}
		return val.Format(time.RFC3339), true
	default:
		return "", false
	}
}

func optionalString(fields map[string]any, name string) string {
	value, _ := stringValue(fields[name])
	return value
}

// orderValue reads an integer order. Strings are parsed in base 10; absent, non-numeric
// and non-integral values fall back to the default.
func orderValue(v any) int {
	switch n := v.(type) {
	case nil, bool:
		return types.DefaultOrder
	case string:
		order, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return types.DefaultOrder
		}
		return order
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > maxExactOrder {
		return types.DefaultOrder
	}
	return int(f)
}

// maxExactOrder is the largest magnitude a float64 holds without losing integers
const maxExactOrder = 1 << 53

func boolValue(v any) bool {
	if v == nil {
		return false
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false
	}
	return b
}

func tagsValue(v any) []string {
	tags := []string{}
	if v == nil {
		return tags
	}
	raw, err := cast.ToStringSliceE(v)
	if err != nil {
		return tags
	}
	for _, tag := range raw {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
