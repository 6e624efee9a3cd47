package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument_SplitsFieldsAndBody(t *testing.T) {
	raw := "---\ntitle: Hello\norder: 3\ntags:\n  - ai\n  - robotics\n---\n\n## Context\n\nBody text.\n"

	fields, body, err := ParseDocument([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "Hello", fields["title"])
	assert.Equal(t, 3, fields["order"])
	assert.Equal(t, []any{"ai", "robotics"}, fields["tags"])
	assert.Contains(t, body, "## Context")
	assert.Contains(t, body, "Body text.")
	assert.NotContains(t, body, "title:")
}

func TestParseDocument_UnquotedDateStaysString(t *testing.T) {
	fields, _, err := ParseDocument([]byte("---\ndate: 2025-03-10\n---\nbody\n"))
	require.NoError(t, err)

	value, ok := stringValue(fields["date"])
	require.True(t, ok)
	assert.Equal(t, "2025-03-10", value)
}

func TestParseDocument_MissingFrontmatter(t *testing.T) {
	_, _, err := ParseDocument([]byte("# Just a heading\n\nNo metadata here.\n"))
	require.Error(t, err)

	var malformed *MalformedDocumentError
	require.True(t, errors.As(err, &malformed), "error should be MalformedDocumentError")
	assert.Contains(t, malformed.Error(), "frontmatter block not found")
}

func TestParseDocument_InvalidYAML(t *testing.T) {
	_, _, err := ParseDocument([]byte("---\ntitle: [unclosed\n---\nbody\n"))
	require.Error(t, err)

	var malformed *MalformedDocumentError
	require.True(t, errors.As(err, &malformed), "error should be MalformedDocumentError")
	assert.NotNil(t, malformed.Unwrap(), "YAML error should be kept as the cause")
}
