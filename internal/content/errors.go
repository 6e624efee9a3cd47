// Package content loads portfolio documents from a content store and derives their metadata.
package content

import (
	"errors"
	"fmt"

	"github.com/jonathan/portfolio/internal/types"
)

// DocumentNotFoundError is returned when a slug has no file in its category directory
type DocumentNotFoundError struct {
	Category types.Category
	Slug     string
}

func (e *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document not found: %s/%s", e.Category, e.Slug)
}

// MalformedDocumentError is returned when the frontmatter block is missing or cannot be parsed
type MalformedDocumentError struct {
	Path    string
	Message string
	Cause   error
}

func (e *MalformedDocumentError) Error() string {
	where := e.Path
	if where == "" {
		where = "(document)"
	}
	if e.Cause != nil {
		return fmt.Sprintf("malformed document %s: %s: %v", where, e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed document %s: %s", where, e.Message)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Cause
}

// MissingRequiredFieldError is returned when a document parses but lacks a required field
type MissingRequiredFieldError struct {
	Category types.Category
	Slug     string
	Field    string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required field %q in %s/%s", e.Field, e.Category, e.Slug)
}

// IsNotFound reports whether err is, or wraps, a DocumentNotFoundError
func IsNotFound(err error) bool {
	var notFound *DocumentNotFoundError
	return errors.As(err, &notFound)
}
