package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/portfolio/internal/content"
)

// HTTPStatus returns the appropriate HTTP status code for an error. A missing
// document is the only failure a request recovers from; everything else is a 500.
func HTTPStatus(err error) int {
	var notFound *content.DocumentNotFoundError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
