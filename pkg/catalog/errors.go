package catalog

import (
	"fmt"
	"net/http"
)

// FetchError is returned when the catalog could not be reached or answered
// with something other than a usable response.
type FetchError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("catalog %s failed: unexpected status code %d", e.Op, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the catalog answered that the volume doesn't
// exist.
func (e *FetchError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// MissingFieldError is returned when a volume lacks a field a saved book
// can't do without.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("volume is missing %s", e.Field)
}
