package wesmaps

import (
	"fmt"
)

// FetchError is returned when a page could not be retrieved, either because the
// transport failed (Err is set) or because the server answered with a
// non-success status (StatusCode is set).
type FetchError struct {
	Url        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.Url, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.Url, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ExtractionError is returned when a value that must be well-formed is not,
// as opposed to a missing field, which resolves to a default instead.
type ExtractionError struct {
	Url   string
	Field string
	Value string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s from %s: invalid value %q: %v", e.Field, e.Url, e.Value, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
