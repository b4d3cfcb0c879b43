package metadata

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery is returned for blank search queries.
	ErrEmptyQuery = errors.New("query is required")
	// ErrMissingAPIKey is returned when no TMDB API key is configured.
	ErrMissingAPIKey = errors.New("tmdb api key not configured")
)

// UpstreamError is a non-success HTTP status from TMDB. The response body is
// not kept.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("tmdb responded with status %d", e.StatusCode)
}

// PartialDataError describes a title whose watch-provider lookup failed. It is
// logged and contained; Search never returns it.
type PartialDataError struct {
	MediaType string
	ID        int64
	Err       error
}

func (e *PartialDataError) Error() string {
	return fmt.Sprintf("watch providers for %s/%d: %v", e.MediaType, e.ID, e.Err)
}

func (e *PartialDataError) Unwrap() error { return e.Err }

// decodeError marks a response body that was not the expected JSON.
type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return "decode tmdb response: " + e.err.Error() }

func (e *decodeError) Unwrap() error { return e.err }
