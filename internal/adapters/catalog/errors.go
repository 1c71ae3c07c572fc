package catalog

import (
	"errors"
	"fmt"
)

// Sentinel kinds for catalog errors.
var (
	ErrUpstream  = errors.New("upstream returned non-success status")
	ErrTransport = errors.New("upstream request failed")
	ErrInvalidID = errors.New("invalid identifier")
)

// UpstreamError is a non-2xx response from the catalog API.
type UpstreamError struct {
	StatusCode int
	URL        string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: status %d", e.URL, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }
