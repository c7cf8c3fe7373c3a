package search

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials reports absent provider credentials. It is fatal for
// the current request and never retried.
var ErrMissingCredentials = errors.New("missing environment variables: GOOGLE_API_KEY and GOOGLE_CSE_ID")

// StatusError is a non-2xx response from the search provider, carrying the
// status code and a truncated body excerpt for display.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Body)
}
