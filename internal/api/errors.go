package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Errors surfaced by clients of the resource API.
var (
	// ErrNotFound is returned when the service answers 404.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when the service answers 409.
	ErrConflict = errors.New("conflict")
	// ErrRejected is returned for any other 4xx answer, including duplicate symbols on create.
	ErrRejected = errors.New("rejected")
	// ErrTransport wraps network failures and timeouts.
	ErrTransport = errors.New("resource service unreachable")
)

// StatusError is a non-2xx answer. Detail is the "error" field of the body,
// or the raw body when it is not an ErrorResponse.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("resource service returned %d: %s", e.Status, e.Detail)
}

// Unwrap maps the status to one of the sentinel errors.
func (e *StatusError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusConflict:
		return ErrConflict
	case e.Status >= 400 && e.Status < 500:
		return ErrRejected
	}
	return nil
}
