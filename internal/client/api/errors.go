package api

import (
	"errors"
	"net/http"
)

var (
	// ErrUnavailable marks transport failures: the server could not be
	// reached at all.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized marks 401 responses: missing/expired credential or a
	// resource owned by someone else.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound marks 404 responses.
	ErrNotFound = errors.New("not found")
)

// APIError is a non-2xx server response. Message carries the server's
// {message} field verbatim so the UI can surface it unchanged.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets errors.Is match APIError values against the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}
