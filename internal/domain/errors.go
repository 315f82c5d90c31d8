package domain

import "errors"

var (
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidRequest indicates invalid request
	ErrInvalidRequest = errors.New("invalid request")
	// ErrTransport indicates the assistant service could not be reached
	ErrTransport = errors.New("assistant unreachable")
	// ErrBadStatus indicates a non-2xx answer from the assistant service
	ErrBadStatus = errors.New("unexpected status from assistant")
	// ErrMalformedResponse indicates a reply body that is not the expected JSON
	ErrMalformedResponse = errors.New("malformed assistant response")
	// ErrNoPlaceholder indicates there is no pending placeholder to replace
	ErrNoPlaceholder = errors.New("no placeholder to replace")
	// ErrDuplicatePlaceholder indicates a second consecutive placeholder
	ErrDuplicatePlaceholder = errors.New("placeholder already pending")
)
