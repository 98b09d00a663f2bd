package domain

import "errors"

var (
	// ErrInvalidRequest signals a malformed hook request from the host.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrStoreUnavailable signals that user preferences could not be read.
	ErrStoreUnavailable = errors.New("preference store unavailable")
)
