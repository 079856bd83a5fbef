package storage

import "errors"

var (
	// ErrItemAlreadyExists is returned by CreateItem when a row with the
	// same key already exists.
	ErrItemAlreadyExists = errors.New("item already exists")

	// ErrTooManyRequests is returned when the backing store reports
	// throttling or capacity exhaustion. Callers may retry with backoff.
	ErrTooManyRequests = errors.New("store is throttling requests")

	// ErrMalformedItem is returned when a stored row is missing the
	// attributes its key shape requires.
	ErrMalformedItem = errors.New("malformed item")
)
