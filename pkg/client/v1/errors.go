package client

import "errors"

var (
	// ErrInvalidRequest is returned when the server rejects the request as malformed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUnauthorized is returned when the request is missing or carries bad credentials
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when the named entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when the named entity already exists
	ErrConflict = errors.New("already exists")

	// ErrUnavailable is returned when the server is throttled or otherwise unable to answer
	ErrUnavailable = errors.New("service unavailable")

	// ErrBadResponse is the error returned when we receive a bad response from the server
	ErrBadResponse = errors.New("bad response from server")
)
