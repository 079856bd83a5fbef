package dynamox

import "errors"

var (
	// ErrMissingTable is returned when no table name is configured.
	ErrMissingTable = errors.New("no dynamodb table configured")

	// ErrUnprocessedItems is returned when the store keeps reporting
	// unprocessed entries after all batch re-drives.
	ErrUnprocessedItems = errors.New("batch write items remain unprocessed")
)
