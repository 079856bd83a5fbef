// Package storage defines the single-table contract the query engine is
// built on: string partition/sort keys, string attributes, conditional
// create, bounded batch writes, and prefix queries. The key layout for every
// item kind lives here as well, so that the table implementation never needs
// to understand the domain and the engine never needs to understand the
// backing store's SDK.
package storage

import "context"

// Item is one stored row. Attributes carry the original component fields of
// the item, so decoding a row never requires splitting its sort key.
type Item struct {
	PartitionKey string
	SortKey      string
	Attributes   map[string]string
}

// Key identifies one stored row.
type Key struct {
	PartitionKey string
	SortKey      string
}

// Key returns the item's primary key.
func (i Item) Key() Key {
	return Key{PartitionKey: i.PartitionKey, SortKey: i.SortKey}
}

// Query selects all rows of one partition whose sort key begins with
// SortKeyPrefix. An empty prefix selects the whole partition.
type Query struct {
	PartitionKey  string
	SortKeyPrefix string
}

// Table is the gateway to the backing key-value store. Implementations chunk
// batch operations to the store's limits and follow pagination to exhaustion;
// callers see whole results or an error.
type Table interface {
	// CreateItem writes the item only if no row with the same key exists,
	// returning ErrItemAlreadyExists otherwise.
	CreateItem(ctx context.Context, item Item) error

	// PutItems writes all items. Existing rows are replaced.
	PutItems(ctx context.Context, items []Item) error

	// DeleteItems removes all keys. Absent rows are not an error.
	DeleteItems(ctx context.Context, keys []Key) error

	// GetItem fetches one row by key, returning nil when absent.
	GetItem(ctx context.Context, key Key) (*Item, error)

	// Query returns all rows matching the query, ordered by sort key
	// ascending.
	Query(ctx context.Context, query Query) ([]Item, error)
}
