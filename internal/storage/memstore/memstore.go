// Package memstore provides an in-memory storage.Table used by tests in
// place of the DynamoDB-backed gateway.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/StevenKehrli/Trelnex-sub007/internal/storage"
)

// Table is an in-memory storage.Table. Safe for concurrent use.
type Table struct {
	mu         sync.RWMutex
	partitions map[string]map[string]storage.Item
}

var _ storage.Table = (*Table)(nil)

// New returns an empty in-memory table.
func New() *Table {
	return &Table{
		partitions: map[string]map[string]storage.Item{},
	}
}

// CreateItem writes the item only if absent, returning
// storage.ErrItemAlreadyExists otherwise.
func (t *Table) CreateItem(_ context.Context, item storage.Item) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	partition, ok := t.partitions[item.PartitionKey]
	if !ok {
		partition = map[string]storage.Item{}
		t.partitions[item.PartitionKey] = partition
	}

	if _, ok := partition[item.SortKey]; ok {
		return storage.ErrItemAlreadyExists
	}

	partition[item.SortKey] = copyItem(item)

	return nil
}

// PutItems writes all items, replacing existing rows.
func (t *Table) PutItems(_ context.Context, items []storage.Item) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, item := range items {
		partition, ok := t.partitions[item.PartitionKey]
		if !ok {
			partition = map[string]storage.Item{}
			t.partitions[item.PartitionKey] = partition
		}

		partition[item.SortKey] = copyItem(item)
	}

	return nil
}

// DeleteItems removes all keys. Absent rows are ignored.
func (t *Table) DeleteItems(_ context.Context, keys []storage.Key) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, key := range keys {
		if partition, ok := t.partitions[key.PartitionKey]; ok {
			delete(partition, key.SortKey)
		}
	}

	return nil
}

// GetItem fetches one row by key, returning nil when absent.
func (t *Table) GetItem(_ context.Context, key storage.Key) (*storage.Item, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	partition, ok := t.partitions[key.PartitionKey]
	if !ok {
		return nil, nil
	}

	item, ok := partition[key.SortKey]
	if !ok {
		return nil, nil
	}

	item = copyItem(item)

	return &item, nil
}

// Query returns all rows of the partition matching the sort key prefix,
// ordered by sort key ascending.
func (t *Table) Query(_ context.Context, query storage.Query) ([]storage.Item, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var items []storage.Item

	for sortKey, item := range t.partitions[query.PartitionKey] {
		if strings.HasPrefix(sortKey, query.SortKeyPrefix) {
			items = append(items, copyItem(item))
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].SortKey < items[j].SortKey
	})

	return items, nil
}

// Len reports the total number of stored rows.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var n int

	for _, partition := range t.partitions {
		n += len(partition)
	}

	return n
}

func copyItem(item storage.Item) storage.Item {
	attributes := make(map[string]string, len(item.Attributes))
	for k, v := range item.Attributes {
		attributes[k] = v
	}

	item.Attributes = attributes

	return item
}
