package memstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StevenKehrli/Trelnex-sub007/internal/storage"
	"github.com/StevenKehrli/Trelnex-sub007/internal/storage/memstore"
)

func TestCreateItemConflict(t *testing.T) {
	table := memstore.New()
	ctx := context.Background()

	item := storage.ResourceItem("api://svc")

	require.NoError(t, table.CreateItem(ctx, item))

	err := table.CreateItem(ctx, item)
	assert.ErrorIs(t, err, storage.ErrItemAlreadyExists)
}

func TestQueryPrefixAndOrder(t *testing.T) {
	table := memstore.New()
	ctx := context.Background()

	err := table.PutItems(ctx, []storage.Item{
		storage.ResourceItem("api://svc"),
		storage.ScopeItem("api://svc", "prod"),
		storage.ScopeItem("api://svc", "dev"),
		storage.RoleItem("api://svc", "reader"),
	})
	require.NoError(t, err)

	items, err := table.Query(ctx, storage.Query{
		PartitionKey:  storage.ResourcePartition("api://svc"),
		SortKeyPrefix: storage.ScopePrefix(),
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "SCOPE#dev", items[0].SortKey, "results are ordered by sort key")
	assert.Equal(t, "SCOPE#prod", items[1].SortKey)

	items, err = table.Query(ctx, storage.Query{
		PartitionKey: storage.ResourcePartition("api://svc"),
	})
	require.NoError(t, err)
	assert.Len(t, items, 4, "an empty prefix selects the whole partition")
}

func TestDeleteAbsentRows(t *testing.T) {
	table := memstore.New()
	ctx := context.Background()

	err := table.DeleteItems(ctx, []storage.Key{storage.ResourceKey("api://svc")})
	require.NoError(t, err, "deleting absent rows is not an error")

	got, err := table.GetItem(ctx, storage.ResourceKey("api://svc"))
	require.NoError(t, err)
	assert.Nil(t, got)
}
