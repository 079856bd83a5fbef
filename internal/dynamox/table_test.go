package dynamox_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StevenKehrli/Trelnex-sub007/internal/dynamox"
	"github.com/StevenKehrli/Trelnex-sub007/internal/storage"
)

const testTable = "trelnex-auth-test"

// fakeDynamoDB scripts responses for the gateway methods under test.
type fakeDynamoDB struct {
	putErr error

	batchSizes       []int
	unprocessedOnce  bool
	batchCalls       int
	failedUnprepared bool

	queryPages []*dynamodb.QueryOutput
	queryCall  int
	lastQuery  *dynamodb.QueryInput

	getOutput *dynamodb.GetItemOutput
	getErr    error
}

func (f *fakeDynamoDB) PutItem(_ context.Context, _ *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}

	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoDB) GetItem(_ context.Context, _ *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	if f.getOutput != nil {
		return f.getOutput, nil
	}

	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamoDB) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.lastQuery = params

	out := f.queryPages[f.queryCall]
	f.queryCall++

	return out, nil
}

func (f *fakeDynamoDB) BatchWriteItem(_ context.Context, params *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	f.batchCalls++
	requests := params.RequestItems[testTable]
	f.batchSizes = append(f.batchSizes, len(requests))

	if f.unprocessedOnce && !f.failedUnprepared {
		f.failedUnprepared = true

		return &dynamodb.BatchWriteItemOutput{
			UnprocessedItems: map[string][]dbtypes.WriteRequest{
				testTable: requests[:1],
			},
		}, nil
	}

	return &dynamodb.BatchWriteItemOutput{}, nil
}

func (f *fakeDynamoDB) DescribeTable(_ context.Context, _ *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return &dynamodb.DescribeTableOutput{}, nil
}

func (f *fakeDynamoDB) CreateTable(_ context.Context, _ *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	return &dynamodb.CreateTableOutput{}, nil
}

func TestCreateItemConflictMapping(t *testing.T) {
	fake := &fakeDynamoDB{putErr: &dbtypes.ConditionalCheckFailedException{}}
	client := dynamox.NewClientWithAPI(fake, testTable)

	err := client.CreateItem(context.Background(), storage.ResourceItem("api://svc"))
	assert.ErrorIs(t, err, storage.ErrItemAlreadyExists)
}

func TestThrottleClassification(t *testing.T) {
	fake := &fakeDynamoDB{getErr: &dbtypes.ProvisionedThroughputExceededException{}}
	client := dynamox.NewClientWithAPI(fake, testTable)

	_, err := client.GetItem(context.Background(), storage.ResourceKey("api://svc"))
	assert.ErrorIs(t, err, storage.ErrTooManyRequests)
}

func TestBatchWriteChunking(t *testing.T) {
	fake := &fakeDynamoDB{}
	client := dynamox.NewClientWithAPI(fake, testTable)

	items := make([]storage.Item, 0, 60)
	for i := 0; i < 60; i++ {
		items = append(items, storage.ScopeItem("api://svc", fmt.Sprintf("scope-%03d", i)))
	}

	err := client.PutItems(context.Background(), items)
	require.NoError(t, err)

	assert.Equal(t, []int{25, 25, 10}, fake.batchSizes, "writes are chunked to the store's batch limit")
}

func TestBatchWriteRedrivesUnprocessed(t *testing.T) {
	fake := &fakeDynamoDB{unprocessedOnce: true}
	client := dynamox.NewClientWithAPI(fake, testTable)

	err := client.DeleteItems(context.Background(), []storage.Key{
		storage.ScopeKey("api://svc", "prod"),
		storage.ScopeKey("api://svc", "dev"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, fake.batchCalls, "unprocessed entries are re-driven")
	assert.Equal(t, []int{2, 1}, fake.batchSizes)
}

func TestQueryPagination(t *testing.T) {
	page := func(scopes ...string) *dynamodb.QueryOutput {
		out := &dynamodb.QueryOutput{}

		for _, scope := range scopes {
			item := storage.ScopeItem("api://svc", scope)
			out.Items = append(out.Items, map[string]dbtypes.AttributeValue{
				"pk":            &dbtypes.AttributeValueMemberS{Value: item.PartitionKey},
				"sk":            &dbtypes.AttributeValueMemberS{Value: item.SortKey},
				"_resourceName": &dbtypes.AttributeValueMemberS{Value: "api://svc"},
				"_scopeName":    &dbtypes.AttributeValueMemberS{Value: scope},
			})
		}

		return out
	}

	first := page("dev", "prod")
	first.LastEvaluatedKey = map[string]dbtypes.AttributeValue{
		"pk": &dbtypes.AttributeValueMemberS{Value: "RESOURCE#api://svc"},
	}

	fake := &fakeDynamoDB{queryPages: []*dynamodb.QueryOutput{first, page("stage")}}
	client := dynamox.NewClientWithAPI(fake, testTable)

	items, err := client.Query(context.Background(), storage.Query{
		PartitionKey:  storage.ResourcePartition("api://svc"),
		SortKeyPrefix: storage.ScopePrefix(),
	})
	require.NoError(t, err)

	require.Len(t, items, 3, "all pages are materialized")
	assert.Equal(t, 2, fake.queryCall)

	scope, err := items[2].ScopeName()
	require.NoError(t, err)
	assert.Equal(t, "stage", scope)

	require.NotNil(t, fake.lastQuery.KeyConditionExpression)
	assert.Contains(t, *fake.lastQuery.KeyConditionExpression, "begins_with")
}

func TestGetItemAbsent(t *testing.T) {
	client := dynamox.NewClientWithAPI(&fakeDynamoDB{}, testTable)

	item, err := client.GetItem(context.Background(), storage.ResourceKey("api://svc"))
	require.NoError(t, err)
	assert.Nil(t, item)
}
