package dynamox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/StevenKehrli/Trelnex-sub007/internal/storage"
)

// Key attribute names of the single table.
const (
	attrPartitionKey = "pk"
	attrSortKey      = "sk"
)

const (
	// batchWriteLimit is DynamoDB's BatchWriteItem request ceiling.
	batchWriteLimit = 25

	// maxBatchAttempts bounds re-drives of unprocessed batch entries.
	maxBatchAttempts = 5
)

var _ storage.Table = (*Client)(nil)

// CreateItem writes the item conditioned on no row existing with the same
// key, mapping the conditional failure to storage.ErrItemAlreadyExists.
func (c *Client) CreateItem(ctx context.Context, item storage.Item) error {
	attributes, err := marshalItem(item)
	if err != nil {
		return err
	}

	_, err = c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.table),
		Item:                attributes,
		ConditionExpression: aws.String("attribute_not_exists(" + attrPartitionKey + ")"),
	})
	if err != nil {
		var conditionFailed *dbtypes.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return fmt.Errorf("%w: pk=%s sk=%s", storage.ErrItemAlreadyExists, item.PartitionKey, item.SortKey)
		}

		return classify(err)
	}

	return nil
}

// PutItems writes all items, chunking to the store's batch limit.
func (c *Client) PutItems(ctx context.Context, items []storage.Item) error {
	requests := make([]dbtypes.WriteRequest, 0, len(items))

	for _, item := range items {
		attributes, err := marshalItem(item)
		if err != nil {
			return err
		}

		requests = append(requests, dbtypes.WriteRequest{
			PutRequest: &dbtypes.PutRequest{Item: attributes},
		})
	}

	return c.batchWrite(ctx, requests)
}

// DeleteItems removes all keys, chunking to the store's batch limit. Absent
// rows are not an error.
func (c *Client) DeleteItems(ctx context.Context, keys []storage.Key) error {
	requests := make([]dbtypes.WriteRequest, 0, len(keys))

	for _, key := range keys {
		requests = append(requests, dbtypes.WriteRequest{
			DeleteRequest: &dbtypes.DeleteRequest{Key: marshalKey(key)},
		})
	}

	return c.batchWrite(ctx, requests)
}

// GetItem fetches one row with a strongly consistent read, returning nil
// when absent.
func (c *Client) GetItem(ctx context.Context, key storage.Key) (*storage.Item, error) {
	out, err := c.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(c.table),
		Key:            marshalKey(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, classify(err)
	}

	if len(out.Item) == 0 {
		return nil, nil
	}

	item, err := unmarshalItem(out.Item)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// Query returns all rows matching the partition equality and optional sort
// key prefix, following pagination until exhausted.
func (c *Client) Query(ctx context.Context, query storage.Query) ([]storage.Item, error) {
	input := &dynamodb.QueryInput{
		TableName:      aws.String(c.table),
		ConsistentRead: aws.Bool(true),
		ExpressionAttributeNames: map[string]string{
			"#pk": attrPartitionKey,
		},
		ExpressionAttributeValues: map[string]dbtypes.AttributeValue{
			":pk": &dbtypes.AttributeValueMemberS{Value: query.PartitionKey},
		},
		KeyConditionExpression: aws.String("#pk = :pk"),
	}

	if query.SortKeyPrefix != "" {
		input.ExpressionAttributeNames["#sk"] = attrSortKey
		input.ExpressionAttributeValues[":sk"] = &dbtypes.AttributeValueMemberS{Value: query.SortKeyPrefix}
		input.KeyConditionExpression = aws.String("#pk = :pk AND begins_with(#sk, :sk)")
	}

	var items []storage.Item

	for {
		out, err := c.api.Query(ctx, input)
		if err != nil {
			return nil, classify(err)
		}

		for _, attributes := range out.Items {
			item, err := unmarshalItem(attributes)
			if err != nil {
				return nil, err
			}

			items = append(items, item)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}

		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	return items, nil
}

// batchWrite issues the requests in chunks, re-driving unprocessed entries
// with a short linear backoff before giving up.
func (c *Client) batchWrite(ctx context.Context, requests []dbtypes.WriteRequest) error {
	for len(requests) > 0 {
		chunk := requests
		if len(chunk) > batchWriteLimit {
			chunk = chunk[:batchWriteLimit]
		}

		requests = requests[len(chunk):]

		for attempt := 1; ; attempt++ {
			out, err := c.api.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]dbtypes.WriteRequest{
					c.table: chunk,
				},
			})
			if err != nil {
				return classify(err)
			}

			chunk = out.UnprocessedItems[c.table]
			if len(chunk) == 0 {
				break
			}

			if attempt >= maxBatchAttempts {
				return fmt.Errorf("%w: %w: %d items", storage.ErrTooManyRequests, ErrUnprocessedItems, len(chunk))
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 25 * time.Millisecond):
			}
		}
	}

	return nil
}

func marshalKey(key storage.Key) map[string]dbtypes.AttributeValue {
	return map[string]dbtypes.AttributeValue{
		attrPartitionKey: &dbtypes.AttributeValueMemberS{Value: key.PartitionKey},
		attrSortKey:      &dbtypes.AttributeValueMemberS{Value: key.SortKey},
	}
}

func marshalItem(item storage.Item) (map[string]dbtypes.AttributeValue, error) {
	attributes, err := attributevalue.MarshalMap(item.Attributes)
	if err != nil {
		return nil, err
	}

	attributes[attrPartitionKey] = &dbtypes.AttributeValueMemberS{Value: item.PartitionKey}
	attributes[attrSortKey] = &dbtypes.AttributeValueMemberS{Value: item.SortKey}

	return attributes, nil
}

func unmarshalItem(attributes map[string]dbtypes.AttributeValue) (storage.Item, error) {
	var item storage.Item

	partitionKey, ok := attributes[attrPartitionKey].(*dbtypes.AttributeValueMemberS)
	if !ok {
		return item, fmt.Errorf("%w: missing %s", storage.ErrMalformedItem, attrPartitionKey)
	}

	sortKey, ok := attributes[attrSortKey].(*dbtypes.AttributeValueMemberS)
	if !ok {
		return item, fmt.Errorf("%w: missing %s", storage.ErrMalformedItem, attrSortKey)
	}

	fields := make(map[string]dbtypes.AttributeValue, len(attributes))
	for name, value := range attributes {
		if name == attrPartitionKey || name == attrSortKey {
			continue
		}

		fields[name] = value
	}

	item.PartitionKey = partitionKey.Value
	item.SortKey = sortKey.Value

	if err := attributevalue.UnmarshalMap(fields, &item.Attributes); err != nil {
		return storage.Item{}, fmt.Errorf("%w: %w", storage.ErrMalformedItem, err)
	}

	return item, nil
}

// throttleCodes are the store error codes surfaced as retryable.
var throttleCodes = map[string]struct{}{
	"ThrottlingException":  {},
	"RequestLimitExceeded": {},
	"ServiceUnavailable":   {},
}

// classify maps store throttling responses onto storage.ErrTooManyRequests
// so that callers above the gateway never inspect SDK error types.
func classify(err error) error {
	var throughputExceeded *dbtypes.ProvisionedThroughputExceededException
	if errors.As(err, &throughputExceeded) {
		return fmt.Errorf("%w: %w", storage.ErrTooManyRequests, err)
	}

	var requestLimit *dbtypes.RequestLimitExceeded
	if errors.As(err, &requestLimit) {
		return fmt.Errorf("%w: %w", storage.ErrTooManyRequests, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if _, ok := throttleCodes[apiErr.ErrorCode()]; ok {
			return fmt.Errorf("%w: %w", storage.ErrTooManyRequests, err)
		}
	}

	return err
}
