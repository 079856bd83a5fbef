package dynamox

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const tableActiveTimeout = 2 * time.Minute

// CreateTable provisions the single table with its pk/sk schema and waits
// for it to become active. An existing table is not an error.
func (c *Client) CreateTable(ctx context.Context) error {
	_, err := c.api.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(c.table),
		AttributeDefinitions: []dbtypes.AttributeDefinition{
			{AttributeName: aws.String(attrPartitionKey), AttributeType: dbtypes.ScalarAttributeTypeS},
			{AttributeName: aws.String(attrSortKey), AttributeType: dbtypes.ScalarAttributeTypeS},
		},
		KeySchema: []dbtypes.KeySchemaElement{
			{AttributeName: aws.String(attrPartitionKey), KeyType: dbtypes.KeyTypeHash},
			{AttributeName: aws.String(attrSortKey), KeyType: dbtypes.KeyTypeRange},
		},
		BillingMode: dbtypes.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *dbtypes.ResourceInUseException
		if !errors.As(err, &inUse) {
			return err
		}
	}

	api, ok := c.api.(*dynamodb.Client)
	if !ok {
		return nil
	}

	waiter := dynamodb.NewTableExistsWaiter(api)

	return waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(c.table),
	}, tableActiveTimeout)
}
