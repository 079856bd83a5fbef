// Package dynamox wires up the DynamoDB client and implements the
// storage.Table gateway on top of it. It is the only package aware of the
// AWS SDK; everything above it traffics in storage items and keys.
package dynamox

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
)

// DynamoDB is the subset of the DynamoDB API the gateway uses.
type DynamoDB interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// Client implements storage.Table against one DynamoDB table.
type Client struct {
	api   DynamoDB
	table string
}

// NewClient builds a DynamoDB-backed client from the provided config. An
// endpoint override switches to static local credentials for use against
// dynamodb-local.
func NewClient(ctx context.Context, cfg Config, enableTracing bool) (*Client, error) {
	if cfg.Table == "" {
		return nil, ErrMissingTable
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}

	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}

	if cfg.Endpoint != "" {
		loadOpts = append(loadOpts,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("local", "local", "")),
		)
	}

	awscfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	if enableTracing {
		otelaws.AppendMiddlewares(&awscfg.APIOptions)
	}

	api := dynamodb.NewFromConfig(awscfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return NewClientWithAPI(api, cfg.Table), nil
}

// NewClientWithAPI wraps an existing DynamoDB API handle. Used by tests.
func NewClientWithAPI(api DynamoDB, table string) *Client {
	return &Client{
		api:   api,
		table: table,
	}
}

// Healthcheck returns a readiness probe that describes the table.
func Healthcheck(client *Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := client.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{
			TableName: aws.String(client.table),
		})

		return err
	}
}
