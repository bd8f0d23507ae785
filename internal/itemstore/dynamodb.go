package itemstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// dynamoAPI is the subset of the DynamoDB client the adapter uses.
// Narrowing the client to an interface keeps the adapter testable without AWS.
type dynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoDBStore is the production item-store adapter.
type DynamoDBStore struct {
	client dynamoAPI
}

// NewDynamoDBStore builds a store from the default AWS credential chain.
// A non-empty cfg.Endpoint points the client at DynamoDB Local.
func NewDynamoDBStore(ctx context.Context, cfg *Config) (*DynamoDBStore, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &DynamoDBStore{client: client}, nil
}

// NewDynamoDBStoreWithClient wires an existing client, used by tests.
func NewDynamoDBStoreWithClient(client dynamoAPI) *DynamoDBStore {
	return &DynamoDBStore{client: client}
}

// Table resolves a handle to the named DynamoDB table. Like the underlying
// SDK, resolution does not verify that the table exists; a bad name surfaces
// on the first call against the handle.
func (s *DynamoDBStore) Table(ctx context.Context, name string) (Table, error) {
	if name == "" {
		return nil, NewStoreError("Table", name, ErrEmptyTableName)
	}
	return &dynamoTable{client: s.client, name: name}, nil
}

// Close is a no-op; the SDK client holds no connections of its own.
func (s *DynamoDBStore) Close() error {
	return nil
}

type dynamoTable struct {
	client dynamoAPI
	name   string
}

func (t *dynamoTable) Put(ctx context.Context, item Item) (map[string]any, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, NewStoreError("Put", t.name, err)
	}

	out, err := t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.name),
		Item:      av,
	})
	if err != nil {
		return nil, NewStoreError("Put", t.name, err)
	}

	return attributesAck(out.Attributes)
}

func (t *dynamoTable) Get(ctx context.Context, key Key) (map[string]any, error) {
	av, err := attributevalue.MarshalMap(key)
	if err != nil {
		return nil, NewStoreError("Get", t.name, err)
	}

	out, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.name),
		Key:       av,
	})
	if err != nil {
		return nil, NewStoreError("Get", t.name, err)
	}

	ack := map[string]any{}
	if len(out.Item) > 0 {
		var item Item
		if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
			return nil, NewStoreError("Get", t.name, err)
		}
		ack["Item"] = item
	}
	return ack, nil
}

func (t *dynamoTable) Update(ctx context.Context, in UpdateInput) (map[string]any, error) {
	key, err := attributevalue.MarshalMap(in.Key)
	if err != nil {
		return nil, NewStoreError("Update", t.name, err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                aws.String(t.name),
		Key:                      key,
		ExpressionAttributeNames: in.ExpressionAttributeNames,
	}
	if in.UpdateExpression != "" {
		input.UpdateExpression = aws.String(in.UpdateExpression)
	}
	if in.ConditionExpression != "" {
		input.ConditionExpression = aws.String(in.ConditionExpression)
	}
	if len(in.ExpressionAttributeValues) > 0 {
		values, err := attributevalue.MarshalMap(in.ExpressionAttributeValues)
		if err != nil {
			return nil, NewStoreError("Update", t.name, err)
		}
		input.ExpressionAttributeValues = values
	}
	if in.ReturnValues != "" {
		input.ReturnValues = types.ReturnValue(in.ReturnValues)
	}

	out, err := t.client.UpdateItem(ctx, input)
	if err != nil {
		return nil, NewStoreError("Update", t.name, err)
	}

	return attributesAck(out.Attributes)
}

func (t *dynamoTable) Delete(ctx context.Context, key Key) (map[string]any, error) {
	av, err := attributevalue.MarshalMap(key)
	if err != nil {
		return nil, NewStoreError("Delete", t.name, err)
	}

	out, err := t.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(t.name),
		Key:       av,
	})
	if err != nil {
		return nil, NewStoreError("Delete", t.name, err)
	}

	return attributesAck(out.Attributes)
}

func (t *dynamoTable) Scan(ctx context.Context, in ScanInput) (*ScanResult, error) {
	input := &dynamodb.ScanInput{
		TableName:                aws.String(t.name),
		ExpressionAttributeNames: in.ExpressionAttributeNames,
	}
	if in.FilterExpression != "" {
		input.FilterExpression = aws.String(in.FilterExpression)
	}
	if in.ProjectionExpression != "" {
		input.ProjectionExpression = aws.String(in.ProjectionExpression)
	}
	if len(in.ExpressionAttributeValues) > 0 {
		values, err := attributevalue.MarshalMap(in.ExpressionAttributeValues)
		if err != nil {
			return nil, NewStoreError("Scan", t.name, err)
		}
		input.ExpressionAttributeValues = values
	}
	if in.Limit > 0 {
		input.Limit = aws.Int32(in.Limit)
	}

	out, err := t.client.Scan(ctx, input)
	if err != nil {
		return nil, NewStoreError("Scan", t.name, err)
	}

	items := make([]Item, 0, len(out.Items))
	for _, raw := range out.Items {
		var item Item
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, NewStoreError("Scan", t.name, err)
		}
		items = append(items, item)
	}

	return &ScanResult{Items: items, Count: int(out.Count)}, nil
}

// attributesAck converts a returned attribute map into a write acknowledgement.
func attributesAck(attrs map[string]types.AttributeValue) (map[string]any, error) {
	ack := map[string]any{}
	if len(attrs) > 0 {
		var old Item
		if err := attributevalue.UnmarshalMap(attrs, &old); err != nil {
			return nil, err
		}
		ack["Attributes"] = old
	}
	return ack, nil
}
