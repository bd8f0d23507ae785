package itemstore

import (
	"context"
)

// Item is an opaque mapping of attribute name to value. The store never
// interprets attribute contents beyond the key attributes it needs.
type Item = map[string]any

// Key identifies a single item, e.g. {"id": "1000"}.
type Key = map[string]any

// UpdateInput carries a partial mutation of a single item. Expression
// syntax is the store's own; the SQLite adapter supports a SET-only subset.
type UpdateInput struct {
	Key                       Key               `json:"Key"`
	UpdateExpression          string            `json:"UpdateExpression"`
	ConditionExpression       string            `json:"ConditionExpression,omitempty"`
	ExpressionAttributeNames  map[string]string `json:"ExpressionAttributeNames,omitempty"`
	ExpressionAttributeValues map[string]any    `json:"ExpressionAttributeValues,omitempty"`
	ReturnValues              string            `json:"ReturnValues,omitempty"`
}

// ScanInput carries optional filters for a full-table scan.
type ScanInput struct {
	FilterExpression          string            `json:"FilterExpression,omitempty"`
	ProjectionExpression      string            `json:"ProjectionExpression,omitempty"`
	ExpressionAttributeNames  map[string]string `json:"ExpressionAttributeNames,omitempty"`
	ExpressionAttributeValues map[string]any    `json:"ExpressionAttributeValues,omitempty"`
	Limit                     int32             `json:"Limit,omitempty"`
}

// ScanResult is the outcome of a scan: the matching items plus their count.
type ScanResult struct {
	Items []Item `json:"Items"`
	Count int    `json:"Count"`
}

// Table is a handle to one named collection in the item store. Each method
// issues exactly one call against the backing service and returns its raw
// acknowledgement; no retries or batching happen here.
type Table interface {
	// Put inserts the item, overwriting any existing item with the same key.
	Put(ctx context.Context, item Item) (map[string]any, error)

	// Get fetches a single item by key. A missing item is not an error; the
	// returned acknowledgement simply carries no "Item" entry.
	Get(ctx context.Context, key Key) (map[string]any, error)

	// Update applies a partial mutation to the item identified by in.Key.
	Update(ctx context.Context, in UpdateInput) (map[string]any, error)

	// Delete removes the item by key.
	Delete(ctx context.Context, key Key) (map[string]any, error)

	// Scan returns all items, optionally filtered.
	Scan(ctx context.Context, in ScanInput) (*ScanResult, error)
}

// Store resolves handles to named tables. Implementations exist for
// DynamoDB, SQLite (local development) and an in-memory mock.
type Store interface {
	// Table resolves a handle to the named collection. Resolution may fail,
	// e.g. when the store cannot be reached or the name is empty.
	Table(ctx context.Context, name string) (Table, error)

	// Close releases any resources held by the store.
	Close() error
}

// Config selects and parameterizes a store implementation.
type Config struct {
	Type         string `json:"type" yaml:"type"` // "dynamodb", "sqlite" or "memory"
	Region       string `json:"region" yaml:"region"`
	Endpoint     string `json:"endpoint" yaml:"endpoint"` // non-empty for DynamoDB Local
	SQLitePath   string `json:"sqlite_path" yaml:"sqlite_path"`
	KeyAttribute string `json:"key_attribute" yaml:"key_attribute"` // SQLite/memory adapters only
}
