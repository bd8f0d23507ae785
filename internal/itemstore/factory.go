package itemstore

import (
	"context"
	"fmt"
)

// Store types supported by the factory
const (
	TypeDynamoDB = "dynamodb"
	TypeSQLite   = "sqlite"
	TypeMemory   = "memory"
)

// NewStore builds the item-store adapter selected by cfg.Type.
func NewStore(ctx context.Context, cfg *Config) (Store, error) {
	switch cfg.Type {
	case TypeDynamoDB:
		return NewDynamoDBStore(ctx, cfg)
	case TypeSQLite:
		return NewSQLiteStore(cfg)
	case TypeMemory, "":
		return NewMemoryStore(cfg.KeyAttribute), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStoreType, cfg.Type)
	}
}
