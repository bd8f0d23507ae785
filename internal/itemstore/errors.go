package itemstore

import (
	"errors"
	"fmt"
)

// Common store error conditions
var (
	ErrEmptyTableName      = errors.New("table name is empty")
	ErrTableNotFound       = errors.New("table not found")
	ErrMissingKey          = errors.New("item is missing its key attribute")
	ErrUnsupportedFeature  = errors.New("operation not supported by this store")
	ErrStoreUnavailable    = errors.New("item store unavailable")
	ErrUnknownStoreType    = errors.New("unknown store type")
	ErrMalformedExpression = errors.New("malformed expression")
)

// StoreError wraps a failed store call with the operation and table involved.
type StoreError struct {
	Op    string // operation that failed, e.g. "Put", "Scan"
	Table string // table the operation targeted
	Err   error  // underlying error
}

func (e *StoreError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("itemstore: %s on table %q: %v", e.Op, e.Table, e.Err)
	}
	return fmt.Sprintf("itemstore: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError for the given operation and table.
func NewStoreError(op, table string, err error) *StoreError {
	return &StoreError{Op: op, Table: table, Err: err}
}

// IsStoreError reports whether err originated from an item-store call.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
