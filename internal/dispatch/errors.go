package dispatch

import (
	"errors"
	"fmt"
)

// Envelope validation failures
var (
	// ErrMissingOperation means the envelope carried no operation field.
	ErrMissingOperation = errors.New("request is missing the operation field")

	// ErrMissingTableName means a store-touching operation was invoked
	// without naming a table.
	ErrMissingTableName = errors.New("operation requires a tableName")
)

// UnrecognizedOperationError reports an operation outside the vocabulary,
// carrying the offending string for diagnostics.
type UnrecognizedOperationError struct {
	Operation string
}

func (e *UnrecognizedOperationError) Error() string {
	return fmt.Sprintf("unrecognized operation %q", e.Operation)
}

// InvalidPayloadError reports a payload that could not be decoded into the
// shape an operation requires, or that failed boundary validation.
type InvalidPayloadError struct {
	Operation Operation
	Err       error
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("invalid payload for operation %q: %v", e.Operation, e.Err)
}

func (e *InvalidPayloadError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err was raised by envelope or payload
// validation rather than by the item-store collaborator.
func IsValidationError(err error) bool {
	if errors.Is(err, ErrMissingOperation) || errors.Is(err, ErrMissingTableName) {
		return true
	}
	var unrecognized *UnrecognizedOperationError
	if errors.As(err, &unrecognized) {
		return true
	}
	var invalid *InvalidPayloadError
	return errors.As(err, &invalid)
}
