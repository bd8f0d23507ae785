// Package dispatch implements the request-dispatch contract: it validates a
// request envelope and routes it to one of a fixed set of operations against
// the item-store collaborator.
package dispatch

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"table-ops-api/internal/itemstore"
)

// Operation is one value of the fixed operation vocabulary.
type Operation string

// Operation vocabulary
const (
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpList   Operation = "list"
	OpEcho   Operation = "echo"
	OpPing   Operation = "ping"
)

// Result is what an operation produces: the collaborator's acknowledgement
// mapping, the echoed payload, or the literal "pong".
type Result any

// operationSpec binds an operation tag to its handler. The registry is a
// plain package-level map resolved once at process start.
type operationSpec struct {
	needsTable bool
	handle     func(ctx context.Context, table itemstore.Table, payload json.RawMessage) (Result, error)
}

var operations = map[Operation]operationSpec{
	OpCreate: {needsTable: true, handle: handleCreate},
	OpRead:   {needsTable: true, handle: handleRead},
	OpUpdate: {needsTable: true, handle: handleUpdate},
	OpDelete: {needsTable: true, handle: handleDelete},
	OpList:   {needsTable: true, handle: handleList},
	OpEcho:   {handle: handleEcho},
	OpPing:   {handle: handlePing},
}

// Dispatcher routes envelopes to operations. It holds no per-request state;
// one Dispatcher serves arbitrarily many concurrent invocations.
type Dispatcher struct {
	store  itemstore.Store
	logger *logrus.Logger
}

// New creates a Dispatcher over the given item store.
func New(store itemstore.Store, logger *logrus.Logger) *Dispatcher {
	if logger == nil {
		logger = logrus.New()
	}
	return &Dispatcher{store: store, logger: logger}
}

// Dispatch validates the envelope and invokes the matching operation.
//
// Validation order: the operation field must be present, then recognized;
// store-touching operations must name a table, whose handle is resolved
// before the payload is decoded. Collaborator failures propagate unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, env *Envelope) (Result, error) {
	if env.Operation == "" {
		return nil, ErrMissingOperation
	}

	op := Operation(env.Operation)
	spec, ok := operations[op]
	if !ok {
		return nil, &UnrecognizedOperationError{Operation: env.Operation}
	}

	var table itemstore.Table
	if spec.needsTable {
		if env.TableName == "" {
			return nil, ErrMissingTableName
		}
		var err error
		table, err = d.store.Table(ctx, env.TableName)
		if err != nil {
			return nil, err
		}
	}

	d.logger.WithFields(logrus.Fields{
		"operation": env.Operation,
		"table":     env.TableName,
	}).Debug("Dispatching operation")

	return spec.handle(ctx, table, env.Payload)
}

func handleCreate(ctx context.Context, table itemstore.Table, payload json.RawMessage) (Result, error) {
	var p createPayload
	if err := decodePayload(OpCreate, payload, &p); err != nil {
		return nil, err
	}
	return table.Put(ctx, p.Item)
}

func handleRead(ctx context.Context, table itemstore.Table, payload json.RawMessage) (Result, error) {
	var p keyPayload
	if err := decodePayload(OpRead, payload, &p); err != nil {
		return nil, err
	}
	return table.Get(ctx, p.Key)
}

func handleUpdate(ctx context.Context, table itemstore.Table, payload json.RawMessage) (Result, error) {
	var p updatePayload
	if err := decodePayload(OpUpdate, payload, &p); err != nil {
		return nil, err
	}
	return table.Update(ctx, p.toInput())
}

func handleDelete(ctx context.Context, table itemstore.Table, payload json.RawMessage) (Result, error) {
	var p keyPayload
	if err := decodePayload(OpDelete, payload, &p); err != nil {
		return nil, err
	}
	return table.Delete(ctx, p.Key)
}

func handleList(ctx context.Context, table itemstore.Table, payload json.RawMessage) (Result, error) {
	var p itemstore.ScanInput
	if err := decodePayload(OpList, payload, &p); err != nil {
		return nil, err
	}
	return table.Scan(ctx, p)
}

func handleEcho(ctx context.Context, _ itemstore.Table, payload json.RawMessage) (Result, error) {
	return decodeMapping(OpEcho, payload)
}

func handlePing(ctx context.Context, _ itemstore.Table, _ json.RawMessage) (Result, error) {
	return "pong", nil
}
