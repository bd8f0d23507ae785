package dispatch

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"table-ops-api/internal/itemstore"
)

// Envelope is the inbound request: an operation name, the table it targets
// (when it touches the store) and an operation-shaped payload.
type Envelope struct {
	Operation string          `json:"operation"`
	TableName string          `json:"tableName,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

var validate = validator.New()

// createPayload carries the item to insert. Item contents stay opaque; only
// its presence is checked here.
type createPayload struct {
	Item itemstore.Item `json:"Item" validate:"required"`
}

// keyPayload carries the key mapping shared by read and delete.
type keyPayload struct {
	Key itemstore.Key `json:"Key" validate:"required"`
}

// updatePayload mirrors itemstore.UpdateInput with boundary validation on
// the fields every update needs.
type updatePayload struct {
	Key                       itemstore.Key     `json:"Key" validate:"required"`
	UpdateExpression          string            `json:"UpdateExpression" validate:"required"`
	ConditionExpression       string            `json:"ConditionExpression,omitempty"`
	ExpressionAttributeNames  map[string]string `json:"ExpressionAttributeNames,omitempty"`
	ExpressionAttributeValues map[string]any    `json:"ExpressionAttributeValues,omitempty"`
	ReturnValues              string            `json:"ReturnValues,omitempty"`
}

func (p *updatePayload) toInput() itemstore.UpdateInput {
	return itemstore.UpdateInput{
		Key:                       p.Key,
		UpdateExpression:          p.UpdateExpression,
		ConditionExpression:       p.ConditionExpression,
		ExpressionAttributeNames:  p.ExpressionAttributeNames,
		ExpressionAttributeValues: p.ExpressionAttributeValues,
		ReturnValues:              p.ReturnValues,
	}
}

// decodePayload decodes an envelope payload into the operation's request
// struct and runs its validation tags. An absent payload decodes as an empty
// mapping, which then fails validation for operations with required fields.
func decodePayload(op Operation, raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &InvalidPayloadError{Operation: op, Err: err}
	}
	if err := validate.Struct(out); err != nil {
		return &InvalidPayloadError{Operation: op, Err: err}
	}
	return nil
}

// decodeMapping decodes an envelope payload as a plain mapping, for
// operations that forward it verbatim.
func decodeMapping(op Operation, raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, &InvalidPayloadError{Operation: op, Err: err}
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}
