package handlers

import (
	"errors"

	"table-ops-api/internal/dispatch"
	"table-ops-api/internal/itemstore"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// isValidationError checks if an error came from envelope or payload validation
func isValidationError(err error) bool {
	return dispatch.IsValidationError(err)
}

// isCollaboratorError checks if an error came from the item-store collaborator
func isCollaboratorError(err error) bool {
	if itemstore.IsStoreError(err) {
		return true
	}
	return errors.Is(err, itemstore.ErrStoreUnavailable)
}
