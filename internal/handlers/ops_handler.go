package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"table-ops-api/internal/dispatch"
)

// OpsHandler binds request envelopes from the dev server to the dispatcher.
type OpsHandler struct {
	dispatcher *dispatch.Dispatcher
}

// NewOpsHandler creates a new operations handler
func NewOpsHandler(dispatcher *dispatch.Dispatcher) *OpsHandler {
	return &OpsHandler{dispatcher: dispatcher}
}

// @Summary Dispatch a table operation
// @Description Validate a request envelope and route it to the item store
// @Tags ops
// @Accept json
// @Produce json
// @Param envelope body dispatch.Envelope true "Request envelope"
// @Success 200 {object} object
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /ops [post]
func (h *OpsHandler) HandleOperation(c *gin.Context) {
	var env dispatch.Envelope
	if err := c.ShouldBindJSON(&env); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	result, err := h.dispatcher.Dispatch(c.Request.Context(), &env)
	if err != nil {
		switch {
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Validation failed",
				Message: err.Error(),
			})
		case isCollaboratorError(err):
			c.JSON(http.StatusBadGateway, ErrorResponse{
				Error:   "Item store request failed",
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "Operation failed",
				Message: err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
