package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Prince-singh-1619/ticket-booking/internal/domain"
	"github.com/Prince-singh-1619/ticket-booking/pkg/response"
)

// handleError maps domain errors to HTTP status codes
func handleError(c *gin.Context, err error) {
	switch {
	case domain.IsValidationError(err):
		response.BadRequest(c, err.Error())
	case domain.IsNotFoundError(err):
		response.NotFound(c, err.Error())
	case domain.IsConflictError(err):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
