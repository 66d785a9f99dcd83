package handler

import (
	"errors"
	"net/http"

	"courier/internal/transport/httpdto"
	courier_errors "courier/pkg/errors"

	"github.com/gin-gonic/gin"
)

// writeError maps service errors onto the boundary's status codes:
// self-send and thread access failures are 403, bad input is 422,
// collaborator failures stay 5xx.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, courier_errors.ErrSelfMessage):
		c.JSON(http.StatusForbidden, httpdto.NewErrorResponse(err.Error(), "FORBIDDEN_SELF_MESSAGE"))
	case errors.Is(err, courier_errors.ErrUnauthorized), errors.Is(err, courier_errors.ErrForbidden):
		c.JSON(http.StatusForbidden, httpdto.NewErrorResponse("unauthorized access", "FORBIDDEN"))
	case errors.Is(err, courier_errors.ErrInvalidInput), errors.Is(err, courier_errors.ErrTooLarge):
		c.JSON(http.StatusUnprocessableEntity, httpdto.NewErrorResponse(err.Error(), "VALIDATION_ERROR"))
	case errors.Is(err, courier_errors.ErrNotFound):
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse(err.Error(), "NOT_FOUND"))
	default:
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(err.Error(), "INTERNAL_ERROR"))
	}
}
