package handler

import (
	"errors"
	"net/http"

	"djibtrade/internal/domain"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the domain error taxonomy onto status codes:
// field-level validation -> 400, permission -> 403, not found -> 404,
// anything else -> 500 with a generic message.
func respondServiceError(c *gin.Context, err error) {
	if ve, ok := domain.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": ve.Fields})
		return
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
