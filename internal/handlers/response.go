package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/bayanihan-ph/relief-backend/internal/domain"
)

// RespondError maps domain errors onto HTTP statuses in one place so every
// handler reports failures the same way. Validation errors carry their
// field map so the client can render messages inline.
func RespondError(c *gin.Context, err error) {
	if verr, ok := types.AsValidationError(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
		return
	}
	switch {
	case errors.Is(err, types.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrAlreadyClaimed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrNotQualified):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrInvalidCredentials), errors.Is(err, types.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
