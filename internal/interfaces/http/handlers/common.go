// internal/interfaces/http/handlers/common.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/boffobaby/inventory-backend/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError maps domain errors to HTTP statuses and the {"message"}
// envelope the dashboards render.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientStock):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
	default:
		logrus.WithError(err).Error("unhandled request error")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

// parseIDParam parses a :id path segment.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}
