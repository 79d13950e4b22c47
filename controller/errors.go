package controller

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"studytube/service"
	"studytube/youtube"
)

// abortErr maps service and adapter errors to HTTP statuses. Adapter
// failures keep their own statuses so callers can tell a retryable search
// apart from a server fault.
func abortErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, youtube.ErrQuotaExceeded):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "video search quota exceeded"})
	case errors.Is(err, youtube.ErrUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "video search unavailable"})
	default:
		log.Error("internal error", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
