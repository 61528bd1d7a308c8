package handlers

import (
	"errors"
	"net/http"
	"storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto HTTP statuses with a reason string.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrCouponNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrCouponInactive),
		errors.Is(err, models.ErrCouponExpired),
		errors.Is(err, models.ErrCouponUsageExceeded),
		errors.Is(err, models.ErrCouponBelowMinimum),
		errors.Is(err, models.ErrInvalidCart),
		errors.Is(err, models.ErrTotalMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
