package handlers

import (
	"errors"
	"net/http"
	"time"

	"agency-tracker-api/internal/models"
	"agency-tracker-api/internal/tasks"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError maps engine errors onto the HTTP error taxonomy:
// validation 400, forbidden 403, not found 404, anything else 500.
func respondError(c *gin.Context, err error) {
	var ve *tasks.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
	case errors.Is(err, tasks.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, tasks.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

// callerFrom rebuilds the authenticated caller from the values the JWT
// middleware stored in the context.
func callerFrom(c *gin.Context) tasks.Caller {
	return tasks.Caller{
		ID:   c.GetString("user_id"),
		Role: models.UserRole(c.GetString("role")),
	}
}

// parseDateParam accepts RFC3339 timestamps or plain dates. A plain date used
// as an upper bound is stretched to the last instant of that day so the bound
// stays inclusive.
func parseDateParam(value string, upperBound bool) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		if upperBound {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		return &t, true
	}
	return nil, false
}
