package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookingapp/internal/middleware"
	"bookingapp/internal/models"
)

// parseUUIDParam rejects malformed ids before any store lookup.
func parseUUIDParam(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name})
		return "", false
	}
	return id.String(), true
}

func currentUser(c *gin.Context) *models.User {
	return middleware.CurrentUser(c)
}
