package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAvailability handles the GET /api/availability request. An omitted
// date parameter means today in the operating timezone.
func (h *Handler) GetAvailability(c *gin.Context) {
	day, err := h.svc.GetAvailability(c.Request.Context(), c.Query("date"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid date. Use YYYY-MM-DD."})
		return
	}
	c.JSON(http.StatusOK, day)
}
