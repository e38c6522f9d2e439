package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultJournalLimit = 20
	maxJournalLimit     = 100
)

// GetJournal handles the GET /api/journal request, returning the most
// recent confirmed reservation mutations.
func (h *Handler) GetJournal(c *gin.Context) {
	limit := defaultJournalLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}
	if limit > maxJournalLimit {
		limit = maxJournalLimit
	}

	actions, err := h.svc.RecentActions(c.Request.Context(), limit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load journal"})
		return
	}
	c.JSON(http.StatusOK, actions)
}
