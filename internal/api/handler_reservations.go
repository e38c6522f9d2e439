package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"room-availability-backend/internal/availability"
)

type createReservationRequest struct {
	Room            string `json:"room" binding:"required"`
	Start           string `json:"start" binding:"required"` // RFC3339
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	Title           string `json:"title" binding:"required"`
}

// CreateReservation handles the POST /api/reservations request.
func (h *Handler) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid start. Use RFC3339."})
		return
	}

	res, err := h.svc.CreateReservation(c.Request.Context(), availability.CreateRequest{
		RoomID:          req.Room,
		Start:           start,
		DurationMinutes: req.DurationMinutes,
		Title:           req.Title,
	})
	if err != nil {
		abortWithMutationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// DeleteReservation handles the DELETE /api/reservations/:event_id
// request. The optional start query narrows cache invalidation to the
// reservation's own date.
func (h *Handler) DeleteReservation(c *gin.Context) {
	room := c.Query("room")

	var start *time.Time
	if s := c.Query("start"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid start. Use RFC3339."})
			return
		}
		start = &t
	}

	if err := h.svc.DeleteReservation(c.Request.Context(), room, c.Param("event_id"), start); err != nil {
		abortWithMutationError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func abortWithMutationError(c *gin.Context, err error) {
	var conflict *availability.ConflictError
	switch {
	case errors.As(err, &conflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":      conflict.Error(),
			"busy_from":  conflict.Block.Start.Format(time.RFC3339),
			"busy_until": conflict.Block.End.Format(time.RFC3339),
		})
	case errors.Is(err, availability.ErrUnknownRoom):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, availability.ErrMissingField), errors.Is(err, availability.ErrInvalidDuration):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Calendar update failed"})
	}
}
