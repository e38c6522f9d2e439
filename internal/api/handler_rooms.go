package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RoomResponse represents the API response for a single room.
type RoomResponse struct {
	ID string `json:"id"`
}

// GetRooms handles the GET /api/rooms request.
func (h *Handler) GetRooms(c *gin.Context) {
	rooms := h.svc.Rooms()
	responses := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		responses = append(responses, RoomResponse{ID: r.ID})
	}
	c.JSON(http.StatusOK, responses)
}
