package api

import (
	"room-availability-backend/internal/availability"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	svc *availability.Service
}

// NewHandler creates a new API handler.
func NewHandler(svc *availability.Service) *Handler {
	return &Handler{svc: svc}
}
