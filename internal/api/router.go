package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"room-availability-backend/config"
	"room-availability-backend/internal/availability"
	"room-availability-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(svc *availability.Service, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(svc)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), 5, cfg.RequestIPHeader)

	// Response cache for the static rooms listing only; availability has
	// its own snapshot cache with mutation-driven invalidation.
	roomsTTL := time.Duration(cfg.RoomsCacheTTLSeconds) * time.Second
	cacheStore := cache.New(roomsTTL, 2*roomsTTL)
	caching := mw.Cache(cacheStore, roomsTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/availability", handler.GetAvailability)
		api.GET("/rooms", caching, handler.GetRooms)
		api.GET("/journal", handler.GetJournal)
		api.POST("/reservations", handler.CreateReservation)
		api.DELETE("/reservations/:event_id", handler.DeleteReservation)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
