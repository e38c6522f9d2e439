package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"room-availability-backend/config"
	"room-availability-backend/internal/api"
	"room-availability-backend/internal/availability"
	"room-availability-backend/internal/cache"
	"room-availability-backend/internal/calendar"
	"room-availability-backend/internal/clock"
	"room-availability-backend/internal/db"
	"room-availability-backend/internal/metrics"
	"room-availability-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "room-backend ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	loc, err := time.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		logger.Fatalf("failed to load operating timezone %q: %v", cfg.Calendar.Timezone, err)
	}

	source, err := calendar.NewClient(cfg.Calendar.BaseURL, cfg.Calendar.AuthToken, cfg.Calendar.Timeout)
	if err != nil {
		logger.Fatalf("calendar source: %v. Set calendar.base_url and calendar.auth_token in the config file.", err)
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize journal database: %v", err)
	}
	logger.Println("journal database initialized")

	journal := store.NewGormStore(gormDB)

	collectors := metrics.New(prometheus.DefaultRegisterer)

	svc := availability.NewService(availability.Config{
		Rooms:    cfg.Calendar.Rooms,
		Location: loc,
		OpenAt:   cfg.Calendar.OpenTime,
		CloseAt:  cfg.Calendar.CloseTime,
	}, source, cache.New(cfg.Calendar.SnapshotTTL, clock.System{}), journal, clock.System{}, collectors)
	logger.Printf("availability service initialized for %d rooms (window %s-%s %s, snapshot TTL %s)",
		len(cfg.Calendar.Rooms), cfg.Calendar.OpenTime, cfg.Calendar.CloseTime, cfg.Calendar.Timezone, cfg.Calendar.SnapshotTTL)

	router := api.NewRouter(svc, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
