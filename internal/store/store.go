package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"room-availability-backend/internal/model"
)

// Store is the reservation mutation journal. Only confirmed remote
// mutations are recorded; availability is never computed from it.
type Store interface {
	RecordAction(ctx context.Context, action *model.ReservationAction) error
	RecentActions(ctx context.Context, limit int) ([]model.ReservationAction, error)
}

// gormStore implements Store using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed journal.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// RecordAction appends one confirmed mutation to the journal.
func (s *gormStore) RecordAction(ctx context.Context, action *model.ReservationAction) error {
	if err := s.db.WithContext(ctx).Create(action).Error; err != nil {
		return fmt.Errorf("failed to record %s action for room %s: %w", action.Action, action.RoomID, err)
	}
	return nil
}

// RecentActions returns the newest journal entries, most recent first.
func (s *gormStore) RecentActions(ctx context.Context, limit int) ([]model.ReservationAction, error) {
	var actions []model.ReservationAction
	err := s.db.WithContext(ctx).
		Order("performed_at DESC").
		Limit(limit).
		Find(&actions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent actions: %w", err)
	}
	return actions, nil
}
