package model

import "time"

// Mutation kinds recorded in the journal.
const (
	ActionCreate = "create"
	ActionDelete = "delete"
)

// ReservationAction is one confirmed calendar mutation. The journal is an
// append-only operational history; it is never consulted when computing
// availability.
type ReservationAction struct {
	ID              int64      `gorm:"autoIncrement;primaryKey" json:"id"`
	RoomID          string     `gorm:"size:64;not null;index" json:"roomId"`
	EventID         string     `gorm:"size:128;not null" json:"eventId"`
	Action          string     `gorm:"size:16;not null" json:"action"`
	Title           string     `gorm:"size:256" json:"title,omitempty"`
	StartTime       *time.Time `json:"startTime,omitempty"`
	DurationMinutes int        `json:"durationMinutes,omitempty"`
	PerformedAt     time.Time  `gorm:"not null;index" json:"performedAt"`
}
