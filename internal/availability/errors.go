package availability

import (
	"errors"
	"fmt"

	"room-availability-backend/internal/model"
)

var (
	// ErrUnknownRoom means the room identity is not in the configured map.
	ErrUnknownRoom = errors.New("unknown room")

	// ErrInvalidDuration means the proposed duration is not a positive
	// number of minutes.
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")

	// ErrMissingField means a required request field was absent. Rejected
	// before any remote call.
	ErrMissingField = errors.New("missing required field")
)

// ConflictError reports the earliest-starting busy block that overlaps a
// proposed reservation.
type ConflictError struct {
	Block model.BusyBlock
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room is booked from %s", e.Block.Start.Format("15:04"))
}
