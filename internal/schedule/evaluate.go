package schedule

import (
	"time"

	"room-availability-backend/internal/model"
)

// Availability is the free-now verdict for a single instant.
type Availability struct {
	FreeNow       bool
	NextAvailable *time.Time
}

// Evaluate derives the free-now status from the merged blocks. When now is
// outside [window.Start, window.End) — wrong date, or outside operating
// hours — the status is not meaningful and both fields stay zero.
//
// Blocks are disjoint, so at most one can contain now, but it need not be
// the first block. Every block is checked.
func Evaluate(blocks []model.BusyBlock, w BookingWindow, now time.Time) Availability {
	if !w.Contains(now) {
		return Availability{}
	}
	for _, b := range blocks {
		if !now.Before(b.Start) && now.Before(b.End) {
			end := b.End
			return Availability{FreeNow: false, NextAvailable: &end}
		}
	}
	return Availability{FreeNow: true}
}
