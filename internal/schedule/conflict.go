package schedule

import (
	"time"

	"room-availability-backend/internal/model"
)

// CheckConflict tests a proposed (start, duration) reservation against the
// merged blocks and returns the effective start plus the earliest
// conflicting block, or nil when the proposal is clear.
//
// A requested duration equal to the full window length is an "entire day"
// booking: the effective start is forced to the window start no matter
// which instant was requested. This override is intentional and must not
// be generalized away.
//
// Blocks are sorted ascending, so the first block with
// block.Start < proposedEnd && block.End > effectiveStart is guaranteed to
// be the earliest-starting conflict; the scan stops there.
func CheckConflict(blocks []model.BusyBlock, w BookingWindow, start time.Time, durationMinutes int) (time.Time, *model.BusyBlock) {
	d := time.Duration(durationMinutes) * time.Minute

	effective := start
	if d == w.Duration() {
		effective = w.Start
	}
	end := effective.Add(d)

	for _, b := range blocks {
		if b.Start.Before(end) && b.End.After(effective) {
			hit := b
			return effective, &hit
		}
	}
	return effective, nil
}
