package schedule

import (
	"time"

	"room-availability-backend/internal/model"
)

// Normalize clips raw reservation records to the booking window. Records
// that end up with zero or negative length (fully outside the window, or
// degenerate to begin with) are dropped. Titles are preserved. The output
// order follows the input order; overlaps are resolved later by Merge.
func Normalize(records []model.ReservationRecord, w BookingWindow) []model.BusyBlock {
	out := make([]model.BusyBlock, 0, len(records))
	for _, r := range records {
		start, end := clip(r.Start, r.End, w)
		if !start.Before(end) {
			continue
		}
		out = append(out, model.BusyBlock{Start: start, End: end, Title: r.Title})
	}
	return out
}

func clip(start, end time.Time, w BookingWindow) (time.Time, time.Time) {
	if start.Before(w.Start) {
		start = w.Start
	}
	if end.After(w.End) {
		end = w.End
	}
	return start, end
}
