package schedule

import (
	"room-availability-backend/internal/model"
)

// Overlaps reports whether block b covers any part of slot i:
// b.Start < slotEnd(i) && b.End > slotStart(i).
func Overlaps(b model.BusyBlock, w BookingWindow, i int) bool {
	return b.Start.Before(w.SlotEnd(i)) && b.End.After(w.SlotStart(i))
}

// Occupancy returns, per slot, the index of the merged block covering it,
// or -1 for a free slot.
func Occupancy(blocks []model.BusyBlock, w BookingWindow) []int {
	occ := make([]int, w.SlotCount())
	for i := range occ {
		occ[i] = -1
	}
	for idx, b := range blocks {
		for i := range occ {
			if occ[i] == -1 && Overlaps(b, w, i) {
				occ[i] = idx
			}
		}
	}
	return occ
}

// BlockSpans maps each merged block onto the slot range it occupies,
// representing every block exactly once (not once per overlapped slot).
// The span starts at the slot containing the block's effective start
// (max(block.Start, window.Start)) and covers ceil(length/30m) slots,
// clipped so it never runs past the grid.
//
// Already-placed blocks are keyed by their index in the merged list, not by
// their start timestamp, so two blocks that ever shared a start instant
// would still each get a span. The disjoint invariant makes that
// impossible in practice; the guard is cheap.
func BlockSpans(blocks []model.BusyBlock, w BookingWindow) []model.SlotSpan {
	total := w.SlotCount()
	placed := make(map[int]bool, len(blocks))
	spans := make([]model.SlotSpan, 0, len(blocks))

	for idx, b := range blocks {
		if placed[idx] {
			continue
		}
		placed[idx] = true

		eff := b.Start
		if eff.Before(w.Start) {
			eff = w.Start
		}
		if !eff.Before(w.End) {
			continue
		}

		startSlot := int(eff.Sub(w.Start) / SlotDuration)
		length := int((b.End.Sub(eff) + SlotDuration - 1) / SlotDuration)
		if startSlot+length > total {
			length = total - startSlot
		}
		if length <= 0 {
			continue
		}

		spans = append(spans, model.SlotSpan{BlockIndex: idx, StartSlot: startSlot, Length: length})
	}
	return spans
}
