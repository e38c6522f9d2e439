package schedule

import (
	"sort"

	"room-availability-backend/internal/model"
)

// Merge sorts clipped intervals ascending by start (stable, so ties keep
// their input order) and coalesces overlapping intervals into maximal
// disjoint blocks. Touching counts as overlap: [09:00-09:30] and
// [09:30-10:00] become one block.
//
// When intervals merge, the earliest-starting interval's title is kept.
// That is deliberate policy, not an accident: the first record by start
// order names the whole merged block.
//
// Merge is idempotent; merging an already-merged list returns equal blocks.
func Merge(intervals []model.BusyBlock) []model.BusyBlock {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]model.BusyBlock, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := make([]model.BusyBlock, 0, len(sorted))
	merged = append(merged, sorted[0])
	for _, iv := range sorted[1:] {
		cur := &merged[len(merged)-1]
		if !iv.Start.After(cur.End) {
			if iv.End.After(cur.End) {
				cur.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
