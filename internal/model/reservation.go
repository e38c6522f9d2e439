package model

import "time"

// ReservationRecord is a single raw reservation as returned by the external
// calendar source. Records are read-only; the engine never mutates them.
type ReservationRecord struct {
	EventID string
	Title   string
	Start   time.Time
	End     time.Time
}

// BusyBlock is a merged, pairwise-disjoint interval during which a room is
// reserved. Within one room/date set, blocks are sorted ascending by start
// and fully contained in the booking window.
type BusyBlock struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Title string    `json:"title"`
}

// SlotSpan maps one busy block onto the 30-minute presentation grid.
// BlockIndex is the block's position in the merged, sorted block list.
type SlotSpan struct {
	BlockIndex int `json:"blockIndex"`
	StartSlot  int `json:"startSlot"`
	Length     int `json:"length"`
}

// AvailabilitySnapshot is the computed availability for one room on one date.
// Immutable once produced; held only inside a cache entry.
type AvailabilitySnapshot struct {
	RoomID        string       `json:"roomId"`
	Blocks        []BusyBlock  `json:"busyBlocks"`
	FreeNow       bool         `json:"freeNow"`
	NextAvailable *time.Time   `json:"nextAvailable,omitempty"`
	SlotCount     int          `json:"slotCount"`
	Spans         []SlotSpan   `json:"slotSpans"`
	Error         string       `json:"error,omitempty"`
}

// DayAvailability groups every configured room's snapshot for a single date.
type DayAvailability struct {
	Date  string                 `json:"date"`
	Rooms []AvailabilitySnapshot `json:"rooms"`
}
