package availability

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"room-availability-backend/internal/cache"
	"room-availability-backend/internal/calendar"
	"room-availability-backend/internal/clock"
	"room-availability-backend/internal/metrics"
	"room-availability-backend/internal/model"
	"room-availability-backend/internal/schedule"
	"room-availability-backend/internal/store"
)

const dateLayout = "2006-01-02"

// Room binds a room identity to its external calendar identity.
type Room struct {
	ID         string `json:"id"`
	CalendarID string `json:"-"`
}

// Config carries the operating parameters the service needs.
type Config struct {
	Rooms    map[string]string // room id -> external calendar id
	Location *time.Location
	OpenAt   string
	CloseAt  string
}

// Service runs the availability pipeline (normalize, merge, evaluate,
// quantize) on externally-fetched reservation records, caches the result
// per date, and accepts conflict-free mutations.
type Service struct {
	source  calendar.Source
	cache   *cache.SnapshotCache
	journal store.Store
	clock   clock.Clock
	metrics *metrics.Metrics

	rooms   []Room
	loc     *time.Location
	openAt  string
	closeAt string
}

// NewService wires the pipeline together. Rooms are kept sorted by id so
// response order is stable regardless of map iteration.
func NewService(cfg Config, source calendar.Source, snapshots *cache.SnapshotCache, journal store.Store, clk clock.Clock, m *metrics.Metrics) *Service {
	rooms := make([]Room, 0, len(cfg.Rooms))
	for id, calID := range cfg.Rooms {
		rooms = append(rooms, Room{ID: id, CalendarID: calID})
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })

	return &Service{
		source:  source,
		cache:   snapshots,
		journal: journal,
		clock:   clk,
		metrics: m,
		rooms:   rooms,
		loc:     cfg.Location,
		openAt:  cfg.OpenAt,
		closeAt: cfg.CloseAt,
	}
}

// Rooms returns the configured rooms in stable order.
func (s *Service) Rooms() []Room {
	out := make([]Room, len(s.rooms))
	copy(out, s.rooms)
	return out
}

func (s *Service) roomByID(id string) (Room, bool) {
	for _, r := range s.rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

// GetAvailability returns the per-room availability for date (empty means
// today in the operating timezone). Reads within the cache TTL skip the
// pipeline entirely.
func (s *Service) GetAvailability(ctx context.Context, date string) (model.DayAvailability, error) {
	if date == "" {
		date = s.clock.Now().In(s.loc).Format(dateLayout)
	}

	window, err := schedule.NewWindow(date, s.openAt, s.closeAt, s.loc)
	if err != nil {
		return model.DayAvailability{}, err
	}

	if day, ok := s.cache.Get(date); ok {
		s.metrics.CacheHits.Inc()
		return day, nil
	}
	s.metrics.CacheMisses.Inc()

	// Two concurrent misses may both recompute; the later Set wins. That
	// is fine: recomputation is idempotent and the snapshot is replaced
	// as a whole value.
	gen := s.cache.Generation(date)
	day := s.computeDay(ctx, date, window)
	s.cache.Set(date, day, gen)
	return day, nil
}

// computeDay fetches every room concurrently. One room's fetch failure
// degrades that room's snapshot only; the others are unaffected.
func (s *Service) computeDay(ctx context.Context, date string, window schedule.BookingWindow) model.DayAvailability {
	now := s.clock.Now()
	snapshots := make([]model.AvailabilitySnapshot, len(s.rooms))

	var wg sync.WaitGroup
	for i, room := range s.rooms {
		wg.Add(1)
		go func(i int, room Room) {
			defer wg.Done()
			snapshots[i] = s.roomSnapshot(ctx, room, window, now)
		}(i, room)
	}
	wg.Wait()

	return model.DayAvailability{Date: date, Rooms: snapshots}
}

func (s *Service) roomSnapshot(ctx context.Context, room Room, window schedule.BookingWindow, now time.Time) model.AvailabilitySnapshot {
	s.metrics.FetchTotal.Inc()
	records, err := s.source.ListEvents(ctx, room.CalendarID, window.Start, window.End)
	if err != nil {
		s.metrics.FetchFailures.Inc()
		log.Printf("Error fetching calendar for room %s: %v", room.ID, err)
		return model.AvailabilitySnapshot{
			RoomID:    room.ID,
			Blocks:    []model.BusyBlock{},
			FreeNow:   false,
			SlotCount: window.SlotCount(),
			Spans:     []model.SlotSpan{},
			Error:     "calendar fetch failed",
		}
	}

	blocks := schedule.Merge(schedule.Normalize(records, window))
	if blocks == nil {
		blocks = []model.BusyBlock{}
	}
	verdict := schedule.Evaluate(blocks, window, now)

	return model.AvailabilitySnapshot{
		RoomID:        room.ID,
		Blocks:        blocks,
		FreeNow:       verdict.FreeNow,
		NextAvailable: verdict.NextAvailable,
		SlotCount:     window.SlotCount(),
		Spans:         schedule.BlockSpans(blocks, window),
	}
}

// CreateRequest is a proposed reservation.
type CreateRequest struct {
	RoomID          string
	Start           time.Time
	DurationMinutes int
	Title           string
}

// CreateResult reports the accepted reservation, post any all-day start
// override.
type CreateResult struct {
	EventID string    `json:"eventId"`
	RoomID  string    `json:"roomId"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// CreateReservation validates the proposal, checks it against freshly
// fetched merged blocks, and writes it to the remote calendar. Only after
// the remote write succeeds is the cache entry for the affected date
// invalidated.
func (s *Service) CreateReservation(ctx context.Context, req CreateRequest) (CreateResult, error) {
	if req.RoomID == "" || req.Title == "" || req.Start.IsZero() {
		return CreateResult{}, ErrMissingField
	}
	if req.DurationMinutes <= 0 {
		return CreateResult{}, ErrInvalidDuration
	}
	room, ok := s.roomByID(req.RoomID)
	if !ok {
		return CreateResult{}, ErrUnknownRoom
	}

	start := req.Start.In(s.loc)
	date := start.Format(dateLayout)
	window, err := schedule.NewWindow(date, s.openAt, s.closeAt, s.loc)
	if err != nil {
		return CreateResult{}, err
	}

	records, err := s.source.ListEvents(ctx, room.CalendarID, window.Start, window.End)
	if err != nil {
		s.metrics.MutationsTotal.WithLabelValues(model.ActionCreate, "error").Inc()
		return CreateResult{}, err
	}
	blocks := schedule.Merge(schedule.Normalize(records, window))

	effective, hit := schedule.CheckConflict(blocks, window, start, req.DurationMinutes)
	if hit != nil {
		s.metrics.MutationsTotal.WithLabelValues(model.ActionCreate, "conflict").Inc()
		return CreateResult{}, &ConflictError{Block: *hit}
	}
	end := effective.Add(time.Duration(req.DurationMinutes) * time.Minute)

	eventID, err := s.source.InsertEvent(ctx, room.CalendarID, req.Title, effective, end)
	if err != nil {
		// The remote state is assumed unchanged; the cache stays intact.
		s.metrics.MutationsTotal.WithLabelValues(model.ActionCreate, "error").Inc()
		return CreateResult{}, err
	}

	s.recordAction(ctx, &model.ReservationAction{
		RoomID:          room.ID,
		EventID:         eventID,
		Action:          model.ActionCreate,
		Title:           req.Title,
		StartTime:       &effective,
		DurationMinutes: req.DurationMinutes,
		PerformedAt:     s.clock.Now(),
	})

	s.cache.Invalidate(effective.In(s.loc).Format(dateLayout))
	s.metrics.MutationsTotal.WithLabelValues(model.ActionCreate, "ok").Inc()

	return CreateResult{EventID: eventID, RoomID: room.ID, Start: effective, End: end}, nil
}

// DeleteReservation removes a reservation by external event identity. When
// the caller supplies the original start, only that date's cache entry is
// invalidated; otherwise the whole cache is cleared as a conservative
// fallback.
func (s *Service) DeleteReservation(ctx context.Context, roomID, eventID string, start *time.Time) error {
	if roomID == "" || eventID == "" {
		return ErrMissingField
	}
	room, ok := s.roomByID(roomID)
	if !ok {
		return ErrUnknownRoom
	}

	if err := s.source.DeleteEvent(ctx, room.CalendarID, eventID); err != nil {
		s.metrics.MutationsTotal.WithLabelValues(model.ActionDelete, "error").Inc()
		return err
	}

	s.recordAction(ctx, &model.ReservationAction{
		RoomID:      room.ID,
		EventID:     eventID,
		Action:      model.ActionDelete,
		StartTime:   start,
		PerformedAt: s.clock.Now(),
	})

	if start != nil {
		s.cache.Invalidate(start.In(s.loc).Format(dateLayout))
	} else {
		s.cache.InvalidateAll()
	}
	s.metrics.MutationsTotal.WithLabelValues(model.ActionDelete, "ok").Inc()
	return nil
}

// RecentActions exposes the journal for the read-only history endpoint.
func (s *Service) RecentActions(ctx context.Context, limit int) ([]model.ReservationAction, error) {
	return s.journal.RecentActions(ctx, limit)
}

// recordAction journals a confirmed mutation. The remote write already
// happened, so a journal failure is logged rather than surfaced.
func (s *Service) recordAction(ctx context.Context, action *model.ReservationAction) {
	if err := s.journal.RecordAction(ctx, action); err != nil {
		log.Printf("Warning: failed to journal %s of %s: %v", action.Action, action.EventID, err)
	}
}
