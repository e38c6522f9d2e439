package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"room-availability-backend/internal/clock"
	"room-availability-backend/internal/model"
)

// DefaultTTL is how long a computed day snapshot stays fresh.
const DefaultTTL = 60 * time.Second

type entry struct {
	day       model.DayAvailability
	createdAt time.Time
	gen       uint64
}

// SnapshotCache holds the computed availability per calendar date. Entries
// are stored in go-cache for concurrency-safe access, but freshness is
// judged against the injected clock, not go-cache's internal timer, so TTL
// expiry is fully controllable in tests.
//
// Every date carries a write generation. Callers snapshot the generation
// before recomputing and hand it back to Set; Invalidate bumps it, so a
// recompute that raced with an invalidation loses and its stale result is
// discarded instead of resurrecting the entry.
type SnapshotCache struct {
	store *gocache.Cache
	ttl   time.Duration
	clock clock.Clock

	mu   sync.Mutex
	gens map[string]uint64
}

// New creates a SnapshotCache with the given TTL.
func New(ttl time.Duration, clk clock.Clock) *SnapshotCache {
	return &SnapshotCache{
		store: gocache.New(gocache.NoExpiration, 0),
		ttl:   ttl,
		clock: clk,
		gens:  make(map[string]uint64),
	}
}

// Generation returns the current write generation for date. A recompute
// must call this before fetching and pass the value to Set.
func (c *SnapshotCache) Generation(date string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	g := c.gens[date]
	// Materialize the key so InvalidateAll sees in-flight recomputes too.
	c.gens[date] = g
	return g
}

// Get returns the cached snapshot for date when an entry exists and is
// younger than the TTL. An over-age entry is reported as a miss.
func (c *SnapshotCache) Get(date string) (model.DayAvailability, bool) {
	v, ok := c.store.Get(date)
	if !ok {
		return model.DayAvailability{}, false
	}
	e := v.(entry)
	if c.clock.Now().Sub(e.createdAt) >= c.ttl {
		return model.DayAvailability{}, false
	}
	return e.day, true
}

// Set stores day under date with createdAt = now, overwriting any prior
// entry — unless an invalidation arrived after gen was taken, in which case
// the write is dropped.
func (c *SnapshotCache) Set(date string, day model.DayAvailability, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[date] != gen {
		return
	}
	c.store.Set(date, entry{day: day, createdAt: c.clock.Now(), gen: gen}, gocache.NoExpiration)
}

// Invalidate removes the entry for date immediately, independent of TTL,
// and bumps the date's generation so in-flight recomputes cannot restore
// the removed snapshot.
func (c *SnapshotCache) Invalidate(date string) {
	c.mu.Lock()
	c.gens[date]++
	c.mu.Unlock()
	c.store.Delete(date)
}

// InvalidateAll clears every entry. Used when a mutation's affected date
// cannot be determined.
func (c *SnapshotCache) InvalidateAll() {
	c.mu.Lock()
	for date := range c.gens {
		c.gens[date]++
	}
	c.mu.Unlock()
	c.store.Flush()
}
