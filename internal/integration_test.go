package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"room-availability-backend/config"
	"room-availability-backend/internal/api"
	"room-availability-backend/internal/availability"
	"room-availability-backend/internal/cache"
	"room-availability-backend/internal/calendar"
	"room-availability-backend/internal/metrics"
	"room-availability-backend/internal/model"
	"room-availability-backend/internal/store"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

// upstreamCalendar is a minimal in-memory implementation of the external
// calendar service's wire protocol.
type upstreamCalendar struct {
	mu        sync.Mutex
	events    map[string][]map[string]string // calendar id -> events
	listCalls int
	nextID    int
}

func (u *upstreamCalendar) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		defer u.mu.Unlock()

		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		// calendars/{id}/events[/{eventID}]
		if len(parts) < 3 || parts[0] != "calendars" || parts[2] != "events" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		calID := parts[1]

		switch {
		case r.Method == http.MethodGet:
			u.listCalls++
			json.NewEncoder(w).Encode(map[string]any{"events": u.events[calID]})
		case r.Method == http.MethodPost:
			var ev map[string]string
			json.NewDecoder(r.Body).Decode(&ev)
			u.nextID++
			ev["id"] = fmt.Sprintf("ev-%d", u.nextID)
			u.events[calID] = append(u.events[calID], ev)
			json.NewEncoder(w).Encode(map[string]string{"id": ev["id"]})
		case r.Method == http.MethodDelete && len(parts) == 4:
			kept := u.events[calID][:0]
			for _, ev := range u.events[calID] {
				if ev["id"] != parts[3] {
					kept = append(kept, ev)
				}
			}
			u.events[calID] = kept
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func (u *upstreamCalendar) calls() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.listCalls
}

// TestReservationLifecycle walks the whole flow against a live router: a
// cached read, a create that invalidates it, the recomputed read, and the
// delete that frees the room again.
func TestReservationLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// In-memory SQLite journal, as in production small deployments.
	testDB, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()
	require.NoError(t, testDB.AutoMigrate(&model.ReservationAction{}))
	journal := store.NewGormStore(testDB)

	upstream := &upstreamCalendar{events: map[string][]map[string]string{}}
	server := httptest.NewServer(upstream.handler())
	defer server.Close()

	source, err := calendar.NewClient(server.URL, "secret", 2*time.Second)
	require.NoError(t, err)

	clk := &fakeClock{now: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}
	svc := availability.NewService(availability.Config{
		Rooms:    map[string]string{"aquarium": "cal-a", "boardroom": "cal-b"},
		Location: time.UTC,
		OpenAt:   "09:00",
		CloseAt:  "18:00",
	}, source, cache.New(cache.DefaultTTL, clk), journal, clk, metrics.New(prometheus.NewRegistry()))

	router := api.NewRouter(svc, &config.ServerConfig{RateLimitPerSec: 1000, RoomsCacheTTLSeconds: 60})

	get := func() model.DayAvailability {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/availability?date=2026-03-02", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var day model.DayAvailability
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
		return day
	}

	// Step 1: first read runs the pipeline, one fetch per room.
	day := get()
	require.Len(t, day.Rooms, 2)
	assert.True(t, day.Rooms[0].FreeNow)
	assert.True(t, day.Rooms[1].FreeNow)
	assert.Equal(t, 2, upstream.calls())

	// Step 2: a second read within the TTL is served from the cache.
	get()
	assert.Equal(t, 2, upstream.calls())

	// Step 3: create a reservation; the remote write must land upstream
	// and the journal must record it.
	body := `{"room":"aquarium","start":"2026-03-02T13:00:00Z","duration_minutes":90,"title":"design review"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/reservations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created availability.CreateResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.EventID)

	actions, err := journal.RecentActions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, model.ActionCreate, actions[0].Action)

	// Step 4: the still-valid cache entry was invalidated by the create;
	// the next read recomputes and shows the busy block.
	day = get()
	aquarium := day.Rooms[0]
	require.Equal(t, "aquarium", aquarium.RoomID)
	require.Len(t, aquarium.Blocks, 1)
	assert.Equal(t, "design review", aquarium.Blocks[0].Title)

	// Step 5: delete it, scoped to its date; the room frees up again.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/api/reservations/"+created.EventID+"?room=aquarium&start=2026-03-02T13:00:00Z", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	day = get()
	assert.Empty(t, day.Rooms[0].Blocks)

	actions, err = journal.RecentActions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, actions, 2)
}
