package clock

import "time"

// Clock abstracts time.Now so cache TTL expiry and "today" resolution can be
// driven deterministically in tests instead of sleeping on the wall clock.
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

// Now returns the current wall-clock time.
func (System) Now() time.Time {
	return time.Now()
}
