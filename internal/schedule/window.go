package schedule

import (
	"fmt"
	"time"
)

// SlotDuration is the fixed width of one presentation slot.
const SlotDuration = 30 * time.Minute

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// BookingWindow is the configured open-to-close range for one calendar day
// in the operating timezone.
type BookingWindow struct {
	Date  string
	Start time.Time
	End   time.Time
}

// NewWindow anchors the configured open/close times-of-day (HH:MM) to the
// given date in the operating timezone.
func NewWindow(date, openAt, closeAt string, loc *time.Location) (BookingWindow, error) {
	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return BookingWindow{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	open, err := time.Parse(timeLayout, openAt)
	if err != nil {
		return BookingWindow{}, fmt.Errorf("invalid opening time %q: %w", openAt, err)
	}
	clos, err := time.Parse(timeLayout, closeAt)
	if err != nil {
		return BookingWindow{}, fmt.Errorf("invalid closing time %q: %w", closeAt, err)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), open.Hour(), open.Minute(), 0, 0, loc)
	end := time.Date(day.Year(), day.Month(), day.Day(), clos.Hour(), clos.Minute(), 0, 0, loc)
	if !start.Before(end) {
		return BookingWindow{}, fmt.Errorf("window %s-%s is empty", openAt, closeAt)
	}

	return BookingWindow{Date: date, Start: start, End: end}, nil
}

// Duration returns the full window length.
func (w BookingWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether t falls inside [Start, End).
func (w BookingWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// SlotCount returns the number of fixed-width slots in the window.
func (w BookingWindow) SlotCount() int {
	return int(w.Duration() / SlotDuration)
}

// SlotStart returns the start instant of slot i.
func (w BookingWindow) SlotStart(i int) time.Time {
	return w.Start.Add(time.Duration(i) * SlotDuration)
}

// SlotEnd returns the end instant of slot i (exclusive).
func (w BookingWindow) SlotEnd(i int) time.Time {
	return w.SlotStart(i + 1)
}
