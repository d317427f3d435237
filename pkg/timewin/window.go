// Package timewin implements the time-window algebra behind the guide: pure
// functions that derive, shift, and snap display windows to canonical anchors.
package timewin

import (
	"time"
)

const (
	// SlotDuration is the fixed subdivision of the time axis used for
	// column layout.
	SlotDuration = 30 * time.Minute

	// DefaultSpan is the window size used when centering on a program.
	DefaultSpan = 3 * time.Hour

	primeTimeStartHour = 19
	primeTimeEndHour   = 22
	morningStartHour   = 6
	morningEndHour     = 12
)

// Window is an immutable [Start, End) interval. Every transformation returns
// a new value; Start < End holds for every Window produced by this package.
type Window struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the window is non-degenerate.
func (w Window) Valid() bool {
	return w.Start.Before(w.End)
}

// Duration returns the window length.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether t falls inside the half-open interval.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Equal reports instant-level equality of both bounds.
func (w Window) Equal(o Window) bool {
	return w.Start.Equal(o.Start) && w.End.Equal(o.End)
}

// ShiftDays returns the window with both bounds moved by n calendar days.
// n may be negative.
func (w Window) ShiftDays(n int) Window {
	return Window{
		Start: w.Start.AddDate(0, 0, n),
		End:   w.End.AddDate(0, 0, n),
	}
}

// CenteredOn returns a window of length span straddling instant evenly.
// A non-positive span falls back to DefaultSpan so callers never receive a
// degenerate window.
func CenteredOn(instant time.Time, span time.Duration) Window {
	if span <= 0 {
		span = DefaultSpan
	}
	half := span / 2
	return Window{Start: instant.Add(-half), End: instant.Add(span - half)}
}

// StartingAt returns the window [instant, instant+span). A non-positive span
// falls back to DefaultSpan.
func StartingAt(instant time.Time, span time.Duration) Window {
	if span <= 0 {
		span = DefaultSpan
	}
	return Window{Start: instant, End: instant.Add(span)}
}

// SnapToHalfHourFloor rounds t down to the nearest :00 or :30 mark. Column
// boundaries are always laid out from a snapped instant regardless of the raw
// window start.
func SnapToHalfHourFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), (t.Minute()/30)*30, 0, 0, t.Location())
}

// SlotCount returns the number of 30-minute columns spanning the window,
// i.e. ceil((end-start)/30min). Columns are laid out from the snapped start:
// a [18:05, 21:05) window yields 6 slots beginning at 18:00.
func (w Window) SlotCount() int {
	if !w.Valid() {
		return 0
	}
	span := w.Duration()
	n := int(span / SlotDuration)
	if span%SlotDuration != 0 {
		n++
	}
	return n
}

// PrimeTime returns today's canonical 19:00–22:00 window relative to now.
func PrimeTime(now time.Time) Window {
	y, m, d := now.Date()
	return Window{
		Start: time.Date(y, m, d, primeTimeStartHour, 0, 0, 0, now.Location()),
		End:   time.Date(y, m, d, primeTimeEndHour, 0, 0, 0, now.Location()),
	}
}

// TomorrowMorning returns tomorrow's canonical 06:00–12:00 window relative
// to now.
func TomorrowMorning(now time.Time) Window {
	t := now.AddDate(0, 0, 1)
	y, m, d := t.Date()
	return Window{
		Start: time.Date(y, m, d, morningStartHour, 0, 0, 0, now.Location()),
		End:   time.Date(y, m, d, morningEndHour, 0, 0, 0, now.Location()),
	}
}

// startOfDay returns midnight of t's calendar day.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// endOfDay returns the last representable millisecond of t's calendar day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// SameCalendarDay reports whether a and b fall on the same calendar day in
// a's location.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
