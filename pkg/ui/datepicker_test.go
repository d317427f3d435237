package ui

import (
	"testing"
	"time"

	"github.com/javipelopi/gridcast/pkg/timewin"
)

func TestDatePickerOpenPlacesCursor(t *testing.T) {
	m := NewDatePickerModel(DefaultTheme(nil))
	now := day(22, 10)

	m.Open(now, time.Time{})
	if !m.IsOpen() || !m.Selected().Equal(day(22, 0)) {
		t.Fatalf("open without selection should start on today, got %v", m.Selected())
	}

	// A selection inside the grid puts the cursor on it.
	m.Open(now, day(25, 19))
	if !m.Selected().Equal(day(25, 0)) {
		t.Fatalf("cursor = %v, want Jan 25", m.Selected())
	}

	// A selection outside the four-week grid falls back to today.
	m.Open(now, day(22, 0).AddDate(0, 2, 0))
	if !m.Selected().Equal(day(22, 0)) {
		t.Fatalf("out-of-grid selection should fall back to today, got %v", m.Selected())
	}
}

func TestDatePickerMoveClamped(t *testing.T) {
	m := NewDatePickerModel(DefaultTheme(nil))
	now := day(22, 10)
	m.Open(now, time.Time{})

	// Left and up at the origin are no-ops.
	m.Move(NavLeft)
	m.Move(NavUp)
	if !m.Selected().Equal(day(22, 0)) {
		t.Fatalf("cursor left the grid origin: %v", m.Selected())
	}

	m.Move(NavRight)
	if !m.Selected().Equal(day(23, 0)) {
		t.Fatalf("right = %v, want Jan 23", m.Selected())
	}
	m.Move(NavDown)
	if !m.Selected().Equal(day(30, 0)) {
		t.Fatalf("down = %v, want Jan 30", m.Selected())
	}

	// Walk to the last cell and confirm the far edge clamps too.
	for i := 0; i < 40; i++ {
		m.Move(NavDown)
	}
	for i := 0; i < 10; i++ {
		m.Move(NavRight)
	}
	last := day(22, 0).AddDate(0, 0, datePickerWeeks*7-1)
	if !m.Selected().Equal(last) {
		t.Fatalf("far edge = %v, want %v", m.Selected(), last)
	}
}

func TestWindowForPick(t *testing.T) {
	now := day(22, 10)
	opts := timewin.ComputeDayOptions(now)

	// A date inside the precomputed set reuses its option.
	got := windowForPick(now, day(23, 0), opts)
	if got.ID != timewin.OptionTomorrow {
		t.Fatalf("pick for tomorrow = %s, want %s", got.ID, timewin.OptionTomorrow)
	}

	// Today matches the Today option, not Tonight.
	got = windowForPick(now, day(22, 0), opts)
	if got.ID != timewin.OptionToday {
		t.Fatalf("pick for today = %s, want %s", got.ID, timewin.OptionToday)
	}

	// Outside the set a full-day option is synthesized.
	far := day(22, 0).AddDate(0, 0, 20)
	got = windowForPick(now, far, opts)
	if !timewin.SameCalendarDay(got.Anchor, far) {
		t.Fatalf("synthesized anchor = %v, want %v", got.Anchor, far)
	}
	wantStart := far.Add(6 * time.Hour)
	if !got.Window.Start.Equal(wantStart) {
		t.Fatalf("synthesized window starts %v, want %v", got.Window.Start, wantStart)
	}
}
