package ui

import (
	"testing"
	"time"

	"github.com/javipelopi/gridcast/pkg/timewin"
)

func day(d, hour int) time.Time {
	return time.Date(2026, 1, d, hour, 0, 0, 0, time.UTC)
}

func TestDaybarStartsOnToday(t *testing.T) {
	m := NewDaybarModel(day(22, 10), DefaultTheme(nil))
	if m.Selected().ID != timewin.OptionToday {
		t.Fatalf("initial selection = %s, want today", m.Selected().ID)
	}
}

func TestDaybarNextPrevFloorsAtToday(t *testing.T) {
	now := day(22, 10)
	m := NewDaybarModel(now, DefaultTheme(nil))

	m.Next(now) // tonight, same calendar day
	if m.Selected().ID != timewin.OptionTonight {
		t.Fatalf("Next from today = %s, want tonight", m.Selected().ID)
	}
	m.Next(now)
	if m.Selected().ID != timewin.OptionTomorrow {
		t.Fatalf("Next from tonight = %s, want tomorrow", m.Selected().ID)
	}

	m.Prev(now)
	if m.Selected().ID != timewin.OptionTonight {
		t.Fatalf("Prev from tomorrow = %s, want tonight", m.Selected().ID)
	}
	m.Prev(now)
	if m.Selected().ID != timewin.OptionToday {
		t.Fatalf("Prev from tonight = %s, want today", m.Selected().ID)
	}

	// Today is the floor: further Prev is a no-op.
	before := m.Selected()
	m.Prev(now)
	if m.Selected().ID != before.ID || !m.Selected().Anchor.Equal(before.Anchor) {
		t.Fatalf("Prev moved before today: %v -> %v", before, m.Selected())
	}
}

func TestDaybarNextSynthesizesPastListEnd(t *testing.T) {
	now := day(22, 10)
	m := NewDaybarModel(now, DefaultTheme(nil))

	last := m.Options()[len(m.Options())-1]
	m.Select(last)
	m.Next(now)
	if !m.Selected().Anchor.After(last.Anchor) {
		t.Fatalf("Next past the list end should synthesize a later day")
	}
}

func TestDaybarRolloverResetsToToday(t *testing.T) {
	now := day(22, 10)
	m := NewDaybarModel(now, DefaultTheme(nil))
	m.Next(now)

	// Same calendar day: nothing happens.
	if m.CheckRollover(day(22, 23)) {
		t.Fatalf("rollover fired within the same day")
	}

	// Past midnight: options recompute around the new today and the
	// selection snaps back to it.
	nextDay := day(23, 0).Add(5 * time.Minute)
	if !m.CheckRollover(nextDay) {
		t.Fatalf("rollover did not fire after midnight")
	}
	sel := m.Selected()
	if sel.ID != timewin.OptionToday || !timewin.SameCalendarDay(sel.Anchor, nextDay) {
		t.Fatalf("post-rollover selection = %s anchored %v", sel.ID, sel.Anchor)
	}
}
