package ui

import (
	"testing"
	"time"

	"github.com/javipelopi/gridcast/pkg/epg"
	"github.com/javipelopi/gridcast/pkg/grid"
	"github.com/javipelopi/gridcast/pkg/model"
	"github.com/javipelopi/gridcast/pkg/timewin"
)

func testGuide() *epg.Guide {
	return &epg.Guide{
		Channels: testChannels(),
		Programs: map[string][]model.Program{
			"c1": eveningPrograms(),
			"c2": {{ID: "p4", Title: "Documentary", ChannelID: "c2", Start: day(22, 18), End: day(22, 21)}},
		},
	}
}

func TestGridMoveClampedToMatrix(t *testing.T) {
	m := NewGridModel(grid.DefaultGeometry(), DefaultTheme(nil))
	m.SetSize(120, 20)
	w := timewin.Window{Start: day(22, 18), End: day(22, 21)}
	m.SetData(testGuide(), w)

	if m.Move(NavUp) || m.Move(NavLeft) {
		t.Fatalf("moves off the matrix origin should be rejected")
	}
	if !m.Move(NavDown) || !m.Move(NavRight) {
		t.Fatalf("moves inside the matrix should succeed")
	}

	// 3 channels and 6 half-hour slots bound the cursor.
	for i := 0; i < 10; i++ {
		m.Move(NavDown)
		m.Move(NavRight)
	}
	if m.Move(NavDown) || m.Move(NavRight) {
		t.Fatalf("moves past the far corner should be rejected")
	}
}

func TestGridSelectedProgramUnderCursor(t *testing.T) {
	m := NewGridModel(grid.DefaultGeometry(), DefaultTheme(nil))
	m.SetSize(120, 20)
	w := timewin.Window{Start: day(22, 18), End: day(22, 21)}
	m.SetData(testGuide(), w)

	// Row 0 (c1), column 2 covers 19:00-19:30: Evening News.
	m.Move(NavRight)
	m.Move(NavRight)
	p, ok := m.SelectedProgram()
	if !ok || p.ID != "p2" {
		t.Fatalf("program under cursor = %v %s, want p2", ok, p.ID)
	}

	ch, ok := m.SelectedChannel()
	if !ok || ch.ID != "c1" {
		t.Fatalf("channel under cursor = %v %s, want c1", ok, ch.ID)
	}

	// Row 2 (c3) has no programs.
	m.Move(NavDown)
	m.Move(NavDown)
	if _, ok := m.SelectedProgram(); ok {
		t.Fatalf("empty channel row should yield no program")
	}
}

func TestGridJumpToNow(t *testing.T) {
	m := NewGridModel(grid.DefaultGeometry(), DefaultTheme(nil))
	m.SetSize(120, 20)
	w := timewin.Window{Start: day(22, 18), End: day(22, 21)}
	m.SetData(testGuide(), w)

	if !m.JumpToNow(day(22, 20).Add(10 * time.Minute)) {
		t.Fatalf("JumpToNow inside the window should succeed")
	}
	if m.colCur != 4 {
		t.Fatalf("now column = %d, want 4 (20:00-20:30)", m.colCur)
	}

	if m.JumpToNow(day(23, 9)) {
		t.Fatalf("JumpToNow outside the window should fail")
	}
}

func TestGridEmptyGuide(t *testing.T) {
	m := NewGridModel(grid.DefaultGeometry(), DefaultTheme(nil))
	m.SetData(nil, timewin.Window{Start: day(22, 18), End: day(22, 21)})
	if !m.Empty() {
		t.Fatalf("nil guide should produce an empty grid")
	}
	if m.Move(NavDown) {
		t.Fatalf("moves on an empty grid should be rejected")
	}
}
