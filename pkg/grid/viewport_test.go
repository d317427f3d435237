package grid

import (
	"testing"
	"time"

	"github.com/javipelopi/gridcast/pkg/model"
	"github.com/javipelopi/gridcast/pkg/timewin"
)

var loc = time.UTC

func at(hour, min int) time.Time {
	return time.Date(2026, 1, 22, hour, min, 0, 0, loc)
}

func testLayout(channels int) Layout {
	w := timewin.Window{Start: at(18, 5), End: at(21, 5)}
	return NewLayout(w, channels, Geometry{RowHeight: 1, ColWidth: 16, LabelWidth: 24, Overscan: 3})
}

func TestNewLayout_SnapsAndCounts(t *testing.T) {
	l := testLayout(10)

	if l.Empty() {
		t.Fatal("layout should not be empty")
	}
	if !l.SnappedStart().Equal(at(18, 0)) {
		t.Errorf("snapped start = %v, want 18:00", l.SnappedStart())
	}
	if l.SlotCount() != 6 {
		t.Errorf("slot count = %d, want 6", l.SlotCount())
	}
	if !l.SlotStart(5).Equal(at(20, 30)) {
		t.Errorf("last slot starts at %v, want 20:30", l.SlotStart(5))
	}
}

func TestNewLayout_EmptyStates(t *testing.T) {
	geo := DefaultGeometry()

	if l := NewLayout(timewin.Window{Start: at(18, 0), End: at(21, 0)}, 0, geo); !l.Empty() {
		t.Error("zero channels should produce an empty layout")
	}
	if l := NewLayout(timewin.Window{Start: at(18, 0), End: at(18, 0)}, 5, geo); !l.Empty() {
		t.Error("degenerate window should produce an empty layout")
	}

	empty := NewLayout(timewin.Window{}, 0, geo)
	if s := empty.VisibleRows(0, 100); s.Count != 0 {
		t.Errorf("empty layout reported %d visible rows", s.Count)
	}
	if _, ok := empty.CellRect(model.Program{Start: at(18, 0), End: at(19, 0)}); ok {
		t.Error("empty layout should not place cells")
	}
}

func TestVisibleRows_Bounds(t *testing.T) {
	// 500 channels, row height 64, viewport 640, overscan 5: ~10 visible
	// rows plus overscan, never 500.
	w := timewin.Window{Start: at(6, 0), End: at(23, 0)}
	l := NewLayout(w, 500, Geometry{RowHeight: 64, ColWidth: 100, LabelWidth: 50, Overscan: 5})

	tests := []struct {
		name   string
		offset int
		want   Span
	}{
		{"Top", 0, Span{Start: 0, Count: 15}},
		{"Middle", 64 * 100, Span{Start: 95, Count: 20}},
		{"Bottom", 64*500 - 640, Span{Start: 485, Count: 15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.VisibleRows(tt.offset, 640)
			if got != tt.want {
				t.Errorf("VisibleRows(%d) = %+v, want %+v", tt.offset, got, tt.want)
			}
			if got.Count > 10+2*5 {
				t.Errorf("visible count %d exceeds view+overscan bound", got.Count)
			}
		})
	}
}

func TestVisibleCols_IndependentAxis(t *testing.T) {
	l := testLayout(10) // 6 slots, 16 wide each

	got := l.VisibleCols(0, 48) // three columns fit
	if got.Start != 0 || got.Count != 6 {
		// 3 visible + overscan 3 on the right, clamped to 6 total
		t.Errorf("VisibleCols(0, 48) = %+v, want {0 6}", got)
	}

	if got := l.VisibleCols(16*5, 16); !got.Contains(5) {
		t.Errorf("scrolled to last column, got %+v", got)
	}
}

func TestVisibleSpan_NeverExceedsTotal(t *testing.T) {
	for _, total := range []int{1, 3, 20, 500} {
		l := NewLayout(timewin.Window{Start: at(6, 0), End: at(23, 0)}, total,
			Geometry{RowHeight: 2, ColWidth: 16, Overscan: 4})
		for _, offset := range []int{0, 7, 2 * total, 10_000} {
			got := l.VisibleRows(offset, 30)
			if got.Count > total {
				t.Fatalf("total=%d offset=%d: count %d exceeds total", total, offset, got.Count)
			}
			if got.End() > total {
				t.Fatalf("total=%d offset=%d: span %+v runs past the data", total, offset, got)
			}
		}
	}
}

func TestCellRect(t *testing.T) {
	l := testLayout(10) // snapped 18:00, 6 slots of width 16

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  CellRect
		ok    bool
	}{
		{"AlignedHour", at(18, 0), at(19, 0), CellRect{X: 0, Width: 32}, true},
		{"SecondSlot", at(18, 30), at(19, 0), CellRect{X: 16, Width: 16}, true},
		{"SubSlotOffset", at(18, 15), at(19, 15), CellRect{X: 8, Width: 32}, true},
		{"ShortProgramMinWidth", at(19, 0), at(19, 5), CellRect{X: 32, Width: 16}, true},
		{"StraddlesStart", at(17, 0), at(18, 30), CellRect{X: 0, Width: 16}, true},
		{"ClippedAtEnd", at(20, 30), at(22, 0), CellRect{X: 80, Width: 16}, true},
		{"BeforeWindow", at(16, 0), at(17, 0), CellRect{}, false},
		{"AfterWindow", at(21, 30), at(22, 0), CellRect{}, false},
		{"InvalidInterval", at(19, 0), at(18, 0), CellRect{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.CellRect(model.Program{ID: "p", Start: tt.start, End: tt.end})
			if ok != tt.ok || got != tt.want {
				t.Errorf("CellRect(%v–%v) = %+v, %v; want %+v, %v",
					tt.start.Format("15:04"), tt.end.Format("15:04"), got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSlotAt(t *testing.T) {
	l := testLayout(3)

	tests := []struct {
		name string
		t    time.Time
		slot int
		ok   bool
	}{
		{"SnappedStart", at(18, 0), 0, true},
		{"MidSlot", at(18, 15), 0, true},
		{"SecondSlot", at(18, 30), 1, true},
		{"LastSlot", at(20, 45), 5, true},
		{"PastEnd", at(21, 0), 0, false},
		{"BeforeStart", at(17, 59), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, ok := l.SlotAt(tt.t)
			if slot != tt.slot || ok != tt.ok {
				t.Errorf("SlotAt(%v) = %d, %v; want %d, %v", tt.t.Format("15:04"), slot, ok, tt.slot, tt.ok)
			}
		})
	}
}

func TestScrollIntoView(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		i      int
		want   int
	}{
		{"AlreadyVisible", 0, 3, 0},
		{"BelowView", 0, 12, 3}, // item 12 at extent 1, view 10 -> offset 3
		{"AboveView", 20, 5, 5},
		{"AtBottomEdge", 3, 12, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScrollIntoView(tt.offset, 10, 1, tt.i); got != tt.want {
				t.Errorf("ScrollIntoView(offset=%d, i=%d) = %d, want %d", tt.offset, tt.i, got, tt.want)
			}
		})
	}
}
