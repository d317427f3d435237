// Package grid implements the dual-axis windowing math behind the guide
// matrix: given a channel count, a time window, and geometry constants it
// computes which rows and columns intersect the visible rectangle, plus the
// offset and extent of each program cell. The two axes are virtualized
// independently because scrolling is independent on each axis. The package
// is pure arithmetic with no rendering dependencies.
package grid

import (
	"time"

	"github.com/javipelopi/gridcast/pkg/model"
	"github.com/javipelopi/gridcast/pkg/timewin"
)

// Geometry holds the layout constants, in abstract units (terminal cells,
// pixels, the math does not care).
type Geometry struct {
	RowHeight  int // extent of one channel row
	ColWidth   int // extent of one 30-minute slot column
	LabelWidth int // reserved channel-label column at the left edge
	Overscan   int // extra rows/columns rendered beyond the viewport
}

// DefaultGeometry matches a full-size terminal rendering: one-cell rows,
// 16-cell half-hour columns, a 24-cell label gutter.
func DefaultGeometry() Geometry {
	return Geometry{RowHeight: 1, ColWidth: 16, LabelWidth: 24, Overscan: 3}
}

// Span is a half-open index range [Start, Start+Count) on one axis.
type Span struct {
	Start int
	Count int
}

// End returns the exclusive upper bound of the span.
func (s Span) End() int { return s.Start + s.Count }

// Contains reports whether index i falls inside the span.
func (s Span) Contains(i int) bool { return i >= s.Start && i < s.End() }

// CellRect is a program cell's horizontal placement within the grid content
// area, in the same units as Geometry.
type CellRect struct {
	X     int
	Width int
}

// Layout binds a snapped time window, a channel count, and geometry into a
// queryable grid. The zero Layout is empty.
type Layout struct {
	window       timewin.Window
	snappedStart time.Time
	slots        int
	rows         int
	geo          Geometry
}

// NewLayout computes the grid for the given window and channel count. An
// empty channel list or a degenerate window produces an empty layout; callers
// render an explicit empty state instead of slot geometry.
func NewLayout(w timewin.Window, channelCount int, geo Geometry) Layout {
	if channelCount <= 0 || !w.Valid() {
		return Layout{geo: geo}
	}
	return Layout{
		window:       w,
		snappedStart: timewin.SnapToHalfHourFloor(w.Start),
		slots:        w.SlotCount(),
		rows:         channelCount,
		geo:          geo,
	}
}

// Empty reports whether the layout has nothing to render.
func (l Layout) Empty() bool {
	return l.rows == 0 || l.slots == 0
}

// Window returns the layout's time window.
func (l Layout) Window() timewin.Window { return l.window }

// SnappedStart returns the half-hour-floored instant columns are laid out from.
func (l Layout) SnappedStart() time.Time { return l.snappedStart }

// Rows returns the total channel-row count.
func (l Layout) Rows() int { return l.rows }

// SlotCount returns the total number of 30-minute columns.
func (l Layout) SlotCount() int { return l.slots }

// SlotStart returns the instant column i begins at.
func (l Layout) SlotStart(i int) time.Time {
	return l.snappedStart.Add(time.Duration(i) * timewin.SlotDuration)
}

// ContentHeight returns the full scrollable height of the row axis.
func (l Layout) ContentHeight() int { return l.rows * l.geo.RowHeight }

// ContentWidth returns the full scrollable width of the column axis,
// excluding the label gutter.
func (l Layout) ContentWidth() int { return l.slots * l.geo.ColWidth }

// VisibleRows returns the channel-row index range intersecting the viewport
// at vertical scroll offset, expanded by the overscan margin on both sides.
func (l Layout) VisibleRows(offset, viewHeight int) Span {
	if l.Empty() {
		return Span{}
	}
	return visibleSpan(offset, viewHeight, l.geo.RowHeight, l.rows, l.geo.Overscan)
}

// VisibleCols returns the slot-column index range intersecting the viewport
// at horizontal scroll offset. The label gutter is outside the scrolled area
// and is not part of the range.
func (l Layout) VisibleCols(offset, viewWidth int) Span {
	if l.Empty() {
		return Span{}
	}
	return visibleSpan(offset, viewWidth, l.geo.ColWidth, l.slots, l.geo.Overscan)
}

// visibleSpan windows one axis. first/last are clamped to [0, total);
// overscan rows that would fall outside the data set are dropped, so the
// reported count never exceeds ceil(view/extent)+2*overscan nor total.
func visibleSpan(offset, view, extent, total, overscan int) Span {
	if extent <= 0 || view <= 0 || total <= 0 {
		return Span{}
	}
	if offset < 0 {
		offset = 0
	}
	first := offset/extent - overscan
	if first < 0 {
		first = 0
	}
	last := (offset+view-1)/extent + overscan
	if last >= total {
		last = total - 1
	}
	if first > last {
		return Span{}
	}
	return Span{Start: first, Count: last - first + 1}
}

// CellRect computes the horizontal placement of a program within the grid
// content area. The offset is slotsFromWindowStart × ColWidth; the width is
// at least one slot so short programs stay selectable. Programs straddling
// the window edge are clipped to it. ok is false for programs entirely
// outside the window or with an invalid interval.
func (l Layout) CellRect(p model.Program) (CellRect, bool) {
	if l.Empty() || !p.ValidInterval() {
		return CellRect{}, false
	}
	gridEnd := l.SlotStart(l.slots)
	if !p.End.After(l.snappedStart) || !p.Start.Before(gridEnd) {
		return CellRect{}, false
	}

	x := l.extentFrom(p.Start)
	end := l.extentFrom(p.End)
	if x < 0 {
		x = 0
	}
	max := l.ContentWidth()
	if end > max {
		end = max
	}

	w := end - x
	if w < l.geo.ColWidth {
		w = l.geo.ColWidth
	}
	if x+w > max {
		x = max - w
		if x < 0 {
			x = 0
			w = max
		}
	}
	return CellRect{X: x, Width: w}, true
}

// extentFrom converts an instant to a horizontal offset from the snapped
// window start. Sub-slot precision is kept by working in minutes.
func (l Layout) extentFrom(t time.Time) int {
	mins := int(t.Sub(l.snappedStart) / time.Minute)
	return mins * l.geo.ColWidth / int(timewin.SlotDuration/time.Minute)
}

// SlotAt returns the column index containing instant t, and whether t falls
// inside the grid at all. Used to mark the NOW column.
func (l Layout) SlotAt(t time.Time) (int, bool) {
	if l.Empty() || t.Before(l.snappedStart) {
		return 0, false
	}
	i := int(t.Sub(l.snappedStart) / timewin.SlotDuration)
	if i >= l.slots {
		return 0, false
	}
	return i, true
}

// RowOffset returns the scroll offset that places row i at the top edge.
func (l Layout) RowOffset(i int) int { return i * l.geo.RowHeight }

// ColOffset returns the scroll offset that places column i at the left edge.
func (l Layout) ColOffset(i int) int { return i * l.geo.ColWidth }

// ScrollIntoView adjusts a scroll offset so the item at index i is fully
// visible within view, without overshooting either end of the content.
func ScrollIntoView(offset, view, extent, i int) int {
	if extent <= 0 {
		return offset
	}
	top := i * extent
	bottom := top + extent
	if top < offset {
		return top
	}
	if bottom > offset+view {
		return bottom - view
	}
	return offset
}
