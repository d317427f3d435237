package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javipelopi/gridcast/pkg/epg"
	"github.com/javipelopi/gridcast/pkg/grid"
	"github.com/javipelopi/gridcast/pkg/model"
	"github.com/javipelopi/gridcast/pkg/timewin"
)

// GridModel is the channel×time matrix view. Only the rows and columns
// intersecting the visible rectangle (plus overscan) are ever rendered; the
// cursor is a (channel row, slot column) pair and scrolling on each axis is
// independent.
type GridModel struct {
	layout   grid.Layout
	geo      grid.Geometry
	channels []model.Channel
	programs map[string][]model.Program

	rowCur, colCur int
	rowOff, colOff int
	width, height  int
	theme          Theme
}

func NewGridModel(geo grid.Geometry, theme Theme) GridModel {
	return GridModel{geo: geo, theme: theme, programs: map[string][]model.Program{}}
}

// SetData rebinds the grid to a freshly fetched guide and window. Cursor and
// scroll reset to the window origin.
func (g *GridModel) SetData(guide *epg.Guide, w timewin.Window) {
	if guide == nil {
		g.channels = nil
		g.programs = map[string][]model.Program{}
		g.layout = grid.NewLayout(w, 0, g.geo)
		return
	}
	g.channels = guide.Channels
	g.programs = guide.Programs
	g.layout = grid.NewLayout(w, len(guide.Channels), g.geo)
	g.rowCur, g.colCur = 0, 0
	g.rowOff, g.colOff = 0, 0
}

func (g *GridModel) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.scrollIntoView()
}

// Empty reports whether there is nothing to render.
func (g *GridModel) Empty() bool { return g.layout.Empty() }

// Move applies one directional step, clamped to the matrix bounds. It
// reports false when the step hit a boundary.
func (g *GridModel) Move(ev NavEvent) bool {
	row, col := g.rowCur, g.colCur
	switch ev {
	case NavUp:
		row--
	case NavDown:
		row++
	case NavLeft:
		col--
	case NavRight:
		col++
	}
	if row < 0 || row >= g.layout.Rows() || col < 0 || col >= g.layout.SlotCount() {
		return false
	}
	g.rowCur, g.colCur = row, col
	g.scrollIntoView()
	return true
}

// JumpToNow moves the cursor to the column containing now, if it is inside
// the window.
func (g *GridModel) JumpToNow(now time.Time) bool {
	col, ok := g.layout.SlotAt(now)
	if !ok {
		return false
	}
	g.colCur = col
	g.scrollIntoView()
	return true
}

// SelectedChannel returns the channel on the cursor row.
func (g *GridModel) SelectedChannel() (model.Channel, bool) {
	if g.rowCur < 0 || g.rowCur >= len(g.channels) {
		return model.Channel{}, false
	}
	return g.channels[g.rowCur], true
}

// SelectedProgram returns the program covering the cursor cell.
func (g *GridModel) SelectedProgram() (model.Program, bool) {
	ch, ok := g.SelectedChannel()
	if !ok {
		return model.Program{}, false
	}
	slotStart := g.layout.SlotStart(g.colCur)
	slotEnd := slotStart.Add(timewin.SlotDuration)
	for _, p := range g.programs[ch.ID] {
		if p.Start.Before(slotEnd) && p.End.After(slotStart) {
			return p, true
		}
	}
	return model.Program{}, false
}

func (g *GridModel) scrollIntoView() {
	if g.width <= 0 || g.height <= 0 {
		return
	}
	rowView := g.viewRows() * g.geo.RowHeight
	colView := g.contentWidth()
	g.rowOff = grid.ScrollIntoView(g.rowOff, rowView, g.geo.RowHeight, g.rowCur)
	g.colOff = grid.ScrollIntoView(g.colOff, colView, g.geo.ColWidth, g.colCur)

	if maxRow := g.layout.ContentHeight() - rowView; g.rowOff > maxRow {
		g.rowOff = max(0, maxRow)
	}
	if maxCol := g.layout.ContentWidth() - colView; g.colOff > maxCol {
		g.colOff = max(0, maxCol)
	}
}

// viewRows is how many channel rows fit under the time ruler.
func (g *GridModel) viewRows() int { return max(1, g.height-2) }

// contentWidth is the horizontal space right of the label gutter.
func (g *GridModel) contentWidth() int { return max(g.geo.ColWidth, g.width-g.geo.LabelWidth) }

// View renders the ruler, the visible rows, and the NOW column marker.
func (g GridModel) View(focused bool, now time.Time) string {
	t := g.theme

	if g.layout.Empty() {
		return t.Renderer.NewStyle().
			Width(g.width).
			Height(g.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(t.Secondary).
			Render("No guide data for this window")
	}

	rows := g.layout.VisibleRows(g.rowOff, g.viewRows()*g.geo.RowHeight)
	cols := g.layout.VisibleCols(g.colOff, g.contentWidth())

	var b strings.Builder
	b.WriteString(g.renderRuler(cols, now))
	b.WriteByte('\n')

	firstRow := g.rowOff / g.geo.RowHeight
	lastRow := min(firstRow+g.viewRows(), g.layout.Rows())
	for i := firstRow; i < lastRow; i++ {
		if !rows.Contains(i) {
			continue
		}
		b.WriteString(g.renderRow(i, cols, focused, now))
		if i < lastRow-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// renderRuler draws the half-hour tick labels over the grid.
func (g GridModel) renderRuler(cols grid.Span, now time.Time) string {
	t := g.theme

	label := truncate(g.layout.Window().Start.Format("Mon 2 Jan"), g.geo.LabelWidth)
	ruler := t.Renderer.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Render(padRight(label, g.geo.LabelWidth))

	nowSlot, nowVisible := g.layout.SlotAt(now)
	pos := 0
	for i := cols.Start; i < cols.End(); i++ {
		x := g.layout.ColOffset(i) - g.colOff
		if x < pos || x >= g.contentWidth() {
			continue
		}
		tick := g.layout.SlotStart(i).Format("15:04")
		style := t.Renderer.NewStyle().Foreground(t.Secondary)
		if nowVisible && i == nowSlot {
			style = t.Renderer.NewStyle().Foreground(t.Now).Bold(true)
			tick = "▾" + tick
		}
		pad := x - pos
		ruler += strings.Repeat(" ", pad) + style.Render(tick)
		pos = x + lipgloss.Width(tick)
	}
	return ruler
}

// renderRow draws one channel's label and its program cells clipped to the
// visible column range.
func (g GridModel) renderRow(row int, cols grid.Span, focused bool, now time.Time) string {
	t := g.theme
	ch := g.channels[row]

	labelStyle := t.Renderer.NewStyle().Foreground(t.Subtext)
	if row == g.rowCur {
		labelStyle = t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)
	}
	line := labelStyle.Render(padRight(truncate(ch.Name, g.geo.LabelWidth-1), g.geo.LabelWidth))

	viewW := g.contentWidth()
	selStart := g.layout.ColOffset(g.colCur)
	pos := 0
	for _, p := range g.programs[ch.ID] {
		rect, ok := g.layout.CellRect(p)
		if !ok {
			continue
		}
		sx := rect.X - g.colOff
		ex := sx + rect.Width
		if ex <= 0 || sx >= viewW {
			continue
		}
		if sx < pos {
			// Clip cells that entered from the left edge.
			sx = pos
		}
		w := min(ex, viewW) - sx
		if w <= 0 {
			continue
		}
		if sx > pos {
			line += strings.Repeat(" ", sx-pos)
			pos = sx
		}

		status := model.Classify(p, now)
		style := t.Renderer.NewStyle().Foreground(t.GetStatusColor(string(status)))
		selected := focused && row == g.rowCur &&
			rect.X <= selStart && selStart < rect.X+rect.Width
		if selected {
			style = t.Renderer.NewStyle().
				Background(t.Highlight).
				Foreground(t.Primary).
				Bold(true)
		}

		text := "▏" + truncate(p.Title, w-1)
		line += style.Render(padRight(text, w))
		pos += w
	}
	return line
}

// padRight pads s with spaces to the given display width.
func padRight(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
