package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javipelopi/gridcast/pkg/grid"
	"github.com/javipelopi/gridcast/pkg/model"
)

// ScheduleModel is the schedule-list panel: the selected channel's programs
// for the active window, with live status badges and a progress bar on the
// airing program.
type ScheduleModel struct {
	programs []model.Program

	cursor int
	offset int
	width  int
	height int
	theme  Theme
}

func NewScheduleModel(theme Theme) ScheduleModel {
	return ScheduleModel{theme: theme, cursor: -1}
}

// SetPrograms replaces the list for a newly selected channel or window.
// The cursor resets; the caller usually follows with AutoSelectAiring.
func (m *ScheduleModel) SetPrograms(programs []model.Program) {
	m.programs = programs
	m.cursor = -1
	m.offset = 0
}

func (m *ScheduleModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scrollIntoView()
}

// AutoSelectAiring selects the currently airing program if one exists and
// nothing is selected yet; otherwise it falls back to the first program.
func (m *ScheduleModel) AutoSelectAiring(now time.Time) {
	if m.cursor >= 0 || len(m.programs) == 0 {
		return
	}
	m.cursor = 0
	for i, p := range m.programs {
		if model.Classify(p, now) == model.StatusNow {
			m.cursor = i
			break
		}
	}
	m.scrollIntoView()
}

// MoveDown advances the cursor; false at the bottom boundary.
func (m *ScheduleModel) MoveDown() bool {
	if m.cursor >= len(m.programs)-1 {
		return false
	}
	m.cursor++
	m.scrollIntoView()
	return true
}

// MoveUp retreats the cursor; false at the top boundary.
func (m *ScheduleModel) MoveUp() bool {
	if m.cursor <= 0 {
		return false
	}
	m.cursor--
	m.scrollIntoView()
	return true
}

// AtTop reports whether the cursor sits on the first program (or nothing is
// selected yet).
func (m *ScheduleModel) AtTop() bool { return m.cursor <= 0 }

func (m *ScheduleModel) Len() int { return len(m.programs) }

// Selected returns the program under the cursor.
func (m *ScheduleModel) Selected() (model.Program, bool) {
	if m.cursor < 0 || m.cursor >= len(m.programs) {
		return model.Program{}, false
	}
	return m.programs[m.cursor], true
}

// SelectByID moves the cursor to the program with the given ID.
func (m *ScheduleModel) SelectByID(id string) bool {
	for i, p := range m.programs {
		if p.ID == id {
			m.cursor = i
			m.scrollIntoView()
			return true
		}
	}
	return false
}

func (m *ScheduleModel) scrollIntoView() {
	if m.height <= 0 || m.cursor < 0 {
		return
	}
	m.offset = grid.ScrollIntoView(m.offset, m.height, 1, m.cursor)
	maxOffset := max(0, len(m.programs)-m.height)
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
}

// View renders the visible slice of the schedule. now drives the status
// badges and the progress bar; it is passed in so the 60-second
// reclassification tick refreshes the panel without refetching.
func (m ScheduleModel) View(focused bool, now time.Time) string {
	t := m.theme

	if len(m.programs) == 0 {
		return t.Renderer.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(t.Secondary).
			Render("No programs in this window")
	}

	var rows []string
	end := min(m.offset+m.height, len(m.programs))
	for i := m.offset; i < end; i++ {
		p := m.programs[i]
		status := model.Classify(p, now)

		badge := t.Renderer.NewStyle().
			Foreground(t.GetStatusColor(string(status))).
			Render(statusBadge(status))

		titleWidth := m.width - 14 // time span + badge
		line := fmt.Sprintf("%s %s %s", p.Airtime(), badge, truncate(p.Title, titleWidth))

		if status == model.StatusNow {
			line += " " + m.progressBar(p, now)
		}

		if i == m.cursor && focused {
			line = t.Selected.Width(m.width).Render(line)
		} else if i == m.cursor {
			line = t.Renderer.NewStyle().Foreground(t.Primary).Bold(true).Render(line)
		} else if status == model.StatusPast {
			line = t.Renderer.NewStyle().Foreground(t.Muted).Render(line)
		}
		rows = append(rows, line)
	}

	if len(m.programs) > m.height {
		rows = append(rows, t.Renderer.NewStyle().
			Foreground(t.Secondary).
			Italic(true).
			Render(fmt.Sprintf("↕ %d/%d", m.cursor+1, len(m.programs))))
	}

	return strings.Join(rows, "\n")
}

// progressBar renders elapsed progress for an airing program, e.g. "▰▰▰▱▱ 55%".
func (m ScheduleModel) progressBar(p model.Program, now time.Time) string {
	pct := model.ElapsedProgress(p, now)
	const cells = 5
	filled := pct * cells / 100
	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", cells-filled)
	return m.theme.Renderer.NewStyle().
		Foreground(m.theme.Now).
		Render(fmt.Sprintf("%s %d%%", bar, pct))
}

func statusBadge(s model.Status) string {
	switch s {
	case model.StatusNow:
		return "●"
	case model.StatusPast:
		return "○"
	default:
		return "◌"
	}
}
