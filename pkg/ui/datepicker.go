package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javipelopi/gridcast/pkg/timewin"
)

// datePickerWeeks is the number of rows in the picker grid.
const datePickerWeeks = 4

// DatePickerModel is the date-grid overlay. While open it captures all
// directional input: left/right move by one day, up/down by seven, all four
// clamped to the grid bounds. Today is the lower bound; the guide never
// navigates into the past.
type DatePickerModel struct {
	today  time.Time // midnight of the day the picker opened on
	cursor int       // day offset from today, 0..gridDays-1
	open   bool
	theme  Theme
}

func NewDatePickerModel(theme Theme) DatePickerModel {
	return DatePickerModel{theme: theme}
}

func (m *DatePickerModel) gridDays() int { return datePickerWeeks * 7 }

// Open shows the grid with the cursor on the currently selected day when it
// falls inside the grid, else on today.
func (m *DatePickerModel) Open(now, selected time.Time) {
	m.today = startOfDay(now)
	m.cursor = 0
	if !selected.IsZero() {
		offset := int(startOfDay(selected).Sub(m.today).Hours() / 24)
		if offset > 0 && offset < m.gridDays() {
			m.cursor = offset
		}
	}
	m.open = true
}

func (m *DatePickerModel) Close() { m.open = false }

func (m *DatePickerModel) IsOpen() bool { return m.open }

// Move applies one clamped 2-D step.
func (m *DatePickerModel) Move(ev NavEvent) {
	step := 0
	switch ev {
	case NavLeft:
		step = -1
	case NavRight:
		step = 1
	case NavUp:
		step = -7
	case NavDown:
		step = 7
	}
	next := m.cursor + step
	if next < 0 || next >= m.gridDays() {
		return
	}
	m.cursor = next
}

// Selected returns the date under the cursor.
func (m *DatePickerModel) Selected() time.Time {
	return m.today.AddDate(0, 0, m.cursor)
}

// View renders the week-per-row grid.
func (m DatePickerModel) View() string {
	t := m.theme
	if !m.open {
		return ""
	}

	header := t.Renderer.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Render("Jump to date")

	weekdays := t.Renderer.NewStyle().
		Foreground(t.Secondary).
		Render(weekdayRuler(m.today))

	var weeks []string
	for w := 0; w < datePickerWeeks; w++ {
		var cells []string
		for d := 0; d < 7; d++ {
			i := w*7 + d
			day := m.today.AddDate(0, 0, i)
			label := day.Format("_2")

			style := t.Renderer.NewStyle().Width(4).Align(lipgloss.Center)
			switch {
			case i == m.cursor:
				style = style.Background(t.Primary).
					Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
					Bold(true)
			case i == 0:
				style = style.Foreground(t.Now).Bold(true)
			case day.Day() == 1:
				style = style.Foreground(t.Future)
			}
			cells = append(cells, style.Render(label))
		}
		weeks = append(weeks, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	hint := t.Renderer.NewStyle().
		Foreground(t.Secondary).
		Italic(true).
		Render(m.Selected().Format("Mon, 2 Jan") + " · ⏎ jump · esc cancel")

	body := lipgloss.JoinVertical(lipgloss.Left,
		header, weekdays, strings.Join(weeks, "\n"), hint)
	return t.FocusedPanelStyle().Render(body)
}

// weekdayRuler labels the columns starting from today's weekday.
func weekdayRuler(today time.Time) string {
	var names []string
	for d := 0; d < 7; d++ {
		name := today.AddDate(0, 0, d).Format("Mon")
		names = append(names, " "+name[:2]+" ")
	}
	return strings.Join(names, "")
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// windowForPick converts a picked date into a guide window via the day
// options, matching an existing option when the date is in the precomputed
// set and synthesizing one otherwise.
func windowForPick(now, date time.Time, opts []timewin.DayOption) timewin.DayOption {
	if o, ok := timewin.FindOptionForDate(date, opts); ok {
		return o
	}
	return timewin.OptionForDate(now, date)
}
