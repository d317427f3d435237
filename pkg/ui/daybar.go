package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javipelopi/gridcast/pkg/timewin"
)

// DaybarModel is the row of day-anchor chips in the header. At most one
// option is selected at a time; an ad-hoc date pick swaps in a synthesized
// option without disturbing the precomputed set.
type DaybarModel struct {
	options    []timewin.DayOption
	selected   timewin.DayOption
	computedAt time.Time
	theme      Theme
}

func NewDaybarModel(now time.Time, theme Theme) DaybarModel {
	opts := timewin.ComputeDayOptions(now)
	return DaybarModel{
		options:    opts,
		selected:   opts[0],
		computedAt: now,
		theme:      theme,
	}
}

// Selected returns the active day option.
func (m *DaybarModel) Selected() timewin.DayOption { return m.selected }

// Options returns the precomputed option set.
func (m *DaybarModel) Options() []timewin.DayOption { return m.options }

// Next moves the selection one day forward, synthesizing days past the end
// of the precomputed list.
func (m *DaybarModel) Next(now time.Time) timewin.DayOption {
	m.selected = timewin.NextOption(m.selected, m.options, now)
	return m.selected
}

// Prev moves one day back, floored at today.
func (m *DaybarModel) Prev(now time.Time) timewin.DayOption {
	m.selected = timewin.PrevOption(m.selected, m.options, now)
	return m.selected
}

// Select switches to the given option.
func (m *DaybarModel) Select(o timewin.DayOption) {
	m.selected = o
}

// CheckRollover recomputes the option set when the wall-clock day has
// advanced past the day the set was computed for, resetting selection to
// Today. It reports whether a rollover happened.
func (m *DaybarModel) CheckRollover(now time.Time) bool {
	if !timewin.RolledOver(m.computedAt, now) {
		return false
	}
	m.options = timewin.ComputeDayOptions(now)
	m.selected = m.options[0]
	m.computedAt = now
	return true
}

// View renders the chip row; width bounds the rendered chips.
func (m DaybarModel) View(width int) string {
	t := m.theme

	var chips []string
	used := 0
	selectedShown := false
	for _, o := range m.options {
		style := t.Chip
		if o.ID == m.selected.ID && o.Anchor.Equal(m.selected.Anchor) {
			style = t.ChipOn
			selectedShown = true
		}
		chip := style.Render(o.Label)
		if used+lipgloss.Width(chip) > width {
			break
		}
		chips = append(chips, chip)
		used += lipgloss.Width(chip)
	}

	// An ad-hoc pick outside the precomputed set shows as an extra chip.
	if !selectedShown {
		chips = append(chips, t.ChipOn.Render(m.selected.Anchor.Format("2 Jan")))
	}

	return strings.Join(chips, " ")
}
