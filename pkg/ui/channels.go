package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javipelopi/gridcast/pkg/grid"
	"github.com/javipelopi/gridcast/pkg/model"
)

// ChannelsModel is the channel-list panel. Vertical arrows walk a bounded
// cursor through the list; reaching the top boundary hands focus back to the
// header via the panel state machine.
type ChannelsModel struct {
	channels  []model.Channel
	nowTitles map[string]string // channelID -> currently airing title

	cursor int
	offset int
	width  int
	height int
	theme  Theme
}

func NewChannelsModel(theme Theme) ChannelsModel {
	return ChannelsModel{theme: theme, nowTitles: map[string]string{}}
}

// SetChannels replaces the list, keeping the cursor in bounds and preserving
// the selected channel when it survives the refresh.
func (m *ChannelsModel) SetChannels(channels []model.Channel) {
	var keepID string
	if ch, ok := m.Selected(); ok {
		keepID = ch.ID
	}
	m.channels = channels
	if keepID != "" && m.SelectByID(keepID) {
		return
	}
	if m.cursor >= len(channels) {
		m.cursor = max(0, len(channels)-1)
	}
	m.scrollIntoView()
}

// SetNowPlaying updates the now/next readout shown beside each channel name.
func (m *ChannelsModel) SetNowPlaying(titles map[string]string) {
	if titles == nil {
		titles = map[string]string{}
	}
	m.nowTitles = titles
}

func (m *ChannelsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scrollIntoView()
}

// MoveDown advances the cursor; it reports false at the bottom boundary.
func (m *ChannelsModel) MoveDown() bool {
	if m.cursor >= len(m.channels)-1 {
		return false
	}
	m.cursor++
	m.scrollIntoView()
	return true
}

// MoveUp retreats the cursor; it reports false at the top boundary so the
// caller can cross to the header panel.
func (m *ChannelsModel) MoveUp() bool {
	if m.cursor <= 0 {
		return false
	}
	m.cursor--
	m.scrollIntoView()
	return true
}

func (m *ChannelsModel) MoveToTop() {
	m.cursor = 0
	m.scrollIntoView()
}

func (m *ChannelsModel) MoveToBottom() {
	if len(m.channels) > 0 {
		m.cursor = len(m.channels) - 1
	}
	m.scrollIntoView()
}

func (m *ChannelsModel) PageDown(rows int) {
	if len(m.channels) == 0 {
		return
	}
	m.cursor = min(m.cursor+rows/2, len(m.channels)-1)
	m.scrollIntoView()
}

func (m *ChannelsModel) PageUp(rows int) {
	m.cursor = max(m.cursor-rows/2, 0)
	m.scrollIntoView()
}

// AtTop reports whether the cursor sits on the first channel.
func (m *ChannelsModel) AtTop() bool { return m.cursor == 0 }

func (m *ChannelsModel) Len() int { return len(m.channels) }

// Cursor returns the current row index.
func (m *ChannelsModel) Cursor() int { return m.cursor }

// Selected returns the channel under the cursor.
func (m *ChannelsModel) Selected() (model.Channel, bool) {
	if m.cursor < 0 || m.cursor >= len(m.channels) {
		return model.Channel{}, false
	}
	return m.channels[m.cursor], true
}

// SelectByID moves the cursor to the channel with the given ID.
func (m *ChannelsModel) SelectByID(id string) bool {
	for i, ch := range m.channels {
		if ch.ID == id {
			m.cursor = i
			m.scrollIntoView()
			return true
		}
	}
	return false
}

func (m *ChannelsModel) scrollIntoView() {
	if m.height <= 0 {
		return
	}
	m.offset = grid.ScrollIntoView(m.offset, m.height, 1, m.cursor)
	maxOffset := max(0, len(m.channels)-m.height)
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
}

// View renders the visible window of the list. An empty list renders an
// explicit empty state rather than a blank panel.
func (m ChannelsModel) View(focused bool) string {
	t := m.theme

	if len(m.channels) == 0 {
		return t.Renderer.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(t.Secondary).
			Render("No channels")
	}

	nameWidth := m.width * 2 / 5
	if nameWidth < 8 {
		nameWidth = 8
	}
	nowWidth := m.width - nameWidth - 1

	var rows []string
	end := min(m.offset+m.height, len(m.channels))
	for i := m.offset; i < end; i++ {
		ch := m.channels[i]
		name := truncate(ch.Name, nameWidth)
		now := truncate(m.nowTitles[ch.ID], nowWidth)

		padded := padRight(name, nameWidth)
		line := padded + " " +
			t.Renderer.NewStyle().Foreground(t.Subtext).Render(now)

		if i == m.cursor && focused {
			line = t.Selected.Width(m.width).Render(padded + " " + now)
		} else if i == m.cursor {
			line = t.Renderer.NewStyle().
				Foreground(t.Primary).
				Bold(true).
				Render(padded + " " + now)
		}
		rows = append(rows, line)
	}

	// Scroll indicator
	if len(m.channels) > m.height {
		rows = append(rows, t.Renderer.NewStyle().
			Foreground(t.Secondary).
			Italic(true).
			Render(fmt.Sprintf("↕ %d/%d", m.cursor+1, len(m.channels))))
	}

	return strings.Join(rows, "\n")
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
