package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javipelopi/gridcast/pkg/epg"
	"github.com/javipelopi/gridcast/pkg/model"
	"github.com/javipelopi/gridcast/pkg/timewin"
)

// searchDebounce is how long typing must pause before a query is submitted.
const searchDebounce = 300 * time.Millisecond

// Searcher is the slice of the backend client the search controller needs.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

// SearchDebounceMsg fires when a debounce timer elapses. Only the message
// carrying the newest sequence number submits a query; older timers are
// superseded by later keystrokes (last-write-wins, not queued).
type SearchDebounceMsg struct {
	Seq   int
	Query string
}

// SearchResultsMsg carries the outcome of a submitted query.
type SearchResultsMsg struct {
	Seq     int
	Results []model.SearchResult
	Err     error
}

// SearchSelection is what picking a result yields: a window centered on the
// program start plus the target identity. The controller does not touch
// navigation state itself; the caller applies the selection.
type SearchSelection struct {
	Window    timewin.Window
	ChannelID string
	ProgramID string
}

// SearchModel owns the query input, the debounce timer, and the results
// dropdown. While the dropdown is open it captures directional input.
type SearchModel struct {
	input    textinput.Model
	searcher Searcher
	theme    Theme

	seq       int
	results   []model.SearchResult
	cursor    int
	open      bool
	searching bool
	err       error
}

func NewSearchModel(searcher Searcher, theme Theme) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Search programs..."
	ti.CharLimit = 80
	ti.Width = 28
	ti.Prompt = "🔍 "
	return SearchModel{input: ti, searcher: searcher, theme: theme}
}

func (m *SearchModel) Focus() tea.Cmd { return m.input.Focus() }
func (m *SearchModel) Blur()          { m.input.Blur() }
func (m *SearchModel) Focused() bool  { return m.input.Focused() }

// Capturing reports whether the results dropdown currently owns directional
// input.
func (m *SearchModel) Capturing() bool { return m.open }

// Query returns the current query text.
func (m *SearchModel) Query() string { return strings.TrimSpace(m.input.Value()) }

// HandleInput feeds a key into the text input and re-arms the debounce
// timer. Every keystroke bumps the sequence so earlier pending timers become
// stale.
func (m *SearchModel) HandleInput(msg tea.KeyMsg) tea.Cmd {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return cmd
	}

	m.seq++
	seq := m.seq
	query := m.Query()
	if query == "" {
		m.results = nil
		m.open = false
		m.err = nil
		return cmd
	}
	debounce := tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return SearchDebounceMsg{Seq: seq, Query: query}
	})
	return tea.Batch(cmd, debounce)
}

// HandleDebounce submits the query when the elapsed timer is still the
// newest one; stale timers are dropped silently.
func (m *SearchModel) HandleDebounce(msg SearchDebounceMsg) tea.Cmd {
	if msg.Seq != m.seq {
		return nil
	}
	m.searching = true
	m.err = nil
	seq := msg.Seq
	query := msg.Query
	searcher := m.searcher
	return func() tea.Msg {
		results, err := searcher.Search(context.Background(), query)
		return SearchResultsMsg{Seq: seq, Results: results, Err: err}
	}
}

// HandleResults commits a result set, unless a newer query superseded it.
func (m *SearchModel) HandleResults(msg SearchResultsMsg) {
	if msg.Seq != m.seq {
		return
	}
	m.searching = false
	if msg.Err != nil {
		if epg.IsCancelled(msg.Err) {
			return
		}
		m.err = msg.Err
		m.results = nil
		m.cursor = 0
		m.open = true
		return
	}
	m.results = msg.Results
	m.cursor = 0
	m.open = len(msg.Results) > 0 || m.Query() != ""
}

// MoveDown / MoveUp walk the dropdown cursor, clamped to the result list.
func (m *SearchModel) MoveDown() {
	if m.cursor < len(m.results)-1 {
		m.cursor++
	}
}

func (m *SearchModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// Select converts the highlighted result into a centered window plus target
// identity and clears the controller state.
func (m *SearchModel) Select() (SearchSelection, bool) {
	if !m.open || m.cursor < 0 || m.cursor >= len(m.results) {
		return SearchSelection{}, false
	}
	r := m.results[m.cursor]
	sel := SearchSelection{
		Window:    timewin.CenteredOn(r.Start, timewin.DefaultSpan),
		ChannelID: r.ChannelID,
		ProgramID: r.ProgramID,
	}
	m.Clear()
	return sel, true
}

// Clear resets query, results, and error atomically.
func (m *SearchModel) Clear() {
	m.seq++ // invalidate any pending debounce or in-flight search
	m.input.SetValue("")
	m.results = nil
	m.cursor = 0
	m.open = false
	m.searching = false
	m.err = nil
}

// View renders the input line; ViewDropdown renders the results overlay.
func (m SearchModel) View(focused bool) string {
	t := m.theme
	view := m.input.View()
	if m.searching {
		view += t.Renderer.NewStyle().Foreground(t.Secondary).Render(" …")
	}
	if focused {
		return t.Renderer.NewStyle().Foreground(t.Primary).Render(view)
	}
	return view
}

func (m SearchModel) ViewDropdown(width int) string {
	t := m.theme
	if !m.open {
		return ""
	}

	var rows []string
	if m.err != nil {
		rows = append(rows, t.Renderer.NewStyle().
			Foreground(t.Error).
			Render(fmt.Sprintf("search failed: %v", m.err)))
	} else if len(m.results) == 0 {
		rows = append(rows, t.Renderer.NewStyle().
			Foreground(t.Secondary).
			Italic(true).
			Render("No matches"))
	}

	for i, r := range m.results {
		line := fmt.Sprintf("%s  %s · %s",
			r.Start.Format("Mon 15:04"), truncate(r.Title, width/2), r.ChannelName)
		if i == m.cursor {
			line = t.Selected.Width(width - 4).Render(line)
		}
		rows = append(rows, line)
	}

	return t.FocusedPanelStyle().
		Width(width - 2).
		Render(strings.Join(rows, "\n"))
}
