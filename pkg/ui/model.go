package ui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/javipelopi/gridcast/pkg/config"
	"github.com/javipelopi/gridcast/pkg/epg"
	"github.com/javipelopi/gridcast/pkg/grid"
	"github.com/javipelopi/gridcast/pkg/model"
	"github.com/javipelopi/gridcast/pkg/timewin"
)

// Panel layout constants for the three-column view.
const (
	channelsPanelWidth = 30
	detailsPanelRatio  = 0.4
	headerHeight       = 2
)

// guideMsg carries the outcome of a window fetch. gen ties the result to the
// window change that started it; results from superseded fetches are dropped.
type guideMsg struct {
	gen    int
	window timewin.Window
	guide  *epg.Guide
	err    error
}

// programDetailMsg carries a single program resolved straight from the
// backend, for search picks absent from the committed guide payload.
type programDetailMsg struct {
	program model.Program
	channel model.Channel
	err     error
}

// Tick messages for the three periodic cadences. Each handler re-arms its
// own timer, so a slow frame delays the next tick instead of stacking them.
type (
	refreshTickMsg  time.Time
	classifyTickMsg time.Time
	rolloverTickMsg time.Time
)

// Model is the main Bubble Tea model for the guide.
type Model struct {
	client *epg.Client
	log    *slog.Logger
	cfg    config.Config
	theme  Theme
	geo    grid.Geometry

	// Data
	window timewin.Window
	guide  *epg.Guide

	// Fetch supersession: each window change bumps the generation and
	// cancels the in-flight fetch; a guideMsg carrying a stale generation
	// is discarded.
	generation  int
	cancelFetch context.CancelFunc
	loading     bool
	fetchErr    error

	// Focus state and sub-models
	nav        NavState
	daybar     DaybarModel
	channels   ChannelsModel
	schedule   ScheduleModel
	details    DetailsModel
	gridView   GridModel
	search     SearchModel
	datePicker DatePickerModel

	// A search pick lands in a window that may not be loaded yet; the
	// target is held here and applied when its fetch completes.
	pending *SearchSelection

	showGrid        bool
	showHelp        bool
	showQuitConfirm bool
	searchActive    bool

	// now is the classification clock. It advances on classify ticks, not
	// per frame, so a whole render uses one consistent instant.
	now time.Time

	ready         bool
	width, height int

	statusMsg     string
	statusIsError bool
}

// NewModel wires the sub-models together around a backend client.
func NewModel(client *epg.Client, cfg config.Config, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	theme := DefaultTheme(lipgloss.NewRenderer(os.Stdout))
	geo := grid.Geometry{
		RowHeight:  cfg.RowHeight,
		ColWidth:   cfg.ColWidth,
		LabelWidth: cfg.LabelWidth,
		Overscan:   cfg.Overscan,
	}

	now := time.Now()
	daybar := NewDaybarModel(now, theme)

	return Model{
		client:     client,
		log:        logger,
		cfg:        cfg,
		theme:      theme,
		geo:        geo,
		window:     daybar.Selected().Window,
		daybar:     daybar,
		channels:   NewChannelsModel(theme),
		schedule:   NewScheduleModel(theme),
		details:    NewDetailsModel(theme),
		gridView:   NewGridModel(geo, theme),
		search:     NewSearchModel(client, theme),
		datePicker: NewDatePickerModel(theme),
		nav:        NavState{Active: PanelChannels},
		now:        now,
	}
}

func (m Model) Init() tea.Cmd {
	fetch := m.startFetch(m.window)
	return tea.Batch(
		fetch,
		tea.Tick(m.refreshEvery(), func(t time.Time) tea.Msg { return refreshTickMsg(t) }),
		tea.Tick(m.classifyEvery(), func(t time.Time) tea.Msg { return classifyTickMsg(t) }),
		tea.Tick(m.rolloverEvery(), func(t time.Time) tea.Msg { return rolloverTickMsg(t) }),
	)
}

func (m *Model) refreshEvery() time.Duration {
	return time.Duration(m.cfg.RefreshSeconds) * time.Second
}

func (m *Model) classifyEvery() time.Duration {
	return time.Duration(m.cfg.ClassifySeconds) * time.Second
}

func (m *Model) rolloverEvery() time.Duration {
	return time.Duration(m.cfg.RolloverSeconds) * time.Second
}

// startFetch begins loading a window, superseding any fetch in flight.
func (m *Model) startFetch(w timewin.Window) tea.Cmd {
	if m.cancelFetch != nil {
		m.cancelFetch()
	}
	m.generation++
	m.window = w
	m.loading = true
	m.fetchErr = nil

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelFetch = cancel

	gen := m.generation
	client := m.client
	log := m.log
	return func() tea.Msg {
		g, err := client.FetchGuide(ctx, w)
		if err != nil && !epg.IsCancelled(err) {
			log.Error("guide fetch failed", "window_start", w.Start, "error", err)
		}
		return guideMsg{gen: gen, window: w, guide: g, err: err}
	}
}

// refreshInPlace re-fetches the current window without entering the loading
// state, so the periodic refresh never flashes the UI.
func (m *Model) refreshInPlace() tea.Cmd {
	cmd := m.startFetch(m.window)
	m.loading = false
	return cmd
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case guideMsg:
		return m.handleGuide(msg)

	case programDetailMsg:
		return m.handleProgramDetail(msg)

	case SearchDebounceMsg:
		return m, m.search.HandleDebounce(msg)

	case SearchResultsMsg:
		m.search.HandleResults(msg)
		m.syncOverlayCapture()
		return m, nil

	case refreshTickMsg:
		rearm := tea.Tick(m.refreshEvery(), func(t time.Time) tea.Msg { return refreshTickMsg(t) })
		if m.fetchErr != nil {
			// A failed window stays failed until the user retries.
			return m, rearm
		}
		return m, tea.Batch(m.refreshInPlace(), rearm)

	case classifyTickMsg:
		m.now = time.Time(msg)
		rearm := tea.Tick(m.classifyEvery(), func(t time.Time) tea.Msg { return classifyTickMsg(t) })
		if m.guide != nil {
			m.channels.SetNowPlaying(nowPlayingTitles(m.guide, m.now))
		}
		return m, rearm

	case rolloverTickMsg:
		m.now = time.Time(msg)
		rearm := tea.Tick(m.rolloverEvery(), func(t time.Time) tea.Msg { return rolloverTickMsg(t) })
		if m.daybar.CheckRollover(m.now) {
			m.log.Info("date rollover, resetting to today")
			return m, tea.Batch(m.startFetch(m.daybar.Selected().Window), rearm)
		}
		return m, rearm

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}
	return m, nil
}

// handleGuide commits a fetched window, unless it was superseded.
func (m Model) handleGuide(msg guideMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.generation {
		return m, nil
	}
	m.loading = false

	if msg.err != nil {
		if epg.IsCancelled(msg.err) {
			return m, nil
		}
		m.fetchErr = msg.err
		return m, nil
	}

	m.fetchErr = nil
	m.guide = msg.guide
	m.window = msg.window

	m.channels.SetChannels(msg.guide.Channels)
	m.channels.SetNowPlaying(nowPlayingTitles(msg.guide, m.now))
	m.gridView.SetData(msg.guide, msg.window)

	if m.pending != nil {
		sel := *m.pending
		m.pending = nil
		return m, m.applySelection(sel)
	}
	m.syncSchedule(true)
	return m, nil
}

// handleProgramDetail opens details for a directly fetched program.
func (m Model) handleProgramDetail(msg programDetailMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if epg.IsCancelled(msg.err) {
			return m, nil
		}
		m.statusMsg = "Program details unavailable"
		m.statusIsError = true
		return m, nil
	}
	m.channels.SelectByID(msg.channel.ID)
	m.syncSchedule(false)
	m.details.SetProgram(msg.program, msg.channel)
	m.nav.Active = PanelSchedule
	m.nav.DetailsOpen = true
	return m, nil
}

// syncSchedule rebinds the schedule panel to the selected channel's programs.
// When autoSelect is set and the window covers now, the airing program is
// selected; otherwise the selection resets.
func (m *Model) syncSchedule(autoSelect bool) {
	ch, ok := m.channels.Selected()
	if !ok || m.guide == nil {
		m.schedule.SetPrograms(nil)
		return
	}
	m.schedule.SetPrograms(m.guide.ChannelPrograms(ch.ID))
	if autoSelect && m.window.Contains(m.now) {
		m.schedule.AutoSelectAiring(m.now)
	}
	m.syncDetails()
}

// syncDetails refreshes the details panel from the schedule selection while
// the panel is open.
func (m *Model) syncDetails() {
	if !m.nav.DetailsOpen {
		return
	}
	p, ok := m.schedule.Selected()
	if !ok {
		m.details.Clear()
		return
	}
	ch, _ := m.channels.Selected()
	m.details.SetProgram(p, ch)
}

// applySelection lands a search pick: select its channel and program and
// open details. A program missing from the committed payload is resolved
// with a direct detail fetch instead of being dropped.
func (m *Model) applySelection(sel SearchSelection) tea.Cmd {
	if m.channels.SelectByID(sel.ChannelID) {
		m.syncSchedule(false)
		if m.schedule.SelectByID(sel.ProgramID) {
			m.nav.Active = PanelSchedule
			m.nav.DetailsOpen = true
			m.syncDetails()
			return nil
		}
	} else {
		m.syncSchedule(true)
	}
	return m.fetchProgramDetail(sel.ProgramID)
}

// fetchProgramDetail resolves a single program by ID from the backend.
func (m *Model) fetchProgramDetail(id string) tea.Cmd {
	if m.client == nil {
		return nil
	}
	client := m.client
	log := m.log
	return func() tea.Msg {
		p, ch, err := client.ProgramByID(context.Background(), id)
		if err != nil && !epg.IsCancelled(err) {
			log.Warn("program detail fetch failed", "program_id", id, "error", err)
		}
		return programDetailMsg{program: p, channel: ch, err: err}
	}
}

// syncOverlayCapture mirrors overlay ownership of the keyboard into the
// focus machine.
func (m *Model) syncOverlayCapture() {
	m.nav.OverlayCapturing = m.searchActive || m.datePicker.IsOpen()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""
	m.statusIsError = false

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Overlays, outermost first.
	if m.showQuitConfirm {
		switch msg.String() {
		case "esc", "y", "Y", "q":
			return m, tea.Quit
		default:
			m.showQuitConfirm = false
			return m, nil
		}
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if msg.String() == "?" && !m.searchActive {
		m.showHelp = true
		return m, nil
	}

	if m.searchActive {
		return m.handleSearchKey(msg)
	}

	if m.datePicker.IsOpen() {
		return m.handleDatePickerKey(msg)
	}

	if m.showGrid {
		return m.handleGridKey(msg)
	}

	return m.handlePanelKey(msg)
}

// handleSearchKey routes keys while the search input owns the keyboard.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.Clear()
		m.search.Blur()
		m.searchActive = false
		m.syncOverlayCapture()
		return m, nil

	case "down", "ctrl+n":
		m.search.MoveDown()
		return m, nil

	case "up", "ctrl+p":
		m.search.MoveUp()
		return m, nil

	case "enter":
		sel, ok := m.search.Select()
		if !ok {
			return m, nil
		}
		m.search.Blur()
		m.searchActive = false
		m.syncOverlayCapture()
		m.showGrid = false
		m.pending = &sel
		m.daybar.Select(windowForPick(m.now, sel.Window.Start, m.daybar.Options()))
		return m, m.startFetch(sel.Window)

	default:
		cmd := m.search.HandleInput(msg)
		m.syncOverlayCapture()
		return m, cmd
	}
}

// handleDatePickerKey routes keys while the date-picker overlay is open.
func (m Model) handleDatePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "d":
		m.datePicker.Close()
		m.syncOverlayCapture()
		return m, nil

	case "h", "left":
		m.datePicker.Move(NavLeft)
	case "l", "right":
		m.datePicker.Move(NavRight)
	case "k", "up":
		m.datePicker.Move(NavUp)
	case "j", "down":
		m.datePicker.Move(NavDown)

	case "enter":
		opt := windowForPick(m.now, m.datePicker.Selected(), m.daybar.Options())
		m.datePicker.Close()
		m.syncOverlayCapture()
		m.daybar.Select(opt)
		return m, m.startFetch(opt.Window)
	}
	return m, nil
}

// handleGridKey routes keys in the full-matrix view.
func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "g":
		m.showGrid = false
		return m, nil

	case "h", "left":
		m.gridView.Move(NavLeft)
	case "l", "right":
		m.gridView.Move(NavRight)
	case "k", "up":
		m.gridView.Move(NavUp)
	case "j", "down":
		m.gridView.Move(NavDown)

	case "n":
		if !m.gridView.JumpToNow(m.now) {
			return m, m.jumpToNow()
		}

	case "/":
		return m, m.activateSearch()
	case "d":
		m.datePicker.Open(m.now, m.daybar.Selected().Anchor)
		m.syncOverlayCapture()
	case "H":
		return m, m.startFetch(m.daybar.Prev(m.now).Window)
	case "L":
		return m, m.startFetch(m.daybar.Next(m.now).Window)
	case "r":
		return m, m.startFetch(m.window)

	case "enter":
		ch, okCh := m.gridView.SelectedChannel()
		p, okP := m.gridView.SelectedProgram()
		if !okCh || !okP {
			return m, nil
		}
		m.showGrid = false
		m.channels.SelectByID(ch.ID)
		m.syncSchedule(false)
		if m.schedule.SelectByID(p.ID) {
			m.nav.Active = PanelSchedule
			m.nav.DetailsOpen = true
			m.syncDetails()
		}
	}
	return m, nil
}

// handlePanelKey routes keys in the default three-panel view.
func (m Model) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		if m.nav.DetailsOpen {
			m.nav = Transition(m.nav, NavBack, m.navContext())
			if m.nav.Active != PanelDetails {
				m.details.Clear()
			}
			return m, nil
		}
		m.showQuitConfirm = true
		return m, nil

	case "/":
		return m, m.activateSearch()

	case "d":
		m.datePicker.Open(m.now, m.daybar.Selected().Anchor)
		m.syncOverlayCapture()
		return m, nil

	case "g":
		if m.guide != nil {
			m.showGrid = true
			m.gridView.JumpToNow(m.now)
		}
		return m, nil

	case "n":
		return m, m.jumpToNow()

	case "r":
		return m, m.startFetch(m.window)

	case "C":
		m.copyProgram()
		return m, nil

	case "H":
		return m, m.startFetch(m.daybar.Prev(m.now).Window)

	case "L":
		return m, m.startFetch(m.daybar.Next(m.now).Window)

	case "h", "left":
		return m.routeNav(NavLeft)
	case "l", "right":
		return m.routeNav(NavRight)
	case "k", "up":
		return m.routeNav(NavUp)
	case "j", "down":
		return m.routeNav(NavDown)
	case "enter":
		return m.routeNav(NavActivate)

	case "ctrl+d":
		if m.nav.Active == PanelDetails {
			m.details.ScrollDown(5)
		}
		return m, nil
	case "ctrl+u":
		if m.nav.Active == PanelDetails {
			m.details.ScrollUp(5)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) navContext() NavContext {
	ctx := NavContext{}
	if _, ok := m.schedule.Selected(); ok {
		ctx.HasSelection = true
	}
	switch m.nav.Active {
	case PanelChannels:
		ctx.AtTop = m.channels.AtTop()
	case PanelSchedule:
		ctx.AtTop = m.schedule.AtTop()
	}
	return ctx
}

// routeNav gives the active panel first claim on a directional event; only
// unconsumed events reach the boundary-crossing state machine.
func (m Model) routeNav(ev NavEvent) (tea.Model, tea.Cmd) {
	switch m.nav.Active {
	case PanelHeader:
		switch ev {
		case NavLeft:
			return m, m.startFetch(m.daybar.Prev(m.now).Window)
		case NavRight:
			return m, m.startFetch(m.daybar.Next(m.now).Window)
		}

	case PanelChannels:
		switch ev {
		case NavDown:
			m.channels.MoveDown()
			m.syncSchedule(true)
			return m, nil
		case NavUp:
			if m.channels.MoveUp() {
				m.syncSchedule(true)
				return m, nil
			}
		}

	case PanelSchedule:
		switch ev {
		case NavDown:
			m.schedule.MoveDown()
			m.syncDetails()
			return m, nil
		case NavUp:
			if m.schedule.MoveUp() {
				m.syncDetails()
				return m, nil
			}
		}

	case PanelDetails:
		switch ev {
		case NavDown:
			m.details.ScrollDown(1)
			return m, nil
		case NavUp:
			m.details.ScrollUp(1)
			return m, nil
		}
	}

	before := m.nav
	m.nav = Transition(m.nav, ev, m.navContext())
	m.onPanelChange(before)
	return m, nil
}

// onPanelChange applies the side effects of a focus transition.
func (m *Model) onPanelChange(before NavState) {
	if m.nav == before {
		return
	}
	if before.Active != PanelSchedule && m.nav.Active == PanelSchedule {
		if _, ok := m.schedule.Selected(); !ok {
			m.schedule.AutoSelectAiring(m.now)
		}
	}
	if m.nav.DetailsOpen && !before.DetailsOpen {
		m.syncDetails()
	}
	if !m.nav.DetailsOpen && before.DetailsOpen {
		m.details.Clear()
	}
}

func (m *Model) activateSearch() tea.Cmd {
	m.searchActive = true
	m.syncOverlayCapture()
	return m.search.Focus()
}

// jumpToNow returns to the Today window and selects the airing program on
// the current channel.
func (m *Model) jumpToNow() tea.Cmd {
	m.now = time.Now()
	opts := m.daybar.Options()
	if len(opts) == 0 {
		return nil
	}
	today := opts[0]
	m.daybar.Select(today)
	m.showGrid = false
	if m.window.Equal(today.Window) && m.guide != nil {
		m.schedule.AutoSelectAiring(m.now)
		m.syncDetails()
		return nil
	}
	return m.startFetch(today.Window)
}

// copyProgram puts a plain-text summary of the selected program on the
// system clipboard.
func (m *Model) copyProgram() {
	p, ok := m.schedule.Selected()
	if !ok {
		m.statusMsg = "Nothing selected"
		m.statusIsError = true
		return
	}
	ch, _ := m.channels.Selected()
	text := fmt.Sprintf("%s\n%s · %s\n\n%s\n", p.Title, ch.Name, p.Airtime(), p.Description)
	if err := clipboard.WriteAll(text); err != nil {
		m.log.Error("clipboard write failed", "error", err)
		m.statusMsg = "Copy failed"
		m.statusIsError = true
		return
	}
	m.statusMsg = "Copied to clipboard"
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true

	bodyHeight := max(5, height-headerHeight-1)
	m.channels.SetSize(channelsPanelWidth-4, bodyHeight-2)

	detailsWidth := 0
	if m.nav.DetailsOpen {
		detailsWidth = int(float64(width) * detailsPanelRatio)
	}
	scheduleWidth := width - channelsPanelWidth - detailsWidth
	m.schedule.SetSize(scheduleWidth-4, bodyHeight-2)
	m.details.SetSize(max(20, detailsWidth-4), bodyHeight-2)
	m.gridView.SetSize(width, bodyHeight)
}

// nowPlayingTitles maps channel ID to the title airing at now, for the
// channel list's second column.
func nowPlayingTitles(g *epg.Guide, now time.Time) map[string]string {
	titles := make(map[string]string, len(g.Channels))
	for _, ch := range g.Channels {
		if p, ok := g.NowPlaying(ch.ID, now); ok {
			titles[ch.ID] = p.Title
		}
	}
	return titles
}

func (m Model) View() string {
	if !m.ready {
		return "Loading guide..."
	}

	header := m.renderHeader()

	var body string
	switch {
	case m.showQuitConfirm:
		body = m.renderQuitConfirm()
	case m.showHelp:
		body = m.renderHelp()
	case m.datePicker.IsOpen():
		body = m.renderCentered(m.datePicker.View())
	case m.fetchErr != nil:
		body = m.renderFetchError()
	case m.showGrid:
		body = m.gridView.View(true, m.now)
	default:
		body = m.renderPanels()
	}

	if m.search.Capturing() {
		dropdown := m.search.ViewDropdown(min(m.width, 72))
		body = lipgloss.JoinVertical(lipgloss.Left, dropdown, body)
	}

	footer := m.renderFooter()

	return m.theme.Renderer.NewStyle().
		Width(m.width).
		Height(m.height).
		MaxHeight(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body, footer))
}

func (m Model) renderHeader() string {
	t := m.theme

	title := t.Header.Render(" gridcast ")
	search := m.search.View(m.searchActive)

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(search) - 1
	if gap < 1 {
		gap = 1
	}
	topRow := title + strings.Repeat(" ", gap) + search

	daybar := m.daybar.View(m.width)
	if m.nav.Active == PanelHeader && !m.showGrid {
		daybar = t.Renderer.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(t.Primary).
			Render(daybar)
	}

	return lipgloss.JoinVertical(lipgloss.Left, topRow, daybar)
}

func (m Model) renderPanels() string {
	t := m.theme
	bodyHeight := max(5, m.height-headerHeight-1)

	style := func(p Panel) lipgloss.Style {
		if m.nav.Active == p {
			return t.FocusedPanelStyle()
		}
		return t.PanelStyle()
	}

	channels := style(PanelChannels).
		Width(channelsPanelWidth - 2).
		Height(bodyHeight - 2).
		MaxHeight(bodyHeight).
		Render(m.channels.View(m.nav.Active == PanelChannels))

	detailsWidth := 0
	if m.nav.DetailsOpen {
		detailsWidth = int(float64(m.width) * detailsPanelRatio)
	}

	scheduleWidth := m.width - channelsPanelWidth - detailsWidth
	schedule := style(PanelSchedule).
		Width(scheduleWidth - 2).
		Height(bodyHeight - 2).
		MaxHeight(bodyHeight).
		Render(m.schedule.View(m.nav.Active == PanelSchedule, m.now))

	cols := []string{channels, schedule}
	if m.nav.DetailsOpen {
		details := style(PanelDetails).
			Width(detailsWidth - 2).
			Height(bodyHeight - 2).
			MaxHeight(bodyHeight).
			Render(m.details.View(m.now))
		cols = append(cols, details)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) renderFetchError() string {
	t := m.theme
	box := t.PanelStyle().
		BorderForeground(t.Error).
		Padding(1, 3).
		Render(
			t.Renderer.NewStyle().Foreground(t.Error).Bold(true).Render("Could not load the guide") + "\n\n" +
				t.Renderer.NewStyle().Foreground(t.Subtext).Render(fmt.Sprintf("%v", m.fetchErr)) + "\n\n" +
				t.Renderer.NewStyle().Foreground(t.Secondary).Render("Press r to retry"),
		)
	return m.renderCentered(box)
}

func (m Model) renderQuitConfirm() string {
	t := m.theme

	text := t.Renderer.NewStyle().Foreground(t.Subtext)
	key := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)

	box := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Error).
		Padding(1, 3).
		Align(lipgloss.Center).
		Render(
			t.Renderer.NewStyle().Foreground(t.Error).Bold(true).Render("Quit gridcast?") + "\n\n" +
				text.Render("Press ") + key.Render("y") + text.Render(" or ") + key.Render("Esc") +
				text.Render(" to quit\n") +
				text.Render("Press any other key to cancel"),
		)
	return m.renderCentered(box)
}

func (m Model) renderHelp() string {
	t := m.theme

	section := t.Renderer.NewStyle().Foreground(t.Secondary).Bold(true)
	key := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true).Width(12)
	desc := t.Renderer.NewStyle().Foreground(t.Subtext)

	groups := []struct {
		name string
		keys []struct{ k, d string }
	}{
		{"Navigation", []struct{ k, d string }{
			{"h/j/k/l", "Move between and within panels"},
			{"Enter", "Open program details"},
			{"Esc", "Close details / quit"},
			{"Ctrl+d/u", "Scroll details"},
		}},
		{"Days", []struct{ k, d string }{
			{"H / L", "Previous / next day"},
			{"d", "Pick a date"},
			{"n", "Jump to now"},
		}},
		{"Views", []struct{ k, d string }{
			{"g", "Toggle full grid"},
			{"/", "Search programs"},
			{"?", "Toggle this help"},
		}},
		{"Actions", []struct{ k, d string }{
			{"r", "Refresh guide"},
			{"C", "Copy program to clipboard"},
			{"q", "Quit"},
		}},
	}

	var sb strings.Builder
	sb.WriteString(t.Renderer.NewStyle().Foreground(t.Primary).Bold(true).Render("Keyboard Shortcuts"))
	sb.WriteString("\n")
	for _, g := range groups {
		sb.WriteString("\n")
		sb.WriteString(section.Render(g.name))
		sb.WriteString("\n")
		for _, s := range g.keys {
			sb.WriteString(key.Render(s.k) + desc.Render(s.d) + "\n")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(t.Renderer.NewStyle().Foreground(t.Secondary).Italic(true).Render("Press any key to close"))

	box := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3).
		Render(sb.String())
	return m.renderCentered(box)
}

func (m Model) renderCentered(content string) string {
	return lipgloss.Place(
		m.width,
		max(5, m.height-headerHeight-1),
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

func (m Model) renderFooter() string {
	t := m.theme

	if m.statusMsg != "" {
		style := t.Renderer.NewStyle().Foreground(t.Now).Bold(true).Padding(0, 1)
		if m.statusIsError {
			style = style.Foreground(t.Error)
		}
		return style.Render(m.statusMsg)
	}

	chip := t.Chip.Render(m.daybar.Selected().Label)

	var state string
	switch {
	case m.loading:
		state = t.Renderer.NewStyle().Foreground(t.Secondary).Render("loading…")
	case m.fetchErr != nil:
		state = t.Renderer.NewStyle().Foreground(t.Error).Render("fetch failed · r to retry")
	case m.guide != nil:
		state = t.Renderer.NewStyle().Foreground(t.Secondary).Render(
			fmt.Sprintf("%d channels · %d programs", len(m.guide.Channels), m.guide.ProgramCount()))
	}

	k := t.Renderer.NewStyle().Foreground(t.Primary)
	d := t.Renderer.NewStyle().Foreground(t.Secondary)
	sep := d.Render(" │ ")

	var hints []string
	switch {
	case m.searchActive:
		hints = []string{k.Render("↑/↓") + d.Render(" pick"), k.Render("⏎") + d.Render(" go"), k.Render("esc") + d.Render(" cancel")}
	case m.datePicker.IsOpen():
		hints = []string{k.Render("hjkl") + d.Render(" move"), k.Render("⏎") + d.Render(" pick"), k.Render("esc") + d.Render(" close")}
	case m.showGrid:
		hints = []string{k.Render("hjkl") + d.Render(" move"), k.Render("⏎") + d.Render(" details"), k.Render("g") + d.Render(" panels"), k.Render("?") + d.Render(" help")}
	case m.nav.DetailsOpen:
		hints = []string{k.Render("esc") + d.Render(" close"), k.Render("C") + d.Render(" copy"), k.Render("?") + d.Render(" help")}
	default:
		hints = []string{k.Render("⏎") + d.Render(" details"), k.Render("/") + d.Render(" search"), k.Render("g") + d.Render(" grid"), k.Render("?") + d.Render(" help")}
	}
	right := strings.Join(hints, sep)

	left := chip + " " + state
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
